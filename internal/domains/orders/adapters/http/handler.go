package orderhttp

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retailcore/backoffice/internal/domains/orders/adapters/http/mapper"
	"github.com/retailcore/backoffice/internal/domains/orders/application"
	"github.com/retailcore/backoffice/internal/domains/orders/ports"
	apperrors "github.com/retailcore/backoffice/internal/shared/errors"
)

// Handler exposes the order lifecycle over HTTP. Fulfillment goes through
// the workflow orchestrator so the transition survives process restarts when
// a workflow engine is configured.
type Handler struct {
	service   ports.Service
	workflows ports.WorkflowOrchestrator
	responder *apperrors.ChainedResponder
}

// NewHandler wires the order service and orchestrator into an HTTP handler.
func NewHandler(service ports.Service, workflows ports.WorkflowOrchestrator) *Handler {
	return &Handler{
		service:   service,
		workflows: workflows,
		responder: apperrors.NewChainedResponder("", ErrorMapper),
	}
}

// Register mounts the order routes on the router.
func (h *Handler) Register(r gin.IRouter) {
	orders := r.Group("/orders")
	orders.POST("", h.placeOrder)
	orders.GET("", h.listOrders)
	orders.GET("/:id", h.getOrder)
	orders.POST("/:id/transition", h.transition)
	orders.POST("/:id/fulfill", h.fulfill)
}

// ErrorMapper translates order application errors into Problem Details.
func ErrorMapper(err error) (apperrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return apperrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrIllegalTransition):
		return apperrors.ErrIllegalTransition.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrSynchronizationFailed):
		return apperrors.ErrSynchronizationFailed.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidInput):
		return apperrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apperrors.ProblemDetail{}, false
}

func (h *Handler) placeOrder(c *gin.Context) {
	var req mapper.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	order, err := h.service.PlaceOrder(c.Request.Context(), mapper.ToPlaceOrderInput(req))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromDomainOrder(order))
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrderList(orders))
}

func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(order))
}

func (h *Handler) transition(c *gin.Context) {
	var req mapper.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	result, err := h.service.Transition(c.Request.Context(), mapper.ToTransitionInput(c.Param("id"), req))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromTransitionResult(result))
}

func (h *Handler) fulfill(c *gin.Context) {
	result, err := h.workflows.FulfillOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromTransitionResult(result))
}
