package saleshttp

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retailcore/backoffice/internal/domains/sales/adapters/http/mapper"
	"github.com/retailcore/backoffice/internal/domains/sales/application"
	"github.com/retailcore/backoffice/internal/domains/sales/ports"
	apperrors "github.com/retailcore/backoffice/internal/shared/errors"
)

// Handler exposes the sales ledger over HTTP. Sales are created by order
// fulfillment, never directly through this surface.
type Handler struct {
	service   ports.Service
	responder *apperrors.ChainedResponder
}

// NewHandler wires the sales service into an HTTP handler.
func NewHandler(service ports.Service) *Handler {
	return &Handler{
		service:   service,
		responder: apperrors.NewChainedResponder("", ErrorMapper),
	}
}

// Register mounts the sales routes on the router.
func (h *Handler) Register(r gin.IRouter) {
	sales := r.Group("/sales")
	sales.GET("", h.listSales)
	sales.GET("/:id", h.getSale)
	sales.POST("/:id/void", h.voidSale)
}

// ErrorMapper translates sales application errors into Problem Details.
func ErrorMapper(err error) (apperrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return apperrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrSaleVoided):
		return apperrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidInput):
		return apperrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apperrors.ProblemDetail{}, false
}

func (h *Handler) listSales(c *gin.Context) {
	sales, err := h.service.ListSales(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainSaleList(sales))
}

func (h *Handler) getSale(c *gin.Context) {
	sale, err := h.service.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainSale(sale))
}

func (h *Handler) voidSale(c *gin.Context) {
	sale, err := h.service.VoidSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainSale(sale))
}
