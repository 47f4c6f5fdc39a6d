package inventoryhttp

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retailcore/backoffice/internal/domains/inventory/adapters/http/mapper"
	"github.com/retailcore/backoffice/internal/domains/inventory/application"
	"github.com/retailcore/backoffice/internal/domains/inventory/ports"
	apperrors "github.com/retailcore/backoffice/internal/shared/errors"
)

// Handler exposes the stock ledger over HTTP: receipts feed stock in,
// voiding a receipt reverses it, and the merge endpoint collapses catalog
// entries that normalize to the same name.
type Handler struct {
	service   ports.Service
	responder *apperrors.ChainedResponder
}

// NewHandler wires the inventory service into an HTTP handler.
func NewHandler(service ports.Service) *Handler {
	return &Handler{
		service:   service,
		responder: apperrors.NewChainedResponder("", ErrorMapper),
	}
}

// Register mounts the inventory routes on the router.
func (h *Handler) Register(r gin.IRouter) {
	receipts := r.Group("/receipts")
	receipts.POST("", h.createReceipt)
	receipts.GET("", h.listReceipts)
	receipts.GET("/:id", h.getReceipt)
	receipts.POST("/:id/void", h.voidReceipt)

	products := r.Group("/products")
	products.GET("", h.listProducts)
	products.GET("/:id", h.getProduct)
	products.POST("/merge", h.mergeCatalog)
}

// ErrorMapper translates inventory application errors into Problem Details.
func ErrorMapper(err error) (apperrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrProductNotFound),
		errors.Is(err, ports.ErrReceiptNotFound):
		return apperrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrMissingCategory):
		return apperrors.ErrMissingCategory.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrReceiptVoided):
		return apperrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidInput):
		return apperrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apperrors.ProblemDetail{}, false
}

func (h *Handler) createReceipt(c *gin.Context) {
	var req mapper.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	report, err := h.service.CreateReceipt(c.Request.Context(), mapper.ToCreateReceiptInput(req))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromReceiptReport(report))
}

func (h *Handler) listReceipts(c *gin.Context) {
	receipts, err := h.service.ListReceipts(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainReceiptList(receipts))
}

func (h *Handler) getReceipt(c *gin.Context) {
	receipt, err := h.service.GetReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainReceipt(receipt))
}

func (h *Handler) voidReceipt(c *gin.Context) {
	report, err := h.service.VoidReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromReceiptReport(report))
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainProductList(products))
}

func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainProduct(product))
}

func (h *Handler) mergeCatalog(c *gin.Context) {
	products, err := h.service.MergeCatalog(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainProductList(products))
}
