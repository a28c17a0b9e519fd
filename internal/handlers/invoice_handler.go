package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coachdeck_backend/internal/appErrors"
	"coachdeck_backend/internal/middleware"
	"coachdeck_backend/internal/services"
	"coachdeck_backend/internal/services/dto"
)

type InvoiceHandler struct {
	*BaseHandler
	invoiceService services.InvoiceService
}

func NewInvoiceHandler(base *BaseHandler, invoiceService services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler:    base,
		invoiceService: invoiceService,
	}
}

func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	invoices.Use(middleware.AuthMiddleware())
	{
		invoices.POST("", h.CreateInvoice)
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
		invoices.PATCH("/:id/status", h.UpdateStatus)
		invoices.POST("/:id/proof", h.UploadProof)
	}
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.CreateInvoiceRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(h.GetDB(c), claims, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"invoice": invoice})
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	invoices, err := h.invoiceService.ListInvoices(h.GetDB(c), claims)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	invoice, err := h.invoiceService.GetInvoice(h.GetDB(c), claims, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateInvoiceStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.UpdateStatus(h.GetDB(c), claims, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

func (h *InvoiceHandler) UploadProof(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		h.HandleServiceError(c, appErrors.ErrFileRequired)
		return
	}

	invoice, err := h.invoiceService.UploadProof(c.Request.Context(), h.GetDB(c), claims, c.Param("id"), file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}
