package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coachdeck_backend/internal/middleware"
	"coachdeck_backend/internal/services"
	"coachdeck_backend/internal/services/dto"
)

// PaymentHandler - тарифы и платежные реквизиты коуча плюс публичная
// витрина тарифов для студентов.
type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	{
		payments.POST("/plans", h.CreatePlan)
		payments.GET("/plans", h.ListMyPlans)
		payments.PATCH("/plans/:id", h.UpdatePlan)
		payments.DELETE("/plans/:id", h.DeletePlan)

		payments.GET("/config", h.GetConfig)
		payments.PUT("/config", h.UpdateConfig)

		payments.POST("/bank-accounts", h.AddBankAccount)
		payments.GET("/bank-accounts", h.ListBankAccounts)
		payments.DELETE("/bank-accounts/:id", h.DeleteBankAccount)

		payments.POST("/ewallets", h.AddEwallet)
		payments.GET("/ewallets", h.ListEwallets)
		payments.DELETE("/ewallets/:id", h.DeleteEwallet)
	}

	coaches := rg.Group("/coaches")
	coaches.Use(middleware.AuthMiddleware())
	{
		coaches.GET("/:id/plans", h.ListCoachPlans)
	}
}

func (h *PaymentHandler) CreatePlan(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.CreatePlanRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	plan, err := h.paymentService.CreatePlan(h.GetDB(c), claims, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"plan": plan})
}

func (h *PaymentHandler) ListMyPlans(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	plans, err := h.paymentService.ListMyPlans(h.GetDB(c), claims)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *PaymentHandler) UpdatePlan(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdatePlanRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	plan, err := h.paymentService.UpdatePlan(h.GetDB(c), claims, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

func (h *PaymentHandler) DeletePlan(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.paymentService.DeletePlan(h.GetDB(c), claims, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted"})
}

func (h *PaymentHandler) ListCoachPlans(c *gin.Context) {
	plans, err := h.paymentService.ListCoachPlans(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *PaymentHandler) GetConfig(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	cfg, err := h.paymentService.GetConfig(h.GetDB(c), claims)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

func (h *PaymentHandler) UpdateConfig(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdatePaymentsConfigRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	cfg, err := h.paymentService.UpdateConfig(h.GetDB(c), claims, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

func (h *PaymentHandler) AddBankAccount(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.CreateBankAccountRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	acc, err := h.paymentService.AddBankAccount(h.GetDB(c), claims, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bank_account": acc})
}

func (h *PaymentHandler) ListBankAccounts(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	accounts, err := h.paymentService.ListBankAccounts(h.GetDB(c), claims)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bank_accounts": accounts})
}

func (h *PaymentHandler) DeleteBankAccount(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.paymentService.DeleteBankAccount(h.GetDB(c), claims, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bank account deleted"})
}

func (h *PaymentHandler) AddEwallet(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.CreateEwalletRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	wallet, err := h.paymentService.AddEwallet(h.GetDB(c), claims, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ewallet": wallet})
}

func (h *PaymentHandler) ListEwallets(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	wallets, err := h.paymentService.ListEwallets(h.GetDB(c), claims)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ewallets": wallets})
}

func (h *PaymentHandler) DeleteEwallet(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.paymentService.DeleteEwallet(h.GetDB(c), claims, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "E-wallet deleted"})
}
