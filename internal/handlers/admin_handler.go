package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coachdeck_backend/internal/middleware"
	"coachdeck_backend/internal/services"
	"coachdeck_backend/internal/services/dto"
)

// AdminHandler - маршруты супер-админа: заявки коучей, пользователи,
// платформенная конфигурация и цены.
type AdminHandler struct {
	*BaseHandler
	accountService  services.AccountService
	platformService services.PlatformService
}

func NewAdminHandler(base *BaseHandler, accountService services.AccountService, platformService services.PlatformService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:     base,
		accountService:  accountService,
		platformService: platformService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.SuperAdminMiddleware())
	{
		admin.GET("/coaches/pending", h.ListPendingCoaches)
		admin.POST("/coaches/:id/decision", h.DecideApproval)

		admin.GET("/users", h.ListUsers)
		admin.POST("/users", h.CreateUser)
		admin.DELETE("/users/:id", h.DeleteUser)

		admin.GET("/config", h.GetConfig)
		admin.PUT("/config", h.UpdateConfig)
		admin.GET("/pricing", h.GetPricing)
		admin.PUT("/pricing", h.UpdatePricing)
	}
}

func (h *AdminHandler) ListPendingCoaches(c *gin.Context) {
	coaches, err := h.accountService.ListPendingCoaches(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coaches": coaches})
}

func (h *AdminHandler) DecideApproval(c *gin.Context) {
	var req dto.ApprovalDecisionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.accountService.DecideApproval(h.GetDB(c), c.Param("id"), req.Decision)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var query dto.AdminUserListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	users, total, err := h.accountService.ListUsers(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.AdminCreateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.accountService.CreateUser(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": profile})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.accountService.DeleteUser(h.GetDB(c), claims.UserID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func (h *AdminHandler) GetConfig(c *gin.Context) {
	cfg, err := h.platformService.GetAdminConfig(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

func (h *AdminHandler) UpdateConfig(c *gin.Context) {
	var req dto.UpdateAdminConfigRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	cfg, err := h.platformService.UpdateAdminConfig(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

func (h *AdminHandler) GetPricing(c *gin.Context) {
	pricing, err := h.platformService.GetPlanPricing(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pricing": pricing})
}

func (h *AdminHandler) UpdatePricing(c *gin.Context) {
	var req dto.UpdatePlanPricingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	pricing, err := h.platformService.UpdatePlanPricing(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pricing": pricing})
}
