package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coachdeck_backend/internal/middleware"
	"coachdeck_backend/internal/models"
	"coachdeck_backend/internal/services"
	"coachdeck_backend/internal/services/dto"
)

// CheckoutHandler - оплата платформенных тарифов коучами через
// внешнего провайдера.
type CheckoutHandler struct {
	*BaseHandler
	platformService services.PlatformService
}

func NewCheckoutHandler(base *BaseHandler, platformService services.PlatformService) *CheckoutHandler {
	return &CheckoutHandler{
		BaseHandler:     base,
		platformService: platformService,
	}
}

func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checkoutGroup := rg.Group("/checkout")
	checkoutGroup.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCoach))
	{
		checkoutGroup.POST("/session", h.CreateSession)
	}
}

func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.CheckoutSessionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.platformService.CreateCheckoutSession(c.Request.Context(), h.GetDB(c), claims, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
