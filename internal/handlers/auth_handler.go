package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coachdeck_backend/internal/middleware"
	"coachdeck_backend/internal/services"
	"coachdeck_backend/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes вешает маршруты аутентификации
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/signup", h.SignupCoach)
		authGroup.POST("/request-password-reset", h.RequestPasswordReset)
		authGroup.POST("/reset-password", h.RedeemPasswordReset)
	}

	protected := rg.Group("/auth")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/me", h.Me)
		protected.POST("/change-password", h.ChangePassword)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) SignupCoach(c *gin.Context) {
	var req dto.SignupCoachRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.authService.SignupCoach(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": profile})
}

func (h *AuthHandler) Me(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	profile, err := h.authService.Me(h.GetDB(c), claims.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(h.GetDB(c), claims.UserID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.RequestPasswordReset(h.GetDB(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	// Ответ одинаков для существующих и несуществующих email.
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset link has been sent"})
}

func (h *AuthHandler) RedeemPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRedeem
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.RedeemPasswordReset(h.GetDB(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
