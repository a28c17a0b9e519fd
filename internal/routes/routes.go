package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"coachdeck_backend/internal/handlers"
	"coachdeck_backend/internal/middleware"
)

// SetupRouter собирает gin-движок: middleware, healthcheck и все
// маршруты под /api/v1.
func SetupRouter(db *gorm.DB, h *handlers.AppHandlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.DBMiddleware(db))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	h.Auth.RegisterRoutes(api)
	h.Admin.RegisterRoutes(api)
	h.Deck.RegisterRoutes(api)
	h.Ticket.RegisterRoutes(api)
	h.Payment.RegisterRoutes(api)
	h.Invoice.RegisterRoutes(api)
	h.Checkout.RegisterRoutes(api)
	h.Notification.RegisterRoutes(api)
	h.File.RegisterRoutes(api)

	return router
}
