package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coachdeck_backend/internal/middleware"
	"coachdeck_backend/internal/services"
	"coachdeck_backend/internal/services/dto"
)

type TicketHandler struct {
	*BaseHandler
	ticketService services.TicketService
}

func NewTicketHandler(base *BaseHandler, ticketService services.TicketService) *TicketHandler {
	return &TicketHandler{
		BaseHandler:   base,
		ticketService: ticketService,
	}
}

func (h *TicketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Создание и список живут под декой, остальное - под тикетом.
	decks := rg.Group("/decks")
	decks.Use(middleware.AuthMiddleware())
	{
		decks.POST("/:id/tickets", h.CreateTicket)
		decks.GET("/:id/tickets", h.ListTickets)
	}

	tickets := rg.Group("/tickets")
	tickets.Use(middleware.AuthMiddleware())
	{
		tickets.GET("/:id", h.GetTicket)
		tickets.PATCH("/:id/status", h.UpdateStatus)
		tickets.POST("/:id/comments", h.AddComment)
		tickets.GET("/:id/comments", h.ListComments)
	}
}

func (h *TicketHandler) CreateTicket(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.CreateTicketRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	ticket, err := h.ticketService.CreateTicket(h.GetDB(c), claims, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ticket": ticket})
}

func (h *TicketHandler) ListTickets(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	tickets, err := h.ticketService.ListTickets(h.GetDB(c), claims, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	ticket, err := h.ticketService.GetTicket(h.GetDB(c), claims, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}

func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateTicketStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	ticket, err := h.ticketService.UpdateStatus(h.GetDB(c), claims, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}

func (h *TicketHandler) AddComment(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.CreateCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	comment, err := h.ticketService.AddComment(h.GetDB(c), claims, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

func (h *TicketHandler) ListComments(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	comments, err := h.ticketService.ListComments(h.GetDB(c), claims, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
