package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coachdeck_backend/internal/middleware"
	"coachdeck_backend/internal/services"
	"coachdeck_backend/internal/services/dto"
)

type DeckHandler struct {
	*BaseHandler
	deckService services.DeckService
}

func NewDeckHandler(base *BaseHandler, deckService services.DeckService) *DeckHandler {
	return &DeckHandler{
		BaseHandler: base,
		deckService: deckService,
	}
}

func (h *DeckHandler) RegisterRoutes(rg *gin.RouterGroup) {
	decks := rg.Group("/decks")
	decks.Use(middleware.AuthMiddleware())
	{
		decks.POST("", h.CreateDeck)
		decks.GET("", h.ListDecks)
		decks.GET("/:id", h.GetDeck)

		decks.POST("/:id/documents", h.AddDocument)
		decks.GET("/:id/documents", h.ListDocuments)
		decks.DELETE("/:id/documents/:docId", h.DeleteDocument)
	}
}

func (h *DeckHandler) CreateDeck(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.CreateDeckRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	deck, err := h.deckService.CreateDeck(h.GetDB(c), claims, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"deck": deck})
}

func (h *DeckHandler) ListDecks(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	decks, err := h.deckService.ListDecks(h.GetDB(c), claims)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"decks": decks})
}

func (h *DeckHandler) GetDeck(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	deck, err := h.deckService.GetDeck(h.GetDB(c), claims, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deck": deck})
}

func (h *DeckHandler) AddDocument(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.AddDocumentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	doc, err := h.deckService.AddDocument(h.GetDB(c), claims, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"document": doc})
}

func (h *DeckHandler) ListDocuments(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	docs, err := h.deckService.ListDocuments(h.GetDB(c), claims, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

func (h *DeckHandler) DeleteDocument(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.deckService.DeleteDocument(h.GetDB(c), claims, c.Param("id"), c.Param("docId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}
