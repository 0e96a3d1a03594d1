package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lottoloss/lottoloss-backend/internal/games"
	"github.com/lottoloss/lottoloss-backend/internal/models"
	"github.com/lottoloss/lottoloss-backend/internal/services"
)

// TicketHandler handles ticket-related HTTP requests
type TicketHandler struct {
	ticketService *services.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// CreateTicketRequest is the payload for POST /tickets/:game
type CreateTicketRequest struct {
	Primary   []int   `json:"primaryNumbers" binding:"required"`
	Secondary []int   `json:"secondaryNumbers"`
	Stake     float64 `json:"stake"`
	Date      string  `json:"date"`
}

// List handles GET /tickets/:game
func (h *TicketHandler) List(c *gin.Context) {
	g, ok := gameFromParam(c)
	if !ok {
		return
	}
	visitor, ok := visitorID(c)
	if !ok {
		return
	}
	tickets, err := h.ticketService.List(c.Request.Context(), visitor, g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tickets: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// Create handles POST /tickets/:game
func (h *TicketHandler) Create(c *gin.Context) {
	g, ok := gameFromParam(c)
	if !ok {
		return
	}
	visitor, ok := visitorID(c)
	if !ok {
		return
	}
	var request CreateTicketRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket := models.Ticket{
		Primary:   request.Primary,
		Secondary: request.Secondary,
		Stake:     request.Stake,
		Date:      request.Date,
	}
	saved, err := h.ticketService.Add(c.Request.Context(), visitor, g, ticket)
	if err != nil {
		if errors.Is(err, games.ErrInvalidTicket) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save ticket: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// Delete handles DELETE /tickets/:game/:index
func (h *TicketHandler) Delete(c *gin.Context) {
	g, ok := gameFromParam(c)
	if !ok {
		return
	}
	visitor, ok := visitorID(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index format"})
		return
	}
	if err := h.ticketService.Delete(c.Request.Context(), visitor, g, index); err != nil {
		if errors.Is(err, services.ErrTicketIndexOutOfRange) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete ticket: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": index})
}

// Import handles POST /tickets/:game/import
func (h *TicketHandler) Import(c *gin.Context) {
	g, ok := gameFromParam(c)
	if !ok {
		return
	}
	visitor, ok := visitorID(c)
	if !ok {
		return
	}
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	imported, err := h.ticketService.BulkImport(c.Request.Context(), visitor, g, payload)
	if err != nil {
		if errors.Is(err, services.ErrMalformedImport) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import tickets: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}
