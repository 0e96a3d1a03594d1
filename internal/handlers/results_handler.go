package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lottoloss/lottoloss-backend/internal/games"
	"github.com/lottoloss/lottoloss-backend/internal/models"
	"github.com/lottoloss/lottoloss-backend/internal/services"
	"github.com/lottoloss/lottoloss-backend/internal/utils"
)

// ResultsHandler handles evaluation and simulation HTTP requests
type ResultsHandler struct {
	resultsService *services.ResultsService
}

// NewResultsHandler creates a new ResultsHandler
func NewResultsHandler(resultsService *services.ResultsService) *ResultsHandler {
	return &ResultsHandler{resultsService: resultsService}
}

// CheckRequest is the payload for POST /results/:game/check
type CheckRequest struct {
	Primary   []int  `json:"primaryNumbers" binding:"required"`
	Secondary []int  `json:"secondaryNumbers"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Check handles POST /results/:game/check
func (h *ResultsHandler) Check(c *gin.Context) {
	g, ok := gameFromParam(c)
	if !ok {
		return
	}
	var request CheckRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	from, err := utils.ParseDate(request.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date format (YYYY-MM-DD)"})
		return
	}
	to, err := utils.ParseDate(request.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date format (YYYY-MM-DD)"})
		return
	}

	ticket := models.Ticket{Primary: request.Primary, Secondary: request.Secondary}
	summary, err := h.resultsService.CheckNumbers(c.Request.Context(), g, ticket, from, to)
	if err != nil {
		if errors.Is(err, games.ErrInvalidTicket) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check numbers: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, summary)
}

// WastedMoney handles GET /results/:game/wasted-money
func (h *ResultsHandler) WastedMoney(c *gin.Context) {
	g, ok := gameFromParam(c)
	if !ok {
		return
	}
	visitor, ok := visitorID(c)
	if !ok {
		return
	}
	series, err := h.resultsService.WastedMoney(c.Request.Context(), visitor, g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run simulation: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, series)
}
