package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lottoloss/lottoloss-backend/internal/games"
)

// visitorHeader scopes ticket data to one browser/device. The backend keeps
// no accounts for visitors; the client generates and sticks to an opaque ID.
const visitorHeader = "X-Visitor-ID"

// gameFromParam resolves the :game path parameter. Unknown keys abort the
// request with 404.
func gameFromParam(c *gin.Context) (*games.Game, bool) {
	g, err := games.ByKey(c.Param("game"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return g, true
}

// visitorID extracts the visitor scope header. Requests without it abort
// with 400.
func visitorID(c *gin.Context) (string, bool) {
	id := c.GetHeader(visitorHeader)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": visitorHeader + " header is required"})
		return "", false
	}
	return id, true
}
