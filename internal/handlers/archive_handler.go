package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lottoloss/lottoloss-backend/internal/services"
)

// ArchiveHandler handles archive-related HTTP requests
type ArchiveHandler struct {
	archiveService *services.ArchiveService
}

// NewArchiveHandler creates a new ArchiveHandler
func NewArchiveHandler(archiveService *services.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{archiveService: archiveService}
}

// Stats handles GET /archive/:game/stats
func (h *ArchiveHandler) Stats(c *gin.Context) {
	g, ok := gameFromParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.archiveService.Stats(c.Request.Context(), g))
}

// Refresh handles POST /archive/:game/refresh
func (h *ArchiveHandler) Refresh(c *gin.Context) {
	g, ok := gameFromParam(c)
	if !ok {
		return
	}
	count := h.archiveService.Refresh(c.Request.Context(), g)
	c.JSON(http.StatusOK, gin.H{"game": g.Key, "draws": count})
}
