package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lottoloss/lottoloss-backend/internal/config"
	"github.com/lottoloss/lottoloss-backend/internal/games"
	"github.com/lottoloss/lottoloss-backend/internal/handlers"
	"github.com/lottoloss/lottoloss-backend/internal/middleware"
)

// HandlerDependencies carries the initialized handlers into SetupRouter
type HandlerDependencies struct {
	AuthHandler    *handlers.AuthHandler
	TicketHandler  *handlers.TicketHandler
	ResultsHandler *handlers.ResultsHandler
	ArchiveHandler *handlers.ArchiveHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	// Create router
	router := gin.Default()

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// Supported games and their rules
		public.GET("/games", func(c *gin.Context) {
			c.JSON(http.StatusOK, games.All())
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// Ticket routes (scoped per visitor via the X-Visitor-ID header)
		tickets := public.Group("/tickets")
		{
			tickets.GET("/:game", deps.TicketHandler.List)
			tickets.POST("/:game", deps.TicketHandler.Create)
			tickets.DELETE("/:game/:index", deps.TicketHandler.Delete)
			tickets.POST("/:game/import", deps.TicketHandler.Import)
		}

		// Evaluation and simulation routes
		results := public.Group("/results")
		{
			results.POST("/:game/check", deps.ResultsHandler.Check)
			results.GET("/:game/wasted-money", deps.ResultsHandler.WastedMoney)
		}

		// Archive statistics
		public.GET("/archive/:game/stats", deps.ArchiveHandler.Stats)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.POST("/auth/register", deps.AuthHandler.Register)
		protected.POST("/archive/:game/refresh", deps.ArchiveHandler.Refresh)
	}

	return router
}
