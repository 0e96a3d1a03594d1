package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lottoloss/lottoloss-backend/api/routes"
	"github.com/lottoloss/lottoloss-backend/internal/archive"
	"github.com/lottoloss/lottoloss-backend/internal/config"
	"github.com/lottoloss/lottoloss-backend/internal/handlers"
	"github.com/lottoloss/lottoloss-backend/internal/repositories"
	mongorepo "github.com/lottoloss/lottoloss-backend/internal/repositories/mongodb"
	"github.com/lottoloss/lottoloss-backend/internal/services"
	mongodb "github.com/lottoloss/lottoloss-backend/pkg/mongodb"
	"golang.org/x/exp/slog"
)

func main() {
	// Load .env if present; environment variables override it either way
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to MongoDB using the pkg helper
	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Initialize repositories, assigning the MongoDB implementations to the
	// interface types the services depend on
	var ticketRepo repositories.TicketRepository = mongorepo.NewTicketRepository(db)
	var adminUserRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)

	// The archive store caches the year-partitioned draw files on first use
	archiveStore := archive.NewStore(cfg.Archive.DataDir, cfg.Archive.MaxYears)

	// Initialize services
	authService := services.NewAuthService(adminUserRepo, cfg)
	ticketService := services.NewTicketService(ticketRepo)
	resultsService := services.NewResultsService(ticketRepo, archiveStore)
	archiveService := services.NewArchiveService(archiveStore)

	// Initialize handlers
	handlerDeps := routes.HandlerDependencies{
		AuthHandler:    handlers.NewAuthHandler(authService),
		TicketHandler:  handlers.NewTicketHandler(ticketService),
		ResultsHandler: handlers.NewResultsHandler(resultsService),
		ArchiveHandler: handlers.NewArchiveHandler(archiveService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	slog.Info("server starting", "port", cfg.Server.Port)

	// Run server in a goroutine so that it doesn't block
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	slog.Info("server exiting")
}
