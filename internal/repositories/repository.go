package repositories

import (
	"context"

	"github.com/lottoloss/lottoloss-backend/internal/models"
)

// TicketRepository persists a visitor's ordered ticket list per game. The
// contract is deliberately wholesale: the full list is read and rewritten on
// every mutation, mirroring the single-serialized-array storage model of the
// web client. There is no partial-update API.
type TicketRepository interface {
	GetAll(ctx context.Context, visitorID, game string) ([]models.Ticket, error)
	SetAll(ctx context.Context, visitorID, game string, tickets []models.Ticket) error
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}
