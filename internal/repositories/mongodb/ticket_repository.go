package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/lottoloss/lottoloss-backend/internal/models"
	"github.com/lottoloss/lottoloss-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ticketDocument holds one visitor's full ticket list for one game. The
// whole document is replaced on every mutation.
type ticketDocument struct {
	VisitorID string          `bson:"visitorId"`
	Game      string          `bson:"game"`
	Tickets   []models.Ticket `bson:"tickets"`
	UpdatedAt time.Time       `bson:"updatedAt"`
}

// TicketRepository implements the repositories.TicketRepository interface
type TicketRepository struct {
	collection *mongo.Collection
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *mongo.Database) repositories.TicketRepository {
	return &TicketRepository{
		collection: db.Collection("tickets"),
	}
}

// GetAll returns the visitor's saved tickets for a game, oldest first.
// A visitor with no saved document gets an empty list, not an error.
func (r *TicketRepository) GetAll(ctx context.Context, visitorID, game string) ([]models.Ticket, error) {
	var doc ticketDocument
	err := r.collection.FindOne(ctx, bson.M{"visitorId": visitorID, "game": game}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []models.Ticket{}, nil
		}
		return nil, err
	}
	if doc.Tickets == nil {
		doc.Tickets = []models.Ticket{}
	}
	return doc.Tickets, nil
}

// SetAll replaces the visitor's full ticket list for a game.
func (r *TicketRepository) SetAll(ctx context.Context, visitorID, game string, tickets []models.Ticket) error {
	doc := ticketDocument{
		VisitorID: visitorID,
		Game:      game,
		Tickets:   tickets,
		UpdatedAt: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"visitorId": visitorID, "game": game}, doc, opts)
	return err
}
