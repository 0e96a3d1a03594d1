package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lottoloss/lottoloss-backend/internal/games"
	"github.com/lottoloss/lottoloss-backend/internal/models"
	"github.com/lottoloss/lottoloss-backend/internal/repositories"
	"golang.org/x/exp/slog"
)

var (
	// ErrTicketIndexOutOfRange is returned when deleting a ticket index that
	// does not exist.
	ErrTicketIndexOutOfRange = errors.New("ticket index out of range")
	// ErrMalformedImport is returned when a bulk-import payload is not a
	// JSON array. Individual invalid entries are skipped, not fatal.
	ErrMalformedImport = errors.New("bulk import payload must be a JSON array")
)

// TicketService manages a visitor's saved number selections for each game.
// Tickets are validated on the way in and never mutated after creation; the
// backing repository is rewritten wholesale on every change.
type TicketService struct {
	tickets repositories.TicketRepository
}

// NewTicketService creates a new TicketService
func NewTicketService(tickets repositories.TicketRepository) *TicketService {
	return &TicketService{tickets: tickets}
}

// List returns the visitor's saved tickets for a game, oldest first.
func (s *TicketService) List(ctx context.Context, visitorID string, g *games.Game) ([]models.Ticket, error) {
	return s.tickets.GetAll(ctx, visitorID, g.Key)
}

// Add validates and appends a ticket. An invalid ticket is rejected and not
// persisted. Unset stake and date get the game default and today.
func (s *TicketService) Add(ctx context.Context, visitorID string, g *games.Game, t models.Ticket) (models.Ticket, error) {
	if err := g.Validate(t); err != nil {
		return models.Ticket{}, err
	}
	t = withDefaults(t, g)

	saved, err := s.tickets.GetAll(ctx, visitorID, g.Key)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("failed to load saved tickets: %w", err)
	}
	saved = append(saved, t)
	if err := s.tickets.SetAll(ctx, visitorID, g.Key, saved); err != nil {
		return models.Ticket{}, fmt.Errorf("failed to persist tickets: %w", err)
	}
	slog.Info("ticket saved", "game", g.Key, "tickets", len(saved))
	return t, nil
}

// Delete removes the ticket at the given position.
func (s *TicketService) Delete(ctx context.Context, visitorID string, g *games.Game, index int) error {
	saved, err := s.tickets.GetAll(ctx, visitorID, g.Key)
	if err != nil {
		return fmt.Errorf("failed to load saved tickets: %w", err)
	}
	if index < 0 || index >= len(saved) {
		return ErrTicketIndexOutOfRange
	}
	saved = append(saved[:index], saved[index+1:]...)
	if err := s.tickets.SetAll(ctx, visitorID, g.Key, saved); err != nil {
		return fmt.Errorf("failed to persist tickets: %w", err)
	}
	return nil
}

// BulkImport appends every valid entry of a JSON array payload and reports
// how many were imported. Entries are validated independently; invalid ones
// are skipped silently. A payload that is not an array is rejected outright.
//
// Two entry shapes are accepted: the ticket object form, and a bare number
// array whose first PrimaryCount values are the primary numbers and whose
// remainder are secondary numbers.
func (s *TicketService) BulkImport(ctx context.Context, visitorID string, g *games.Game, payload []byte) (int, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(payload, &entries); err != nil {
		return 0, ErrMalformedImport
	}

	saved, err := s.tickets.GetAll(ctx, visitorID, g.Key)
	if err != nil {
		return 0, fmt.Errorf("failed to load saved tickets: %w", err)
	}

	imported := 0
	for _, entry := range entries {
		t, ok := parseImportEntry(entry, g)
		if !ok {
			continue
		}
		if err := g.Validate(t); err != nil {
			slog.Debug("skipping invalid import entry", "game", g.Key, "error", err)
			continue
		}
		saved = append(saved, withDefaults(t, g))
		imported++
	}

	if imported > 0 {
		if err := s.tickets.SetAll(ctx, visitorID, g.Key, saved); err != nil {
			return 0, fmt.Errorf("failed to persist tickets: %w", err)
		}
	}
	slog.Info("bulk import finished", "game", g.Key, "imported", imported, "entries", len(entries))
	return imported, nil
}

func parseImportEntry(entry json.RawMessage, g *games.Game) (models.Ticket, bool) {
	var t models.Ticket
	if err := json.Unmarshal(entry, &t); err == nil && len(t.Primary) > 0 {
		return t, true
	}

	var flat []int
	if err := json.Unmarshal(entry, &flat); err == nil && len(flat) >= g.PrimaryCount {
		return models.Ticket{
			Primary:   flat[:g.PrimaryCount],
			Secondary: flat[g.PrimaryCount:],
		}, true
	}
	return models.Ticket{}, false
}

func withDefaults(t models.Ticket, g *games.Game) models.Ticket {
	if t.Stake <= 0 {
		t.Stake = g.DefaultStake
	}
	if t.Date == "" {
		t.Date = time.Now().Format("2006-01-02")
	}
	if t.Secondary == nil {
		t.Secondary = []int{}
	}
	return t
}
