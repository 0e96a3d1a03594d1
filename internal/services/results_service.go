package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lottoloss/lottoloss-backend/internal/engine"
	"github.com/lottoloss/lottoloss-backend/internal/games"
	"github.com/lottoloss/lottoloss-backend/internal/models"
	"github.com/lottoloss/lottoloss-backend/internal/repositories"
)

// DrawSource provides the cached historical draw archive per game.
// Implemented by *archive.Store; kept as an interface so services can be
// tested against fixture archives.
type DrawSource interface {
	Draws(ctx context.Context, g *games.Game) []models.Draw
	Refresh(ctx context.Context, g *games.Game) int
}

// ResultsService evaluates number selections against the historical archive
// and runs the wasted-money simulation for a visitor's saved tickets.
type ResultsService struct {
	tickets repositories.TicketRepository
	archive DrawSource
}

// NewResultsService creates a new ResultsService
func NewResultsService(tickets repositories.TicketRepository, archive DrawSource) *ResultsService {
	return &ResultsService{tickets: tickets, archive: archive}
}

// CheckNumbers evaluates an ad-hoc selection against the archive, optionally
// restricted to an inclusive date range. The selection is validated but not
// persisted.
func (s *ResultsService) CheckNumbers(ctx context.Context, g *games.Game, t models.Ticket, from, to time.Time) (models.EvaluationSummary, error) {
	draws := s.archive.Draws(ctx, g)
	results, err := engine.Evaluate(g, t, draws, from, to)
	if err != nil {
		return models.EvaluationSummary{}, err
	}
	return engine.Summarize(results), nil
}

// WastedMoney runs the standing-order simulation over all of the visitor's
// saved tickets for a game. No tickets means an empty series.
func (s *ResultsService) WastedMoney(ctx context.Context, visitorID string, g *games.Game) (models.WastedMoneySeries, error) {
	tickets, err := s.tickets.GetAll(ctx, visitorID, g.Key)
	if err != nil {
		return models.WastedMoneySeries{}, fmt.Errorf("failed to load saved tickets: %w", err)
	}
	draws := s.archive.Draws(ctx, g)
	return engine.Simulate(g, tickets, draws), nil
}
