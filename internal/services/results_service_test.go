package services

import (
	"context"
	"testing"
	"time"

	"github.com/lottoloss/lottoloss-backend/internal/games"
	"github.com/lottoloss/lottoloss-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDrawSource serves a fixed archive per game.
type stubDrawSource struct {
	draws map[string][]models.Draw
}

func (s *stubDrawSource) Draws(ctx context.Context, g *games.Game) []models.Draw {
	return s.draws[g.Key]
}

func (s *stubDrawSource) Refresh(ctx context.Context, g *games.Game) int {
	return len(s.draws[g.Key])
}

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCheckNumbers(t *testing.T) {
	ctx := context.Background()
	source := &stubDrawSource{draws: map[string][]models.Draw{
		"eurojackpot": {
			{Date: day("2023-01-06"), Primary: []int{1, 2, 3, 20, 30}, Secondary: []int{11, 12}},
			{Date: day("2023-02-03"), Primary: []int{40, 41, 42, 43, 44}, Secondary: []int{11, 12}},
		},
	}}
	svc := NewResultsService(newMemTicketRepo(), source)

	t.Run("summary over matching draws", func(t *testing.T) {
		summary, err := svc.CheckNumbers(ctx, games.Eurojackpot, models.Ticket{
			Primary:   []int{1, 2, 3, 4, 5},
			Secondary: []int{1, 2},
		}, time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Checked)
		assert.Equal(t, 1, summary.Wins)
		assert.Equal(t, float64(100), summary.WinPercent)
	})

	t.Run("invalid selection", func(t *testing.T) {
		_, err := svc.CheckNumbers(ctx, games.Eurojackpot, models.Ticket{Primary: []int{1}}, time.Time{}, time.Time{})
		assert.ErrorIs(t, err, games.ErrInvalidTicket)
	})

	t.Run("empty archive yields empty summary", func(t *testing.T) {
		summary, err := svc.CheckNumbers(ctx, games.Lotto6aus49, models.Ticket{
			Primary: []int{1, 2, 3, 4, 5, 6},
		}, time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, 0, summary.Checked)
	})
}

func TestWastedMoney(t *testing.T) {
	ctx := context.Background()
	source := &stubDrawSource{draws: map[string][]models.Draw{
		"eurojackpot": {
			{Date: day("2023-01-06"), Primary: []int{40, 41, 42, 43, 44}, Secondary: []int{11, 12}},
			{Date: day("2023-01-13"), Primary: []int{40, 41, 42, 43, 44}, Secondary: []int{11, 12}},
		},
	}}
	repo := newMemTicketRepo()
	ticketSvc := NewTicketService(repo)
	svc := NewResultsService(repo, source)

	t.Run("no tickets yields empty series", func(t *testing.T) {
		series, err := svc.WastedMoney(ctx, testVisitor, games.Eurojackpot)
		require.NoError(t, err)
		assert.Empty(t, series.Dates)
	})

	t.Run("series over saved tickets", func(t *testing.T) {
		_, err := ticketSvc.Add(ctx, testVisitor, games.Eurojackpot, models.Ticket{
			Primary:   []int{1, 2, 3, 4, 5},
			Secondary: []int{1, 2},
		})
		require.NoError(t, err)

		series, err := svc.WastedMoney(ctx, testVisitor, games.Eurojackpot)
		require.NoError(t, err)
		require.Len(t, series.Dates, 2)
		assert.InDelta(t, -5.20, series.TotalNet, 0.001)
		assert.Greater(t, series.TotalAltInvestment, 5.19)
	})
}
