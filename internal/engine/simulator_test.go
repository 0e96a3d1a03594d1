package engine

import (
	"testing"

	"github.com/lottoloss/lottoloss-backend/internal/games"
	"github.com/lottoloss/lottoloss-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// losing ticket for the draws below
var simTicket = models.Ticket{Primary: []int{41, 42, 43, 44, 45}, Secondary: []int{11, 12}, Stake: 2.60}

func TestSimulateEmptyTickets(t *testing.T) {
	series := Simulate(games.Eurojackpot, nil, []models.Draw{{Date: date("2023-01-06")}})
	assert.Empty(t, series.Dates)
	assert.Equal(t, float64(0), series.TotalNet)
	assert.Equal(t, float64(0), series.TotalAltInvestment)
}

func TestSimulateSkipsUndatedDraws(t *testing.T) {
	draws := []models.Draw{
		{Date: date("2023-01-06"), Primary: []int{1, 2, 3, 4, 5}, Secondary: []int{1, 2}},
		{Primary: []int{1, 2, 3, 4, 5}, Secondary: []int{1, 2}}, // no date
	}
	series := Simulate(games.Eurojackpot, []models.Ticket{simTicket}, draws)
	require.Len(t, series.Dates, 1)
	assert.Equal(t, "2023-01-06", series.Dates[0])
}

func TestSimulateChronologicalOrder(t *testing.T) {
	draws := []models.Draw{
		{Date: date("2023-03-03"), Primary: []int{1, 2, 3, 4, 5}, Secondary: []int{1, 2}},
		{Date: date("2023-01-06"), Primary: []int{1, 2, 3, 4, 5}, Secondary: []int{1, 2}},
		{Date: date("2023-02-03"), Primary: []int{1, 2, 3, 4, 5}, Secondary: []int{1, 2}},
	}
	series := Simulate(games.Eurojackpot, []models.Ticket{simTicket}, draws)
	assert.Equal(t, []string{"2023-01-06", "2023-02-03", "2023-03-03"}, series.Dates)
}

func TestSimulateCompounding(t *testing.T) {
	// Two losing draws exactly one year apart at 8%: the first stake grows a
	// full year before the second is added as principal.
	draws := []models.Draw{
		{Date: date("2022-01-07"), Primary: []int{1, 2, 3, 4, 5}, Secondary: []int{1, 2}},
		{Date: date("2023-01-07"), Primary: []int{1, 2, 3, 4, 5}, Secondary: []int{1, 2}},
	}
	series := Simulate(games.Eurojackpot, []models.Ticket{simTicket}, draws)
	require.Len(t, series.CumulativeAltInvestment, 2)

	assert.InDelta(t, 2.60, series.CumulativeAltInvestment[0], 0.001)
	assert.InDelta(t, 2.60*1.08+2.60, series.CumulativeAltInvestment[1], 0.01)
	assert.InDelta(t, -5.20, series.TotalNet, 0.001)
}

func TestSimulateWinsOffsetSpend(t *testing.T) {
	draws := []models.Draw{
		{
			Date:    date("2023-01-06"),
			Primary: []int{41, 42, 43, 20, 30}, Secondary: []int{1, 2},
			Payouts: map[string]float64{"3 + 0": 15},
		},
	}
	series := Simulate(games.Eurojackpot, []models.Ticket{simTicket}, draws)
	require.Len(t, series.CumulativeNet, 1)
	assert.InDelta(t, 15-2.60, series.CumulativeNet[0], 0.001)
	// Winnings do not flow into the alternative-investment arm; only the
	// stake does.
	assert.InDelta(t, 2.60, series.CumulativeAltInvestment[0], 0.001)
}

func TestSimulateDefaultStake(t *testing.T) {
	ticket := models.Ticket{Primary: []int{41, 42, 43, 44, 45}, Secondary: []int{11, 12}}
	draws := []models.Draw{
		{Date: date("2023-01-04"), Primary: []int{1, 2, 3, 4, 5, 6}},
	}
	series := Simulate(games.Lotto6aus49, []models.Ticket{ticket}, draws)
	require.Len(t, series.CumulativeNet, 1)
	assert.InDelta(t, -1.20, series.CumulativeNet[0], 0.001)
}

func TestSimulateMultipleTickets(t *testing.T) {
	draws := []models.Draw{
		{Date: date("2023-01-06"), Primary: []int{1, 2, 3, 4, 5}, Secondary: []int{1, 2}},
	}
	tickets := []models.Ticket{simTicket, simTicket, simTicket}
	series := Simulate(games.Eurojackpot, tickets, draws)
	assert.InDelta(t, -7.80, series.TotalNet, 0.001)
	assert.InDelta(t, 7.80, series.TotalAltInvestment, 0.001)
}
