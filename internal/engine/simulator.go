package engine

import (
	"math"
	"sort"
	"time"

	"github.com/lottoloss/lottoloss-backend/internal/games"
	"github.com/lottoloss/lottoloss-backend/internal/models"
)

const daysPerYear = 365.0

// Simulate walks the archive in chronological order, treating every ticket
// as a standing order placed on every dated draw. It accumulates the
// stake-vs-payout net and, in parallel, the balance an identical spend would
// have reached in a fixed-rate investment.
//
// The investment balance compounds before the current draw's spend is added
// as new principal, so new contributions earn nothing until the next draw.
// This slightly under-states achievable growth, which keeps the comparison
// conservative. Elapsed time is the real date delta between consecutive
// draws, converted through the game's annual rate as (1+r)^(days/365).
func Simulate(g *games.Game, tickets []models.Ticket, draws []models.Draw) models.WastedMoneySeries {
	series := models.WastedMoneySeries{
		Dates:                   []string{},
		CumulativeNet:           []float64{},
		CumulativeAltInvestment: []float64{},
	}
	if len(tickets) == 0 {
		return series
	}

	dated := make([]models.Draw, 0, len(draws))
	for _, d := range draws {
		if d.HasDate() {
			dated = append(dated, d)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool { return dated[i].Date.Before(dated[j].Date) })

	var (
		net      float64
		balance  float64
		prevDate time.Time
	)
	for _, d := range dated {
		var spent, won float64
		for _, t := range tickets {
			stake := t.Stake
			if stake <= 0 {
				stake = g.DefaultStake
			}
			spent += stake
			won += ResolvePrize(g, Match(t, d), d)
		}
		net += won - spent

		if balance > 0 && !prevDate.IsZero() {
			days := d.Date.Sub(prevDate).Hours() / 24
			if days > 0 {
				balance *= math.Pow(1+g.AnnualReturn, days/daysPerYear)
			}
		}
		balance += spent
		prevDate = d.Date

		series.Dates = append(series.Dates, d.Date.Format("2006-01-02"))
		series.CumulativeNet = append(series.CumulativeNet, roundCents(net))
		series.CumulativeAltInvestment = append(series.CumulativeAltInvestment, roundCents(balance))
	}

	series.TotalNet = roundCents(net)
	series.TotalAltInvestment = roundCents(balance)
	return series
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
