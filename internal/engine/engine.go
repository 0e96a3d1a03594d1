// Package engine implements the historical-draw matching and
// financial-simulation core: match counting, payout resolution, ticket
// evaluation against the archive and the wasted-money simulation. Everything
// here is pure computation over models; loading and persistence live in the
// archive and repositories packages.
package engine

import (
	"sort"
	"time"

	"github.com/lottoloss/lottoloss-backend/internal/games"
	"github.com/lottoloss/lottoloss-backend/internal/models"
)

// Match counts how many of the ticket's primary and secondary numbers appear
// in the draw. Inputs are assumed pre-validated; malformed input simply
// yields zero matches.
func Match(t models.Ticket, d models.Draw) models.MatchResult {
	return models.MatchResult{
		Primary:   intersect(t.Primary, d.Primary),
		Secondary: intersect(t.Secondary, d.Secondary),
	}
}

func intersect(a, b []int) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	drawn := make(map[int]bool, len(b))
	for _, n := range b {
		drawn[n] = true
	}
	count := 0
	for _, n := range a {
		if drawn[n] {
			count++
		}
	}
	return count
}

// ResolvePrize maps a match result to a payout amount. When the draw carries
// an official payout table the game's tier keys are tried in priority order;
// a present table with no matching tier means no prize. Draws without a
// table fall back to the game's static estimate table. Real archives carry
// per-draw payouts (they vary with rollovers and ticket sales) while
// degraded records still need a sane estimate.
func ResolvePrize(g *games.Game, m models.MatchResult, d models.Draw) float64 {
	if len(d.Payouts) > 0 {
		for _, key := range g.TierKeys(m) {
			if prize, ok := d.Payouts[key]; ok {
				return prize
			}
		}
		return 0
	}
	return g.FallbackPrize(m)
}

// Evaluate checks a ticket against every draw in the given set, optionally
// restricted to an inclusive date range (zero time = unbounded). Draws with
// no matched number at all are dropped; the survivors are sorted winners
// first, then by prize descending, ties broken by draw date descending.
func Evaluate(g *games.Game, t models.Ticket, draws []models.Draw, from, to time.Time) ([]models.EvaluationResult, error) {
	if err := g.Validate(t); err != nil {
		return nil, err
	}

	results := make([]models.EvaluationResult, 0, len(draws))
	for _, d := range draws {
		if !inRange(d.Date, from, to) {
			continue
		}
		m := Match(t, d)
		if m.Total() == 0 {
			continue
		}
		prize := ResolvePrize(g, m, d)
		results = append(results, models.EvaluationResult{
			Draw:     d,
			Matches:  m,
			IsWinner: prize > 0,
			Prize:    prize,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.IsWinner != b.IsWinner {
			return a.IsWinner
		}
		if a.Prize != b.Prize {
			return a.Prize > b.Prize
		}
		return a.Draw.Date.After(b.Draw.Date)
	})
	return results, nil
}

func inRange(date time.Time, from, to time.Time) bool {
	if !from.IsZero() && date.Before(from) {
		return false
	}
	if !to.IsZero() && date.After(to) {
		return false
	}
	return true
}

// Summarize derives the headline stats shown alongside a result list.
func Summarize(results []models.EvaluationResult) models.EvaluationSummary {
	wins := 0
	for _, r := range results {
		if r.IsWinner {
			wins++
		}
	}
	summary := models.EvaluationSummary{
		Checked: len(results),
		Wins:    wins,
		Results: results,
	}
	if len(results) > 0 {
		summary.WinPercent = float64(wins) / float64(len(results)) * 100
	}
	return summary
}
