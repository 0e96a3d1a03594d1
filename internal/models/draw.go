package models

import (
	"time"
)

// Draw represents one historical drawing event. Draws are created once at
// archive-load time and are immutable afterwards.
type Draw struct {
	Date      time.Time `bson:"date" json:"date"`
	Primary   []int     `bson:"primaryNumbers" json:"primaryNumbers"`
	Secondary []int     `bson:"secondaryNumbers" json:"secondaryNumbers"`
	// Payouts maps a match-tier key (e.g. "5 + 2", "3 + SZ") to the actual
	// prize paid for that tier in this draw. Empty when the record carries no
	// official payout table; the static estimate table is used instead.
	Payouts map[string]float64 `bson:"payouts,omitempty" json:"payouts,omitempty"`
}

// HasDate reports whether the draw carries a usable date. Records without a
// parseable date are tolerated in the archive but excluded from simulations.
func (d Draw) HasDate() bool {
	return !d.Date.IsZero()
}

// MatchResult holds the match counts for one (ticket, draw) pair.
type MatchResult struct {
	Primary   int `json:"primaryMatches"`
	Secondary int `json:"secondaryMatches"`
}

// Total returns the combined number of matched numbers.
func (m MatchResult) Total() int {
	return m.Primary + m.Secondary
}

// EvaluationResult is one qualifying draw for an evaluated ticket.
// IsWinner holds iff Prize > 0; a result can carry matches without a prize.
type EvaluationResult struct {
	Draw     Draw        `json:"draw"`
	Matches  MatchResult `json:"matches"`
	IsWinner bool        `json:"isWinner"`
	Prize    float64     `json:"prize"`
}

// EvaluationSummary wraps the sorted result list with headline stats.
type EvaluationSummary struct {
	Checked    int                `json:"checked"`
	Wins       int                `json:"wins"`
	WinPercent float64            `json:"winPercent"`
	Results    []EvaluationResult `json:"results"`
}

// WastedMoneySeries is the output of the standing-order simulation: one entry
// per dated draw, in chronological order.
type WastedMoneySeries struct {
	Dates                   []string  `json:"dates"`
	CumulativeNet           []float64 `json:"cumulativeNet"`
	CumulativeAltInvestment []float64 `json:"cumulativeAltInvestment"`
	TotalNet                float64   `json:"totalNet"`
	TotalAltInvestment      float64   `json:"totalAltInvestment"`
}

// NumberFrequency pairs a drawn number with how often it appeared.
type NumberFrequency struct {
	Number    int `json:"number"`
	Frequency int `json:"frequency"`
}

// ArchiveStats summarises one game's archive for display purposes. The
// hot/cold split is presentational only and claims no predictive value.
type ArchiveStats struct {
	TotalDraws    int               `json:"totalDraws"`
	FirstDrawDate string            `json:"firstDrawDate,omitempty"`
	LastDrawDate  string            `json:"lastDrawDate,omitempty"`
	HotPrimary    []NumberFrequency `json:"hotPrimary"`
	ColdPrimary   []NumberFrequency `json:"coldPrimary"`
	HotSecondary  []NumberFrequency `json:"hotSecondary"`
	ColdSecondary []NumberFrequency `json:"coldSecondary"`
}
