package games

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lottoloss/lottoloss-backend/internal/models"
)

var (
	// ErrInvalidTicket is wrapped by all ticket validation failures.
	ErrInvalidTicket = errors.New("invalid ticket")
	// ErrUnknownGame is returned when a game key is not registered.
	ErrUnknownGame = errors.New("unknown game")
)

// secondaryCond describes how a fallback tier matches the secondary count.
type secondaryCond int

const (
	secondaryExact secondaryCond = iota
	secondaryAny
	secondaryAtLeast
)

// fallbackTier is one row of the static estimate table, checked in order
// from highest payout to lowest.
type fallbackTier struct {
	primary   int
	secondary int
	cond      secondaryCond
	prize     float64
}

// Game bundles the rules of one lottery: validation limits, payout-tier key
// construction and the static estimate table. Services and the engine are
// parameterized over a *Game instead of subclassing per lottery.
type Game struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`

	PrimaryCount int `json:"primaryCount"`
	PrimaryMin   int `json:"primaryMin"`
	PrimaryMax   int `json:"primaryMax"`

	// SecondaryCount is the maximum number of secondary selections; when
	// SecondaryRequired is set the count must match exactly.
	SecondaryCount    int  `json:"secondaryCount"`
	SecondaryRequired bool `json:"secondaryRequired"`
	SecondaryMin      int  `json:"secondaryMin"`
	SecondaryMax      int  `json:"secondaryMax"`

	DefaultStake float64 `json:"defaultStake"`
	// AnnualReturn is the fixed yearly growth rate used for the
	// alternative-investment arm of the wasted-money simulation.
	AnnualReturn float64 `json:"annualReturn"`

	// Archive file naming and the upstream dataset for the refresh script.
	ArchivePrefix string `json:"-"`
	StartYear     int    `json:"startYear"`
	DataURL       string `json:"-"`

	tierKeys func(m models.MatchResult) []string
	fallback []fallbackTier
}

// Validate checks a ticket against the game's rules. Primary numbers must
// match the required count exactly, be unique and in range. Secondary
// numbers are range-checked only; duplicates are tolerated (historical
// behaviour of the reference data).
func (g *Game) Validate(t models.Ticket) error {
	if len(t.Primary) != g.PrimaryCount {
		return fmt.Errorf("%w: expected %d primary numbers, got %d", ErrInvalidTicket, g.PrimaryCount, len(t.Primary))
	}
	seen := make(map[int]bool, len(t.Primary))
	for _, n := range t.Primary {
		if n < g.PrimaryMin || n > g.PrimaryMax {
			return fmt.Errorf("%w: primary number %d out of range %d-%d", ErrInvalidTicket, n, g.PrimaryMin, g.PrimaryMax)
		}
		if seen[n] {
			return fmt.Errorf("%w: duplicate primary number %d", ErrInvalidTicket, n)
		}
		seen[n] = true
	}
	if g.SecondaryRequired && len(t.Secondary) != g.SecondaryCount {
		return fmt.Errorf("%w: expected %d secondary numbers, got %d", ErrInvalidTicket, g.SecondaryCount, len(t.Secondary))
	}
	if len(t.Secondary) > g.SecondaryCount {
		return fmt.Errorf("%w: at most %d secondary numbers allowed, got %d", ErrInvalidTicket, g.SecondaryCount, len(t.Secondary))
	}
	for _, n := range t.Secondary {
		if n < g.SecondaryMin || n > g.SecondaryMax {
			return fmt.Errorf("%w: secondary number %d out of range %d-%d", ErrInvalidTicket, n, g.SecondaryMin, g.SecondaryMax)
		}
	}
	return nil
}

// TierKeys builds the candidate payout-table keys for a match result, in
// priority order. Key formats are deliberately explicit per game rather than
// inferred generically.
func (g *Game) TierKeys(m models.MatchResult) []string {
	return g.tierKeys(m)
}

// FallbackPrize looks up the static estimate table, returning the first tier
// that matches the result exactly, or zero.
func (g *Game) FallbackPrize(m models.MatchResult) float64 {
	for _, tier := range g.fallback {
		if m.Primary != tier.primary {
			continue
		}
		switch tier.cond {
		case secondaryAny:
			return tier.prize
		case secondaryAtLeast:
			if m.Secondary >= tier.secondary {
				return tier.prize
			}
		default:
			if m.Secondary == tier.secondary {
				return tier.prize
			}
		}
	}
	return 0
}

// Eurojackpot: 5 main numbers from 1-50 plus 2 euro numbers from 1-12.
// Official payout tables key tiers as "{main} + {euro}".
var Eurojackpot = &Game{
	Key:               "eurojackpot",
	Name:              "EuroJackpot",
	Description:       "European lottery with draws twice a week",
	PrimaryCount:      5,
	PrimaryMin:        1,
	PrimaryMax:        50,
	SecondaryCount:    2,
	SecondaryRequired: true,
	SecondaryMin:      1,
	SecondaryMax:      12,
	DefaultStake:      2.60,
	AnnualReturn:      0.08,
	ArchivePrefix:     "historicalEurojackpot",
	StartYear:         2017,
	DataURL:           "https://raw.githubusercontent.com/SlashGordon/howtolosemoneyfast/main/eurojackpot_results.json",
	tierKeys: func(m models.MatchResult) []string {
		return []string{fmt.Sprintf("%d + %d", m.Primary, m.Secondary)}
	},
	fallback: []fallbackTier{
		{5, 2, secondaryExact, 10000000},
		{5, 1, secondaryExact, 500000},
		{5, 0, secondaryExact, 100000},
		{4, 2, secondaryExact, 5000},
		{4, 1, secondaryExact, 300},
		{4, 0, secondaryExact, 150},
		{3, 2, secondaryExact, 70},
		{2, 2, secondaryExact, 25},
		{3, 1, secondaryExact, 20},
		{3, 0, secondaryExact, 15},
		{1, 2, secondaryExact, 10},
		{2, 1, secondaryExact, 8},
	},
}

// Lotto6aus49: 6 numbers from 1-49 plus an optional bonus digit from 0-9.
// Payout tables key the bonus-qualified tiers as "{n} + SZ" (Superzahl),
// with "{n} + ZZ" (Zusatzzahl) appearing in pre-2013 records.
var Lotto6aus49 = &Game{
	Key:            "lotto6aus49",
	Name:           "Lotto 6 aus 49",
	Description:    "German lottery with draws twice a week",
	PrimaryCount:   6,
	PrimaryMin:     1,
	PrimaryMax:     49,
	SecondaryCount: 1,
	SecondaryMin:   0,
	SecondaryMax:   9,
	DefaultStake:   1.20,
	AnnualReturn:   0.07,
	ArchivePrefix:  "historicalLotto6aus49",
	StartYear:      1955,
	DataURL:        "https://raw.githubusercontent.com/SlashGordon/howtolosemoneyfast/main/lotto_6aus49_results.json",
	tierKeys: func(m models.MatchResult) []string {
		if m.Secondary > 0 {
			return []string{
				fmt.Sprintf("%d + SZ", m.Primary),
				fmt.Sprintf("%d + ZZ", m.Primary),
				fmt.Sprintf("%d", m.Primary),
			}
		}
		return []string{fmt.Sprintf("%d", m.Primary)}
	},
	fallback: []fallbackTier{
		{6, 0, secondaryAny, 1000000},
		{5, 1, secondaryAtLeast, 100000},
		{5, 0, secondaryExact, 3000},
		{4, 0, secondaryAny, 50},
		{3, 0, secondaryAny, 10},
	},
}

var registry = map[string]*Game{
	Eurojackpot.Key: Eurojackpot,
	Lotto6aus49.Key: Lotto6aus49,
}

// ByKey resolves a registered game by its key.
func ByKey(key string) (*Game, error) {
	g, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, key)
	}
	return g, nil
}

// All returns the registered games in stable order.
func All() []*Game {
	all := make([]*Game, 0, len(registry))
	for _, g := range registry {
		all = append(all, g)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Key < all[j].Key })
	return all
}
