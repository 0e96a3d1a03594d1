package services

import (
	"context"
	"sort"

	"github.com/lottoloss/lottoloss-backend/internal/games"
	"github.com/lottoloss/lottoloss-backend/internal/models"
	"golang.org/x/exp/slog"
)

const (
	hotColdPrimaryCount   = 5
	hotColdSecondaryCount = 3
)

// ArchiveService exposes archive-level operations: display statistics and
// the admin-triggered cache refresh.
type ArchiveService struct {
	archive DrawSource
}

// NewArchiveService creates a new ArchiveService
func NewArchiveService(archive DrawSource) *ArchiveService {
	return &ArchiveService{archive: archive}
}

// Stats summarises a game's archive: coverage and hot/cold number
// frequencies. Purely presentational; an empty archive yields empty stats.
func (s *ArchiveService) Stats(ctx context.Context, g *games.Game) models.ArchiveStats {
	draws := s.archive.Draws(ctx, g)

	stats := models.ArchiveStats{TotalDraws: len(draws)}
	primaryFreq := make(map[int]int)
	secondaryFreq := make(map[int]int)
	var first, last string
	for _, d := range draws {
		for _, n := range d.Primary {
			primaryFreq[n]++
		}
		for _, n := range d.Secondary {
			secondaryFreq[n]++
		}
		if !d.HasDate() {
			continue
		}
		date := d.Date.Format("2006-01-02")
		if first == "" || date < first {
			first = date
		}
		if date > last {
			last = date
		}
	}
	stats.FirstDrawDate = first
	stats.LastDrawDate = last
	stats.HotPrimary, stats.ColdPrimary = hotAndCold(primaryFreq, hotColdPrimaryCount)
	stats.HotSecondary, stats.ColdSecondary = hotAndCold(secondaryFreq, hotColdSecondaryCount)
	return stats
}

// Refresh drops the cached archive for a game and reloads it from disk.
func (s *ArchiveService) Refresh(ctx context.Context, g *games.Game) int {
	count := s.archive.Refresh(ctx, g)
	slog.Info("archive refreshed", "game", g.Key, "draws", count)
	return count
}

// hotAndCold splits a frequency table into the n most and n least frequently
// drawn numbers. Hot is ordered most-frequent first, cold least-frequent
// first; only numbers that actually appeared are considered.
func hotAndCold(freq map[int]int, n int) (hot, cold []models.NumberFrequency) {
	ranked := make([]models.NumberFrequency, 0, len(freq))
	for number, count := range freq {
		ranked = append(ranked, models.NumberFrequency{Number: number, Frequency: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Frequency != ranked[j].Frequency {
			return ranked[i].Frequency > ranked[j].Frequency
		}
		return ranked[i].Number < ranked[j].Number
	})

	if len(ranked) < n {
		n = len(ranked)
	}
	hot = append(hot, ranked[:n]...)
	for i := 0; i < n; i++ {
		cold = append(cold, ranked[len(ranked)-1-i])
	}
	return hot, cold
}
