package archive

import (
	"context"
	"sync"

	"github.com/lottoloss/lottoloss-backend/internal/games"
	"github.com/lottoloss/lottoloss-backend/internal/models"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/singleflight"
)

// Store is the process-wide draw archive cache. Each game's archive is
// loaded lazily at most once; concurrent first callers share the single
// in-flight load via singleflight. Load failures are swallowed here: the
// game's archive resolves to an empty slice and downstream computations
// degrade to empty results instead of failing.
type Store struct {
	dir      string
	maxYears int

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string][]models.Draw
}

// NewStore creates a Store reading year partitions from dir, limited to the
// newest maxYears per game (0 = no limit).
func NewStore(dir string, maxYears int) *Store {
	return &Store{
		dir:      dir,
		maxYears: maxYears,
		cache:    make(map[string][]models.Draw),
	}
}

// Draws returns the cached archive for a game, loading it on first use.
// The returned slice is shared and must be treated as read-only.
func (s *Store) Draws(ctx context.Context, g *games.Game) []models.Draw {
	s.mu.RLock()
	draws, ok := s.cache[g.Key]
	s.mu.RUnlock()
	if ok {
		return draws
	}

	v, _, _ := s.group.Do(g.Key, func() (interface{}, error) {
		// Another caller may have finished the load while we queued.
		s.mu.RLock()
		cached, ok := s.cache[g.Key]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}

		loaded, err := LoadYearFiles(s.dir, g, s.maxYears)
		if err != nil {
			slog.Error("archive load failed, serving empty archive", "game", g.Key, "error", err)
			loaded = []models.Draw{}
		}
		if loaded == nil {
			loaded = []models.Draw{}
		}
		slog.Info("archive loaded", "game", g.Key, "draws", len(loaded))

		s.mu.Lock()
		s.cache[g.Key] = loaded
		s.mu.Unlock()
		return loaded, nil
	})
	return v.([]models.Draw)
}

// Refresh drops a game's cached archive and reloads it from disk, returning
// the number of draws now cached.
func (s *Store) Refresh(ctx context.Context, g *games.Game) int {
	s.mu.Lock()
	delete(s.cache, g.Key)
	s.mu.Unlock()
	return len(s.Draws(ctx, g))
}
