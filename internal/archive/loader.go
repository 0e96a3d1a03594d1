// Package archive loads and caches the historical draw datasets. Archives
// are year-partitioned gzip JSON files produced by the data-refresh script;
// each file holds the raw draw records of one (game, year).
package archive

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lottoloss/lottoloss-backend/internal/games"
	"github.com/lottoloss/lottoloss-backend/internal/models"
	"golang.org/x/exp/slog"
)

// rawDraw mirrors the upstream record shape of the archive files.
type rawDraw struct {
	DrawDate string             `json:"draw_date"`
	Date     string             `json:"date"`
	Regular  []int              `json:"regular_numbers"`
	Bonus    []int              `json:"bonus_numbers"`
	Payouts  map[string]float64 `json:"prize_distribution"`
}

// LoadYearFiles reads the newest maxYears year partitions for a game from
// dir and merges them in file order. Missing years are skipped silently
// (archives don't cover every year); unreadable or malformed files are
// logged and skipped so a single bad partition cannot take out the archive.
func LoadYearFiles(dir string, g *games.Game, maxYears int) ([]models.Draw, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("archive directory %s: %w", dir, err)
	}

	currentYear := time.Now().Year()
	years := currentYear - g.StartYear + 1
	if maxYears > 0 && maxYears < years {
		years = maxYears
	}
	firstYear := currentYear - years + 1

	var draws []models.Draw
	for year := firstYear; year <= currentYear; year++ {
		path := filepath.Join(dir, fmt.Sprintf("%s-%d.json.gz", g.ArchivePrefix, year))
		records, err := readYearFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			slog.Warn("skipping unreadable archive partition", "path", path, "error", err)
			continue
		}
		for _, r := range records {
			draws = append(draws, r.toDraw())
		}
	}
	return draws, nil
}

func readYearFile(path string) ([]rawDraw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Dev setups sometimes hold uncompressed partitions; sniff the gzip
	// magic number instead of trusting the extension.
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		if data, err = io.ReadAll(gz); err != nil {
			return nil, err
		}
	}

	var records []rawDraw
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r rawDraw) toDraw() models.Draw {
	return models.Draw{
		Date:      parseDrawDate(r.DrawDate, r.Date),
		Primary:   r.Regular,
		Secondary: r.Bonus,
		Payouts:   r.Payouts,
	}
}

// parseDrawDate accepts the first parseable of the record's date fields.
// Records with no usable date stay in the archive with a zero date and are
// excluded from date-dependent computations.
func parseDrawDate(candidates ...string) time.Time {
	for _, c := range candidates {
		if len(c) > 10 {
			c = c[:10]
		}
		if t, err := time.Parse("2006-01-02", c); err == nil {
			return t
		}
	}
	return time.Time{}
}
