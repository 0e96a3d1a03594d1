// Refreshes the local historical-draw archive from the upstream dataset.
// Fetches the full result list for a game, normalizes it and rewrites the
// year-partitioned .json.gz files the API server loads at runtime.
//
// Usage:
//
//	go run ./cmd/scripts -game eurojackpot -out ./data
package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/lottoloss/lottoloss-backend/internal/config"
	"github.com/lottoloss/lottoloss-backend/internal/games"
)

// rawDraw mirrors the upstream record shape. The same shape is written back
// out so the archive loader can consume the partitions unchanged.
type rawDraw struct {
	DrawDate string             `json:"draw_date"`
	Date     string             `json:"date,omitempty"`
	Regular  []int              `json:"regular_numbers"`
	Bonus    []int              `json:"bonus_numbers"`
	Payouts  map[string]float64 `json:"prize_distribution"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	gameKey := flag.String("game", "", "game to refresh (empty = all)")
	outDir := flag.String("out", config.GetEnv("ARCHIVE_DATADIR", "./data"), "archive output directory")
	timeout := flag.Int("timeout", config.GetEnvAsInt("FETCH_TIMEOUT_SECONDS", 60), "fetch timeout in seconds")
	flag.Parse()

	var targets []*games.Game
	if *gameKey == "" {
		targets = games.All()
	} else {
		g, err := games.ByKey(*gameKey)
		if err != nil {
			log.Fatalf("Unknown game %q", *gameKey)
		}
		targets = []*games.Game{g}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	client := &http.Client{Timeout: time.Duration(*timeout) * time.Second}
	for _, g := range targets {
		count, err := refreshGame(client, g, *outDir)
		if err != nil {
			log.Fatalf("Failed to refresh %s: %v", g.Key, err)
		}
		log.Printf("Refreshed %s: %d draws", g.Key, count)
	}
}

// refreshGame downloads a game's full result list and rewrites its year
// partitions. Returns the number of draws written.
func refreshGame(client *http.Client, g *games.Game, outDir string) (int, error) {
	records, err := fetchResults(client, g.DataURL)
	if err != nil {
		return 0, err
	}

	byYear := make(map[int][]rawDraw)
	for _, r := range records {
		year, ok := drawYear(r)
		if !ok {
			log.Printf("Warning: record with unparseable date %q, skipping", r.DrawDate)
			continue
		}
		// Stored in ascending order so match counting and display need no
		// further normalization
		sort.Ints(r.Regular)
		byYear[year] = append(byYear[year], r)
	}

	total := 0
	for year, draws := range byYear {
		path := filepath.Join(outDir, fmt.Sprintf("%s-%d.json.gz", g.ArchivePrefix, year))
		if err := writePartition(path, draws); err != nil {
			return total, fmt.Errorf("failed to write %s: %w", path, err)
		}
		total += len(draws)
	}
	return total, nil
}

func fetchResults(client *http.Client, url string) ([]rawDraw, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s fetching %s", resp.Status, url)
	}

	var records []rawDraw
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return records, nil
}

func writePartition(path string, draws []rawDraw) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	if err := json.NewEncoder(gz).Encode(draws); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}

// drawYear extracts the year of a record from whichever date field parses.
func drawYear(r rawDraw) (int, bool) {
	for _, c := range []string{r.DrawDate, r.Date} {
		if len(c) > 10 {
			c = c[:10]
		}
		if t, err := time.Parse("2006-01-02", c); err == nil {
			return t.Year(), true
		}
	}
	return 0, false
}
