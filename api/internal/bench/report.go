package bench

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// IterationSummary — один проход по всему набору задач.
type IterationSummary struct {
	Iteration   int      `json:"iteration"`
	Results     []Result `json:"results"`
	Correct     int      `json:"correct"`
	AccuracyPct float64  `json:"accuracy_percent"`
	AvgSeconds  float64  `json:"avg_time_seconds"`
	CacheHits   int      `json:"cache_hits,omitempty"`
	CacheMisses int      `json:"cache_misses,omitempty"`
}

// DifficultyStats — точность в разрезе сложности задач.
type DifficultyStats struct {
	Total       int     `json:"total"`
	Correct     int     `json:"correct"`
	AccuracyPct float64 `json:"accuracy_percent"`
}

// Summary — сводка по всем итерациям.
type Summary struct {
	TotalProblems int                        `json:"total_problems"`
	TotalRuns     int                        `json:"total_runs"`
	Correct       int                        `json:"correct"`
	AccuracyPct   float64                    `json:"accuracy_percent"`
	AvgSeconds    float64                    `json:"avg_time_seconds"`
	AvgMillis     float64                    `json:"avg_time_ms"`
	ByDifficulty  map[string]DifficultyStats `json:"accuracy_by_difficulty,omitempty"`
}

// Report — полный результат прогона стенда.
type Report struct {
	RunID      string             `json:"run_id"`
	Strategy   string             `json:"strategy"`
	Engine     string             `json:"engine,omitempty"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Iterations []IterationSummary `json:"iterations"`
	Summary    Summary            `json:"summary"`
}

func (r *Report) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
