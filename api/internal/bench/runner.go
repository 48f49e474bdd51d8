package bench

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// Runner гоняет стратегию по набору задач заданное число итераций.
// Несколько итераций показывают эффект прогретого кэша.
type Runner struct {
	Strategy   Strategy
	Problems   []Problem
	Iterations int

	// Имя движка для отчёта, если стратегия его использует.
	Engine string
}

func (r *Runner) Run(ctx context.Context) *Report {
	iterations := r.Iterations
	if iterations < 1 {
		iterations = 1
	}
	report := &Report{
		RunID:     uuid.NewString(),
		Strategy:  r.Strategy.Name(),
		Engine:    r.Engine,
		StartedAt: time.Now(),
	}

	var totalCorrect int
	var totalSeconds float64
	totalRuns := 0
	byDifficulty := map[string]DifficultyStats{}

	for iter := 1; iter <= iterations; iter++ {
		log.Printf("[bench] iteration %d/%d, strategy=%s", iter, iterations, r.Strategy.Name())
		summary := IterationSummary{Iteration: iter}
		var iterSeconds float64

		for _, p := range r.Problems {
			if ctx.Err() != nil {
				log.Printf("[bench] run %s cancelled: %v", report.RunID, ctx.Err())
				break
			}
			res := r.Strategy.Solve(ctx, p)
			summary.Results = append(summary.Results, res)
			if res.Correct {
				summary.Correct++
			}
			d := res.Difficulty
			if d == "" {
				d = "unknown"
			}
			ds := byDifficulty[d]
			ds.Total++
			if res.Correct {
				ds.Correct++
			}
			byDifficulty[d] = ds
			iterSeconds += res.TotalSeconds
			switch res.CacheStatus {
			case "HIT":
				summary.CacheHits++
			case "MISS":
				summary.CacheMisses++
			}
			if res.Error != "" {
				log.Printf("[bench] %s failed: %s", p.ID, res.Error)
			}
		}

		n := len(summary.Results)
		if n > 0 {
			summary.AccuracyPct = float64(summary.Correct) / float64(n) * 100
			summary.AvgSeconds = iterSeconds / float64(n)
		}
		report.Iterations = append(report.Iterations, summary)
		log.Printf("[bench] iteration %d: accuracy %d/%d (%.1f%%), avg %.3fms",
			iter, summary.Correct, n, summary.AccuracyPct, summary.AvgSeconds*1000)

		totalCorrect += summary.Correct
		totalSeconds += iterSeconds
		totalRuns += n

		if ctx.Err() != nil {
			break
		}
	}

	report.FinishedAt = time.Now()
	for d, ds := range byDifficulty {
		if ds.Total > 0 {
			ds.AccuracyPct = float64(ds.Correct) / float64(ds.Total) * 100
		}
		byDifficulty[d] = ds
	}
	report.Summary = Summary{
		TotalProblems: len(r.Problems),
		TotalRuns:     totalRuns,
		Correct:       totalCorrect,
		ByDifficulty:  byDifficulty,
	}
	if totalRuns > 0 {
		report.Summary.AccuracyPct = float64(totalCorrect) / float64(totalRuns) * 100
		report.Summary.AvgSeconds = totalSeconds / float64(totalRuns)
		report.Summary.AvgMillis = report.Summary.AvgSeconds * 1000
	}
	return report
}
