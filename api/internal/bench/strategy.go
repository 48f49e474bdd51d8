package bench

import (
	"context"
	"time"
)

// Strategy — один способ довести задачу до ответа. Стратегии различаются
// только фазой разбора, считает всегда детерминированное ядро.
type Strategy interface {
	Name() string
	Solve(ctx context.Context, p Problem) Result
}

// Result — итог одного прогона задачи одной стратегией.
type Result struct {
	ProblemID  string `json:"problem_id"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty,omitempty"`

	Answer  string `json:"answer,omitempty"`
	Correct bool   `json:"is_correct"`

	// HIT или MISS, только у кэширующей стратегии.
	CacheStatus string `json:"cache_status,omitempty"`

	ParseSeconds   float64 `json:"parse_time_seconds"`
	ComputeSeconds float64 `json:"compute_time_seconds"`
	TotalSeconds   float64 `json:"total_time_seconds"`

	Error string `json:"error,omitempty"`
}

func newResult(p Problem) Result {
	return Result{ProblemID: p.ID, Category: p.Category, Difficulty: p.Difficulty}
}

func (r Result) failed(start time.Time, err error) Result {
	r.Error = err.Error()
	r.TotalSeconds = time.Since(start).Seconds()
	return r
}

func (r Result) scored(start time.Time, answer, correct string) Result {
	r.Answer = answer
	r.Correct = AnswersMatch(answer, correct)
	r.TotalSeconds = time.Since(start).Seconds()
	return r
}
