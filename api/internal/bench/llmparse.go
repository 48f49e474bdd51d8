package bench

import (
	"context"
	"time"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/solve"
)

// LLMParse — модель разбирает текст в структуру, валидатор отсекает
// попытки посчитать за решатель, считает детерминированное ядро.
type LLMParse struct {
	Engine llm.Engine
}

func (s LLMParse) Name() string { return "llm_parse" }

func (s LLMParse) Solve(ctx context.Context, p Problem) Result {
	start := time.Now()
	r := newResult(p)

	in := llm.ParseInput{ProblemID: p.ID, Problem: p.Problem, Category: p.Category}

	parseStart := time.Now()
	ps, err := s.Engine.Parse(ctx, in)
	r.ParseSeconds = time.Since(parseStart).Seconds()
	if err != nil {
		return r.failed(start, err)
	}
	if err := llm.ValidateStructure(in, ps); err != nil {
		return r.failed(start, err)
	}
	ex, err := llm.ToExtracted(ps)
	if err != nil {
		return r.failed(start, err)
	}

	computeStart := time.Now()
	ans, err := solve.Solve(ex)
	if err != nil {
		return r.failed(start, err)
	}
	r.ComputeSeconds = time.Since(computeStart).Seconds()

	return r.scored(start, ans.Format(), p.Answer)
}
