package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/solve"
)

// Baseline — потолок производительности: эталонная структура уже на задаче,
// остаётся чистый детерминированный счёт. Ни LLM, ни гардов.
type Baseline struct{}

func (Baseline) Name() string { return "baseline" }

func (Baseline) Solve(_ context.Context, p Problem) Result {
	start := time.Now()
	r := newResult(p)

	if p.Structure == nil {
		return r.failed(start, fmt.Errorf("problem %s carries no reference structure", p.ID))
	}
	ex, err := llm.ToExtracted(*p.Structure)
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
