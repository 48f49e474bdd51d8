package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/solve"
)

// Loopless — полный производственный конвейер: гейт, извлечение, счёт,
// проверка, объяснение. Остановка гардом считается ошибкой прогона.
type Loopless struct{}

func (Loopless) Name() string { return "loopless" }

func (Loopless) Solve(_ context.Context, p Problem) Result {
	start := time.Now()
	r := newResult(p)

	computeStart := time.Now()
	resp := solve.SolveProblem(solve.Record{Problem: p.Problem})
	r.ComputeSeconds = time.Since(computeStart).Seconds()

	if !resp.OK {
		return r.failed(start, fmt.Errorf("pipeline halted: %s (%s)", resp.GuardCode, resp.Reason))
	}
	return r.scored(start, *resp.Answer, p.Answer)
}
