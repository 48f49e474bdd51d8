package llm

import (
	"context"
	"fmt"
	"time"
)

// Mock — детерминированный движок для бенчмарков и тестов: отдаёт заранее
// заготовленные структуры по problem_id и имитирует задержку живой модели.
type Mock struct {
	Structures map[string]ParsedStructure
	Delay      time.Duration
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) GetModel() string { return "mock" }

func (m *Mock) Parse(ctx context.Context, in ParseInput) (ParsedStructure, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return ParsedStructure{}, ctx.Err()
		}
	}
	ps, ok := m.Structures[in.ProblemID]
	if !ok {
		return ParsedStructure{}, fmt.Errorf("mock: no structure for problem %q", in.ProblemID)
	}
	return ps, nil
}
