package bench

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm"
)

// Problem — задача стенда: текст, верный ответ и эталонная структура
// для стратегий, работающим без живого парсера.
type Problem struct {
	ID         string               `json:"id"`
	Category   string               `json:"category"`
	Difficulty string               `json:"difficulty,omitempty"`
	Problem    string               `json:"problem"`
	Answer     string               `json:"answer"`
	Structure  *llm.ParsedStructure `json:"structure,omitempty"`
}

// LoadProblems читает набор задач из JSON-файла.
func LoadProblems(path string) ([]Problem, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var problems []Problem
	if err := json.Unmarshal(b, &problems); err != nil {
		return nil, fmt.Errorf("problems file %s: %w", path, err)
	}
	if len(problems) == 0 {
		return nil, fmt.Errorf("problems file %s: empty set", path)
	}
	for i, p := range problems {
		if p.ID == "" || p.Problem == "" || p.Answer == "" {
			return nil, fmt.Errorf("problems file %s: entry %d lacks id, problem or answer", path, i)
		}
	}
	return problems, nil
}

// Structures собирает эталонные структуры набора по problem_id,
// в форме, которую ест llm.Mock.
func Structures(problems []Problem) map[string]llm.ParsedStructure {
	out := make(map[string]llm.ParsedStructure, len(problems))
	for _, p := range problems {
		if p.Structure != nil {
			out[p.ID] = *p.Structure
		}
	}
	return out
}
