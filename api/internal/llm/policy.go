package llm

import (
	"fmt"
	"regexp"
)

// Следы вычислений, запрещённые в стратегии: арифметика между числами,
// равенство числу и готовые ответы. Парсер извлекает, решатель считает.
var computationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+\s*[-+*/]\s*\d+`),
	regexp.MustCompile(`(?i)=\s*\d+`),
	regexp.MustCompile(`(?i)(result|answer|solution):\s*\d+`),
	regexp.MustCompile(`(?i)(total|sum|product):\s*\d+`),
}

// ContainsComputation сообщает, есть ли в тексте следы численного счёта.
func ContainsComputation(text string) bool {
	for _, p := range computationPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// ValidateStructure проверяет выход парсера: обязательные поля,
// отсутствие счёта в стратегии и совпадение с исходным запросом.
// Конверсия переменных в доменный вид проверяется отдельно, в ToExtracted.
func ValidateStructure(in ParseInput, ps ParsedStructure) error {
	if ps.ProblemID == "" {
		return fmt.Errorf("structure: missing required field problem_id")
	}
	if ps.ProblemType == "" {
		return fmt.Errorf("structure: missing required field problem_type")
	}
	if ps.Strategy == "" {
		return fmt.Errorf("structure: missing required field strategy")
	}
	if len(ps.Variables.Scalars) == 0 && ps.Variables.Coefficients == nil {
		return fmt.Errorf("structure: missing required field variables")
	}
	if ContainsComputation(ps.Strategy) {
		return fmt.Errorf("structure: strategy contains numerical computation: %q", truncate(ps.Strategy, 100))
	}
	if in.ProblemID != "" && ps.ProblemID != in.ProblemID {
		return fmt.Errorf("structure: problem_id mismatch: %q != %q", ps.ProblemID, in.ProblemID)
	}
	if in.Category != "" && ps.ProblemType != in.Category {
		return fmt.Errorf("structure: category mismatch: %q != %q", ps.ProblemType, in.Category)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
