package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/util"
)

// SystemPrompt — общая инструкция для всех движков-парсеров.
// Словарь переменных закреплён: решатель понимает только эти имена.
const SystemPrompt = `You are a parser for math word problems. You extract structure as strict JSON. You NEVER solve the problem and NEVER compute values.

Allowed problem_type values and their variables:
- combinatorics: total_men, total_women, committee_size, min_men, min_women
- algebra: x_squared_plus_y_squared, xy
- number_theory: n
- geometry: radius, tangent_length
- probability: num_dice, target_sum, dice_faces
- calculus: coefficients as the array [a, b, c, d] of a*x^3 + b*x^2 + c*x + d

Rules:
- variables hold only numbers copied verbatim from the problem text
- strategy is a short textual plan without digits or arithmetic
- respond with a single JSON object and nothing else`

// BuildParsePrompt собирает пользовательское сообщение со скелетом ответа.
// Известные поля (id, категория) подставлены заранее, модели остаётся
// заполнить переменные и стратегию.
func BuildParsePrompt(in ParseInput) string {
	problemType := in.Category
	if problemType == "" {
		problemType = "<one of the allowed problem_type values>"
	}
	var b strings.Builder
	b.WriteString("Extract variables from this math problem as JSON. DO NOT SOLVE.\n\n")
	fmt.Fprintf(&b, "Problem: %s\n\n", in.Problem)
	b.WriteString("Output JSON:\n{\n")
	fmt.Fprintf(&b, "  \"problem_id\": %q,\n", in.ProblemID)
	fmt.Fprintf(&b, "  \"problem_type\": %q,\n", problemType)
	b.WriteString("  \"variables\": {},\n")
	b.WriteString("  \"strategy\": \"brief description\"\n")
	b.WriteString("}\n\nJSON only:")
	return b.String()
}

// DecodeStructure разбирает сырой ответ модели в ParsedStructure.
// Модели любят заворачивать JSON в кодовые заборы, снимаем их до разбора.
func DecodeStructure(raw string) (ParsedStructure, error) {
	cleaned := util.StripCodeFences(raw)
	var ps ParsedStructure
	if err := json.Unmarshal([]byte(cleaned), &ps); err != nil {
		return ParsedStructure{}, fmt.Errorf("LLM produced invalid JSON: %w", err)
	}
	return ps, nil
}
