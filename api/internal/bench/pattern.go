package bench

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/solve"
)

// Порядок категорий закреплён: при равном счёте побеждает более ранняя.
var categoryOrder = []string{
	"combinatorics", "algebra", "number_theory", "geometry", "probability", "calculus",
}

var categoryPatterns = map[string][]*regexp.Regexp{
	"combinatorics": {
		regexp.MustCompile(`\bhow many ways\b`),
		regexp.MustCompile(`\bcombination\b`),
		regexp.MustCompile(`\bcommittee\b`),
		regexp.MustCompile(`\bchoose\b`),
		regexp.MustCompile(`\bselect\b`),
	},
	"algebra": {
		regexp.MustCompile(`x\^2`),
		regexp.MustCompile(`y\^2`),
		regexp.MustCompile(`\(x \+ y\)`),
		regexp.MustCompile(`find the value`),
		regexp.MustCompile(`if .* = .* and .* = .*`),
	},
	"number_theory": {
		regexp.MustCompile(`\bdivisor`),
		regexp.MustCompile(`\bprime`),
		regexp.MustCompile(`\bfactorization\b`),
		regexp.MustCompile(`\bsum of all`),
	},
	"geometry": {
		regexp.MustCompile(`\bcircle\b`),
		regexp.MustCompile(`\btangent\b`),
		regexp.MustCompile(`\bradius\b`),
		regexp.MustCompile(`\bdistance\b`),
		regexp.MustCompile(`\btriangle\b`),
	},
	"probability": {
		regexp.MustCompile(`\bprobability\b`),
		regexp.MustCompile(`\bdice\b`),
		regexp.MustCompile(`\brolled\b`),
		regexp.MustCompile(`\bsum is exactly\b`),
	},
	"calculus": {
		regexp.MustCompile(`f\(x\)`),
		regexp.MustCompile(`\bderivative\b`),
		regexp.MustCompile(`\bextrem`),
		regexp.MustCompile(`\bmaximum\b`),
		regexp.MustCompile(`\bminimum\b`),
		regexp.MustCompile(`find all local`),
	},
}

// Classification — итог ключевой классификации задачи.
type Classification struct {
	Category          string         `json:"category,omitempty"`
	Confidence        int            `json:"confidence"`
	AllScores         map[string]int `json:"all_scores"`
	IsTie             bool           `json:"is_tie"`
	MatchedCategories []string       `json:"matched_categories"`
}

// Classify считает совпадения ключевых шаблонов по каждой категории.
// Побеждает наибольший счёт; ноль по всем категориям значит "не распознано".
func Classify(problemText string) Classification {
	lower := strings.ToLower(problemText)

	scores := make(map[string]int, len(categoryOrder))
	var matched []string
	best, maxScore := "", 0
	for _, cat := range categoryOrder {
		score := 0
		for _, re := range categoryPatterns[cat] {
			if re.MatchString(lower) {
				score++
			}
		}
		scores[cat] = score
		if score > 0 {
			matched = append(matched, cat)
		}
		if score > maxScore {
			best, maxScore = cat, score
		}
	}

	tie := false
	if maxScore > 0 {
		atMax := 0
		for _, s := range scores {
			if s == maxScore {
				atMax++
			}
		}
		tie = atMax > 1
	}

	return Classification{
		Category:          best,
		Confidence:        maxScore,
		AllScores:         scores,
		IsTie:             tie,
		MatchedCategories: matched,
	}
}

// Pattern — разбор без LLM вовсе: ключевая классификация плюс
// доменные экстракторы решателя.
type Pattern struct{}

func (Pattern) Name() string { return "pattern" }

func (Pattern) Solve(_ context.Context, p Problem) Result {
	start := time.Now()
	r := newResult(p)

	parseStart := time.Now()
	cls := Classify(p.Problem)
	ex, extracted := solve.Extract(p.Problem)
	r.ParseSeconds = time.Since(parseStart).Seconds()

	if cls.Category == "" {
		return r.failed(start, fmt.Errorf("no matching category, all scores are zero"))
	}
	if !extracted {
		return r.failed(start, fmt.Errorf("deterministic extraction failed for %s", cls.Category))
	}
	if string(ex.Kind()) != cls.Category {
		return r.failed(start, fmt.Errorf("classifier saw %s but extractor produced %s", cls.Category, ex.Kind()))
	}

	computeStart := time.Now()
	ans, err := solve.Solve(ex)
	if err != nil {
		return r.failed(start, err)
	}
	r.ComputeSeconds = time.Since(computeStart).Seconds()

	return r.scored(start, ans.Format(), p.Answer)
}
