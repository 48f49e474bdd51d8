package solve

import (
	"regexp"
	"strconv"
	"strings"
)

// Extract прогоняет шесть доменных правил в фиксированном порядке приоритета
// и возвращает первый полный, внутренне согласованный разбор. Правило либо
// отдаёт полностью заполненный вариант, либо ничего — значения по умолчанию
// не выдумываются никогда.
func Extract(raw string) (Extracted, bool) {
	s := normalizeText(raw)
	for _, rule := range extractRules {
		if ex, ok := rule(s); ok {
			return ex, true
		}
	}
	return nil, false
}

// Порядок закреплён: от более специфичных шаблонов к более общим.
var extractRules = []func(s string) (Extracted, bool){
	extractCombinatorics,
	extractAlgebra,
	extractNumberTheory,
	extractGeometry,
	extractProbability,
	extractCalculus,
}

var (
	reMenCount   = regexp.MustCompile(`(\d+)\s+men\b`)
	reWomenCount = regexp.MustCompile(`(\d+)\s+wom[ae]n\b`)
	reGroupSize  = regexp.MustCompile(`(?:committee|group)s?\s+of\s+(\d+)`)
	reMinMen     = regexp.MustCompile(`at\s+least\s+(\d+)\s+men\b`)
	reMinWomen   = regexp.MustCompile(`at\s+least\s+(\d+)\s+wom[ae]n\b`)

	reSumSquares = regexp.MustCompile(`x\^2\s*\+\s*y\^2\s*=\s*(\d+)`)
	reProduct    = regexp.MustCompile(`xy\s*=\s*(\d+)`)

	reDivisorsOf = regexp.MustCompile(`divisors\s+of\s+(\d+)`)

	reRadius  = regexp.MustCompile(`radius\s+(?:of\s+)?(\d+(?:\.\d+)?)`)
	reTangent = regexp.MustCompile(`length\s+(?:of\s+)?(\d+(?:\.\d+)?)`)

	reDiceCount = regexp.MustCompile(`(one|two|three|four|five|six|seven|eight|nine|ten|\d+)\s+(?:fair\s+)?(?:six-sided\s+)?dice\b`)
	reTargetSum = regexp.MustCompile(`sum\s+(?:is|of|equals)\s+(?:exactly\s+)?(\d+)`)

	rePolyBody = regexp.MustCompile(`f\(x\)\s*=\s*([0-9x\s\^\.\+\-]+)`)
	rePolyTerm = regexp.MustCompile(`[+-]?[^+-]+`)
)

// MaxDiceEnumeration — потолок перебора для вероятности: решатель честно
// обходит 6^n исходов, на девяти и более костях это уже десятки миллионов.
const MaxDiceEnumeration = 8

func extractCombinatorics(s string) (Extracted, bool) {
	if !domainKeywords[KindCombinatorics](s) {
		return nil, false
	}
	menAll := reMenCount.FindAllStringSubmatch(s, -1)
	womenAll := reWomenCount.FindAllStringSubmatch(s, -1)
	sizeM := reGroupSize.FindStringSubmatch(s)
	if len(menAll) == 0 || len(womenAll) == 0 || sizeM == nil {
		return nil, false
	}
	n1 := mustAtoi(menAll[0][1])
	n2 := mustAtoi(womenAll[0][1])
	size := mustAtoi(sizeM[1])
	if n1 <= 0 || n2 <= 0 || size <= 0 {
		return nil, false
	}

	minMenM := reMinMen.FindStringSubmatch(s)
	minWomenM := reMinWomen.FindStringSubmatch(s)
	if minMenM != nil && minWomenM != nil {
		// Ограничительная форма: перебираем все расклады (k1, k2)
		// между минимумами и размерами популяций.
		minMen := mustAtoi(minMenM[1])
		minWomen := mustAtoi(minWomenM[1])
		var cases []CaseSplit
		for k1 := minMen; k1 <= size && k1 <= n1; k1++ {
			k2 := size - k1
			if k2 < minWomen || k2 < 0 || k2 > n2 {
				continue
			}
			cases = append(cases, CaseSplit{K1: k1, K2: k2})
		}
		if len(cases) == 0 {
			// Ни одного допустимого расклада — это не совпадение.
			return nil, false
		}
		return Combinatorics{N1: n1, N2: n2, Cases: cases}, true
	}

	// Явная форма: второе вхождение "K men ... K women" задаёт расклад.
	if len(menAll) >= 2 && len(womenAll) >= 2 {
		k1 := mustAtoi(menAll[1][1])
		k2 := mustAtoi(womenAll[1][1])
		if k1+k2 != size || k1 < 0 || k2 < 0 || k1 > n1 || k2 > n2 {
			return nil, false
		}
		return Combinatorics{N1: n1, N2: n2, Cases: []CaseSplit{{K1: k1, K2: k2}}}, true
	}
	return nil, false
}

func extractAlgebra(s string) (Extracted, bool) {
	if !domainKeywords[KindAlgebra](s) {
		return nil, false
	}
	ssM := reSumSquares.FindStringSubmatch(s)
	prodM := reProduct.FindStringSubmatch(s)
	if ssM == nil || prodM == nil {
		return nil, false
	}
	return Algebra{SumSquares: mustAtoi(ssM[1]), Product: mustAtoi(prodM[1])}, true
}

func extractNumberTheory(s string) (Extracted, bool) {
	if !domainKeywords[KindNumberTheory](s) {
		return nil, false
	}
	nM := reDivisorsOf.FindStringSubmatch(s)
	if nM == nil {
		return nil, false
	}
	n := int64(mustAtoi(nM[1]))
	if n < 1 {
		return nil, false
	}
	return NumberTheory{N: n}, true
}

func extractGeometry(s string) (Extracted, bool) {
	if !domainKeywords[KindGeometry](s) {
		return nil, false
	}
	rM := reRadius.FindStringSubmatch(s)
	tM := reTangent.FindStringSubmatch(s)
	if rM == nil || tM == nil {
		return nil, false
	}
	r := mustParseFloat(rM[1])
	t := mustParseFloat(tM[1])
	if r <= 0 || t <= 0 {
		return nil, false
	}
	return Geometry{Radius: r, Tangent: t}, true
}

func extractProbability(s string) (Extracted, bool) {
	if !domainKeywords[KindProbability](s) {
		return nil, false
	}
	dM := reDiceCount.FindStringSubmatch(s)
	tM := reTargetSum.FindStringSubmatch(s)
	if dM == nil || tM == nil {
		return nil, false
	}
	n, ok := parseCount(dM[1])
	if !ok || n < 1 || n > MaxDiceEnumeration {
		return nil, false
	}
	return Probability{NumDice: n, TargetSum: mustAtoi(tM[1])}, true
}

func extractCalculus(s string) (Extracted, bool) {
	if !domainKeywords[KindCalculus](s) {
		return nil, false
	}
	bodyM := rePolyBody.FindStringSubmatch(s)
	if bodyM == nil {
		return nil, false
	}
	expr := strings.ReplaceAll(strings.TrimSpace(bodyM[1]), " ", "")
	var a, b, c, d float64
	sawCubic := false
	for _, term := range rePolyTerm.FindAllString(expr, -1) {
		switch {
		case strings.HasSuffix(term, "x^3"):
			v, ok := parseCoef(strings.TrimSuffix(term, "x^3"))
			if !ok {
				return nil, false
			}
			a += v
			sawCubic = true
		case strings.HasSuffix(term, "x^2"):
			v, ok := parseCoef(strings.TrimSuffix(term, "x^2"))
			if !ok {
				return nil, false
			}
			b += v
		case strings.HasSuffix(term, "x"):
			v, ok := parseCoef(strings.TrimSuffix(term, "x"))
			if !ok {
				return nil, false
			}
			c += v
		default:
			v, err := strconv.ParseFloat(term, 64)
			if err != nil {
				return nil, false
			}
			d += v
		}
	}
	if !sawCubic || a == 0 {
		return nil, false
	}
	return Calculus{A: a, B: b, C: c, D: d}, true
}

var wordCounts = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

func parseCount(s string) (int, bool) {
	if n, ok := wordCounts[s]; ok {
		return n, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseCoef — коэффициент при степени x: пустой или "+" это 1, "-" это -1.
func parseCoef(s string) (float64, bool) {
	switch s {
	case "", "+":
		return 1, true
	case "-":
		return -1, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// mustAtoi безопасен: вызывается только на подстроках, пойманных \d+.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func mustParseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
