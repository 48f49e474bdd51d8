package llm

import (
	"fmt"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/solve"
)

// ToExtracted переводит словарь переменных парсера в типизированный
// вариант решателя. Вся доменная валидация живёт здесь: неполная или
// бессмысленная структура не доходит до счёта.
func ToExtracted(ps ParsedStructure) (solve.Extracted, error) {
	switch solve.Kind(ps.ProblemType) {
	case solve.KindCombinatorics:
		return toCombinatorics(ps.Variables)
	case solve.KindAlgebra:
		return toAlgebra(ps.Variables)
	case solve.KindNumberTheory:
		return toNumberTheory(ps.Variables)
	case solve.KindGeometry:
		return toGeometry(ps.Variables)
	case solve.KindProbability:
		return toProbability(ps.Variables)
	case solve.KindCalculus:
		return toCalculus(ps.Variables)
	default:
		return nil, fmt.Errorf("unknown problem_type: %q", ps.ProblemType)
	}
}

func toCombinatorics(v Variables) (solve.Extracted, error) {
	n1, err := requireInt(v, "combinatorics", VarTotalMen)
	if err != nil {
		return nil, err
	}
	n2, err := requireInt(v, "combinatorics", VarTotalWomen)
	if err != nil {
		return nil, err
	}
	size, err := requireInt(v, "combinatorics", VarCommitteeSize)
	if err != nil {
		return nil, err
	}
	minMen, err := requireInt(v, "combinatorics", VarMinMen)
	if err != nil {
		return nil, err
	}
	minWomen, err := requireInt(v, "combinatorics", VarMinWomen)
	if err != nil {
		return nil, err
	}
	if n1 <= 0 || n2 <= 0 || size <= 0 || minMen < 0 || minWomen < 0 {
		return nil, fmt.Errorf("combinatorics: non-positive population or committee size")
	}
	var cases []solve.CaseSplit
	for k1 := minMen; k1 <= size && k1 <= n1; k1++ {
		k2 := size - k1
		if k2 < minWomen || k2 < 0 || k2 > n2 {
			continue
		}
		cases = append(cases, solve.CaseSplit{K1: k1, K2: k2})
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("combinatorics: no feasible split of %d seats under the minimums", size)
	}
	return solve.Combinatorics{N1: n1, N2: n2, Cases: cases}, nil
}

func toAlgebra(v Variables) (solve.Extracted, error) {
	ss, err := requireInt(v, "algebra", VarSumSquares)
	if err != nil {
		return nil, err
	}
	xy, err := requireInt(v, "algebra", VarProduct)
	if err != nil {
		return nil, err
	}
	return solve.Algebra{SumSquares: ss, Product: xy}, nil
}

func toNumberTheory(v Variables) (solve.Extracted, error) {
	n, err := requireInt(v, "number_theory", VarN)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("number_theory: n must be positive, got %d", n)
	}
	return solve.NumberTheory{N: int64(n)}, nil
}

func toGeometry(v Variables) (solve.Extracted, error) {
	r, ok := v.Get(VarRadius)
	if !ok {
		return nil, fmt.Errorf("geometry: missing variable %q", VarRadius)
	}
	t, ok := v.Get(VarTangent)
	if !ok {
		return nil, fmt.Errorf("geometry: missing variable %q", VarTangent)
	}
	if r <= 0 || t <= 0 {
		return nil, fmt.Errorf("geometry: radius and tangent length must be positive")
	}
	return solve.Geometry{Radius: r, Tangent: t}, nil
}

func toProbability(v Variables) (solve.Extracted, error) {
	n, err := requireInt(v, "probability", VarNumDice)
	if err != nil {
		return nil, err
	}
	target, err := requireInt(v, "probability", VarTargetSum)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > solve.MaxDiceEnumeration {
		return nil, fmt.Errorf("probability: num_dice must be between 1 and %d, got %d", solve.MaxDiceEnumeration, n)
	}
	if faces, ok := v.Int(VarDiceFaces); ok && faces != 6 {
		return nil, fmt.Errorf("probability: only six-sided dice are supported, got %d faces", faces)
	}
	return solve.Probability{NumDice: n, TargetSum: target}, nil
}

func toCalculus(v Variables) (solve.Extracted, error) {
	coefs := v.Coefficients
	if coefs == nil {
		return nil, fmt.Errorf("calculus: missing variable %q", VarCoefficients)
	}
	if len(coefs) != 4 {
		return nil, fmt.Errorf("calculus: coefficients must hold [a b c d], got %d values", len(coefs))
	}
	if coefs[0] == 0 {
		return nil, fmt.Errorf("calculus: leading coefficient must be non-zero")
	}
	return solve.Calculus{A: coefs[0], B: coefs[1], C: coefs[2], D: coefs[3]}, nil
}

func requireInt(v Variables, kind, name string) (int, error) {
	n, ok := v.Int(name)
	if !ok {
		return 0, fmt.Errorf("%s: missing variable %q", kind, name)
	}
	return n, nil
}
