package solve

import (
	"fmt"
	"strings"
)

// Explain строит многострочный вывод для проверенного ответа: повторяет
// данные, называет формулу, показывает подстановку и итог. Ничего не
// вычисляет сверх форматирования; на остановленных путях не вызывается,
// там текст всегда пустой.
func Explain(ex Extracted, ans Answer) string {
	formatted := ans.Format()
	switch v := ex.(type) {
	case Combinatorics:
		if len(v.Cases) == 1 {
			c := v.Cases[0]
			return fmt.Sprintf(
				"Choose %d from %d and %d from %d, independently.\nTotal ways = C(%d,%d) × C(%d,%d) = %s.",
				c.K1, v.N1, c.K2, v.N2, v.N1, c.K1, v.N2, c.K2, formatted)
		}
		terms := make([]string, 0, len(v.Cases))
		for _, c := range v.Cases {
			terms = append(terms, fmt.Sprintf("C(%d,%d)×C(%d,%d)", v.N1, c.K1, v.N2, c.K2))
		}
		size := v.Cases[0].K1 + v.Cases[0].K2
		return fmt.Sprintf(
			"Populations: %d and %d, selecting %d in total.\nValid splits: %s.\nTotal ways = %s.",
			v.N1, v.N2, size, strings.Join(terms, " + "), formatted)
	case Algebra:
		return fmt.Sprintf(
			"(x + y)^2 = x^2 + 2xy + y^2.\nSubstitute x^2 + y^2 = %d and xy = %d: %d + 2×%d.\n(x + y)^2 = %s.",
			v.SumSquares, v.Product, v.SumSquares, v.Product, formatted)
	case NumberTheory:
		return fmt.Sprintf(
			"Sum of all positive divisors of %d.\nApply the multiplicative divisor-sum formula over the prime factorization of %d.\nσ(%d) = %s.",
			v.N, v.N, v.N, formatted)
	case Geometry:
		return fmt.Sprintf(
			"The radius to the point of tangency is perpendicular to the tangent line.\nBy the Pythagorean theorem, the distance is √(%s^2 + %s^2).\nDistance = %s.",
			formatFloat(v.Radius), formatFloat(v.Tangent), formatted)
	case Probability:
		return fmt.Sprintf(
			"Rolling %d dice gives 6^%d equally likely outcomes.\nCount the outcomes whose faces sum to %d and divide by the total.\nP(sum = %d) = %s.",
			v.NumDice, v.NumDice, v.TargetSum, v.TargetSum, formatted)
	case Calculus:
		fx := cubicString(v)
		deriv := quadraticString(3*v.A, 2*v.B, v.C)
		second := linearString(6*v.A, 2*v.B)
		if len(ans.Extrema) == 0 {
			return fmt.Sprintf(
				"f(x) = %s, so f'(x) = %s.\nThe discriminant of f'(x) is negative: no real critical points.\nNo local extrema.",
				fx, deriv)
		}
		return fmt.Sprintf(
			"f(x) = %s, so f'(x) = %s.\nCritical points solve f'(x) = 0; the sign of f''(x) = %s classifies each.\nLocal extrema: %s.",
			fx, deriv, second, formatted)
	}
	return ""
}

// polyTerm и сборка строк многочленов — только для текста вывода.
type polyTerm struct {
	coef  float64
	power int
}

func polyString(terms []polyTerm) string {
	var b strings.Builder
	for _, t := range terms {
		if t.coef == 0 {
			continue
		}
		coef := t.coef
		if b.Len() == 0 {
			if coef < 0 {
				b.WriteString("-")
				coef = -coef
			}
		} else {
			if coef < 0 {
				b.WriteString(" - ")
				coef = -coef
			} else {
				b.WriteString(" + ")
			}
		}
		switch {
		case t.power == 0:
			b.WriteString(formatFloat(coef))
		case coef == 1:
		default:
			b.WriteString(formatFloat(coef))
		}
		switch t.power {
		case 0:
		case 1:
			b.WriteString("x")
		default:
			b.WriteString(fmt.Sprintf("x^%d", t.power))
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

func cubicString(v Calculus) string {
	return polyString([]polyTerm{{v.A, 3}, {v.B, 2}, {v.C, 1}, {v.D, 0}})
}

func quadraticString(a, b, c float64) string {
	return polyString([]polyTerm{{a, 2}, {b, 1}, {c, 0}})
}

func linearString(a, b float64) string {
	return polyString([]polyTerm{{a, 1}, {b, 0}})
}
