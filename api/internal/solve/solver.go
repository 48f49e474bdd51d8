package solve

import (
	"fmt"
	"math"
)

// Solve вычисляет ответ по извлечённому варианту. Детерминированно:
// без случайности, без внешних данных, один фиксированный алгоритм на домен.
func Solve(ex Extracted) (Answer, error) {
	switch v := ex.(type) {
	case Combinatorics:
		return solveCombinatorics(v)
	case Algebra:
		return solveAlgebra(v)
	case NumberTheory:
		return solveNumberTheory(v)
	case Geometry:
		return solveGeometry(v)
	case Probability:
		return solveProbability(v)
	case Calculus:
		return solveCalculus(v)
	}
	return Answer{}, fmt.Errorf("solve: unknown variant %T", ex)
}

// solveCombinatorics: сумма по раскладам C(n1,k1)*C(n2,k2).
// Расклады даёт извлекатель, здесь они не пересчитываются.
func solveCombinatorics(v Combinatorics) (Answer, error) {
	if len(v.Cases) == 0 {
		return Answer{}, fmt.Errorf("combinatorics: no cases supplied")
	}
	var total int64
	for _, c := range v.Cases {
		total += binomial(v.N1, c.K1) * binomial(v.N2, c.K2)
	}
	return Answer{Shape: ShapeInteger, Int: total}, nil
}

func solveAlgebra(v Algebra) (Answer, error) {
	// (x + y)^2 = x^2 + 2xy + y^2
	return Answer{Shape: ShapeInteger, Int: int64(v.SumSquares) + 2*int64(v.Product)}, nil
}

// solveNumberTheory: σ(n) через разложение на простые пробным делением
// до √n и мультипликативную формулу Π (p^(e+1)-1)/(p-1).
func solveNumberTheory(v NumberTheory) (Answer, error) {
	if v.N < 1 {
		return Answer{}, fmt.Errorf("number theory: n must be positive, got %d", v.N)
	}
	sigma := int64(1)
	n := v.N
	for p := int64(2); p*p <= n; p++ {
		if n%p != 0 {
			continue
		}
		term := int64(1)
		pow := int64(1)
		for n%p == 0 {
			n /= p
			pow *= p
			term += pow
		}
		sigma *= term
	}
	if n > 1 {
		// Остался простой сомножитель больше √исходного n.
		sigma *= 1 + n
	}
	return Answer{Shape: ShapeInteger, Int: sigma}, nil
}

func solveGeometry(v Geometry) (Answer, error) {
	// Радиус перпендикулярен касательной, гипотенуза по Пифагору.
	return Answer{Shape: ShapeDecimal, Float: math.Sqrt(v.Radius*v.Radius + v.Tangent*v.Tangent)}, nil
}

// solveProbability: полный перебор 6^n исходов. Экспоненциально по числу
// костей; потолок задаёт MaxDiceEnumeration на стороне извлекателя.
func solveProbability(v Probability) (Answer, error) {
	if v.NumDice < 1 {
		return Answer{}, fmt.Errorf("probability: dice count must be positive, got %d", v.NumDice)
	}
	total := int64(1)
	for i := 0; i < v.NumDice; i++ {
		total *= 6
	}
	favorable := countOutcomes(v.NumDice, v.TargetSum)
	return Answer{Shape: ShapeDecimal, Float: float64(favorable) / float64(total)}, nil
}

func countOutcomes(dice, target int) int64 {
	if dice == 0 {
		if target == 0 {
			return 1
		}
		return 0
	}
	var count int64
	for face := 1; face <= 6; face++ {
		count += countOutcomes(dice-1, target-face)
	}
	return count
}

// solveCalculus: f'(x) = 3ax^2 + 2bx + c; вещественные корни через
// дискриминант, классификация по знаку f''(x) = 6ax + 2b. Отрицательный
// дискриминант даёт пустой список — это штатный исход, не ошибка.
func solveCalculus(v Calculus) (Answer, error) {
	qa := 3 * v.A
	qb := 2 * v.B
	qc := v.C
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return Answer{Shape: ShapeExtrema, Extrema: []Extremum{}}, nil
	}
	sqrtD := math.Sqrt(disc)
	var extrema []Extremum
	for _, x := range []float64{(-qb - sqrtD) / (2 * qa), (-qb + sqrtD) / (2 * qa)} {
		fpp := 6*v.A*x + 2*v.B
		switch {
		case fpp < 0:
			extrema = append(extrema, Extremum{Type: "max", X: x, FX: evalCubic(v, x)})
		case fpp > 0:
			extrema = append(extrema, Extremum{Type: "min", X: x, FX: evalCubic(v, x)})
		default:
			// f'' == 0 — перегиб, не экстремум.
		}
	}
	if extrema == nil {
		extrema = []Extremum{}
	}
	return Answer{Shape: ShapeExtrema, Extrema: sortedExtrema(extrema)}, nil
}

func evalCubic(v Calculus, x float64) float64 {
	return v.A*x*x*x + v.B*x*x + v.C*x + v.D
}

// binomial — C(n, k) мультипликативно, без факториалов.
func binomial(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	res := int64(1)
	for i := 1; i <= k; i++ {
		res = res * int64(n-k+i) / int64(i)
	}
	return res
}
