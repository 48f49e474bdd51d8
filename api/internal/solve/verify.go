package solve

import (
	"fmt"
	"math"
)

// Verify независимо перепроверяет ответ решателя и требует прохождения
// всех проверок. Это избыточность с отказом, а не повтор: алгоритмы
// проверок намеренно отличаются от решательских (биномы складываются
// по Паскалю, сумма делителей считается прямым перебором), чтобы общая
// ошибка двух реализаций не могла взаимно сократиться. Паника внутри
// проверки тоже останавливает конвейер, кодом VERIFY_ERROR.
func Verify(ex Extracted, ans Answer) (vr VerifyResult) {
	defer func() {
		if r := recover(); r != nil {
			vr = failVerify(GuardVerifyError, fmt.Sprintf("Verifier raised: %v", r))
		}
	}()
	checks := checksFor(ex, ans)
	if checks == nil {
		return failVerify(GuardVerifyError, fmt.Sprintf("Verifier has no checks for variant %T.", ex))
	}
	for i, check := range checks {
		if !check() {
			return failVerify(GuardVerifyFail, fmt.Sprintf("Verifier check %d failed.", i))
		}
	}
	return VerifyResult{OK: true}
}

func failVerify(code GuardCode, reason string) VerifyResult {
	return VerifyResult{
		OK:          false,
		GuardCode:   code,
		GuardState:  string(code),
		GuardAction: GuardActionStop,
		Reason:      reason,
	}
}

func checksFor(ex Extracted, ans Answer) []func() bool {
	switch v := ex.(type) {
	case Combinatorics:
		return []func() bool{
			func() bool {
				var total int64
				for _, c := range v.Cases {
					total += pascalBinomial(v.N1, c.K1) * pascalBinomial(v.N2, c.K2)
				}
				return total == ans.Int
			},
			func() bool { return ans.Int > 0 },
			func() bool {
				// Структурная проверка: итог делится на первый бином
				// каждого расклада, не только равенство сумм.
				for _, c := range v.Cases {
					d := pascalBinomial(v.N1, c.K1)
					if d == 0 || ans.Int%d != 0 {
						return false
					}
				}
				return true
			},
		}
	case Algebra:
		return []func() bool{
			func() bool { return int64(v.SumSquares)+2*int64(v.Product) == ans.Int },
			func() bool { return ans.Int >= 0 }, // квадрат не бывает отрицательным
		}
	case NumberTheory:
		return []func() bool{
			func() bool { return divisorSumDirect(v.N) == ans.Int },
			func() bool { return ans.Int > v.N }, // σ(n) > n при n > 1
		}
	case Geometry:
		return []func() bool{
			func() bool {
				re := math.Sqrt(v.Radius*v.Radius + v.Tangent*v.Tangent)
				return math.Abs(re-ans.Float) <= 1e-9*math.Max(1, math.Abs(ans.Float))
			},
			func() bool { return ans.Float > v.Radius && ans.Float > v.Tangent }, // гипотенуза длиннее катетов
		}
	case Probability:
		return []func() bool{
			func() bool { return ans.Float >= 0 && ans.Float <= 1 },
			func() bool {
				achievable := v.TargetSum >= v.NumDice && v.TargetSum <= 6*v.NumDice
				return !achievable || ans.Float > 0
			},
		}
	case Calculus:
		return []func() bool{
			func() bool { return len(ans.Extrema) <= 2 }, // у кубической не больше двух экстремумов
			func() bool {
				for _, e := range ans.Extrema {
					if e.Type != "max" && e.Type != "min" {
						return false
					}
				}
				return true
			},
		}
	}
	return nil
}

// pascalBinomial — C(n, k) сложением по строке треугольника Паскаля.
// Нарочно другой алгоритм, чем мультипликативный binomial решателя.
func pascalBinomial(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}
	row := make([]int64, n+1)
	row[0] = 1
	for i := 1; i <= n; i++ {
		for j := i; j >= 1; j-- {
			row[j] += row[j-1]
		}
	}
	return row[k]
}

// divisorSumDirect — прямой перебор делителей парами до √n,
// без разложения на простые.
func divisorSumDirect(n int64) int64 {
	if n < 1 {
		return 0
	}
	var sum int64
	for i := int64(1); i*i <= n; i++ {
		if n%i != 0 {
			continue
		}
		sum += i
		if other := n / i; other != i {
			sum += other
		}
	}
	return sum
}
