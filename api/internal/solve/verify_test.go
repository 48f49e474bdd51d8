package solve

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAcceptsCorrectAnswers(t *testing.T) {
	variants := []Extracted{
		Combinatorics{N1: 6, N2: 4, Cases: []CaseSplit{{K1: 3, K2: 2}, {K1: 4, K2: 1}}},
		Algebra{SumSquares: 25, Product: 12},
		NumberTheory{N: 360},
		Geometry{Radius: 10, Tangent: 24},
		Probability{NumDice: 3, TargetSum: 10},
		Calculus{A: 1, B: -6, C: 9, D: 1},
	}
	for _, ex := range variants {
		t.Run(string(ex.Kind()), func(t *testing.T) {
			vr := Verify(ex, mustSolve(t, ex))
			assert.True(t, vr.OK)
			assert.Empty(t, vr.GuardCode)
			assert.Empty(t, vr.GuardState)
			assert.Empty(t, vr.GuardAction)
			assert.Empty(t, vr.Reason)
		})
	}
}

func mustSolve(t *testing.T, ex Extracted) Answer {
	t.Helper()
	ans, err := Solve(ex)
	require.NoError(t, err)
	return ans
}

// Мутационный тест отказобезопасности: подменённый ответ обязан
// останавливаться кодом VERIFY_FAIL, а не проходить молча.
func TestVerifyRejectsTamperedAnswers(t *testing.T) {
	tests := []struct {
		name     string
		ex       Extracted
		tampered Answer
		check    int
	}{
		{"combinatorics off by one", Combinatorics{N1: 6, N2: 4, Cases: []CaseSplit{{K1: 3, K2: 2}, {K1: 4, K2: 1}}}, Answer{Shape: ShapeInteger, Int: 181}, 0},
		{"combinatorics negative", Combinatorics{N1: 2, N2: 2, Cases: []CaseSplit{{K1: 1, K2: 1}}}, Answer{Shape: ShapeInteger, Int: -4}, 0},
		{"algebra mismatch", Algebra{SumSquares: 25, Product: 12}, Answer{Shape: ShapeInteger, Int: 50}, 0},
		{"number theory mismatch", NumberTheory{N: 360}, Answer{Shape: ShapeInteger, Int: 1171}, 0},
		{"geometry mismatch", Geometry{Radius: 10, Tangent: 24}, Answer{Shape: ShapeDecimal, Float: 25.5}, 0},
		{"probability above one", Probability{NumDice: 2, TargetSum: 7}, Answer{Shape: ShapeDecimal, Float: 1.5}, 0},
		{"probability zero though achievable", Probability{NumDice: 2, TargetSum: 7}, Answer{Shape: ShapeDecimal, Float: 0}, 1},
		{"calculus three extrema", Calculus{A: 1, B: -6, C: 9, D: 1}, Answer{Shape: ShapeExtrema, Extrema: []Extremum{{Type: "max"}, {Type: "min"}, {Type: "max"}}}, 0},
		{"calculus bad type tag", Calculus{A: 1, B: -6, C: 9, D: 1}, Answer{Shape: ShapeExtrema, Extrema: []Extremum{{Type: "saddle", X: 1, FX: 5}}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vr := Verify(tt.ex, tt.tampered)
			require.False(t, vr.OK)
			assert.Equal(t, GuardVerifyFail, vr.GuardCode)
			assert.Equal(t, string(GuardVerifyFail), vr.GuardState)
			assert.Equal(t, GuardActionStop, vr.GuardAction)
			assert.Equal(t, fmt.Sprintf("Verifier check %d failed.", tt.check), vr.Reason)
		})
	}
}

func TestVerifyNumberTheoryRequiresAnswerAboveTarget(t *testing.T) {
	// σ(1) = 1 не больше 1 — проверка границы честно её режет.
	vr := Verify(NumberTheory{N: 1}, Answer{Shape: ShapeInteger, Int: 1})
	require.False(t, vr.OK)
	assert.Equal(t, GuardVerifyFail, vr.GuardCode)
	assert.Equal(t, "Verifier check 1 failed.", vr.Reason)
}

func TestPascalBinomialMatchesMultiplicative(t *testing.T) {
	for _, c := range []struct{ n, k int }{{6, 3}, {6, 4}, {10, 5}, {8, 0}, {8, 8}, {5, 7}} {
		assert.Equal(t, binomial(c.n, c.k), pascalBinomial(c.n, c.k), "C(%d,%d)", c.n, c.k)
	}
}

func TestDivisorSumDirect(t *testing.T) {
	assert.Equal(t, int64(1170), divisorSumDirect(360))
	assert.Equal(t, int64(28), divisorSumDirect(12))
	assert.Equal(t, int64(1), divisorSumDirect(1))
	assert.Equal(t, int64(0), divisorSumDirect(0))
}
