package solve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func structuredRecord() Record {
	return Record{
		Kind: KindNCkTimesNCk,
		N1:   intPtr(6), K1: intPtr(3),
		N2: intPtr(4), K2: intPtr(2),
	}
}

func TestDecideRoutes(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want Route
	}{
		{"structured", structuredRecord(), RouteStructured},
		{"structured missing field", Record{Kind: KindNCkTimesNCk, N1: intPtr(6), K1: intPtr(3), N2: intPtr(4)}, RouteUntrusted},
		{"unknown kind without text", Record{Kind: "magic_square", N1: intPtr(1), K1: intPtr(1), N2: intPtr(1), K2: intPtr(1)}, RouteUntrusted},
		{"combinatorics text", Record{Problem: "A committee of 5 people from 6 men and 4 women. Must contain at least 3 men and at least 1 woman."}, RoutePatternable},
		{"algebra text", Record{Problem: "If x^2 + y^2 = 25 and xy = 12, find the value of (x + y)^2."}, RoutePatternable},
		{"number theory text", Record{Problem: "Find the sum of all positive divisors of 360."}, RoutePatternable},
		{"geometry text", Record{Problem: "A circle has radius 10. A tangent of length 24 is drawn from P."}, RoutePatternable},
		{"probability text", Record{Problem: "Three dice are rolled. What is the probability that the sum is exactly 10?"}, RoutePatternable},
		{"calculus text", Record{Problem: "If f(x) = x^3 - 6x^2 + 9x + 1, find all local extrema."}, RoutePatternable},
		{"raw field fallback", Record{Raw: "Find the sum of all positive divisors of 12."}, RoutePatternable},
		{"question field fallback", Record{Question: "Three dice are rolled. What is the probability that the sum is exactly 10?"}, RoutePatternable},
		{"unicode powers", Record{Problem: "If x² + y² = 25 and xy = 12, find (x + y)²."}, RoutePatternable},
		{"plain prose", Record{Problem: "Hello, how are you today?"}, RouteUntrusted},
		{"empty record", Record{}, RouteUntrusted},
		{"empty text", Record{Problem: "   "}, RouteUntrusted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.rec)
			assert.Equal(t, tt.want, d.Route)
		})
	}
}

func TestDecideGuardFieldsOnlyOnUntrusted(t *testing.T) {
	ok := Decide(structuredRecord())
	require.Equal(t, RouteStructured, ok.Route)
	assert.Empty(t, ok.GuardCode)
	assert.Empty(t, ok.GuardState)
	assert.Empty(t, ok.GuardAction)
	assert.Empty(t, ok.Reason)

	bad := Decide(Record{Problem: "unparseable nonsense"})
	require.Equal(t, RouteUntrusted, bad.Route)
	assert.Equal(t, GuardUntrusted, bad.GuardCode)
	assert.Equal(t, string(GuardUntrusted), bad.GuardState)
	assert.Equal(t, GuardActionStop, bad.GuardAction)
	assert.NotEmpty(t, bad.Reason)
}

// Канарейка закрытого множества: новый домен обязан появиться сразу
// и в списке ключевых слов, и в списке правил извлечения.
func TestDomainSetClosed(t *testing.T) {
	require.Len(t, domainKeywords, 6)
	require.Len(t, extractRules, 6)
	for _, k := range []Kind{KindCombinatorics, KindAlgebra, KindNumberTheory, KindGeometry, KindProbability, KindCalculus} {
		assert.Contains(t, domainKeywords, k)
	}
}
