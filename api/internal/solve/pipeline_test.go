package solve

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertHalted проверяет инвариант терминального отказа: ok=false,
// answer=nil, text пустой, guard-поля согласованы с кодом.
func assertHalted(t *testing.T, resp Response, route Route, code GuardCode) {
	t.Helper()
	require.False(t, resp.OK)
	assert.Nil(t, resp.Answer)
	assert.Empty(t, resp.Text)
	assert.Equal(t, route, resp.Route)
	assert.Equal(t, code, resp.GuardCode)
	assert.Equal(t, string(code), resp.GuardState)
	assert.Equal(t, GuardActionStop, resp.GuardAction)
	assert.NotEmpty(t, resp.Reason)
}

func assertSolved(t *testing.T, resp Response, answer string) {
	t.Helper()
	require.True(t, resp.OK, "pipeline halted: %s %s", resp.GuardCode, resp.Reason)
	require.NotNil(t, resp.Answer)
	assert.Equal(t, answer, *resp.Answer)
	assert.NotEmpty(t, resp.Text)
	assert.Empty(t, resp.GuardCode)
	assert.Empty(t, resp.GuardState)
	assert.Empty(t, resp.GuardAction)
	assert.Empty(t, resp.Reason)
}

func TestSolveProblemCanonical(t *testing.T) {
	tests := []struct {
		name    string
		problem string
		answer  string
	}{
		{
			"combinatorics committee",
			"A committee of 5 people from 6 men and 4 women. Must contain at least 3 men and at least 1 woman.",
			"180",
		},
		{
			"algebra square identity",
			"If x^2 + y^2 = 25 and xy = 12, find (x + y)^2",
			"49",
		},
		{
			"number theory divisor sum",
			"Find the sum of all positive divisors of 360",
			"1170",
		},
		{
			"geometry circle tangent",
			"A circle has radius 10. Tangent from P has length 24. Find distance OP.",
			"26",
		},
		{
			"probability three dice",
			"Three dice are rolled. What is the probability that the sum is exactly 10?",
			"0.125",
		},
		{
			"calculus cubic extrema",
			"If f(x) = x^3 - 6x^2 + 9x + 1, find all local extrema",
			"max at x=1 (f=5), min at x=3 (f=1)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := SolveProblem(Record{Problem: tt.problem})
			assertSolved(t, resp, tt.answer)
			assert.Equal(t, RoutePatternable, resp.Route)
		})
	}
}

// Те же шаблоны с другими числами обязаны давать другие ответы:
// значения считаются из извлечённых данных, а не зашиты в код.
func TestSolveProblemInputSensitivity(t *testing.T) {
	tests := []struct {
		name     string
		problem  string
		answer   string
		notEqual string
	}{
		{
			"combinatorics",
			"A committee of 7 people from 10 men and 8 women. Must contain at least 4 men and at least 2 women.",
			"18816",
			"180",
		},
		{
			"algebra",
			"If x^2 + y^2 = 50 and xy = 20, find (x + y)^2",
			"90",
			"49",
		},
		{
			"number theory",
			"Find the sum of all positive divisors of 12",
			"28",
			"1170",
		},
		{
			"geometry",
			"A circle has radius 5. Tangent from P has length 12. Find distance OP.",
			"13",
			"26",
		},
		{
			"probability",
			"Two dice are rolled. What is the probability that the sum is exactly 7?",
			"0.16666666666666666",
			"0.125",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := SolveProblem(Record{Problem: tt.problem})
			assertSolved(t, resp, tt.answer)
			assert.NotEqual(t, tt.notEqual, *resp.Answer)
		})
	}

	t.Run("calculus", func(t *testing.T) {
		resp := SolveProblem(Record{Problem: "If f(x) = x^3 - 3x^2 + 2x + 5, find all local extrema"})
		assertSolved(t, resp, "max at x=0.42265 (f=5.3849), min at x=1.57735 (f=4.6151)")
		assert.NotContains(t, *resp.Answer, "x=3")
	})
}

// Один вход — байт-в-байт один выход, сколько раз ни вызывай.
func TestSolveProblemDeterministic(t *testing.T) {
	records := []Record{
		{Problem: "A committee of 5 people from 6 men and 4 women. Must contain at least 3 men and at least 1 woman."},
		{Problem: "Find the sum of all positive divisors of 360"},
		{Problem: "What is the capital of France?"},
		{},
	}
	for _, rec := range records {
		first := SolveProblem(rec)
		second := SolveProblem(rec)
		require.Equal(t, first, second)

		b1, err := json.Marshal(first)
		require.NoError(t, err)
		b2, err := json.Marshal(second)
		require.NoError(t, err)
		assert.Equal(t, b1, b2)
	}
}

func TestSolveProblemUntrusted(t *testing.T) {
	for _, rec := range []Record{
		{},
		{Problem: "What is the capital of France?"},
		{Problem: "Explain why the sky is blue."},
		{Text: "   "},
	} {
		resp := SolveProblem(rec)
		assertHalted(t, resp, RouteUntrusted, GuardUntrusted)
		assert.Equal(t, "No trusted structure and no patternable text detected.", resp.Reason)
	}
}

func TestSolveProblemExtractFail(t *testing.T) {
	tests := []struct {
		name    string
		problem string
	}{
		{"committee without numbers", "A committee of men and women must be chosen."},
		{"dice above enumeration ceiling", "Nine dice are rolled. What is the probability that the sum is exactly 30?"},
		{"tangent without lengths", "A tangent touches the circle at a single point."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := SolveProblem(Record{Problem: tt.problem})
			assertHalted(t, resp, RoutePatternable, GuardExtractFail)
			assert.Equal(t, "Deterministic extraction failed.", resp.Reason)
		})
	}
}

// Перестраховочная проверка σ(n) > n заведомо режет n=1: конвейер
// останавливается на верификации, а не отдаёт ответ.
func TestSolveProblemVerifyStopsEdgeDivisorSum(t *testing.T) {
	resp := SolveProblem(Record{Problem: "Find the sum of all positive divisors of 1"})
	assertHalted(t, resp, RoutePatternable, GuardVerifyFail)
	assert.Equal(t, "Verifier check 1 failed.", resp.Reason)
}

func TestSolveProblemStructured(t *testing.T) {
	rec := Record{
		Kind: KindNCkTimesNCk,
		N1:   intPtr(6), K1: intPtr(3),
		N2: intPtr(4), K2: intPtr(2),
	}
	resp := SolveProblem(rec)
	assertSolved(t, resp, "120")
	assert.Equal(t, RouteStructured, resp.Route)
	assert.Equal(t, "Choose 3 from 6 and 2 from 4, independently.\nTotal ways = C(6,3) × C(4,2) = 120.", resp.Text)
}

// Структурированная запись без одного поля не проходит Gate и не
// доходит до разыменования указателей.
func TestSolveProblemStructuredMissingField(t *testing.T) {
	rec := Record{
		Kind: KindNCkTimesNCk,
		N1:   intPtr(6), K1: intPtr(3),
		N2: intPtr(4),
	}
	resp := SolveProblem(rec)
	assertHalted(t, resp, RouteUntrusted, GuardUntrusted)
}

// Защитная ветка structured-пути: неизвестный дискриминатор.
func TestSolveStructuredUnknownKind(t *testing.T) {
	resp := solveStructured(Record{Kind: "nCk_plus_nCk"})
	assertHalted(t, resp, RouteStructured, GuardUnsupportedKind)
	assert.Equal(t, `Unsupported structured kind: "nCk_plus_nCk".`, resp.Reason)
}

// Защитная ветка patternable-пути: пустой текст.
func TestSolvePatternableNoText(t *testing.T) {
	resp := solvePatternable(Record{})
	assertHalted(t, resp, RoutePatternable, GuardNoRawText)
	assert.Equal(t, "No raw problem text found on the record.", resp.Reason)
}

func TestSolveProblemUnicodePowers(t *testing.T) {
	resp := SolveProblem(Record{Problem: "If x² + y² = 25 and xy = 12, find (x + y)²"})
	assertSolved(t, resp, "49")
}

func TestSolveProblemFieldPriority(t *testing.T) {
	resp := SolveProblem(Record{
		Raw:      "Find the sum of all positive divisors of 12",
		Question: "Find the sum of all positive divisors of 360",
	})
	assertSolved(t, resp, "28")
}

// Недостижимая сумма — штатный успех с вероятностью 0, не отказ.
func TestSolveProblemUnreachableDiceSum(t *testing.T) {
	resp := SolveProblem(Record{Problem: "Three dice are rolled. What is the probability that the sum is exactly 100?"})
	assertSolved(t, resp, "0")
}

// Кубическая без вещественных критических точек — успех с пустым списком.
func TestSolveProblemNoExtrema(t *testing.T) {
	resp := SolveProblem(Record{Problem: "If f(x) = x^3 + 3x + 1, find all local extrema"})
	assertSolved(t, resp, "no local extrema")
	assert.Contains(t, resp.Text, "no real critical points")
}

func TestResponseJSONShape(t *testing.T) {
	t.Run("failure serializes null answer and empty text", func(t *testing.T) {
		resp := SolveProblem(Record{Problem: "What is the capital of France?"})
		b, err := json.Marshal(resp)
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(b, &m))
		assert.Equal(t, false, m["ok"])
		assert.Contains(t, m, "answer")
		assert.Nil(t, m["answer"])
		assert.Equal(t, "", m["text"])
		assert.Equal(t, "UNTRUSTED", m["route"])
		assert.Equal(t, "OBS_UNTRUSTED", m["guard_code"])
		assert.Equal(t, "OBS_UNTRUSTED", m["guard_state"])
		assert.Equal(t, "STOP", m["guard_action"])
	})

	t.Run("success omits guard fields", func(t *testing.T) {
		resp := SolveProblem(Record{Problem: "Find the sum of all positive divisors of 360"})
		b, err := json.Marshal(resp)
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(b, &m))
		assert.Equal(t, true, m["ok"])
		assert.Equal(t, "1170", m["answer"])
		assert.NotContains(t, m, "guard_code")
		assert.NotContains(t, m, "guard_state")
		assert.NotContains(t, m, "guard_action")
		assert.NotContains(t, m, "reason")
	})
}
