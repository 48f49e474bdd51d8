package handle

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/solve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockEngines(strategy string) *llm.Engines {
	return &llm.Engines{
		Mock: &llm.Mock{Structures: map[string]llm.ParsedStructure{
			"prob_003": {
				ProblemID:   "prob_003",
				ProblemType: "number_theory",
				Variables:   llm.Variables{Scalars: map[string]float64{"n": 360}},
				Strategy:    strategy,
			},
		}},
	}
}

func TestSolveEndpoint(t *testing.T) {
	h := New(mockEngines("prime factorization then divisor sum formula"), nil, nil)

	t.Run("solves patternable problem", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/solve",
			strings.NewReader(`{"problem": "Find the sum of all positive divisors of 360"}`))
		rec := httptest.NewRecorder()

		h.Solve(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp solve.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		require.NotNil(t, resp.Answer)
		assert.Equal(t, "1170", *resp.Answer)
		assert.Equal(t, solve.RoutePatternable, resp.Route)
	})

	t.Run("halts untrusted input with null answer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/solve",
			strings.NewReader(`{"problem": "Tell me a story about dragons."}`))
		rec := httptest.NewRecorder()

		h.Solve(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var m map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
		assert.Equal(t, false, m["ok"])
		assert.Contains(t, m, "answer")
		assert.Nil(t, m["answer"])
		assert.Equal(t, "OBS_UNTRUSTED", m["guard_code"])
	})

	t.Run("rejects GET", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Solve(rec, httptest.NewRequest(http.MethodGet, "/v1/solve", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("rejects broken json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Solve(rec, httptest.NewRequest(http.MethodPost, "/v1/solve", strings.NewReader("{oops")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestParseEndpoint(t *testing.T) {
	h := New(mockEngines("prime factorization then divisor sum formula"), nil, nil)

	parseBody := `{
		"llm_name": "mock",
		"problem_id": "prob_003",
		"problem": "Find the sum of all positive divisors of 360",
		"category": "number_theory"
	}`

	t.Run("parses via named engine", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/llm/parse", strings.NewReader(parseBody))
		rec := httptest.NewRecorder()

		h.Parse(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp ParseResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "mock", resp.Engine)
		assert.False(t, resp.Cached)
		assert.Equal(t, "number_theory", resp.Structure.ProblemType)
		n, ok := resp.Structure.Variables.Get("n")
		require.True(t, ok)
		assert.Equal(t, float64(360), n)
	})

	t.Run("unknown engine", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Parse(rec, httptest.NewRequest(http.MethodPost, "/v1/llm/parse",
			strings.NewReader(`{"llm_name": "alien", "problem": "x"}`)))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "unknown engine")
	})

	t.Run("unconfigured engine", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Parse(rec, httptest.NewRequest(http.MethodPost, "/v1/llm/parse",
			strings.NewReader(`{"llm_name": "gemini", "problem": "x"}`)))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "not configured")
	})

	t.Run("empty problem", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Parse(rec, httptest.NewRequest(http.MethodPost, "/v1/llm/parse",
			strings.NewReader(`{"llm_name": "mock", "problem": "  "}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("structure with computation is rejected", func(t *testing.T) {
		tainted := New(mockEngines("sum: 1170"), nil, nil)
		rec := httptest.NewRecorder()
		tainted.Parse(rec, httptest.NewRequest(http.MethodPost, "/v1/llm/parse", strings.NewReader(parseBody)))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid structure")
	})
}
