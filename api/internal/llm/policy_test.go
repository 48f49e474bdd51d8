package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsComputation(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		want     bool
	}{
		{"case enumeration plan", "enumerate valid cases, use combination formula", false},
		{"divisor sum wording", "prime factorization then divisor sum formula", false},
		{"favorable outcomes wording", "count favorable outcomes, divide by total", false},
		{"derivative plan without digits", "find critical points of the derivative and classify with the second derivative", false},
		{"inline arithmetic", "add 6 + 4 to get the group size", true},
		{"equals a number", "the derivative vanishes at x = 1", true},
		{"zero of the derivative", "find critical points from f'(x)=0", true},
		{"stated answer", "Answer: 180", true},
		{"stated total", "Total: 28 committees", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsComputation(tt.strategy))
		})
	}
}

func TestValidateStructureAcceptsCleanParse(t *testing.T) {
	in := ParseInput{ProblemID: "prob_003", Problem: "Find the sum of all positive divisors of 360.", Category: "number_theory"}
	ps := ParsedStructure{
		ProblemID:   "prob_003",
		ProblemType: "number_theory",
		Variables:   Variables{Scalars: map[string]float64{"n": 360}},
		Strategy:    "prime factorization then divisor sum formula",
	}

	require.NoError(t, ValidateStructure(in, ps))
}

func TestValidateStructureRejections(t *testing.T) {
	in := ParseInput{ProblemID: "prob_003", Category: "number_theory"}
	base := ParsedStructure{
		ProblemID:   "prob_003",
		ProblemType: "number_theory",
		Variables:   Variables{Scalars: map[string]float64{"n": 360}},
		Strategy:    "prime factorization then divisor sum formula",
	}

	tests := []struct {
		name    string
		mutate  func(*ParsedStructure)
		wantErr string
	}{
		{
			"missing problem_id",
			func(ps *ParsedStructure) { ps.ProblemID = "" },
			"missing required field problem_id",
		},
		{
			"missing problem_type",
			func(ps *ParsedStructure) { ps.ProblemType = "" },
			"missing required field problem_type",
		},
		{
			"missing strategy",
			func(ps *ParsedStructure) { ps.Strategy = "" },
			"missing required field strategy",
		},
		{
			"empty variables",
			func(ps *ParsedStructure) { ps.Variables = Variables{} },
			"missing required field variables",
		},
		{
			"computation leaked into strategy",
			func(ps *ParsedStructure) { ps.Strategy = "sum: 1170 by direct addition" },
			"strategy contains numerical computation",
		},
		{
			"problem_id mismatch",
			func(ps *ParsedStructure) { ps.ProblemID = "prob_999" },
			"problem_id mismatch",
		},
		{
			"category mismatch",
			func(ps *ParsedStructure) { ps.ProblemType = "algebra" },
			"category mismatch",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := base
			tt.mutate(&ps)
			err := ValidateStructure(in, ps)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateStructureSkipsMatchChecksWhenInputBlank(t *testing.T) {
	ps := ParsedStructure{
		ProblemID:   "whatever",
		ProblemType: "geometry",
		Variables:   Variables{Scalars: map[string]float64{"radius": 10, "tangent_length": 24}},
		Strategy:    "pythagorean theorem on radius-tangent right triangle",
	}

	assert.NoError(t, ValidateStructure(ParseInput{}, ps))
}
