package bench

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCanonicalProblems(t *testing.T) {
	for _, p := range canonicalProblems() {
		t.Run(p.ID, func(t *testing.T) {
			cls := Classify(p.Problem)
			assert.Equal(t, p.Category, cls.Category)
			assert.False(t, cls.IsTie)
			assert.Greater(t, cls.Confidence, 0)
			assert.Contains(t, cls.MatchedCategories, p.Category)
			assert.Len(t, cls.AllScores, 6)
		})
	}
}

func TestClassifyUnknownText(t *testing.T) {
	cls := Classify("Tell me a story about dragons.")

	assert.Empty(t, cls.Category)
	assert.Zero(t, cls.Confidence)
	assert.False(t, cls.IsTie)
	assert.Empty(t, cls.MatchedCategories)
}

func TestClassifyTieResolvesToEarlierCategory(t *testing.T) {
	// По одному совпадению в комбинаторике и теории чисел.
	cls := Classify("Choose a prime.")

	assert.True(t, cls.IsTie)
	assert.Equal(t, "combinatorics", cls.Category)
	assert.Equal(t, 1, cls.Confidence)
	assert.ElementsMatch(t, []string{"combinatorics", "number_theory"}, cls.MatchedCategories)
}

func TestPatternSolvesAllCanonical(t *testing.T) {
	for _, p := range canonicalProblems() {
		t.Run(p.ID, func(t *testing.T) {
			res := Pattern{}.Solve(context.Background(), p)
			require.Empty(t, res.Error)
			assert.True(t, res.Correct)
			assert.Equal(t, p.Answer, res.Answer)
		})
	}
}

func TestPatternFailsClosed(t *testing.T) {
	t.Run("no category", func(t *testing.T) {
		p := Problem{ID: "x", Problem: "Tell me a story about dragons.", Answer: "42"}
		res := Pattern{}.Solve(context.Background(), p)
		assert.False(t, res.Correct)
		assert.Contains(t, res.Error, "no matching category")
	})

	t.Run("category without extractable data", func(t *testing.T) {
		p := Problem{ID: "x", Problem: "A committee of men and women must be chosen.", Answer: "42"}
		res := Pattern{}.Solve(context.Background(), p)
		assert.False(t, res.Correct)
		assert.Contains(t, res.Error, "deterministic extraction failed")
	})
}
