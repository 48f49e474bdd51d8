package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswersMatch(t *testing.T) {
	tests := []struct {
		name     string
		computed string
		correct  string
		want     bool
	}{
		{"exact", "180", "180", true},
		{"case and spaces", " Max at x=1 (f=5), min at x=3 (f=1) ", "max at x=1 (f=5), min at x=3 (f=1)", true},
		{"computed contains correct", "1/8 or 0.125", "0.125", true},
		{"correct contains computed", "26", "26 units", true},
		{"numeric tolerance", "0.1666666", "0.1666667", true},
		{"numeric mismatch", "0.125", "0.127", false},
		{"plain mismatch", "49", "50", false},
		{"empty computed", "", "180", false},
		{"empty correct", "180", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnswersMatch(tt.computed, tt.correct))
		})
	}
}
