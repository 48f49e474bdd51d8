package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariablesUnmarshalMixedScalarTypes(t *testing.T) {
	raw := `{
		"total_men": 6,
		"radius": 10.5,
		"n": "360",
		"coefficients": [1, -6, 9, 1],
		"note": "not a number"
	}`

	var v Variables
	require.NoError(t, json.Unmarshal([]byte(raw), &v))

	assert.Equal(t, map[string]float64{
		"total_men": 6,
		"radius":    10.5,
		"n":         360,
	}, v.Scalars)
	assert.Equal(t, []float64{1, -6, 9, 1}, v.Coefficients)
}

func TestVariablesUnmarshalIgnoresForeignArrays(t *testing.T) {
	var v Variables
	require.NoError(t, json.Unmarshal([]byte(`{"values": [1, 2], "n": 12}`), &v))

	assert.Nil(t, v.Coefficients)
	assert.Equal(t, map[string]float64{"n": 12}, v.Scalars)
}

func TestVariablesMarshalRoundTrip(t *testing.T) {
	orig := Variables{
		Scalars:      map[string]float64{"radius": 10, "tangent_length": 24},
		Coefficients: []float64{1, -6, 9, 1},
	}

	b, err := json.Marshal(orig)
	require.NoError(t, err)

	var back Variables
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, orig.Scalars, back.Scalars)
	assert.Equal(t, orig.Coefficients, back.Coefficients)
}

func TestVariablesIntRoundsToNearest(t *testing.T) {
	v := Variables{Scalars: map[string]float64{"committee_size": 4.99}}

	n, ok := v.Int("committee_size")
	require.True(t, ok)
	assert.Equal(t, 5, n)

	_, ok = v.Int("min_men")
	assert.False(t, ok)
}

func TestVariablesNamesSorted(t *testing.T) {
	v := Variables{Scalars: map[string]float64{"xy": 12, "x_squared_plus_y_squared": 25}}

	assert.Equal(t, []string{"x_squared_plus_y_squared", "xy"}, v.Names())
}
