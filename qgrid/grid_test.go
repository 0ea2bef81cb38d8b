package qgrid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
)

func TestGrid_Linear(t *testing.T) {
	q, err := Default().Values()
	require.NoError(t, err)
	require.Len(t, q, 500)
	assert.Equal(t, 0.001, q[0])
	assert.InDelta(t, 0.2, q[499], 1e-15)
	step := (0.2 - 0.001) / 499
	assert.InDelta(t, 0.001+step, q[1], 1e-15)
}

func TestGrid_Log(t *testing.T) {
	q, err := Grid{Min: 0.001, Max: 0.1, Points: 3, Spacing: Log}.Values()
	require.NoError(t, err)
	require.Len(t, q, 3)
	assert.InDelta(t, 0.001, q[0], 1e-15)
	assert.InDelta(t, 0.01, q[1], 1e-15)
	assert.InDelta(t, 0.1, q[2], 1e-15)
}

func TestGrid_Validate(t *testing.T) {
	bad := []Grid{
		{Min: 0, Max: 1, Points: 1},
		{Min: 1, Max: 1, Points: 10},
		{Min: -0.1, Max: 1, Points: 10},
		{Min: 0, Max: math.Inf(1), Points: 10},
		{Min: math.NaN(), Max: 1, Points: 10},
		{Min: 0, Max: 1, Points: 10, Spacing: Log},
		{Min: 0, Max: 1, Points: 10, Spacing: "cubic"},
	}
	for _, g := range bad {
		_, err := g.Values()
		assert.ErrorIsf(t, err, ErrInvalidGrid, "%+v", g)
	}
	assert.NoError(t, Grid{Min: 0, Max: 1, Points: 2}.Validate())
}

func TestParseSpacing(t *testing.T) {
	s, err := ParseSpacing("LOG")
	require.NoError(t, err)
	assert.Equal(t, Log, s)
	s, err = ParseSpacing("")
	require.NoError(t, err)
	assert.Equal(t, Linear, s)
	_, err = ParseSpacing("quadratic")
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

func TestFromConfig(t *testing.T) {
	file, err := ini.Load([]byte(`
[grid]
QMin = 0.005
QMax = 0.3
Points = 1000
Spacing = log
`))
	require.NoError(t, err)
	assert.Equal(t, Grid{Min: 0.005, Max: 0.3, Points: 1000, Spacing: Log}, FromConfig(file))

	assert.Equal(t, Default(), FromConfig(ini.Empty()))

	file, err = ini.Load([]byte("[grid]\nSpacing = spiral\n"))
	require.NoError(t, err)
	assert.Equal(t, Linear, FromConfig(file).Spacing)
}
