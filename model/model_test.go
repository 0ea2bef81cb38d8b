package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloats_NonFinite(t *testing.T) {
	c := Curve{
		Q:         Floats{0, 0.1},
		R:         Floats{math.NaN(), 0.25},
		Kinematic: Floats{math.Inf(1), 1e-3},
	}
	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"q":[0,0.1],"r":[null,0.25],"kinematic":[null,0.001]}`, string(data))

	var back Curve
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, math.IsNaN(back.R[0]))
	assert.Equal(t, 0.25, back.R[1])
	assert.True(t, math.IsNaN(back.Kinematic[0]))
}

func TestFloats_OmitEmpty(t *testing.T) {
	data, err := json.Marshal(Curve{Q: Floats{0.1}, R: Floats{1}})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "kinematic")
}
