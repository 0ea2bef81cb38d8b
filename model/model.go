package model

import (
	"encoding/json"
	"math"
)

// request types
const (
	TypeStack = "stack"
	TypeGrid  = "grid"
	TypeStart = "start"
	TypeStop  = "stop"
)

// reply types
const (
	TypeStackSet = "stackSet"
	TypeGridSet  = "gridSet"
	TypeCurve    = "curve"
	TypeStopped  = "stopped"
	TypeError    = "error"
)

// Msg is the envelope exchanged over the websocket. Content carries the
// JSON encoded payload of the given type.
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Start is the optional payload of a start request.
type Start struct {
	Kinematic bool `json:"kinematic"`
}

// Curve is the reply to a start request.
type Curve struct {
	Q         Floats `json:"q"`
	R         Floats `json:"r"`
	Kinematic Floats `json:"kinematic,omitempty"`
}

// Floats encodes non-finite entries as null, which plain float64 slices
// cannot be marshalled with. null decodes back to NaN.
type Floats []float64

func (f Floats) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	out := make([]*float64, len(f))
	for i := range f {
		if !math.IsNaN(f[i]) && !math.IsInf(f[i], 0) {
			out[i] = &f[i]
		}
	}
	return json.Marshal(out)
}

func (f *Floats) UnmarshalJSON(data []byte) error {
	var in []*float64
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in == nil {
		*f = nil
		return nil
	}
	out := make(Floats, len(in))
	for i, v := range in {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	*f = out
	return nil
}
