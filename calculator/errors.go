package calculator

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned before any computation when beta and d differ
// in length or describe fewer than two layers.
var ErrShapeMismatch = errors.New("calculator: shape mismatch")

// validate checks the layer arrays. q may be empty.
func validate(beta []complex128, d []float64) error {
	if len(beta) != len(d) {
		return fmt.Errorf("beta has %d layers but d has %d: %w", len(beta), len(d), ErrShapeMismatch)
	}
	if len(beta) < 2 {
		return fmt.Errorf("need a superphase and a substrate, got %d layers: %w", len(beta), ErrShapeMismatch)
	}
	return nil
}
