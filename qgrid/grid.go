// Package qgrid describes the momentum-transfer points a curve is evaluated
// on.
package qgrid

import (
	"errors"
	"fmt"
	"math"
	"strings"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/ini.v1"
)

var ErrInvalidGrid = errors.New("qgrid: invalid grid")

type Spacing string

const (
	Linear Spacing = "linear"
	Log    Spacing = "log"
)

// ParseSpacing accepts "linear", "log" and "" (linear).
func ParseSpacing(s string) (Spacing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Linear):
		return Linear, nil
	case string(Log), "logarithmic":
		return Log, nil
	}
	return "", fmt.Errorf("unknown spacing %q: %w", s, ErrInvalidGrid)
}

// Grid is Points values of q from Min to Max inclusive, in inverse Å.
type Grid struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Points  int     `json:"points"`
	Spacing Spacing `json:"spacing"`
}

// Default matches the usual neutron reflectometry window.
func Default() Grid {
	return Grid{Min: 0.001, Max: 0.2, Points: 500, Spacing: Linear}
}

func (g Grid) Validate() error {
	if g.Points < 2 {
		return fmt.Errorf("need at least 2 points, got %d: %w", g.Points, ErrInvalidGrid)
	}
	if math.IsNaN(g.Min) || math.IsNaN(g.Max) || math.IsInf(g.Min, 0) || math.IsInf(g.Max, 0) {
		return fmt.Errorf("bounds must be finite: %w", ErrInvalidGrid)
	}
	if g.Min < 0 || g.Min >= g.Max {
		return fmt.Errorf("need 0 <= min < max, got [%g, %g]: %w", g.Min, g.Max, ErrInvalidGrid)
	}
	switch g.Spacing {
	case "", Linear:
	case Log:
		if g.Min == 0 {
			return fmt.Errorf("log spacing needs min > 0: %w", ErrInvalidGrid)
		}
	default:
		return fmt.Errorf("unknown spacing %q: %w", g.Spacing, ErrInvalidGrid)
	}
	return nil
}

// Values generates the grid.
func (g Grid) Values() ([]float64, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	dst := make([]float64, g.Points)
	if g.Spacing == Log {
		return floats.LogSpan(dst, g.Min, g.Max), nil
	}
	return floats.Span(dst, g.Min, g.Max), nil
}

// FromConfig reads the [grid] section, falling back to Default for missing
// or malformed keys.
func FromConfig(file *ini.File) Grid {
	def := Default()
	sec := file.Section("grid")
	g := Grid{
		Min:    sec.Key("QMin").MustFloat64(def.Min),
		Max:    sec.Key("QMax").MustFloat64(def.Max),
		Points: sec.Key("Points").MustInt(def.Points),
	}
	spacing, err := ParseSpacing(sec.Key("Spacing").MustString(string(def.Spacing)))
	if err != nil {
		log.WithError(err).Warn("grid spacing ignored")
		spacing = def.Spacing
	}
	g.Spacing = spacing
	return g
}
