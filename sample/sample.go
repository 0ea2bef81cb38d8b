// Package sample describes layer stacks and loads them from TOML files.
package sample

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidStack = errors.New("sample: invalid stack")

// Layer is one homogeneous slab. SLD and ISLD are the real and imaginary
// parts of the scattering-length density in Å⁻², Thickness is in Å.
type Layer struct {
	Name      string  `toml:"name" json:"name"`
	Material  string  `toml:"material" json:"material,omitempty"`
	SLD       float64 `toml:"sld" json:"sld"`
	ISLD      float64 `toml:"isld" json:"isld"`
	Thickness float64 `toml:"thickness" json:"thickness"`
}

func (l Layer) Beta() complex128 {
	return complex(l.SLD, l.ISLD)
}

// Stack lists layers top to bottom: superphase first, substrate last.
type Stack struct {
	Name   string  `toml:"name" json:"name"`
	Layers []Layer `toml:"layer" json:"layers"`
}

func (s Stack) Validate() error {
	if len(s.Layers) < 2 {
		return fmt.Errorf("%q has %d layers, need a superphase and a substrate: %w", s.Name, len(s.Layers), ErrInvalidStack)
	}
	for i, l := range s.Layers {
		for _, v := range []float64{l.SLD, l.ISLD, l.Thickness} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("layer %d (%s) holds a non-finite value: %w", i, l.Name, ErrInvalidStack)
			}
		}
		if l.Thickness < 0 {
			return fmt.Errorf("layer %d (%s) has negative thickness %g: %w", i, l.Name, l.Thickness, ErrInvalidStack)
		}
	}
	return nil
}

func (s Stack) Beta() []complex128 {
	beta := make([]complex128, len(s.Layers))
	for i, l := range s.Layers {
		beta[i] = l.Beta()
	}
	return beta
}

// Thickness returns d per layer. The outer two are reported as stored; the
// calculator ignores them.
func (s Stack) Thickness() []float64 {
	d := make([]float64, len(s.Layers))
	for i, l := range s.Layers {
		d[i] = l.Thickness
	}
	return d
}

// Reverse returns the stack seen from the substrate side.
func (s Stack) Reverse() Stack {
	layers := make([]Layer, len(s.Layers))
	for i, l := range s.Layers {
		layers[len(layers)-1-i] = l
	}
	return Stack{Name: s.Name + " (reversed)", Layers: layers}
}

// file and wire layout; pointers tell an explicit zero from an omitted value
type stackFile struct {
	Name   string      `toml:"name" json:"name"`
	Layers []layerFile `toml:"layer" json:"layers"`
}

type layerFile struct {
	Name      string   `toml:"name" json:"name"`
	Material  string   `toml:"material" json:"material"`
	SLD       *float64 `toml:"sld" json:"sld"`
	ISLD      *float64 `toml:"isld" json:"isld"`
	Thickness float64  `toml:"thickness" json:"thickness"`
}

// resolve fills SLDs from the material table where the layer leaves them
// out, rejects unknown materials and validates the result.
func (f stackFile) resolve() (Stack, error) {
	s := Stack{Name: f.Name, Layers: make([]Layer, len(f.Layers))}
	for i, lf := range f.Layers {
		l := Layer{Name: lf.Name, Material: lf.Material, Thickness: lf.Thickness}
		if lf.Material != "" {
			m, ok := Lookup(lf.Material)
			if !ok {
				return Stack{}, fmt.Errorf("layer %d (%s): unknown material %q: %w", i, lf.Name, lf.Material, ErrInvalidStack)
			}
			l.SLD, l.ISLD = m.SLD, m.ISLD
		}
		if lf.SLD != nil {
			l.SLD = *lf.SLD
		}
		if lf.ISLD != nil {
			l.ISLD = *lf.ISLD
		}
		s.Layers[i] = l
	}
	if err := s.Validate(); err != nil {
		return Stack{}, err
	}
	return s, nil
}

// Decode reads a TOML stack.
func Decode(r io.Reader) (Stack, error) {
	var f stackFile
	meta, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return Stack{}, fmt.Errorf("sample: parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Stack{}, fmt.Errorf("unknown keys %s: %w", strings.Join(keys, ", "), ErrInvalidStack)
	}
	return f.resolve()
}

// DecodeJSON reads a stack sent as JSON, with the same material lookup and
// validation as Decode.
func DecodeJSON(data []byte) (Stack, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var f stackFile
	if err := dec.Decode(&f); err != nil {
		return Stack{}, fmt.Errorf("sample: parse JSON: %w", err)
	}
	return f.resolve()
}

// Load reads a stack file.
func Load(path string) (Stack, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stack{}, err
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return Stack{}, fmt.Errorf("%s: %w", path, err)
	}
	log.WithFields(log.Fields{
		"file":   path,
		"name":   s.Name,
		"layers": len(s.Layers),
	}).Info("sample loaded")
	return s, nil
}
