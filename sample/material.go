package sample

import "strings"

// Material is a tabulated neutron scattering-length density.
type Material struct {
	Name string
	SLD  float64
	ISLD float64
}

// room-temperature neutron SLDs, Å⁻²
var materials = map[string]Material{
	"air":   {Name: "air"},
	"si":    {Name: "Si", SLD: 2.07e-6},
	"sio2":  {Name: "SiO2", SLD: 3.47e-6},
	"d2o":   {Name: "D2O", SLD: 6.36e-6},
	"h2o":   {Name: "H2O", SLD: -0.56e-6},
	"au":    {Name: "Au", SLD: 4.66e-6},
	"ni":    {Name: "Ni", SLD: 9.41e-6},
	"ti":    {Name: "Ti", SLD: -1.95e-6},
	"al2o3": {Name: "Al2O3", SLD: 5.72e-6},
	"cd":    {Name: "Cd", SLD: 5.17e-6, ISLD: 7.0e-7},
}

// Lookup finds a material by case-insensitive name.
func Lookup(name string) (Material, bool) {
	m, ok := materials[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}
