// Package material provides the static catalog of engineering materials
// available to the beam-column solver.
package material

import (
	"errors"
	"fmt"
	"strings"
)

// Material holds the elastic and strength properties of a catalog entry.
// All values are in SI base units.
type Material struct {
	Name         string
	E            float64 // Young's modulus (Pa)
	PoissonRatio float64
	Density      float64 // kg/m³
	YieldStress  float64 // Pa
}

// ShearModulus derives G from E and the Poisson ratio for an isotropic
// elastic material: G = E / (2(1+ν)).
func (m Material) ShearModulus() float64 {
	return m.E / (2 * (1 + m.PoissonRatio))
}

// ErrUnknownMaterial is returned by Lookup for names not in the catalog.
var ErrUnknownMaterial = errors.New("unknown material")

// Catalog entries. Elastic moduli and densities are typical handbook
// values; wood is a softwood average.
var catalog = []Material{
	{Name: "Steel", E: 200e9, PoissonRatio: 0.30, Density: 7850, YieldStress: 250e6},
	{Name: "Aluminum", E: 69e9, PoissonRatio: 0.33, Density: 2700, YieldStress: 95e6},
	{Name: "Wood", E: 12e9, PoissonRatio: 0.30, Density: 500, YieldStress: 40e6},
	{Name: "Concrete", E: 30e9, PoissonRatio: 0.20, Density: 2400, YieldStress: 30e6},
}

// Lookup returns the catalog entry for the given name, case-insensitively.
func Lookup(name string) (Material, error) {
	for _, m := range catalog {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return Material{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownMaterial, name, strings.Join(Names(), ", "))
}

// Names returns the catalog names in stable order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, m := range catalog {
		names[i] = m.Name
	}
	return names
}
