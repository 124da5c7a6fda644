// Package section computes derived geometric properties of the
// rectangular cross-section used by the beam-column solver.
package section

// ShearCorrectionFactor is the Timoshenko shear correction factor for a
// solid rectangular section.
const ShearCorrectionFactor = 5.0 / 6.0

// Rectangular is a solid rectangular cross-section. Width and Height are
// in meters and must both be positive.
type Rectangular struct {
	Width  float64
	Height float64
}

// Valid reports whether the dimensions describe a real section.
func (s Rectangular) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Area returns the cross-sectional area A = w·h.
func (s Rectangular) Area() float64 {
	return s.Width * s.Height
}

// MomentOfInertia returns the second moment of area about the neutral
// axis, I = w·h³/12.
func (s Rectangular) MomentOfInertia() float64 {
	return s.Width * s.Height * s.Height * s.Height / 12
}

// ShearArea returns the effective shear area A_s = k·A used by the
// Timoshenko shear-compliance term.
func (s Rectangular) ShearArea() float64 {
	return ShearCorrectionFactor * s.Area()
}

// MaxFiberDistance returns the distance from the neutral axis to the
// extreme fiber, c = h/2.
func (s Rectangular) MaxFiberDistance() float64 {
	return s.Height / 2
}
