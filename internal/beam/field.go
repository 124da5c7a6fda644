package beam

import "math"

// SolutionField is the sampled equilibrium state of the member. All
// slices have equal length, positions ascend from 0 to the member
// length. The field is immutable once returned by the solver.
type SolutionField struct {
	X          []float64 // sample positions (m)
	Deflection []float64 // v (m), downward loads deflect negative
	Rotation   []float64 // θ (rad), independent of dv/dx (Timoshenko)
	Moment     []float64 // M (N·m)
	Shear      []float64 // V (N)
}

// Len returns the number of samples.
func (f *SolutionField) Len() int {
	return len(f.X)
}

// MaxAbsDeflection returns max |v| over the samples.
func (f *SolutionField) MaxAbsDeflection() float64 {
	return maxAbs(f.Deflection)
}

// MaxAbsMoment returns max |M| over the samples.
func (f *SolutionField) MaxAbsMoment() float64 {
	return maxAbs(f.Moment)
}

// MaxAbsShear returns max |V| over the samples.
func (f *SolutionField) MaxAbsShear() float64 {
	return maxAbs(f.Shear)
}

func maxAbs(vals []float64) float64 {
	m := 0.0
	for _, v := range vals {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}
