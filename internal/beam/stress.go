package beam

import (
	"fmt"
	"math"

	"github.com/aiexplorations/beam-column-simulation/internal/material"
	"github.com/aiexplorations/beam-column-simulation/internal/section"
)

// Postprocessor derives stress and strain fields from a SolutionField.
// It only reads the field and never mutates it.
type Postprocessor struct {
	sec   section.Rectangular
	mat   material.Material
	axial float64
}

// NewPostprocessor builds a postprocessor for the problem the field was
// solved from.
func NewPostprocessor(prob Problem) *Postprocessor {
	return &Postprocessor{sec: prob.Section, mat: prob.Material, axial: prob.AxialLoad}
}

// StressStrainField holds per-sample derived quantities at one height
// within the cross-section.
type StressStrainField struct {
	X             []float64 // sample positions, shared with the source field
	FiberDistance float64   // height y within the section the stresses refer to (m)

	BendingStress  []float64 // σ_b = M·y/I (Pa)
	AxialStress    []float64 // σ_a = P/A (Pa)
	CombinedStress []float64 // √(σ_b² + σ_a²) (Pa)
	BendingStrain  []float64 // ε_b = σ_b/E
	AxialStrain    []float64 // ε_a = σ_a/E
}

// StressStrain derives stresses and strains at the extreme fiber y = h/2.
func (pp *Postprocessor) StressStrain(f *SolutionField) *StressStrainField {
	ss, _ := pp.StressStrainAt(f, pp.sec.MaxFiberDistance())
	return ss
}

// StressStrainAt derives stresses and strains at height y from the
// neutral axis, |y| <= h/2.
//
// The combined stress is the root sum of squares of bending and axial
// stress, preserved from the original simulator as a conservative scalar
// for reporting. It is not the signed fiber superposition σ_b + σ_a.
func (pp *Postprocessor) StressStrainAt(f *SolutionField, y float64) (*StressStrainField, error) {
	if c := pp.sec.MaxFiberDistance(); math.Abs(y) > c {
		return nil, fmt.Errorf("%w: fiber height %.4g m outside section half-height %.4g m", ErrInvalidGeometry, y, c)
	}

	n := f.Len()
	ss := &StressStrainField{
		X:              f.X,
		FiberDistance:  y,
		BendingStress:  make([]float64, n),
		AxialStress:    make([]float64, n),
		CombinedStress: make([]float64, n),
		BendingStrain:  make([]float64, n),
		AxialStrain:    make([]float64, n),
	}

	inertia := pp.sec.MomentOfInertia()
	sigmaAxial := pp.axial / pp.sec.Area()
	for i, m := range f.Moment {
		sb := m * y / inertia
		ss.BendingStress[i] = sb
		ss.AxialStress[i] = sigmaAxial
		ss.CombinedStress[i] = math.Hypot(sb, sigmaAxial)
		ss.BendingStrain[i] = sb / pp.mat.E
		ss.AxialStrain[i] = sigmaAxial / pp.mat.E
	}
	return ss, nil
}

// Summary collects the reporting extremes over all sampled positions.
type Summary struct {
	MaxDeflection     float64 // max |v| (m)
	MaxBendingStress  float64 // max |σ_b| at the extreme fiber (Pa)
	MaxCombinedStress float64 // max combined stress (Pa)
	MaxMoment         float64 // max |M| (N·m)
	MaxShear          float64 // max |V| (N)

	CriticalBucklingLoad float64 // Euler load for the active support kind (N)
	YieldUtilization     float64 // max combined stress / σ_y
}

// Summarize reduces a solution and its derived stresses to the summary
// record consumers report on.
func Summarize(prob Problem, f *SolutionField, ss *StressStrainField) (*Summary, error) {
	pcr, err := prob.CriticalBucklingLoad()
	if err != nil {
		return nil, err
	}
	return &Summary{
		MaxDeflection:        f.MaxAbsDeflection(),
		MaxBendingStress:     maxAbs(ss.BendingStress),
		MaxCombinedStress:    maxAbs(ss.CombinedStress),
		MaxMoment:            f.MaxAbsMoment(),
		MaxShear:             f.MaxAbsShear(),
		CriticalBucklingLoad: pcr,
		YieldUtilization:     maxAbs(ss.CombinedStress) / prob.Material.YieldStress,
	}, nil
}
