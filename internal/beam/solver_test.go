package beam

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/aiexplorations/beam-column-simulation/internal/material"
	"github.com/aiexplorations/beam-column-simulation/internal/section"
)

func steel(t *testing.T) material.Material {
	t.Helper()
	m, err := material.Lookup("Steel")
	if err != nil {
		t.Fatalf("steel lookup failed: %v", err)
	}
	return m
}

// slenderProblem returns a member slender enough that shear deformation
// stays below the closed-form comparison tolerance.
func slenderProblem(t *testing.T, support BoundaryCondition, length float64) Problem {
	return Problem{
		Length:   length,
		Section:  section.Rectangular{Width: 0.05, Height: 0.05},
		Material: steel(t),
		Support:  support,
	}
}

func TestCantileverUniformLoadClosedForm(t *testing.T) {
	prob := slenderProblem(t, Cantilever, 3.0)
	prob.LateralLoad = 1000

	field, err := NewSolver(prob).Solve(201)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	ei := prob.Material.E * prob.Section.MomentOfInertia()
	want := prob.LateralLoad * math.Pow(prob.Length, 4) / (8 * ei)
	got := field.MaxAbsDeflection()
	if !scalar.EqualWithinRel(got, want, 1e-3) {
		t.Errorf("tip deflection: got %.6g m, want %.6g m (wL⁴/8EI)", got, want)
	}

	// The tip deflects the most.
	if tip := math.Abs(field.Deflection[field.Len()-1]); tip != got {
		t.Errorf("max deflection %.6g m not at the free end (tip %.6g m)", got, tip)
	}
}

func TestSimplySupportedMidspanPointLoad(t *testing.T) {
	const pc = 5000.0
	prob := slenderProblem(t, SimplySupported, 4.0)
	prob.PointLoads = []PointLoad{{Magnitude: pc, Position: 0.5}}

	field, err := NewSolver(prob).Solve(101)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	ei := prob.Material.E * prob.Section.MomentOfInertia()
	want := pc * math.Pow(prob.Length, 3) / (48 * ei)
	mid := field.Len() / 2
	if got := math.Abs(field.Deflection[mid]); !scalar.EqualWithinRel(got, want, 1e-3) {
		t.Errorf("midspan deflection: got %.6g m, want %.6g m (PL³/48EI)", got, want)
	}

	// Midspan moment PL/4, shear ±P/2 on either side of the load.
	if got := field.Moment[mid]; !scalar.EqualWithinRel(got, pc*prob.Length/4, 1e-3) {
		t.Errorf("midspan moment: got %.6g, want %.6g (PL/4)", got, pc*prob.Length/4)
	}
	left, right := field.Shear[mid-1], field.Shear[mid+1]
	if !scalar.EqualWithinAbs(left, pc/2, 1) || !scalar.EqualWithinAbs(right, -pc/2, 1) {
		t.Errorf("shear jump across load: left %.6g, right %.6g, want ±%.6g", left, right, pc/2)
	}
}

func TestFixedFixedEndMoment(t *testing.T) {
	prob := slenderProblem(t, FixedFixed, 4.0)
	prob.LateralLoad = 2000

	field, err := NewSolver(prob).Solve(101)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	// Fixed-end moment wL²/12 holds exactly for a uniform symmetric
	// member regardless of shear flexibility.
	want := prob.LateralLoad * prob.Length * prob.Length / 12
	if got := math.Abs(field.Moment[0]); !scalar.EqualWithinRel(got, want, 1e-6) {
		t.Errorf("fixed-end moment: got %.8g, want %.8g (wL²/12)", got, want)
	}
}

// endToEndProblem is the documented regression baseline: 2 m steel
// cantilever, 0.1x0.1 m section, 50 kN axial, 10 kN/m lateral,
// self-weight, 25 kN down at ξ=0.2 and 25 kN up at ξ=0.8.
func endToEndProblem(t *testing.T) Problem {
	return Problem{
		Length:            2.0,
		Section:           section.Rectangular{Width: 0.1, Height: 0.1},
		Material:          steel(t),
		Support:           Cantilever,
		AxialLoad:         50e3,
		LateralLoad:       10e3,
		IncludeSelfWeight: true,
		PointLoads: []PointLoad{
			{Magnitude: 25e3, Position: 0.2, Direction: Downward},
			{Magnitude: 25e3, Position: 0.8, Direction: Upward},
		},
	}
}

func TestEndToEndScenario(t *testing.T) {
	prob := endToEndProblem(t)

	field, err := NewSolver(prob).Solve(0)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if field.Len() != DefaultSamplePoints {
		t.Fatalf("sample count: got %d, want %d", field.Len(), DefaultSamplePoints)
	}
	if field.X[0] != 0 || field.X[field.Len()-1] != prob.Length {
		t.Errorf("sample range [%.6g, %.6g], want [0, %.6g]", field.X[0], field.X[field.Len()-1], prob.Length)
	}
	for i := 0; i < field.Len(); i++ {
		for _, v := range []float64{field.Deflection[i], field.Rotation[i], field.Moment[i], field.Shear[i]} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("non-finite state at sample %d (x=%.4g)", i, field.X[i])
			}
		}
	}

	// Order-of-magnitude sanity bounds for a member of this stiffness.
	if d := field.MaxAbsDeflection(); d < 1e-3 || d > 0.1 {
		t.Errorf("max deflection %.6g m outside expected range [1e-3, 0.1] m", d)
	}
	if m := field.MaxAbsMoment(); m < 5e2 || m > 1e5 {
		t.Errorf("max moment %.6g N·m outside expected range [5e2, 1e5]", m)
	}
}

func TestEquilibriumResiduals(t *testing.T) {
	prob := endToEndProblem(t)

	field, err := NewSolver(prob).Solve(401)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	w := prob.TotalDistributedLoad()
	dx := field.X[1] - field.X[0]

	// Skip samples adjacent to shear discontinuities, where a central
	// difference straddles the jump.
	nearLoad := func(x float64) bool {
		for _, pl := range prob.PointLoads {
			if math.Abs(x-pl.Position*prob.Length) <= 1.5*dx {
				return true
			}
		}
		return false
	}

	shearScale := field.MaxAbsShear()
	for i := 1; i < field.Len()-1; i++ {
		if nearLoad(field.X[i]) {
			continue
		}
		dM := (field.Moment[i+1] - field.Moment[i-1]) / (2 * dx)
		wantdM := field.Shear[i] - prob.AxialLoad*field.Rotation[i]
		if !scalar.EqualWithinAbs(dM, wantdM, 1e-3*shearScale) {
			t.Fatalf("dM/dx residual at x=%.4g: got %.6g, want %.6g", field.X[i], dM, wantdM)
		}
		dV := (field.Shear[i+1] - field.Shear[i-1]) / (2 * dx)
		if !scalar.EqualWithinAbs(dV, -w, 1e-6*w+1e-6) {
			t.Fatalf("dV/dx residual at x=%.4g: got %.6g, want %.6g", field.X[i], dV, -w)
		}
	}
}

func TestBoundaryConstraintsSatisfied(t *testing.T) {
	for _, kind := range BoundaryConditions() {
		t.Run(string(kind), func(t *testing.T) {
			prob := slenderProblem(t, kind, 2.0)
			prob.LateralLoad = 3000
			prob.AxialLoad = 10e3
			prob.PointLoads = []PointLoad{{Magnitude: 2000, Position: 0.3}}

			field, err := NewSolver(prob).Solve(101)
			if err != nil {
				t.Fatalf("solve failed: %v", err)
			}

			scale := []float64{
				math.Max(field.MaxAbsDeflection(), 1e-12),
				math.Max(maxAbs(field.Rotation), 1e-12),
				math.Max(field.MaxAbsMoment(), 1e-12),
				math.Max(field.MaxAbsShear(), 1e-12),
			}
			value := func(c Constraint, idx int) float64 {
				switch c.Component {
				case Deflection:
					return field.Deflection[idx]
				case Rotation:
					return field.Rotation[idx]
				case Moment:
					return field.Moment[idx]
				default:
					return field.Shear[idx]
				}
			}

			start, end, err := kind.Constraints()
			if err != nil {
				t.Fatalf("constraints: %v", err)
			}
			last := field.Len() - 1
			for _, c := range start {
				if got := value(c, 0); math.Abs(got-c.Value) > 1e-8*scale[c.Component] {
					t.Errorf("%s(0) = %.6g, want %.6g", c.Component, got, c.Value)
				}
			}
			for _, c := range end {
				if got := value(c, last); math.Abs(got-c.Value) > 1e-8*scale[c.Component] {
					t.Errorf("%s(L) = %.6g, want %.6g", c.Component, got, c.Value)
				}
			}
		})
	}
}

func TestNearCriticalLoadDetection(t *testing.T) {
	prob := slenderProblem(t, SimplySupported, 2.0)
	prob.LateralLoad = 1000
	pcr, err := prob.CriticalBucklingLoad()
	if err != nil {
		t.Fatalf("critical load: %v", err)
	}

	prob.AxialLoad = 0.95 * pcr
	if _, err := NewSolver(prob).Solve(51); !errors.Is(err, ErrNearCriticalLoad) {
		t.Fatalf("P=0.95Pcr: got %v, want ErrNearCriticalLoad", err)
	}

	var ncErr *NearCriticalLoadError
	_, err = NewSolver(prob).Solve(51)
	if !errors.As(err, &ncErr) {
		t.Fatalf("error does not carry load context: %v", err)
	}
	if !scalar.EqualWithinRel(ncErr.CriticalLoad, pcr, 1e-12) || !scalar.EqualWithinRel(ncErr.AxialLoad, prob.AxialLoad, 1e-12) {
		t.Errorf("context P=%.6g, Pcr=%.6g, want P=%.6g, Pcr=%.6g", ncErr.AxialLoad, ncErr.CriticalLoad, prob.AxialLoad, pcr)
	}

	prob.AxialLoad = 0.85 * pcr
	if _, err := NewSolver(prob).Solve(51); err != nil {
		t.Errorf("P=0.85Pcr should solve, got %v", err)
	}

	// The margin is configurable.
	prob.CriticalLoadMargin = 0.8
	if _, err := NewSolver(prob).Solve(51); !errors.Is(err, ErrNearCriticalLoad) {
		t.Errorf("P=0.85Pcr with margin 0.8: got %v, want ErrNearCriticalLoad", err)
	}
}

func TestPDeltaAmplification(t *testing.T) {
	prob := slenderProblem(t, SimplySupported, 3.0)
	prob.LateralLoad = 1000

	base, err := NewSolver(prob).Solve(101)
	if err != nil {
		t.Fatalf("P=0 solve failed: %v", err)
	}

	pcr, err := prob.CriticalBucklingLoad()
	if err != nil {
		t.Fatalf("critical load: %v", err)
	}
	prob.AxialLoad = 0.5 * pcr
	amplified, err := NewSolver(prob).Solve(101)
	if err != nil {
		t.Fatalf("P=0.5Pcr solve failed: %v", err)
	}

	// At half the buckling load the classical amplification factor is
	// about 1/(1-P/Pcr) = 2.
	ratio := amplified.MaxAbsDeflection() / base.MaxAbsDeflection()
	if ratio < 1.8 || ratio > 2.3 {
		t.Errorf("P-Δ amplification ratio %.4g, want ≈ 2 at P=Pcr/2", ratio)
	}
}

func TestHingedFreeNeedsAxialLoad(t *testing.T) {
	// Without axial load a pinned-free member is a mechanism for lateral
	// load: the shooting matrix is singular.
	prob := slenderProblem(t, HingedFree, 2.0)
	prob.LateralLoad = 1000
	if _, err := NewSolver(prob).Solve(51); !errors.Is(err, ErrNonConvergent) {
		t.Fatalf("P=0: got %v, want ErrNonConvergent", err)
	}

	// Compression below the critical load stabilizes it through the P-θ
	// coupling.
	prob.AxialLoad = 20e3
	if _, err := NewSolver(prob).Solve(51); err != nil {
		t.Errorf("P=20 kN: got %v, want success", err)
	}
}

func TestSolveIsDeterministic(t *testing.T) {
	prob := endToEndProblem(t)

	first, err := NewSolver(prob).Solve(77)
	if err != nil {
		t.Fatalf("first solve failed: %v", err)
	}
	second, err := NewSolver(prob).Solve(77)
	if err != nil {
		t.Fatalf("second solve failed: %v", err)
	}

	for i := 0; i < first.Len(); i++ {
		if first.X[i] != second.X[i] ||
			first.Deflection[i] != second.Deflection[i] ||
			first.Rotation[i] != second.Rotation[i] ||
			first.Moment[i] != second.Moment[i] ||
			first.Shear[i] != second.Shear[i] {
			t.Fatalf("solutions differ at sample %d", i)
		}
	}
}

func TestZeroMagnitudePointLoadsIgnored(t *testing.T) {
	prob := slenderProblem(t, Cantilever, 2.0)
	prob.LateralLoad = 1000

	plain, err := NewSolver(prob).Solve(51)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	prob.PointLoads = []PointLoad{{Magnitude: 0, Position: 0.5}}
	withZero, err := NewSolver(prob).Solve(51)
	if err != nil {
		t.Fatalf("solve with zero load failed: %v", err)
	}

	for i := 0; i < plain.Len(); i++ {
		if plain.Deflection[i] != withZero.Deflection[i] {
			t.Fatalf("zero-magnitude load changed the solution at sample %d", i)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	base := func() Problem { return endToEndProblem(t) }

	cases := []struct {
		name   string
		mutate func(*Problem)
		want   error
	}{
		{"zero length", func(p *Problem) { p.Length = 0 }, ErrInvalidGeometry},
		{"negative width", func(p *Problem) { p.Section.Width = -0.1 }, ErrInvalidGeometry},
		{"zero height", func(p *Problem) { p.Section.Height = 0 }, ErrInvalidGeometry},
		{"bad support", func(p *Problem) { p.Support = "propped" }, ErrInvalidBoundaryCondition},
		{"six point loads", func(p *Problem) {
			p.PointLoads = make([]PointLoad, 6)
			for i := range p.PointLoads {
				p.PointLoads[i] = PointLoad{Magnitude: 1000, Position: 0.1 * float64(i+1)}
			}
		}, ErrTooManyPointLoads},
		{"negative magnitude", func(p *Problem) {
			p.PointLoads = []PointLoad{{Magnitude: -5, Position: 0.5}}
		}, ErrInvalidPointLoad},
		{"position out of range", func(p *Problem) {
			p.PointLoads = []PointLoad{{Magnitude: 5, Position: 1.5}}
		}, ErrInvalidPointLoad},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prob := base()
			tc.mutate(&prob)
			if _, err := NewSolver(prob).Solve(51); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestSelfWeightLoad(t *testing.T) {
	prob := endToEndProblem(t)

	want := prob.Material.Density * prob.Section.Area() * StandardGravity
	if got := prob.SelfWeightLoad(); !scalar.EqualWithinRel(got, want, 1e-12) {
		t.Errorf("self-weight: got %.6g N/m, want %.6g N/m", got, want)
	}

	prob.IncludeSelfWeight = false
	if got := prob.SelfWeightLoad(); got != 0 {
		t.Errorf("disabled self-weight: got %.6g N/m, want 0", got)
	}
	if got := prob.TotalDistributedLoad(); got != prob.LateralLoad {
		t.Errorf("total load without self-weight: got %.6g, want %.6g", got, prob.LateralLoad)
	}
}
