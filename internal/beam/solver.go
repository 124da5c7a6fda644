package beam

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultSamplePoints is the output resolution when the caller does
	// not choose one.
	DefaultSamplePoints = 100

	// internalSteps is the minimum number of RK4 steps across the whole
	// member; segments between point loads get a proportional share.
	internalSteps = 2048

	// minSegmentSteps keeps short segments between close point loads
	// resolved.
	minSegmentSteps = 16

	// conditionLimit is the shooting-matrix condition number beyond which
	// the solve is rejected as non-convergent.
	conditionLimit = 1e12

	// positionTol matches point-load positions to segment boundaries.
	positionTol = 1e-9
)

// Solver assembles and solves the two-point boundary value problem
//
//	dv/dx = θ + V/(G·A_s)
//	dθ/dx = M/(E·I)
//	dM/dx = V − P·θ
//	dV/dx = −w(x)
//
// with the distributed load w downward positive and point loads applied
// as shear discontinuities on segment boundaries. For a fixed axial load
// P the system is linear in the state, so the two free initial values at
// x=0 follow from a single 2×2 dense solve matching the constraints at
// x=L (shooting by superposition). A Solver holds no state across calls
// and is safe for concurrent use with independent Problems.
type Solver struct {
	prob Problem

	ei  float64 // E·I, bending stiffness
	gas float64 // G·A_s, shear stiffness
	p   float64 // axial load, compression positive
	w   float64 // total distributed load incl. self-weight
}

// NewSolver prepares a solver for the given problem. Validation happens
// in Solve so that a misconstructed Problem still fails loudly.
func NewSolver(prob Problem) *Solver {
	return &Solver{
		prob: prob,
		ei:   prob.Material.E * prob.Section.MomentOfInertia(),
		gas:  prob.Material.ShearModulus() * prob.Section.ShearArea(),
		p:    prob.AxialLoad,
		w:    prob.TotalDistributedLoad(),
	}
}

// Solve integrates the boundary value problem and samples the solution at
// numPoints evenly spaced positions (DefaultSamplePoints when <= 0). The
// first sample is always x=0 and the last x=L.
func (s *Solver) Solve(numPoints int) (*SolutionField, error) {
	if err := s.prob.Validate(); err != nil {
		return nil, err
	}
	if numPoints <= 0 {
		numPoints = DefaultSamplePoints
	}
	if numPoints < 2 {
		numPoints = 2
	}

	if err := s.checkCriticalLoad(); err != nil {
		return nil, err
	}

	forces := s.prob.activePointLoads()
	boundaries := s.segmentBoundaries(forces)

	// Particular solution carries the loads; the two homogeneous
	// solutions carry a unit value in one free initial component each.
	// All three share the same segment grid so they superpose node by
	// node.
	free, err := s.prob.Support.freeComponents()
	if err != nil {
		return nil, err
	}
	particular := s.integrate([stateDim]float64{}, s.w, boundaries, forces)
	var homogeneous [2]trajectory
	for i, comp := range free {
		var y0 [stateDim]float64
		y0[comp] = 1
		homogeneous[i] = s.integrate(y0, 0, boundaries, nil)
	}

	c0, c1, err := s.shoot(particular, homogeneous)
	if err != nil {
		return nil, err
	}

	combined := combine(particular, homogeneous, c0, c1)
	return sample(combined, s.prob.Length, numPoints), nil
}

// checkCriticalLoad guards the shooting solve against axial loads close
// enough to the Euler buckling load to degenerate the linear system.
func (s *Solver) checkCriticalLoad() error {
	if s.p <= 0 {
		return nil
	}
	pcr, err := s.prob.CriticalBucklingLoad()
	if err != nil {
		return err
	}
	margin := s.prob.CriticalLoadMargin
	if margin <= 0 {
		margin = DefaultCriticalLoadMargin
	}
	if s.p >= margin*pcr {
		return &NearCriticalLoadError{AxialLoad: s.p, CriticalLoad: pcr, Margin: margin}
	}
	return nil
}

// shoot solves the 2×2 system that matches the x=L constraints, using
// linearity of the ODEs in the state for fixed P.
func (s *Solver) shoot(particular trajectory, homogeneous [2]trajectory) (float64, float64, error) {
	_, end, err := s.prob.Support.Constraints()
	if err != nil {
		return 0, 0, err
	}

	a := mat.NewDense(2, 2, nil)
	b := mat.NewVecDense(2, nil)
	for row, cons := range end {
		k := cons.Component
		a.Set(row, 0, homogeneous[0].final[k])
		a.Set(row, 1, homogeneous[1].final[k])
		b.SetVec(row, cons.Value-particular.final[k])
	}

	cond := mat.Cond(a, 2)
	if math.IsInf(cond, 1) || cond > conditionLimit {
		return 0, 0, fmt.Errorf("%w: condition number %.3g for %s with P=%.4g N",
			ErrNonConvergent, cond, s.prob.Support, s.p)
	}

	var c mat.VecDense
	if err := c.SolveVec(a, b); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrNonConvergent, err)
	}
	return c.AtVec(0), c.AtVec(1), nil
}

// trajectory is one piecewise RK4 integration across the member. Segment
// boundaries coincide with point-load positions so shear jumps are never
// smeared across a step. final holds the end state after any jump exactly
// at x=L, which is what the end constraints see; the stored segments keep
// the internal (pre-jump) values for sampling.
type trajectory struct {
	segs  []gridSegment
	final [stateDim]float64
}

type gridSegment struct {
	x0, x1 float64
	xs     []float64
	ys     [][stateDim]float64
}

// segmentBoundaries returns the piecewise integration domain: the member
// ends plus every interior point-load position. A force at x=0 passes
// straight into the support (shear there is a shooting unknown, never a
// constraint) and adds no boundary; one at x=L is handled after the last
// segment.
func (s *Solver) segmentBoundaries(forces []pointForce) []float64 {
	l := s.prob.Length
	boundaries := []float64{0}
	for _, f := range forces {
		// forces arrive sorted; collapse coincident loads into one boundary.
		if f.pos > positionTol && f.pos < l-positionTol &&
			f.pos-boundaries[len(boundaries)-1] > positionTol {
			boundaries = append(boundaries, f.pos)
		}
	}
	return append(boundaries, l)
}

// integrate propagates the state from x=0 to x=L with a constant
// distributed load w, splitting the domain at the given boundaries and
// applying the shear discontinuities on them.
func (s *Solver) integrate(y0 [stateDim]float64, w float64, boundaries []float64, forces []pointForce) trajectory {
	l := s.prob.Length
	tr := trajectory{segs: make([]gridSegment, 0, len(boundaries)-1)}
	state := y0
	for i := 0; i+1 < len(boundaries); i++ {
		x0, x1 := boundaries[i], boundaries[i+1]
		steps := int(math.Ceil((x1 - x0) / l * internalSteps))
		if steps < minSegmentSteps {
			steps = minSegmentSteps
		}
		seg := gridSegment{
			x0: x0,
			x1: x1,
			xs: make([]float64, steps+1),
			ys: make([][stateDim]float64, steps+1),
		}
		h := (x1 - x0) / float64(steps)
		seg.xs[0] = x0
		seg.ys[0] = state
		for n := 0; n < steps; n++ {
			state = s.rk4Step(state, h, w)
			seg.xs[n+1] = x0 + float64(n+1)*h
			seg.ys[n+1] = state
		}
		// Exact endpoint, free of step roundoff.
		seg.xs[steps] = x1
		tr.segs = append(tr.segs, seg)

		// Crossing a downward force drops the shear by its magnitude.
		for _, f := range forces {
			if math.Abs(f.pos-x1) <= positionTol {
				state[Shear] -= f.value
			}
		}
	}
	tr.final = state
	return tr
}

// rk4Step advances the state by one classical Runge-Kutta step. The load
// w is constant within a segment, so the derivative depends on the state
// only.
func (s *Solver) rk4Step(y [stateDim]float64, h, w float64) [stateDim]float64 {
	k1 := s.deriv(y, w)
	k2 := s.deriv(stateAdd(y, k1, h/2), w)
	k3 := s.deriv(stateAdd(y, k2, h/2), w)
	k4 := s.deriv(stateAdd(y, k3, h), w)
	var out [stateDim]float64
	for i := range out {
		out[i] = y[i] + h/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return out
}

func (s *Solver) deriv(y [stateDim]float64, w float64) [stateDim]float64 {
	return [stateDim]float64{
		y[Rotation] + y[Shear]/s.gas,
		y[Moment] / s.ei,
		y[Shear] - s.p*y[Rotation],
		-w,
	}
}

func stateAdd(y, k [stateDim]float64, h float64) [stateDim]float64 {
	var out [stateDim]float64
	for i := range out {
		out[i] = y[i] + h*k[i]
	}
	return out
}

// combine superposes the particular and scaled homogeneous trajectories
// on their shared grid.
func combine(particular trajectory, homogeneous [2]trajectory, c0, c1 float64) trajectory {
	out := trajectory{segs: make([]gridSegment, len(particular.segs))}
	for i, seg := range particular.segs {
		cs := gridSegment{
			x0: seg.x0,
			x1: seg.x1,
			xs: seg.xs,
			ys: make([][stateDim]float64, len(seg.ys)),
		}
		h0 := homogeneous[0].segs[i].ys
		h1 := homogeneous[1].segs[i].ys
		for n, y := range seg.ys {
			for k := 0; k < stateDim; k++ {
				cs.ys[n][k] = y[k] + c0*h0[n][k] + c1*h1[n][k]
			}
		}
		out.segs[i] = cs
	}
	for k := 0; k < stateDim; k++ {
		out.final[k] = particular.final[k] + c0*homogeneous[0].final[k] + c1*homogeneous[1].final[k]
	}
	return out
}

// sample evaluates the piecewise solution at numPoints evenly spaced
// positions by linear interpolation on the fine internal grid. At a
// point-load position the left segment's (internal) value is reported.
func sample(tr trajectory, length float64, numPoints int) *SolutionField {
	f := &SolutionField{
		X:          make([]float64, numPoints),
		Deflection: make([]float64, numPoints),
		Rotation:   make([]float64, numPoints),
		Moment:     make([]float64, numPoints),
		Shear:      make([]float64, numPoints),
	}
	for i := 0; i < numPoints; i++ {
		x := length * float64(i) / float64(numPoints-1)
		if i == numPoints-1 {
			x = length
		}
		y := tr.at(x)
		f.X[i] = x
		f.Deflection[i] = y[Deflection]
		f.Rotation[i] = y[Rotation]
		f.Moment[i] = y[Moment]
		f.Shear[i] = y[Shear]
	}
	return f
}

func (tr trajectory) at(x float64) [stateDim]float64 {
	seg := tr.segs[len(tr.segs)-1]
	for _, s := range tr.segs {
		if x <= s.x1 {
			seg = s
			break
		}
	}
	n := len(seg.xs) - 1
	h := (seg.x1 - seg.x0) / float64(n)
	t := (x - seg.x0) / h
	i := int(t)
	if i < 0 {
		i = 0
	}
	if i >= n {
		return seg.ys[n]
	}
	frac := t - float64(i)
	var out [stateDim]float64
	for k := 0; k < stateDim; k++ {
		out[k] = seg.ys[i][k] + frac*(seg.ys[i+1][k]-seg.ys[i][k])
	}
	return out
}
