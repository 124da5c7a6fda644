package beam

import "fmt"

// BoundaryCondition names one of the four supported support pairs.
type BoundaryCondition string

const (
	// Cantilever is fixed at x=0 and free at x=L.
	Cantilever BoundaryCondition = "cantilever"
	// SimplySupported is hinged at both ends.
	SimplySupported BoundaryCondition = "simply_supported"
	// FixedFixed is fixed at both ends.
	FixedFixed BoundaryCondition = "fixed_fixed"
	// HingedFree is pinned at x=0 and free at x=L.
	HingedFree BoundaryCondition = "hinged_free"
)

// BoundaryConditions lists the supported kinds in stable order.
func BoundaryConditions() []BoundaryCondition {
	return []BoundaryCondition{Cantilever, SimplySupported, FixedFixed, HingedFree}
}

// Valid reports whether the kind is one of the four supported pairs.
func (bc BoundaryCondition) Valid() bool {
	switch bc {
	case Cantilever, SimplySupported, FixedFixed, HingedFree:
		return true
	}
	return false
}

func (bc BoundaryCondition) String() string {
	switch bc {
	case Cantilever:
		return "Cantilever (fixed-free)"
	case SimplySupported:
		return "Simply supported (hinged-hinged)"
	case FixedFixed:
		return "Fixed-fixed"
	case HingedFree:
		return "Hinged-free (pinned-free)"
	}
	return string(bc)
}

// StateComponent indexes the ODE state vector (v, θ, M, V).
type StateComponent int

const (
	Deflection StateComponent = iota
	Rotation
	Moment
	Shear

	stateDim = 4
)

func (c StateComponent) String() string {
	switch c {
	case Deflection:
		return "v"
	case Rotation:
		return "theta"
	case Moment:
		return "M"
	case Shear:
		return "V"
	}
	return fmt.Sprintf("component(%d)", int(c))
}

// Constraint fixes one state component to a value at a member end. All
// supported support pairs prescribe zero values only.
type Constraint struct {
	Component StateComponent
	Value     float64
}

// Constraints returns the two constraints at x=0 and the two at x=L for
// the support kind.
func (bc BoundaryCondition) Constraints() (start, end [2]Constraint, err error) {
	switch bc {
	case Cantilever:
		start = [2]Constraint{{Deflection, 0}, {Rotation, 0}}
		end = [2]Constraint{{Moment, 0}, {Shear, 0}}
	case SimplySupported:
		start = [2]Constraint{{Deflection, 0}, {Moment, 0}}
		end = [2]Constraint{{Deflection, 0}, {Moment, 0}}
	case FixedFixed:
		start = [2]Constraint{{Deflection, 0}, {Rotation, 0}}
		end = [2]Constraint{{Deflection, 0}, {Rotation, 0}}
	case HingedFree:
		start = [2]Constraint{{Deflection, 0}, {Moment, 0}}
		end = [2]Constraint{{Moment, 0}, {Shear, 0}}
	default:
		err = fmt.Errorf("%w: %q", ErrInvalidBoundaryCondition, string(bc))
	}
	return start, end, err
}

// freeComponents returns the two state components at x=0 not fixed by the
// support kind; these are the shooting unknowns.
func (bc BoundaryCondition) freeComponents() ([2]StateComponent, error) {
	start, _, err := bc.Constraints()
	if err != nil {
		return [2]StateComponent{}, err
	}
	var fixed [stateDim]bool
	for _, c := range start {
		fixed[c.Component] = true
	}
	var free [2]StateComponent
	n := 0
	for c := StateComponent(0); c < stateDim; c++ {
		if !fixed[c] {
			free[n] = c
			n++
		}
	}
	return free, nil
}

// EffectiveLengthFactor returns the end-condition coefficient K in the
// Euler buckling load Pcr = π²EI/(K·L)².
//
// Hinged-free carries K=1: the column table has no entry for a pinned
// base with a free tip, and in this state-space formulation its shooting
// matrix first degenerates at the same load as the simply supported case.
func (bc BoundaryCondition) EffectiveLengthFactor() (float64, error) {
	switch bc {
	case Cantilever:
		return 2.0, nil
	case SimplySupported:
		return 1.0, nil
	case FixedFixed:
		return 0.5, nil
	case HingedFree:
		return 1.0, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidBoundaryCondition, string(bc))
}
