// Package beam solves the static equilibrium of a prismatic beam-column
// under combined axial compression, distributed lateral load, self-weight
// and point loads, using Timoshenko beam theory with the P-Δ coupling
// term retained in the moment gradient.
package beam

import (
	"fmt"
	"math"
	"sort"

	"github.com/aiexplorations/beam-column-simulation/internal/material"
	"github.com/aiexplorations/beam-column-simulation/internal/section"
)

const (
	// MaxPointLoads is the largest number of point loads a problem may carry.
	MaxPointLoads = 5

	// StandardGravity is used for the self-weight distributed load (m/s²).
	StandardGravity = 9.80665

	// DefaultCriticalLoadMargin refuses axial loads at or above this
	// fraction of the Euler buckling load.
	DefaultCriticalLoadMargin = 0.9
)

// Orientation only affects how results are labeled; the solved physics is
// identical for both values.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// LoadDirection is the sign of a point load along the lateral axis.
type LoadDirection int

const (
	// Downward loads act in the same sense as the distributed lateral load.
	Downward LoadDirection = iota
	Upward
)

// Sign returns +1 for downward and -1 for upward loads.
func (d LoadDirection) Sign() float64 {
	if d == Upward {
		return -1
	}
	return 1
}

func (d LoadDirection) String() string {
	if d == Upward {
		return "upward"
	}
	return "downward"
}

// PointLoad is a concentrated lateral load at a fractional position along
// the member.
type PointLoad struct {
	Magnitude float64       // N, must be >= 0
	Position  float64       // fraction of L from x=0, in [0,1]
	Direction LoadDirection
}

// Problem is the complete description of one beam-column solve. It is
// owned by the caller; the solver never mutates it.
type Problem struct {
	Length      float64 // m
	Section     section.Rectangular
	Material    material.Material
	Support     BoundaryCondition
	Orientation Orientation

	AxialLoad         float64 // N, compression positive
	LateralLoad       float64 // N/m, downward positive
	IncludeSelfWeight bool
	PointLoads        []PointLoad

	// CriticalLoadMargin overrides DefaultCriticalLoadMargin when > 0.
	CriticalLoadMargin float64
}

// Validate checks the core invariants. The presentation layer applies its
// own range limits before constructing a Problem; the solver never trusts
// that and re-validates here.
func (p Problem) Validate() error {
	if p.Length <= 0 {
		return fmt.Errorf("%w: length %.4g m", ErrInvalidGeometry, p.Length)
	}
	if !p.Section.Valid() {
		return fmt.Errorf("%w: section %.4g x %.4g m", ErrInvalidGeometry, p.Section.Width, p.Section.Height)
	}
	if !p.Support.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidBoundaryCondition, string(p.Support))
	}
	if len(p.PointLoads) > MaxPointLoads {
		return fmt.Errorf("%w: %d loads (max %d)", ErrTooManyPointLoads, len(p.PointLoads), MaxPointLoads)
	}
	for i, pl := range p.PointLoads {
		if pl.Magnitude < 0 {
			return fmt.Errorf("%w: load %d has negative magnitude %.4g N", ErrInvalidPointLoad, i, pl.Magnitude)
		}
		if pl.Position < 0 || pl.Position > 1 {
			return fmt.Errorf("%w: load %d at fraction %.4g outside [0,1]", ErrInvalidPointLoad, i, pl.Position)
		}
	}
	return nil
}

// SelfWeightLoad returns the distributed load ρ·A·g contributed by the
// member's own mass, or zero when self-weight is disabled. Self-weight
// always acts along the lateral-load axis regardless of orientation.
func (p Problem) SelfWeightLoad() float64 {
	if !p.IncludeSelfWeight {
		return 0
	}
	return p.Material.Density * p.Section.Area() * StandardGravity
}

// TotalDistributedLoad returns the uniform lateral load including
// self-weight, downward positive (N/m).
func (p Problem) TotalDistributedLoad() float64 {
	return p.LateralLoad + p.SelfWeightLoad()
}

// activePointLoads drops zero-magnitude loads and returns the remainder
// as absolute positions sorted along the member.
func (p Problem) activePointLoads() []pointForce {
	forces := make([]pointForce, 0, len(p.PointLoads))
	for _, pl := range p.PointLoads {
		if pl.Magnitude == 0 {
			continue
		}
		forces = append(forces, pointForce{
			pos:   pl.Position * p.Length,
			value: pl.Direction.Sign() * pl.Magnitude,
		})
	}
	sort.Slice(forces, func(i, j int) bool { return forces[i].pos < forces[j].pos })
	return forces
}

// pointForce is a point load resolved to an absolute position and a
// signed magnitude (downward positive).
type pointForce struct {
	pos   float64
	value float64
}

// CriticalBucklingLoad returns the Euler buckling load π²EI/(K·L)² for
// the problem's support kind.
func (p Problem) CriticalBucklingLoad() (float64, error) {
	k, err := p.Support.EffectiveLengthFactor()
	if err != nil {
		return 0, err
	}
	ei := p.Material.E * p.Section.MomentOfInertia()
	kl := k * p.Length
	return math.Pi * math.Pi * ei / (kl * kl), nil
}
