package beam

import (
	"errors"
	"fmt"
)

// Domain errors for beam-column solving. Input errors are deterministic
// and never retried; numerical errors carry enough context for the
// caller to adjust the loading.
var (
	// ErrInvalidGeometry indicates a non-positive length, width, or height.
	ErrInvalidGeometry = errors.New("beam: invalid geometry")

	// ErrInvalidBoundaryCondition indicates an unsupported support configuration.
	ErrInvalidBoundaryCondition = errors.New("beam: invalid boundary condition")

	// ErrTooManyPointLoads indicates more than MaxPointLoads point loads.
	ErrTooManyPointLoads = errors.New("beam: too many point loads")

	// ErrInvalidPointLoad indicates a negative magnitude or a position
	// fraction outside [0,1].
	ErrInvalidPointLoad = errors.New("beam: invalid point load")

	// ErrNearCriticalLoad indicates the axial load is within the configured
	// margin of the Euler buckling load for the active support kind.
	ErrNearCriticalLoad = errors.New("beam: axial load near critical buckling load")

	// ErrNonConvergent indicates the shooting system is singular or
	// ill-conditioned beyond the near-critical guard.
	ErrNonConvergent = errors.New("beam: shooting system ill-conditioned")
)

// NearCriticalLoadError reports an axial load too close to the Euler
// buckling load. It unwraps to ErrNearCriticalLoad.
type NearCriticalLoadError struct {
	AxialLoad    float64 // applied compressive load (N)
	CriticalLoad float64 // Euler buckling load for the support kind (N)
	Margin       float64 // fraction of the critical load at which solving refuses
}

func (e *NearCriticalLoadError) Error() string {
	return fmt.Sprintf("%v: P=%.4g N against Pcr=%.4g N (margin %.0f%%)",
		ErrNearCriticalLoad, e.AxialLoad, e.CriticalLoad, e.Margin*100)
}

func (e *NearCriticalLoadError) Unwrap() error {
	return ErrNearCriticalLoad
}
