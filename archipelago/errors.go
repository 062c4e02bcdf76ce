package archipelago

import (
	"github.com/arl/landmass/navmesh"
)

// ValidationError is surfaced unchanged from navmesh.Validate; a caller
// builds islands from already-validated navmesh.Mesh values, so this
// alias only documents that the error taxonomy spec.md §6 names flows
// through to this package's callers without being re-wrapped.
type ValidationError = navmesh.ValidationError

// SamplePointErrorKind distinguishes why SamplePoint failed.
type SamplePointErrorKind int

const (
	// OutOfRange means no island had a polygon within the given
	// tolerance of the query point.
	OutOfRange SamplePointErrorKind = iota
)

// SamplePointError is returned by Archipelago.SamplePoint, per spec.md §6.
type SamplePointError struct{ Kind SamplePointErrorKind }

func (e *SamplePointError) Error() string {
	return "archipelago: point is out of sampling range"
}

// FindPathErrorKind distinguishes why FindPath failed.
type FindPathErrorKind int

const (
	NoPath FindPathErrorKind = iota
	EndpointNotOnMesh
)

// FindPathError is returned by Archipelago.FindPath, per spec.md §6.
type FindPathError struct{ Kind FindPathErrorKind }

func (e *FindPathError) Error() string {
	switch e.Kind {
	case NoPath:
		return "archipelago: no path between the given points"
	default:
		return "archipelago: endpoint is not on the nav mesh"
	}
}
