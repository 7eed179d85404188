package prospects

import "errors"

var (
	// ErrProspectNotFound is returned when a prospect does not exist for the owner
	ErrProspectNotFound = errors.New("prospect not found")

	// ErrMissingOwner is returned when an operation lacks an owner scope
	ErrMissingOwner = errors.New("owner is required")
)
