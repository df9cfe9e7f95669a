package domain

import "errors"

// Domain errors. Most core operations degrade to no-ops on bad input;
// these sentinels cover the few that do report failure.
var (
	// ErrReservedID indicates a user section tried to claim the
	// reserved home section id.
	ErrReservedID = errors.New("section id is reserved")

	// ErrNoDataSource indicates an operation needs a data source but
	// none is configured.
	ErrNoDataSource = errors.New("no data source configured")

	// ErrInvalidInput indicates a caller passed malformed or missing
	// input to a driven adapter.
	ErrInvalidInput = errors.New("invalid input")
)
