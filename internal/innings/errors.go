package innings

import "errors"

// Validation errors. State errors (paused, unknown player, wrong phase) are
// reported as no-ops instead, so a double-tap in the scorer UI is harmless.
var (
	ErrInvalidSetup         = errors.New("invalid match setup")
	ErrInvalidRuns          = errors.New("invalid runs for delivery")
	ErrInvalidExtra         = errors.New("invalid extra type")
	ErrInvalidWicket        = errors.New("invalid wicket type for delivery")
	ErrFielderRequired      = errors.New("fielder required for this dismissal")
	ErrRunOutBatterRequired = errors.New("run out must say which batter is out")
	ErrInvalidTarget        = errors.New("invalid revised target")
	ErrInvalidOvers         = errors.New("invalid revised overs")
	ErrNotChasing           = errors.New("no chase in progress")
)
