package schedule

import "errors"

// Engine-level errors. Callers wrap these with counts and ids; the engine
// never formats user-facing text.
var (
	ErrInsufficientQualifiers = errors.New("not enough qualifying teams to build the bracket")
	ErrNoEligibleVenue        = errors.New("no eligible venue")
	ErrUndeterminedOutcome    = errors.New("match outcome cannot be determined")
)
