package calculation

import "errors"

// Sentinel errors for the two structural failure modes. Both are raised
// synchronously before or during a run; the engine never retries.
var (
	// ErrInvalidConfig reports a plan outside the documented domain
	// constraints (negative amounts, tax rate outside [0,1], unknown
	// investment type, lump sum timed beyond the horizon).
	ErrInvalidConfig = errors.New("invalid plan configuration")

	// ErrNonConverging reports that the loan can never amortize: the
	// target payment does not cover interest and nothing else reduces
	// principal, or the iteration ceiling was reached while still
	// repaying. No partial series is returned in this case.
	ErrNonConverging = errors.New("loan does not amortize")
)
