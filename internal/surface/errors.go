package surface

import "errors"

var (
	// ErrInvalidDomain is returned for non-finite or inverted bounds.
	ErrInvalidDomain = errors.New("invalid domain")

	// ErrEvaluationFailure marks an update in which some samples failed.
	ErrEvaluationFailure = errors.New("evaluation failed for some samples")

	// ErrTotalEvaluationFailure marks an update in which every sample failed.
	ErrTotalEvaluationFailure = errors.New("evaluation failed for every sample")

	// ErrNonFinite is the cause recorded when an evaluator returns NaN or Inf.
	ErrNonFinite = errors.New("non-finite value")
)
