package surface

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// maxReportedCauses caps how many per-sample causes FailureSet.Err combines.
const maxReportedCauses = 8

// ValueRange is the min/max over successfully evaluated heights.
type ValueRange struct {
	Min, Max float64
	Samples  int
}

// Empty reports whether no sample contributed to the range.
func (r ValueRange) Empty() bool { return r.Samples == 0 }

func (r *ValueRange) include(z float64) {
	if r.Samples == 0 {
		r.Min, r.Max = z, z
	} else {
		r.Min = math.Min(r.Min, z)
		r.Max = math.Max(r.Max, z)
	}
	r.Samples++
}

func (r ValueRange) String() string {
	if r.Empty() {
		return "[empty]"
	}
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

// SampleFailure records a grid vertex whose height could not be evaluated.
type SampleFailure struct {
	Index int
	U, V  float64
	X, Y  float64
	Err   error
}

func (f SampleFailure) Error() string {
	return fmt.Sprintf("sample %d at (%g, %g): %v", f.Index, f.X, f.Y, f.Err)
}

func (f SampleFailure) Unwrap() error { return f.Err }

// FailureSet is the ordered set of failed samples from one update.
type FailureSet struct {
	failures []SampleFailure
}

// Len returns the number of failed samples.
func (f FailureSet) Len() int { return len(f.failures) }

// Items returns the failures in grid order. Callers must not modify it.
func (f FailureSet) Items() []SampleFailure { return f.failures }

// Contains reports whether vertex index failed.
func (f FailureSet) Contains(index int) bool {
	for _, fail := range f.failures {
		if fail.Index == index {
			return true
		}
	}
	return false
}

// Err combines the recorded causes, or returns nil if nothing failed.
func (f FailureSet) Err() error {
	var err error
	for i, fail := range f.failures {
		if i == maxReportedCauses {
			err = multierr.Append(err, fmt.Errorf("and %d more", len(f.failures)-i))
			break
		}
		err = multierr.Append(err, fail)
	}
	return err
}

// SampleResult summarizes one pass of the sampler.
type SampleResult struct {
	Range    ValueRange
	Failures FailureSet
	Vertices int
}

// Degraded reports whether at least one sample failed.
func (r SampleResult) Degraded() bool { return r.Failures.Len() > 0 }

// TotalFailure reports whether every sample failed.
func (r SampleResult) TotalFailure() bool {
	return r.Vertices > 0 && r.Failures.Len() == r.Vertices
}

// Err classifies the result: nil, ErrEvaluationFailure or
// ErrTotalEvaluationFailure, wrapping the combined causes.
func (r SampleResult) Err() error {
	switch {
	case !r.Degraded():
		return nil
	case r.TotalFailure():
		return fmt.Errorf("%w: %w", ErrTotalEvaluationFailure, r.Failures.Err())
	default:
		return fmt.Errorf("%w (%d of %d): %w", ErrEvaluationFailure,
			r.Failures.Len(), r.Vertices, r.Failures.Err())
	}
}

// Sampler evaluates a function at every vertex of a grid.
type Sampler struct {
	grid *Grid
}

// NewSampler creates a sampler for the given grid.
func NewSampler(grid *Grid) *Sampler {
	return &Sampler{grid: grid}
}

// Sample evaluates eval at every grid vertex mapped through d and writes the
// heights into heights in grid order. Failed samples are recorded and their
// height is set to 0 so the mesh stays renderable.
//
// The returned error is reserved for caller mistakes (wrong buffer length,
// invalid domain, nil evaluator); per-sample failures are in the result.
func (s *Sampler) Sample(eval Evaluator, d Domain, heights []float64) (SampleResult, error) {
	n := s.grid.VertexCount()
	if len(heights) != n {
		return SampleResult{}, fmt.Errorf("height buffer has %d entries, grid has %d vertices", len(heights), n)
	}
	if eval == nil {
		return SampleResult{}, fmt.Errorf("nil evaluator")
	}
	if err := d.Validate(); err != nil {
		return SampleResult{}, err
	}

	res := SampleResult{Vertices: n}
	for i := 0; i < n; i++ {
		u, v := s.grid.UV(i)
		x, y := d.Map(u, v)

		z, err := safeEval(eval, x, y)
		if err == nil && (math.IsNaN(z) || math.IsInf(z, 0)) {
			err = fmt.Errorf("%w: %g", ErrNonFinite, z)
		}
		if err != nil {
			res.Failures.failures = append(res.Failures.failures, SampleFailure{
				Index: i, U: u, V: v, X: x, Y: y, Err: err,
			})
			heights[i] = 0
			continue
		}

		heights[i] = z
		res.Range.include(z)
	}

	return res, nil
}

// safeEval calls eval and converts a panic into an error.
func safeEval(eval Evaluator, x, y float64) (z float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			z, err = 0, fmt.Errorf("panic during evaluation: %v", r)
		}
	}()
	return eval.Eval(x, y)
}
