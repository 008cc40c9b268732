package surface

import (
	"errors"
	"math"
	"testing"
)

func newTestSampler(t *testing.T, segments int) (*Grid, *Sampler, []float64) {
	t.Helper()
	g, err := NewGrid(segments)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g, NewSampler(g), make([]float64, g.VertexCount())
}

func TestSampleParaboloid(t *testing.T) {
	g, s, heights := newTestSampler(t, DefaultSegments)
	d := Domain{-2, 2, -2, 2}

	res, err := s.Sample(Func(func(x, y float64) float64 { return x*x + y*y }), d, heights)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if res.Degraded() {
		t.Fatalf("unexpected failures: %v", res.Failures.Err())
	}

	center := heights[g.Index(20, 20)]
	if math.Abs(center) > 1e-9 {
		t.Errorf("center height = %g, want 0", center)
	}
	corner := heights[g.Index(0, 0)]
	if math.Abs(corner-8) > 1e-9 {
		t.Errorf("corner height = %g, want 8", corner)
	}
	if math.Abs(res.Range.Min) > 1e-9 || math.Abs(res.Range.Max-8) > 1e-9 {
		t.Errorf("range = %v, want [0, 8]", res.Range)
	}
	if res.Range.Samples != g.VertexCount() {
		t.Errorf("range samples = %d, want %d", res.Range.Samples, g.VertexCount())
	}
}

func TestSampleSineWaveRange(t *testing.T) {
	_, s, heights := newTestSampler(t, DefaultSegments)
	d := Domain{-3.14, 3.14, -3.14, 3.14}

	res, err := s.Sample(Func(func(x, y float64) float64 { return math.Sin(x) * math.Cos(y) }), d, heights)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	const eps = 1e-9
	if res.Range.Min < -1-eps || res.Range.Max > 1+eps {
		t.Errorf("range = %v, want within [-1, 1]", res.Range)
	}
}

func TestSampleSingleFailureDegrades(t *testing.T) {
	g, s, heights := newTestSampler(t, 10)
	d := Domain{-1, 1, -1, 1}
	const bad = 17

	calls := 0
	eval := EvaluatorFunc(func(x, y float64) (float64, error) {
		i := calls
		calls++
		if i == bad {
			return 0, errors.New("boom")
		}
		return x + 2*y + 5, nil
	})

	res, err := s.Sample(eval, d, heights)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if res.Failures.Len() != 1 || !res.Failures.Contains(bad) {
		t.Fatalf("failures = %v, want exactly vertex %d", res.Failures.Items(), bad)
	}
	if !errors.Is(res.Err(), ErrEvaluationFailure) {
		t.Errorf("Err() = %v, want ErrEvaluationFailure", res.Err())
	}
	if res.TotalFailure() {
		t.Error("single failure reported as total failure")
	}

	for i := 0; i < g.VertexCount(); i++ {
		if i == bad {
			if heights[i] != 0 {
				t.Errorf("failed vertex height = %g, want 0", heights[i])
			}
			continue
		}
		x, y := d.Map(g.UV(i))
		if want := x + 2*y + 5; math.Abs(heights[i]-want) > 1e-12 {
			t.Fatalf("vertex %d height = %g, want %g", i, heights[i], want)
		}
	}
}

func TestSampleRecoversPanicAndNonFinite(t *testing.T) {
	_, s, heights := newTestSampler(t, 2)
	d := Domain{-1, 1, -1, 1}

	eval := Func(func(x, y float64) float64 {
		if x < 0 {
			panic("negative x")
		}
		if x == 0 {
			return math.NaN()
		}
		return 1
	})

	res, err := s.Sample(eval, d, heights)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	// Columns u = -1 and u = 0 fail, u = 1 succeeds: 6 of 9.
	if res.Failures.Len() != 6 {
		t.Fatalf("failures = %d, want 6", res.Failures.Len())
	}

	var nonFinite int
	for _, f := range res.Failures.Items() {
		if errors.Is(f.Err, ErrNonFinite) {
			nonFinite++
		}
	}
	if nonFinite != 3 {
		t.Errorf("non-finite failures = %d, want 3", nonFinite)
	}
	if res.Range.Min != 1 || res.Range.Max != 1 || res.Range.Samples != 3 {
		t.Errorf("range = %+v, want [1, 1] over 3 samples", res.Range)
	}
}

func TestSampleTotalFailure(t *testing.T) {
	_, s, heights := newTestSampler(t, 4)
	for i := range heights {
		heights[i] = 42
	}

	eval := EvaluatorFunc(func(x, y float64) (float64, error) {
		return 0, errors.New("undefined variable z")
	})

	res, err := s.Sample(eval, Domain{-1, 1, -1, 1}, heights)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if !res.TotalFailure() {
		t.Fatal("expected total failure")
	}
	if !errors.Is(res.Err(), ErrTotalEvaluationFailure) {
		t.Errorf("Err() = %v, want ErrTotalEvaluationFailure", res.Err())
	}
	if !res.Range.Empty() {
		t.Errorf("range = %v, want empty", res.Range)
	}
	for i, h := range heights {
		if h != 0 {
			t.Fatalf("height %d = %g, want 0 after total failure", i, h)
		}
	}
}

func TestSampleRejectsCallerErrors(t *testing.T) {
	_, s, heights := newTestSampler(t, 4)
	flat := Func(func(x, y float64) float64 { return 0 })

	if _, err := s.Sample(flat, Domain{-1, 1, -1, 1}, heights[:3]); err == nil {
		t.Error("short height buffer should fail")
	}
	if _, err := s.Sample(nil, Domain{-1, 1, -1, 1}, heights); err == nil {
		t.Error("nil evaluator should fail")
	}
	if _, err := s.Sample(flat, Domain{1, -1, -1, 1}, heights); !errors.Is(err, ErrInvalidDomain) {
		t.Errorf("inverted domain error = %v, want ErrInvalidDomain", err)
	}
}
