package surface

// Evaluator computes z = f(x, y). Implementations are treated as untrusted:
// the sampler recovers panics and rejects non-finite results.
type Evaluator interface {
	Eval(x, y float64) (float64, error)
}

// EvaluatorFunc adapts a fallible function to Evaluator.
type EvaluatorFunc func(x, y float64) (float64, error)

// Eval calls f(x, y).
func (f EvaluatorFunc) Eval(x, y float64) (float64, error) {
	return f(x, y)
}

// Func adapts a plain arithmetic function to Evaluator.
func Func(f func(x, y float64) float64) Evaluator {
	return EvaluatorFunc(func(x, y float64) (float64, error) {
		return f(x, y), nil
	})
}

// Zero is the flat surface shown while a new function is being written.
var Zero = Func(func(x, y float64) float64 { return 0 })

// Probe evaluates eval once at (x, y), turning a panic into an error.
// Non-finite results are returned as-is.
func Probe(eval Evaluator, x, y float64) (float64, error) {
	return safeEval(eval, x, y)
}
