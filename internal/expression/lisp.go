package expression

import (
	"fmt"
	"math"

	zygo "github.com/glycerine/zygomys/zygo"
)

const lispEntry = "__surface"

// lispEvaluator holds a sandboxed interpreter with the user body compiled into
// a two-argument function.
type lispEvaluator struct {
	env *zygo.Zlisp
	fn  *zygo.SexpFunction
}

func compileLisp(body string) (*lispEvaluator, error) {
	env := zygo.NewZlispSandbox()
	registerLispMath(env)

	src := fmt.Sprintf("(def pi %s)\n(defn %s [x y] %s)", formatLispFloat(math.Pi), lispEntry, body)
	if err := env.LoadString(src); err != nil {
		env.Stop()
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}
	if _, err := env.Run(); err != nil {
		env.Stop()
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}

	obj, ok := env.FindObject(lispEntry)
	if !ok {
		env.Stop()
		return nil, fmt.Errorf("%w: function body did not define %s", ErrCompile, lispEntry)
	}
	fn, ok := obj.(*zygo.SexpFunction)
	if !ok {
		env.Stop()
		return nil, fmt.Errorf("%w: %s is %T", ErrCompile, lispEntry, obj)
	}
	return &lispEvaluator{env: env, fn: fn}, nil
}

func (e *lispEvaluator) Eval(x, y float64) (float64, error) {
	out, err := e.env.Apply(e.fn, []zygo.Sexp{&zygo.SexpFloat{Val: x}, &zygo.SexpFloat{Val: y}})
	if err != nil {
		return 0, err
	}
	return lispNumber(out)
}

// lispNumber extracts a float64 from a Sexp (SexpInt or SexpFloat).
func lispNumber(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T", s)
}

func formatLispFloat(v float64) string {
	return fmt.Sprintf("%.17g", v)
}

func registerLispMath(env *zygo.Zlisp) {
	unary := map[string]func(float64) float64{
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"asin":  math.Asin,
		"acos":  math.Acos,
		"atan":  math.Atan,
		"exp":   math.Exp,
		"log":   math.Log,
		"sqrt":  math.Sqrt,
		"abs":   math.Abs,
		"floor": math.Floor,
		"ceil":  math.Ceil,
	}
	for name, f := range unary {
		f := f
		env.AddFunction(name, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires 1 argument, got %d", name, len(args))
			}
			v, err := lispNumber(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return &zygo.SexpFloat{Val: f(v)}, nil
		})
	}

	binary := map[string]func(float64, float64) float64{
		"pow":   math.Pow,
		"atan2": math.Atan2,
		"hypot": math.Hypot,
	}
	for name, f := range binary {
		f := f
		env.AddFunction(name, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires 2 arguments, got %d", name, len(args))
			}
			a, err := lispNumber(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			b, err := lispNumber(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return &zygo.SexpFloat{Val: f(a, b)}, nil
		})
	}
}
