package expression

import (
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// infixEnv is the variable and function namespace of the infix dialect.
// Entries shadow expr builtins of the same name.
func infixEnv() map[string]any {
	return map[string]any{
		"x": 0.0,
		"y": 0.0,

		"PI": math.Pi,
		"E":  math.E,

		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"asin":  math.Asin,
		"acos":  math.Acos,
		"atan":  math.Atan,
		"atan2": math.Atan2,
		"sinh":  math.Sinh,
		"cosh":  math.Cosh,
		"tanh":  math.Tanh,
		"exp":   math.Exp,
		"log":   math.Log,
		"log2":  math.Log2,
		"log10": math.Log10,
		"sqrt":  math.Sqrt,
		"cbrt":  math.Cbrt,
		"pow":   math.Pow,
		"hypot": math.Hypot,
		"abs":   math.Abs,
		"floor": math.Floor,
		"ceil":  math.Ceil,
		"round": math.Round,
		"sign":  sign,
		"min":   math.Min,
		"max":   math.Max,
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return v
	}
}

func fmod(params ...any) (any, error) {
	a, err := toFloat(params[0])
	if err != nil {
		return nil, err
	}
	b, err := toFloat(params[1])
	if err != nil {
		return nil, err
	}
	return math.Mod(a, b), nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%% operand is %T, not a number", v)
	}
}

// infixEvaluator runs one compiled program. It reuses its environment map and
// VM between calls, so it must not be shared between goroutines.
type infixEvaluator struct {
	program *vm.Program
	env     map[string]any
	vm      vm.VM
}

func compileExpr(src string) (*infixEvaluator, error) {
	// "Math.sin(x)" and "sin(x)" are the same call.
	text := strings.ReplaceAll(src, "Math.", "")

	env := infixEnv()
	program, err := expr.Compile(text,
		expr.Env(env),
		expr.Function("fmod", fmod,
			new(func(float64, float64) float64),
			new(func(float64, int) float64),
			new(func(int, float64) float64),
		),
		// Remainder works on floats, as in JavaScript.
		expr.Operator("%", "fmod"),
		expr.AsFloat64(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}
	return &infixEvaluator{program: program, env: env}, nil
}

func (e *infixEvaluator) Eval(x, y float64) (float64, error) {
	e.env["x"] = x
	e.env["y"] = y

	out, err := e.vm.Run(e.program, e.env)
	if err != nil {
		return 0, err
	}
	z, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("result is %T, not a number", out)
	}
	return z, nil
}
