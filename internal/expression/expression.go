// Package expression compiles user-entered function text into a
// surface.Evaluator.
//
// Two dialects are supported. The infix dialect ("expr") accepts formulas
// such as "x*x + y*y" or "Math.sin(x) * Math.cos(y)"; the Lisp dialect
// ("lisp") accepts a single s-expression body such as "(+ (* x x) (* y y))".
package expression

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/xgraphix/internal/surface"
)

// Dialect names a function syntax.
type Dialect string

const (
	Expr Dialect = "expr"
	Lisp Dialect = "lisp"
	// Auto picks Lisp when the text starts with '(' and Expr otherwise.
	Auto Dialect = "auto"
)

var (
	ErrEmpty          = errors.New("empty function")
	ErrUnknownDialect = errors.New("unknown dialect")
	ErrCompile        = errors.New("compile error")
)

// ParseDialect converts a config or console value to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case Expr, Lisp, Auto:
		return d, nil
	case "":
		return Auto, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDialect, s)
	}
}

// Resolve returns the concrete dialect for src.
func (d Dialect) Resolve(src string) Dialect {
	if d != Auto {
		return d
	}
	if strings.HasPrefix(strings.TrimSpace(src), "(") {
		return Lisp
	}
	return Expr
}

// Compile turns src into an evaluator. Compile errors wrap ErrCompile; errors
// raised while evaluating are returned per call by the evaluator.
func Compile(d Dialect, src string) (surface.Evaluator, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmpty
	}
	switch d.Resolve(src) {
	case Expr:
		return compileExpr(src)
	case Lisp:
		return compileLisp(src)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, d)
	}
}
