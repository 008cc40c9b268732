// Package library keeps named functions: a fixed table of built-in defaults
// and a YAML file of user-saved functions.
package library

import (
	"errors"

	"github.com/Faultbox/xgraphix/internal/surface"
)

var (
	ErrProtected = errors.New("built-in function cannot be modified")
	ErrNotFound  = errors.New("function not found")
	ErrEmptyName = errors.New("function name is empty")
)

// Function is a named function text with the domain it is plotted on.
type Function struct {
	Name    string  `yaml:"name"`
	Text    string  `yaml:"text"`
	Dialect string  `yaml:"dialect,omitempty"`
	XMin    float64 `yaml:"x_min"`
	XMax    float64 `yaml:"x_max"`
	YMin    float64 `yaml:"y_min"`
	YMax    float64 `yaml:"y_max"`

	Builtin bool `yaml:"-"`
}

// Domain returns the function's plot domain. It is not validated.
func (f Function) Domain() surface.Domain {
	return surface.Domain{XMin: f.XMin, XMax: f.XMax, YMin: f.YMin, YMax: f.YMax}
}

var defaults = [...]Function{
	{Name: "Paraboloid", Text: "x*x + y*y", Dialect: "expr", XMin: -2, XMax: 2, YMin: -2, YMax: 2, Builtin: true},
	{Name: "Sine Wave", Text: "Math.sin(x) * Math.cos(y)", Dialect: "expr", XMin: -3.14, XMax: 3.14, YMin: -3.14, YMax: 3.14, Builtin: true},
	{Name: "Gaussian", Text: "Math.exp(-(x*x + y*y))", Dialect: "expr", XMin: -2, XMax: 2, YMin: -2, YMax: 2, Builtin: true},
	{Name: "Ripple", Text: "Math.sin(Math.sqrt(x*x + y*y))", Dialect: "expr", XMin: -6.28, XMax: 6.28, YMin: -6.28, YMax: 6.28, Builtin: true},
}

// Defaults returns a copy of the built-in function table in display order.
func Defaults() []Function {
	out := make([]Function, len(defaults))
	copy(out, defaults[:])
	return out
}

// Default returns the i-th built-in function (0-based).
func Default(i int) (Function, bool) {
	if i < 0 || i >= len(defaults) {
		return Function{}, false
	}
	return defaults[i], true
}

// IsDefault reports whether name belongs to a built-in function.
func IsDefault(name string) bool {
	_, ok := lookupDefault(name)
	return ok
}

func lookupDefault(name string) (Function, bool) {
	for _, f := range defaults {
		if f.Name == name {
			return f, true
		}
	}
	return Function{}, false
}
