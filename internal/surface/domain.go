// Package surface tessellates a scalar function z = f(x, y) over a
// rectangular domain onto a fixed-topology sample grid.
package surface

import (
	"fmt"
	"math"
)

// Domain is the rectangular (x, y) region a function is sampled over.
type Domain struct {
	XMin, XMax float64
	YMin, YMax float64
}

// NewDomain returns a validated domain.
func NewDomain(xMin, xMax, yMin, yMax float64) (Domain, error) {
	d := Domain{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
	if err := d.Validate(); err != nil {
		return Domain{}, err
	}
	return d, nil
}

// Validate reports ErrInvalidDomain if any bound is non-finite or a minimum
// is not strictly below its maximum.
func (d Domain) Validate() error {
	for _, b := range [4]float64{d.XMin, d.XMax, d.YMin, d.YMax} {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return fmt.Errorf("%w: non-finite bound in %v", ErrInvalidDomain, d)
		}
	}
	if d.XMin >= d.XMax {
		return fmt.Errorf("%w: xMin %g is not less than xMax %g", ErrInvalidDomain, d.XMin, d.XMax)
	}
	if d.YMin >= d.YMax {
		return fmt.Errorf("%w: yMin %g is not less than yMax %g", ErrInvalidDomain, d.YMin, d.YMax)
	}
	return nil
}

// Center returns the midpoint of the domain.
func (d Domain) Center() (x, y float64) {
	return (d.XMax + d.XMin) / 2, (d.YMax + d.YMin) / 2
}

// Map converts normalized coordinates u, v in [-1, 1] to world coordinates.
// Every consumer of the domain transform goes through Map so that sampled
// heights and displayed tick values agree.
func (d Domain) Map(u, v float64) (x, y float64) {
	return d.MapX(u), d.MapY(v)
}

// MapX maps a normalized u coordinate onto [XMin, XMax].
func (d Domain) MapX(u float64) float64 {
	return u*(d.XMax-d.XMin)/2 + (d.XMax+d.XMin)/2
}

// MapY maps a normalized v coordinate onto [YMin, YMax].
func (d Domain) MapY(v float64) float64 {
	return v*(d.YMax-d.YMin)/2 + (d.YMax+d.YMin)/2
}

func (d Domain) String() string {
	return fmt.Sprintf("[%g, %g] x [%g, %g]", d.XMin, d.XMax, d.YMin, d.YMax)
}
