package core

import (
	"fmt"
	"math"
)

// Interval is a closed range of real numbers used for ray-parameter bounds and color clamping.
// The zero value is the degenerate interval [0, 0].
type Interval struct {
	Min, Max float64
}

var (
	// EmptyInterval contains nothing
	EmptyInterval = Interval{Min: math.Inf(1), Max: math.Inf(-1)}
	// Universe contains every real number
	Universe = Interval{Min: math.Inf(-1), Max: math.Inf(1)}
)

// NewInterval creates an interval [min, max]
func NewInterval(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// Size returns max - min
func (i Interval) Size() float64 {
	return i.Max - i.Min
}

// Contains reports min <= x <= max
func (i Interval) Contains(x float64) bool {
	return i.Min <= x && x <= i.Max
}

// Surrounds reports min < x < max
func (i Interval) Surrounds(x float64) bool {
	return i.Min < x && x < i.Max
}

// Clamp limits x to the interval
func (i Interval) Clamp(x float64) float64 {
	if x < i.Min {
		return i.Min
	}
	if x > i.Max {
		return i.Max
	}
	return x
}

// WithMax returns a copy of the interval with a new upper bound
func (i Interval) WithMax(max float64) Interval {
	return Interval{Min: i.Min, Max: max}
}

// Fraction maps x to its relative position in the interval, 0 at Min and 1 at Max.
// It panics on an interval whose span is exactly zero.
func (i Interval) Fraction(x float64) float64 {
	size := i.Size()
	if size == 0 {
		panic(fmt.Sprintf("core: Fraction on zero-span interval [%g, %g]", i.Min, i.Max))
	}
	return (x - i.Min) / size
}
