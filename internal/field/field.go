package field

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Field holds sampled values of a scalar quantity at equally spaced grid
// points over a closed interval.
type Field []float64

func (f Field) Clone() Field {
	c := make(Field, len(f))
	copy(c, f)
	return c
}

func (f Field) IsValid() bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sum returns the total of all samples. Multiplied by dx this is the
// discrete integral of the field over the domain.
func (f Field) Sum() float64 { return floats.Sum(f) }

func (f Field) Min() float64 {
	if len(f) == 0 {
		return 0
	}
	return floats.Min(f)
}

func (f Field) Max() float64 {
	if len(f) == 0 {
		return 0
	}
	return floats.Max(f)
}

// Coords returns the n grid coordinates spanning [0, length].
func Coords(n int, length float64) []float64 {
	return floats.Span(make([]float64, n), 0, length)
}

// Uniform returns a field of n samples all set to v.
func Uniform(n int, v float64) Field {
	f := make(Field, n)
	for i := range f {
		f[i] = v
	}
	return f
}

// FromFunc samples fn at the n grid points of the interval [0, length].
// Grid point i sits at x = i*length/(n-1).
func FromFunc(n int, length float64, fn func(x float64) float64) Field {
	f := make(Field, n)
	for i, x := range Coords(n, length) {
		f[i] = fn(x)
	}
	return f
}

// Pulse returns a rectangular pulse of the given amplitude on grid points
// whose coordinate falls in [from, to], zero elsewhere.
func Pulse(n int, length, from, to, amplitude float64) Field {
	return FromFunc(n, length, func(x float64) float64 {
		if x >= from && x <= to {
			return amplitude
		}
		return 0
	})
}
