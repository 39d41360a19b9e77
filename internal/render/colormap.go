package render

import (
	"fmt"
	"image/color"
)

// Diverging maps field values onto a blue-white-red scale with the white
// midpoint pinned at center, the two halves normalized independently
// (min..center and center..max). For the logistic models center is the
// carrying capacity, so below-capacity regions read cold and overshoot
// reads hot.
type Diverging struct {
	Min, Center, Max float64
}

// NewDiverging widens degenerate ranges so that center always sits strictly
// inside [min, max].
func NewDiverging(min, center, max float64) Diverging {
	if min >= center {
		min = center - 1
	}
	if max <= center {
		max = center + 1
	}
	return Diverging{Min: min, Center: center, Max: max}
}

// normalize maps v to [0, 1] with the center at 0.5.
func (d Diverging) normalize(v float64) float64 {
	var t float64
	if v <= d.Center {
		t = 0.5 * (v - d.Min) / (d.Center - d.Min)
	} else {
		t = 0.5 + 0.5*(v-d.Center)/(d.Max-d.Center)
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t
}

// At returns the color of value v.
func (d Diverging) At(v float64) color.RGBA {
	t := d.normalize(v)
	// Cold half blends #1f4e9c -> white, hot half white -> #b2182b.
	if t <= 0.5 {
		s := t * 2
		return lerpRGB(color.RGBA{0x1f, 0x4e, 0x9c, 0xff}, color.RGBA{0xff, 0xff, 0xff, 0xff}, s)
	}
	s := (t - 0.5) * 2
	return lerpRGB(color.RGBA{0xff, 0xff, 0xff, 0xff}, color.RGBA{0xb2, 0x18, 0x2b, 0xff}, s)
}

// Hex returns the color of v as "#rrggbb" for terminal styling.
func (d Diverging) Hex(v float64) string {
	c := d.At(v)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func lerpRGB(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(a.R) + t*(float64(b.R)-float64(a.R))),
		G: uint8(float64(a.G) + t*(float64(b.G)-float64(a.G))),
		B: uint8(float64(a.B) + t*(float64(b.B)-float64(a.B))),
		A: 0xff,
	}
}
