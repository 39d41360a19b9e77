package render

import "strings"

// Braille patterns pack a 2x4 dot cell into one rune, giving the terminal
// a virtual resolution of (width*2) x (height*4) sub-pixels.
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, grid: make([][]rune, h)}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights the sub-pixel at (x, y). Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= pixelMap[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
}

// Line draws with Bresenham stepping in sub-pixel coordinates.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Profile plots a field as a connected line, mapping sample index to the
// full sub-pixel width and [lo, hi] to the vertical extent.
func (c *Canvas) Profile(f []float64, lo, hi float64) {
	n := len(f)
	if n < 2 {
		return
	}
	cw, ch := c.Width*2, c.Height*4
	span := hi - lo
	if span == 0 {
		span = 1
	}
	toY := func(v float64) int {
		y := ch - 1 - int((v-lo)/span*float64(ch-1))
		if y < 0 {
			y = 0
		}
		if y >= ch {
			y = ch - 1
		}
		return y
	}
	prevX, prevY := 0, toY(f[0])
	for i := 1; i < n; i++ {
		x := i * (cw - 1) / (n - 1)
		y := toY(f[i])
		c.Line(prevX, prevY, x, y)
		prevX, prevY = x, y
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
