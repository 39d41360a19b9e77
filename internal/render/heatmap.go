package render

import (
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/floats"
)

// trajectory rows are frames (time increasing downward), columns grid
// points. Both renderers share the same midpoint-normalized colormap.

func trajectoryRange(traj [][]float64) (min, max float64) {
	min, max = traj[0][0], traj[0][0]
	for _, row := range traj {
		lo, hi := floats.Min(row), floats.Max(row)
		if lo < min {
			min = lo
		}
		if hi > max {
			max = hi
		}
	}
	return min, max
}

// HeatmapString renders the space-time trajectory as colored terminal
// cells, downsampled to at most width x height cells, with the colormap
// midpoint at center.
func HeatmapString(traj [][]float64, center float64, width, height int) string {
	if len(traj) == 0 || len(traj[0]) == 0 {
		return ""
	}
	rows, cols := len(traj), len(traj[0])
	if height > rows {
		height = rows
	}
	if width > cols {
		width = cols
	}

	min, max := trajectoryRange(traj)
	cmap := NewDiverging(min, center, max)

	var b strings.Builder
	for r := 0; r < height; r++ {
		row := traj[r*(rows-1)/maxInt(height-1, 1)]
		for c := 0; c < width; c++ {
			v := row[c*(cols-1)/maxInt(width-1, 1)]
			cell := lipgloss.NewStyle().Background(lipgloss.Color(cmap.Hex(v)))
			b.WriteString(cell.Render(" "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// WriteHeatmapPNG writes the trajectory as a PNG image, one pixel block per
// sample, space on the x axis and time increasing downward.
func WriteHeatmapPNG(w io.Writer, traj [][]float64, center float64, scale int) error {
	if scale < 1 {
		scale = 1
	}
	rows, cols := len(traj), len(traj[0])
	img := image.NewRGBA(image.Rect(0, 0, cols*scale, rows*scale))

	min, max := trajectoryRange(traj)
	cmap := NewDiverging(min, center, max)

	for r, row := range traj {
		for c, v := range row {
			col := cmap.At(v)
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetRGBA(c*scale+dx, r*scale+dy, col)
				}
			}
		}
	}
	return png.Encode(w, img)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
