package render

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// WriteProfileChart renders selected history rows (initial, middle, final)
// of one component as a PNG line chart of value versus position.
func WriteProfileChart(w io.Writer, xs []float64, traj [][]float64, times []float64) error {
	if len(traj) == 0 {
		return fmt.Errorf("chart: empty trajectory")
	}

	picks := []int{0, len(traj) / 2, len(traj) - 1}
	series := make([]chart.Series, 0, len(picks))
	seen := make(map[int]bool)
	for _, k := range picks {
		if seen[k] {
			continue
		}
		seen[k] = true
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("t = %.3g", times[k]),
			XValues: xs,
			YValues: traj[k],
		})
	}

	graph := chart.Chart{
		XAxis:  chart.XAxis{Name: "x"},
		YAxis:  chart.YAxis{Name: "u"},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}

// WritePointChart renders the time series of a single grid point as a PNG
// line chart.
func WritePointChart(w io.Writer, times []float64, traj [][]float64, point int) error {
	if len(traj) == 0 {
		return fmt.Errorf("chart: empty trajectory")
	}
	if point < 0 || point >= len(traj[0]) {
		return fmt.Errorf("chart: grid point %d out of range", point)
	}

	ys := make([]float64, len(traj))
	for k, row := range traj {
		ys[k] = row[point]
	}

	graph := chart.Chart{
		XAxis: chart.XAxis{Name: "t"},
		YAxis: chart.YAxis{Name: fmt.Sprintf("u[%d]", point)},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: times, YValues: ys},
		},
	}
	return graph.Render(chart.PNG, w)
}
