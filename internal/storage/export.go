package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/pdelab/internal/field"
)

type ExportData struct {
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	Boundary   string             `json:"boundary"`
	Dt         float64            `json:"dt"`
	Skip       int                `json:"skip"`
	Length     float64            `json:"length"`
	Times      []float64          `json:"times"`
	Components [][][]float64      `json:"components"`
	Metrics    map[string]float64 `json:"metrics"`
}

// ExportJSON writes a saved run's full history to w as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, times []float64, traj [][]field.Field) error {
	data := ExportData{
		ID:         meta.ID,
		Model:      meta.Model,
		Boundary:   meta.Boundary,
		Dt:         meta.Dt,
		Skip:       meta.Skip,
		Length:     meta.Length,
		Times:      times,
		Components: make([][][]float64, len(traj)),
		Metrics:    meta.Metrics,
	}
	for c, rows := range traj {
		data.Components[c] = make([][]float64, len(rows))
		for k, f := range rows {
			data.Components[c][k] = f
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
