package storage

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/san-kum/pdelab/internal/field"
)

func TestExportJSON(t *testing.T) {
	meta := &RunMetadata{
		ID:       "fisher_123",
		Model:    "fisher",
		Boundary: "reflecting",
		Dt:       0.02,
		Skip:     1,
		Length:   1.0,
		Metrics:  map[string]float64{"peak_value": 4.8},
	}
	times := []float64{0, 0.02}
	traj := [][]field.Field{{{0, 1}, {0.5, 1.5}}}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, times, traj); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var out ExportData
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	if out.ID != "fisher_123" || out.Model != "fisher" {
		t.Errorf("identity fields lost: %+v", out)
	}
	if len(out.Times) != 2 || out.Times[1] != 0.02 {
		t.Errorf("times lost: %v", out.Times)
	}
	if len(out.Components) != 1 || len(out.Components[0]) != 2 {
		t.Fatalf("trajectory shape lost: %v", out.Components)
	}
	if out.Components[0][1][1] != 1.5 {
		t.Errorf("trajectory values lost: %v", out.Components)
	}
	if out.Metrics["peak_value"] != 4.8 {
		t.Errorf("metrics lost: %v", out.Metrics)
	}
}
