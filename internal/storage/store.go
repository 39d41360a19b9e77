package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/pdelab/internal/config"
	"github.com/san-kum/pdelab/internal/field"
	"github.com/san-kum/pdelab/internal/pde"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	Timestamp  time.Time          `json:"timestamp"`
	N          int                `json:"grid_points"`
	Length     float64            `json:"length"`
	Boundary   string             `json:"boundary"`
	Dt         float64            `json:"dt"`
	Frames     int                `json:"frames"`
	Skip       int                `json:"skip"`
	Seed       int64              `json:"seed"`
	Components int                `json:"components"`
	Params     map[string]float64 `json:"params"`
	Metrics    map[string]float64 `json:"metrics"`
}

// componentName labels history CSV columns: u for component 0, v for 1, ...
func componentName(c int) string {
	return string(rune('u' + c))
}

// Save writes one run as <base>/<model>_<unix>/metadata.json + history.csv.
// The CSV has a time column followed by one column per grid point and
// component; row 0 is the initial condition.
func (s *Store) Save(cfg *config.Config, params map[string]float64, result *pde.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	hist := result.History
	meta := RunMetadata{
		ID:         runID,
		Model:      cfg.Model,
		Timestamp:  time.Now(),
		N:          hist.N,
		Length:     cfg.Length,
		Boundary:   cfg.Boundary,
		Dt:         cfg.Timestep(),
		Frames:     result.Frames,
		Skip:       cfg.Skip,
		Seed:       cfg.Seed,
		Components: hist.Components,
		Params:     params,
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "history.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time"}
	for c := 0; c < hist.Components; c++ {
		for i := 0; i < hist.N; i++ {
			header = append(header, fmt.Sprintf("%s%d", componentName(c), i))
		}
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for k := 0; k < hist.Rows(); k++ {
		row := []string{strconv.FormatFloat(hist.Times[k], 'g', -1, 64)}
		for _, f := range hist.Row(k) {
			for _, v := range f {
				row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadHistory reads a saved history back as times plus per-component
// trajectories, trajectory[c][k] being component c at frame row k.
func (s *Store) LoadHistory(runID string) ([]float64, [][]field.Field, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "history.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, nil, nil
	}

	want := 1 + meta.Components*meta.N
	times := make([]float64, 0, len(records)-1)
	traj := make([][]field.Field, meta.Components)

	for _, record := range records[1:] {
		if len(record) != want {
			return nil, nil, fmt.Errorf("history row has %d columns, want %d", len(record), want)
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, err
		}
		times = append(times, t)

		col := 1
		for c := 0; c < meta.Components; c++ {
			f := make(field.Field, meta.N)
			for i := range f {
				v, err := strconv.ParseFloat(record[col], 64)
				if err != nil {
					return nil, nil, err
				}
				f[i] = v
				col++
			}
			traj[c] = append(traj[c], f)
		}
	}

	return times, traj, nil
}
