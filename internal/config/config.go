package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultN         = 100
	DefaultLength    = 1.0
	DefaultDiffusion = 0.002
	DefaultGrowth    = 2.0
	DefaultCapacity  = 4.0
	DefaultMargin    = 0.4
	DefaultFrames    = 500
	DefaultSkip      = 1
)

type Config struct {
	Model    string  `yaml:"model"`
	N        int     `yaml:"grid_points"`
	Length   float64 `yaml:"length"`
	Boundary string  `yaml:"boundary"`
	// Dt is the integration sub-step; 0 means derive it from the stability
	// margin as dt = margin * dx² / D.
	Dt              float64      `yaml:"dt"`
	StabilityMargin float64      `yaml:"stability_margin"`
	Frames          int          `yaml:"frames"`
	Skip            int          `yaml:"skip"`
	Seed            int64        `yaml:"seed"`
	Params          ParamsConfig `yaml:"params"`
	Init            InitConfig   `yaml:"init"`
}

type ParamsConfig struct {
	Diffusion  float64 `yaml:"diffusion"`
	Growth     float64 `yaml:"growth"`
	Capacity   float64 `yaml:"capacity"`
	DiffusionV float64 `yaml:"diffusion_v"`
	Feed       float64 `yaml:"feed"`
	Kill       float64 `yaml:"kill"`
	Noise      float64 `yaml:"noise"`
	Speed      float64 `yaml:"speed"`
}

type InitConfig struct {
	// Shape is one of: default, pulse, gaussian, uniform, soliton.
	Shape string `yaml:"shape"`
	// From and To are fractions of the domain length bounding a pulse.
	From      float64 `yaml:"from"`
	To        float64 `yaml:"to"`
	Amplitude float64 `yaml:"amplitude"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:           "fisher",
		N:               DefaultN,
		Length:          DefaultLength,
		Boundary:        "reflecting",
		StabilityMargin: DefaultMargin,
		Frames:          DefaultFrames,
		Skip:            DefaultSkip,
		Params: ParamsConfig{
			Diffusion:  DefaultDiffusion,
			Growth:     DefaultGrowth,
			Capacity:   DefaultCapacity,
			DiffusionV: 0.001,
			Feed:       0.025,
			Kill:       0.055,
			Noise:      0.1,
			Speed:      16.0,
		},
		Init: InitConfig{Shape: "default", From: 0.6, To: 0.7},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Dx returns the grid spacing of the configured domain.
func (c *Config) Dx() float64 {
	return c.Length / float64(c.N-1)
}

// Timestep resolves the sub-step size: an explicit dt wins, otherwise the
// stability margin is applied to the diffusion bound d*dt = margin.
func (c *Config) Timestep() float64 {
	if c.Dt > 0 {
		return c.Dt
	}
	d := c.Params.Diffusion / (c.Dx() * c.Dx())
	if d <= 0 {
		return 0.01
	}
	margin := c.StabilityMargin
	if margin <= 0 {
		margin = DefaultMargin
	}
	return margin / d
}
