package config

var Presets = map[string]map[string]*Config{
	"fisher": {
		// The classroom scenario: a 1.2*K pulse diffusing out and relaxing
		// toward the uniform steady state u = K.
		"pulse": {
			Model: "fisher", N: 100, Length: 1.0, Boundary: "reflecting",
			StabilityMargin: 0.4, Frames: 500, Skip: 1,
			Params: ParamsConfig{Diffusion: 0.002, Growth: 2.0, Capacity: 4.0},
			Init:   InitConfig{Shape: "pulse", From: 0.6, To: 0.7, Amplitude: 4.8},
		},
		"invasion": {
			Model: "fisher", N: 200, Length: 2.0, Boundary: "reflecting",
			StabilityMargin: 0.4, Frames: 800, Skip: 2,
			Params: ParamsConfig{Diffusion: 0.001, Growth: 1.0, Capacity: 1.0},
			Init:   InitConfig{Shape: "pulse", From: 0.0, To: 0.05, Amplitude: 1.0},
		},
		"decay": {
			Model: "fisher", N: 100, Length: 1.0, Boundary: "reflecting",
			StabilityMargin: 0.4, Frames: 300, Skip: 1,
			Params: ParamsConfig{Diffusion: 0.002, Growth: 2.0, Capacity: 4.0},
			Init:   InitConfig{Shape: "uniform", Amplitude: 6.0},
		},
	},
	"heat": {
		"gaussian": {
			Model: "heat", N: 100, Length: 1.0, Boundary: "reflecting",
			StabilityMargin: 0.4, Frames: 400, Skip: 2,
			Params: ParamsConfig{Diffusion: 0.001},
			Init:   InitConfig{Shape: "gaussian"},
		},
		"ring": {
			Model: "heat", N: 100, Length: 1.0, Boundary: "periodic",
			StabilityMargin: 0.4, Frames: 400, Skip: 2,
			Params: ParamsConfig{Diffusion: 0.001},
			Init:   InitConfig{Shape: "pulse", From: 0.45, To: 0.55, Amplitude: 1.0},
		},
		"sink": {
			Model: "heat", N: 100, Length: 1.0, Boundary: "fixed",
			StabilityMargin: 0.4, Frames: 600, Skip: 2,
			Params: ParamsConfig{Diffusion: 0.001},
			Init:   InitConfig{Shape: "uniform", Amplitude: 1.0},
		},
	},
	"grayscott": {
		"pulses": {
			Model: "grayscott", N: 256, Length: 2.5, Boundary: "periodic",
			Dt: 0.2, Frames: 2000, Skip: 25,
			Params: ParamsConfig{Diffusion: 2e-5, DiffusionV: 1e-5, Feed: 0.025, Kill: 0.055},
		},
		"replicator": {
			Model: "grayscott", N: 256, Length: 2.5, Boundary: "periodic",
			Dt: 0.2, Frames: 2000, Skip: 25,
			Params: ParamsConfig{Diffusion: 2e-5, DiffusionV: 1e-5, Feed: 0.018, Kill: 0.047},
		},
	},
	"kdv": {
		"soliton": {
			Model: "kdv", N: 256, Length: 4.0, Boundary: "periodic",
			Dt: 1e-6, Frames: 500, Skip: 400,
			Params: ParamsConfig{Speed: 16.0},
			Init:   InitConfig{Shape: "soliton"},
		},
		"slow": {
			Model: "kdv", N: 256, Length: 4.0, Boundary: "periodic",
			Dt: 2e-6, Frames: 500, Skip: 200,
			Params: ParamsConfig{Speed: 4.0},
			Init:   InitConfig{Shape: "soliton"},
		},
	},
	"stochastic": {
		"noisy": {
			Model: "stochastic", N: 100, Length: 1.0, Boundary: "reflecting",
			StabilityMargin: 0.4, Frames: 500, Skip: 1, Seed: 42,
			Params: ParamsConfig{Diffusion: 0.002, Growth: 2.0, Capacity: 4.0, Noise: 0.05},
		},
		"quiet": {
			Model: "stochastic", N: 100, Length: 1.0, Boundary: "reflecting",
			StabilityMargin: 0.4, Frames: 500, Skip: 1, Seed: 7,
			Params: ParamsConfig{Diffusion: 0.002, Growth: 2.0, Capacity: 4.0, Noise: 0.01},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
