package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pdelab/internal/config"
)

var _ = Describe("Config", func() {
	Describe("DefaultConfig", func() {
		It("targets the logistic-diffusion model", func() {
			cfg := config.DefaultConfig()
			Expect(cfg.Model).To(Equal("fisher"))
			Expect(cfg.N).To(Equal(config.DefaultN))
			Expect(cfg.Length).To(Equal(config.DefaultLength))
			Expect(cfg.Boundary).To(Equal("reflecting"))
			Expect(cfg.Params.Capacity).To(Equal(config.DefaultCapacity))
		})

		It("leaves dt to the stability margin", func() {
			cfg := config.DefaultConfig()
			Expect(cfg.Dt).To(BeZero())
			Expect(cfg.StabilityMargin).To(Equal(config.DefaultMargin))
		})
	})

	Describe("Timestep", func() {
		It("prefers an explicit dt", func() {
			cfg := config.DefaultConfig()
			cfg.Dt = 0.123
			Expect(cfg.Timestep()).To(Equal(0.123))
		})

		It("derives dt from the margin and the rescaled diffusion", func() {
			cfg := config.DefaultConfig()
			dx := cfg.Dx()
			d := cfg.Params.Diffusion / (dx * dx)
			Expect(cfg.Timestep()).To(BeNumerically("~", cfg.StabilityMargin/d, 1e-12))
		})

		It("keeps the derived dt inside the diffusion stability bound", func() {
			cfg := config.DefaultConfig()
			dx := cfg.Dx()
			d := cfg.Params.Diffusion / (dx * dx)
			Expect(cfg.Timestep() * d).To(BeNumerically("<", 0.5))
		})

		It("falls back for diffusion-free models", func() {
			cfg := config.DefaultConfig()
			cfg.Params.Diffusion = 0
			Expect(cfg.Timestep()).To(Equal(0.01))
		})

		It("substitutes the default margin when unset", func() {
			cfg := config.DefaultConfig()
			cfg.StabilityMargin = 0
			dx := cfg.Dx()
			d := cfg.Params.Diffusion / (dx * dx)
			Expect(cfg.Timestep()).To(BeNumerically("~", config.DefaultMargin/d, 1e-12))
		})
	})

	Describe("Presets", func() {
		It("exposes the pulse relaxation scenario", func() {
			cfg := config.GetPreset("fisher", "pulse")
			Expect(cfg).NotTo(BeNil())
			Expect(cfg.Params.Capacity).To(Equal(4.0))
			Expect(cfg.Init.Shape).To(Equal("pulse"))
			Expect(cfg.Init.Amplitude).To(Equal(4.8))
			Expect(cfg.Frames).To(Equal(500))
		})

		It("returns nil for unknown names", func() {
			Expect(config.GetPreset("fisher", "nope")).To(BeNil())
			Expect(config.GetPreset("nope", "pulse")).To(BeNil())
		})

		It("lists presets per model", func() {
			Expect(config.ListPresets("kdv")).To(ConsistOf("soliton", "slow"))
			Expect(config.ListPresets("nope")).To(BeNil())
		})

		It("pins deterministic seeds on the stochastic presets", func() {
			for _, name := range config.ListPresets("stochastic") {
				cfg := config.GetPreset("stochastic", name)
				Expect(cfg.Seed).NotTo(BeZero())
			}
		})
	})

	Describe("Load and Save", func() {
		It("round-trips through YAML", func() {
			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "run.yaml")

			cfg := config.DefaultConfig()
			cfg.Model = "grayscott"
			cfg.N = 256
			cfg.Dt = 0.2
			cfg.Params.Feed = 0.018

			Expect(config.Save(path, cfg)).To(Succeed())

			loaded, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Model).To(Equal("grayscott"))
			Expect(loaded.N).To(Equal(256))
			Expect(loaded.Dt).To(Equal(0.2))
			Expect(loaded.Params.Feed).To(Equal(0.018))
		})

		It("fills unset keys from the defaults", func() {
			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "partial.yaml")
			Expect(os.WriteFile(path, []byte("model: heat\nboundary: periodic\n"), 0644)).To(Succeed())

			loaded, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Model).To(Equal("heat"))
			Expect(loaded.Boundary).To(Equal("periodic"))
			Expect(loaded.N).To(Equal(config.DefaultN))
			Expect(loaded.Frames).To(Equal(config.DefaultFrames))
		})

		It("reports missing files", func() {
			_, err := config.Load("/nonexistent/run.yaml")
			Expect(err).To(HaveOccurred())
		})
	})
})
