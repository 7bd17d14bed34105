// Package config loads render configuration from YAML or environment
// variables via viper, per SPEC_FULL.md's ambient-stack configuration
// section.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/ghalston/pathtrace-core/pkg/core"
	"github.com/ghalston/pathtrace-core/pkg/integrator"
	"github.com/ghalston/pathtrace-core/pkg/renderer"
)

// RenderConfig holds every value a render driver needs that spec.md leaves
// to the embedding application: resolution, sampling budget, estimator
// bounce/MIS parameters, tile dispatch, and PRNG seeding.
type RenderConfig struct {
	ResolutionX int `mapstructure:"resolution_x"`
	ResolutionY int `mapstructure:"resolution_y"`

	SamplesPerPass int `mapstructure:"samples_per_pass"`

	MaxDepth                  int     `mapstructure:"max_depth"`
	RussianRouletteMinBounces int     `mapstructure:"russian_roulette_min_bounces"`
	DirectLightProbability    float64 `mapstructure:"direct_light_probability"`

	TileSize   int    `mapstructure:"tile_size"`
	NumWorkers int    `mapstructure:"num_workers"`
	Seed       uint64 `mapstructure:"seed"`
	RNGFamily  string `mapstructure:"rng_family"`
}

// Default returns the spec's documented defaults (spec.md §4.G/§9,
// renderer.DefaultConfig).
func Default() RenderConfig {
	rc := renderer.DefaultConfig()
	return RenderConfig{
		ResolutionX:               800,
		ResolutionY:               600,
		SamplesPerPass:            rc.SamplesPerPass,
		MaxDepth:                  integrator.DefaultMaxDepth,
		RussianRouletteMinBounces: integrator.DefaultRussianRouletteMinBounces,
		DirectLightProbability:    integrator.DefaultDirectLightProbability,
		TileSize:                  rc.TileSize,
		NumWorkers:                rc.NumWorkers,
		Seed:                      rc.Seed,
		RNGFamily:                 string(core.RNGXoroshiro128Plus),
	}
}

// applyDefaults registers every field's default on v so Unmarshal fills in
// anything absent from the config file or environment.
func applyDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("resolution_x", d.ResolutionX)
	v.SetDefault("resolution_y", d.ResolutionY)
	v.SetDefault("samples_per_pass", d.SamplesPerPass)
	v.SetDefault("max_depth", d.MaxDepth)
	v.SetDefault("russian_roulette_min_bounces", d.RussianRouletteMinBounces)
	v.SetDefault("direct_light_probability", d.DirectLightProbability)
	v.SetDefault("tile_size", d.TileSize)
	v.SetDefault("num_workers", d.NumWorkers)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("rng_family", d.RNGFamily)
}

// Load reads a YAML config file at path, falling back to Default() for any
// field it doesn't set. Environment variables prefixed PATHTRACE_ override
// both (e.g. PATHTRACE_MAX_DEPTH).
func Load(path string) (RenderConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("pathtrace")
	v.AutomaticEnv()
	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return RenderConfig{}, fmt.Errorf("reading render config %q: %w", path, err)
	}

	var cfg RenderConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return RenderConfig{}, fmt.Errorf("unmarshalling render config: %w", err)
	}
	return cfg, nil
}

// RendererConfig projects RenderConfig onto the renderer.Config that
// renderer.New consumes, including the estimator's bounce/MIS parameters.
func (c RenderConfig) RendererConfig() renderer.Config {
	return renderer.Config{
		TileSize:       c.TileSize,
		SamplesPerPass: c.SamplesPerPass,
		NumWorkers:     c.NumWorkers,
		Seed:           c.Seed,
		RNGFamily:      core.RNGFamily(c.RNGFamily),

		MaxDepth:                  c.MaxDepth,
		RussianRouletteMinBounces: c.RussianRouletteMinBounces,
		DirectLightProbability:    c.DirectLightProbability,
	}
}
