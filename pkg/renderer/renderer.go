// Package renderer drives progressive rendering: it turns a core.Scene and
// a core.Camera into pixel samples via the integrator's radiance estimator,
// dispatched tile-parallel across workers (spec.md §4.H, §5, §6).
package renderer

import (
	"context"
	"image"
	"image/color"

	"github.com/ghalston/pathtrace-core/pkg/core"
	"github.com/ghalston/pathtrace-core/pkg/integrator"
)

// Config configures a Renderer's progressive behavior and the estimator it
// drives. Zero values for the estimator fields fall back to the estimator's
// own defaults (see integrator.NewEstimator).
type Config struct {
	TileSize       int // pixel extent of each dispatched tile
	SamplesPerPass int // new samples added to every pixel per Step call
	NumWorkers     int // concurrent tiles in flight; 0 = runtime.NumCPU()
	Seed           uint64
	RNGFamily      core.RNGFamily

	MaxDepth                  int
	RussianRouletteMinBounces int
	DirectLightProbability    float64
}

// DefaultConfig returns sensible defaults for interactive progressive
// rendering: small per-pass sample counts so the first pass is a quick
// preview, tiles sized for typical cache-friendly dispatch.
func DefaultConfig() Config {
	return Config{
		TileSize:       64,
		SamplesPerPass: 1,
		NumWorkers:     0,
		Seed:           1,
		RNGFamily:      core.RNGXoroshiro128Plus,

		MaxDepth:                  integrator.DefaultMaxDepth,
		RussianRouletteMinBounces: integrator.DefaultRussianRouletteMinBounces,
		DirectLightProbability:    integrator.DefaultDirectLightProbability,
	}
}

// Renderer drives progressive rendering of a scene, implementing spec.md
// §6's Renderer.new/step/stepCount/pixel/badSample* surface.
type Renderer struct {
	scene      core.Scene
	camera     *core.Camera
	config     Config
	estimator  *integrator.Estimator
	randomPool *core.RandomPool
	pixels     [][]PixelStats
	badSamples BadSampleCounters
	passes     uint
	logger     core.Logger
}

// New builds a Renderer for scene. logger may be nil.
func New(scene core.Scene, config Config, logger core.Logger) *Renderer {
	camera := scene.Camera()
	width, height := camera.ResolutionX, camera.ResolutionY

	pixels := make([][]PixelStats, height)
	for y := range pixels {
		pixels[y] = make([]PixelStats, width)
	}

	estimator := integrator.NewEstimator(logger)
	if config.MaxDepth > 0 {
		estimator.MaxDepth = config.MaxDepth
	}
	if config.RussianRouletteMinBounces > 0 {
		estimator.RussianRouletteMinBounces = config.RussianRouletteMinBounces
	}
	if config.DirectLightProbability > 0 {
		estimator.DirectLightProbability = config.DirectLightProbability
	}

	return &Renderer{
		scene:      scene,
		camera:     camera,
		config:     config,
		estimator:  estimator,
		randomPool: core.NewRandomPool(width, height, config.Seed, config.RNGFamily),
		pixels:     pixels,
		logger:     logger,
	}
}

// Step runs one progressive pass: config.SamplesPerPass new samples for
// every pixel, dispatched tile-parallel over disjoint pixel regions so no
// locking is needed within the pass (spec.md §4.H, §5).
func (r *Renderer) Step(ctx context.Context) (RenderStats, error) {
	tiles := NewTileGrid(r.camera.ResolutionX, r.camera.ResolutionY, r.config.TileSize)

	err := RunTiles(ctx, tiles, r.config.NumWorkers, func(_ context.Context, tile Tile) error {
		r.renderTile(tile)
		return nil
	})
	if err != nil {
		return RenderStats{}, err
	}

	r.passes++
	if r.logger != nil {
		r.logger.Printf("pass %d complete\n", r.passes)
	}
	return r.collectStats(), nil
}

func (r *Renderer) renderTile(tile Tile) {
	bounds := tile.Bounds
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rng := r.randomPool.Stream(x, y)
			ps := &r.pixels[y][x]
			for s := 0; s < r.config.SamplesPerPass; s++ {
				uv := rng.Get2D()
				ray := r.camera.GetRay(x, y, uv.X, uv.Y)
				radiance := r.estimator.Li(r.scene, ray, rng)
				ps.AddSample(r.badSamples.Sanitize(radiance))
			}
		}
	}
}

func (r *Renderer) collectStats() RenderStats {
	total := r.camera.ResolutionX * r.camera.ResolutionY
	samples := 0
	for y := range r.pixels {
		for x := range r.pixels[y] {
			samples += r.pixels[y][x].SampleCount
		}
	}
	return RenderStats{
		TotalPixels:    total,
		TotalSamples:   samples,
		AverageSamples: float64(samples) / float64(total),
	}
}

// StepCount returns the number of completed progressive passes.
func (r *Renderer) StepCount() uint { return r.passes }

// Pixel returns the accumulated radiance and sample count for pixel (x,y).
func (r *Renderer) Pixel(x, y int) (core.Vec3, int) {
	ps := &r.pixels[y][x]
	return ps.ColorAccum, ps.SampleCount
}

func (r *Renderer) BadSampleNan() uint64      { return r.badSamples.Nan() }
func (r *Renderer) BadSampleInf() uint64      { return r.badSamples.Inf() }
func (r *Renderer) BadSampleNegative() uint64 { return r.badSamples.Negative() }
func (r *Renderer) BadSampleFirefly() uint64  { return r.badSamples.Firefly() }

// Image renders the current accumulator state to a gamma-corrected RGBA
// image, for output encoding. Not part of spec.md's core surface, but
// every caller needs some way to externalize pixel(x,y); kept as the
// teacher's own `vec3ToColor` conversion (gamma 2.0, clamp to [0,1]).
func (r *Renderer) Image() *image.RGBA {
	w, h := r.camera.ResolutionX, r.camera.ResolutionY
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, vec3ToColor(r.pixels[y][x].Color()))
		}
	}
	return img
}

func vec3ToColor(c core.Vec3) color.RGBA {
	c = c.GammaCorrect(2.0).Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	}
}
