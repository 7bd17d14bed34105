package lights

import (
	"fmt"
	"math"

	"github.com/ghalston/pathtrace-core/pkg/core"
	"github.com/ghalston/pathtrace-core/pkg/loaders"
)

// EnvironmentImportanceLight importance-samples an equirectangular image as
// a distant light source, grounded on the original renderer's ImageEnvmap:
// pixel (x,y) carries selection weight luminance(x,y)·Ω(y), where Ω(y) is
// the solid angle subtended by that pixel's latitude band. Implements
// core.EnvironmentLight.
//
// Convention: pixel (x,y) maps to spherical (φ,θ) via φ = -2π·x/W,
// θ = π·y/H (θ measured from the +Y pole); Emit/PDF/Sample share it.
type EnvironmentImportanceLight struct {
	width, height int
	pixels        []core.Vec3
	table         *core.AliasTable
	pdf           []float64
	thetaStep     float64
}

// NewEnvironmentImportanceLight loads an equirectangular image and builds
// its alias table and precomputed direction-space pdf grid.
func NewEnvironmentImportanceLight(path string) (*EnvironmentImportanceLight, error) {
	img, err := loaders.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("loading environment map: %w", err)
	}

	w, h := img.Width, img.Height
	thetaStep := math.Pi / float64(h)
	solidAngleAtRow := func(y int) float64 {
		begTheta := thetaStep * float64(y)
		endTheta := begTheta + thetaStep
		return (math.Cos(begTheta) - math.Cos(endTheta)) * 2 * math.Pi / float64(w)
	}

	weights := make([]float64, w*h)
	for y := 0; y < h; y++ {
		sr := solidAngleAtRow(y)
		for x := 0; x < w; x++ {
			c := img.Pixels[y*w+x]
			luminance := 0.2126*c.X + 0.7152*c.Y + 0.0722*c.Z
			weights[y*w+x] = luminance * sr
		}
	}

	table := core.NewAliasTable(weights)

	pdf := make([]float64, w*h)
	for y := 0; y < h; y++ {
		sr := solidAngleAtRow(y)
		for x := 0; x < w; x++ {
			i := y*w + x
			if sr > 0 {
				pdf[i] = table.Probability(i) / sr
			}
		}
	}

	return &EnvironmentImportanceLight{
		width: w, height: h,
		pixels:    img.Pixels,
		table:     table,
		pdf:       pdf,
		thetaStep: thetaStep,
	}, nil
}

// directionToPixel inverts the sampling convention: it returns the pixel
// (x,y) whose jittered sample could have produced direction d, or ok=false
// if d is non-finite.
func (e *EnvironmentImportanceLight) directionToPixel(d core.Vec3) (x, y int, ok bool) {
	cosTheta := math.Max(-1, math.Min(1, d.Y))
	theta := math.Acos(cosTheta)
	phi := math.Atan2(d.X, d.Z)
	if math.IsNaN(theta) || math.IsNaN(phi) || math.IsInf(theta, 0) || math.IsInf(phi, 0) {
		return 0, 0, false
	}
	if phi < 0 {
		phi += 2 * math.Pi
	}

	xf := float64(e.width) * (1 - phi/(2*math.Pi))
	x = int(xf)
	if x >= e.width {
		x = 0
	}
	if x < 0 {
		x = 0
	}

	y = int(theta / e.thetaStep)
	if y >= e.height {
		y = e.height - 1
	}
	if y < 0 {
		y = 0
	}
	return x, y, true
}

// Emit returns the stored radiance for the pixel direction d maps to.
func (e *EnvironmentImportanceLight) Emit(d core.Vec3) core.Vec3 {
	x, y, ok := e.directionToPixel(d)
	if !ok {
		return core.Vec3{}
	}
	return e.pixels[y*e.width+x]
}

// PDF returns the precomputed direction-space density for d, or 0 if d is
// non-finite or falls in a degenerate (zero solid angle) row.
func (e *EnvironmentImportanceLight) PDF(d core.Vec3) float64 {
	x, y, ok := e.directionToPixel(d)
	if !ok {
		return 0
	}
	return e.pdf[y*e.width+x]
}

// Sample draws a direction proportional to the image's luminance·solid-angle
// weighting: pick a pixel via the alias table, then jitter within its cell.
func (e *EnvironmentImportanceLight) Sample(rng core.Sampler) core.Vec3 {
	idx := e.table.Sample(rng.Uniform64f(), rng.Uniform64f())
	if idx < 0 {
		return core.Vec3{Y: 1}
	}
	x := idx % e.width
	y := idx / e.width

	ux := rng.Uniform64f()
	phi := -2 * math.Pi * (float64(x) + ux) / float64(e.width)

	begTheta := e.thetaStep * float64(y)
	endTheta := begTheta + e.thetaStep
	begY := math.Cos(begTheta)
	endY := math.Cos(endTheta)

	uy := rng.Uniform64f()
	yCos := begY + (endY-begY)*uy
	r := math.Sqrt(math.Max(1-yCos*yCos, 0))

	return core.NewVec3(r*math.Sin(phi), yCos, r*math.Cos(phi))
}
