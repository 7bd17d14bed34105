package core

import "math"

// OrthonormalBasis builds a right-handed frame with Z aligned to n, using
// Duff et al.'s branchless revised Frisvad construction, which avoids the
// singularity of the classic construction as n approaches (0,0,-1).
type OrthonormalBasis struct {
	X, Y, Z Vec3
}

// NewOrthonormalBasis builds a frame whose Z axis is n (assumed unit length).
func NewOrthonormalBasis(n Vec3) OrthonormalBasis {
	sign := math.Copysign(1.0, n.Z)
	a := -1.0 / (sign + n.Z)
	b := n.X * n.Y * a

	x := Vec3{X: 1.0 + sign*n.X*n.X*a, Y: sign * b, Z: -sign * n.X}
	y := Vec3{X: b, Y: sign + n.Y*n.Y*a, Z: -n.Y}

	return OrthonormalBasis{X: x, Y: y, Z: n}
}

// LocalToWorld transforms a vector from the basis's local frame to world space.
func (b OrthonormalBasis) LocalToWorld(v Vec3) Vec3 {
	return b.X.Multiply(v.X).Add(b.Y.Multiply(v.Y)).Add(b.Z.Multiply(v.Z))
}

// SampleCosineHemisphere draws a direction from the cosine-weighted
// hemisphere around unit normal n. Pdf for the returned direction is
// CosineHemispherePDF(n, wi).
func SampleCosineHemisphere(rng Sampler, n Vec3) Vec3 {
	var x, y, r2 float64
	for {
		u := rng.Get2D()
		x = 2*u.X - 1
		y = 2*u.Y - 1
		r2 = x*x + y*y
		if r2 < 1 {
			break
		}
	}
	z := math.Sqrt(math.Max(0, 1-r2))

	return NewOrthonormalBasis(n).LocalToWorld(Vec3{X: x, Y: y, Z: z})
}

// CosineHemispherePDF returns the solid-angle density of SampleCosineHemisphere
// for direction wi around normal n: max(0, n.wi)/pi.
func CosineHemispherePDF(n, wi Vec3) float64 {
	cosTheta := n.Dot(wi)
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}

// SampleUniformTriangle draws barycentric coordinates (b0,b1,b2) uniform in
// area measure over the unit triangle from two uniform samples (u,v).
func SampleUniformTriangle(u, v float64) (b0, b1, b2 float64) {
	if u+v > 1 {
		u, v = 1-u, 1-v
	}
	return 1 - u - v, u, v
}

// UniformTriangleAreaPDF returns the area-measure pdf of SampleUniformTriangle: 1/area.
func UniformTriangleAreaPDF(area float64) float64 {
	if area <= 0 {
		return 0
	}
	return 1.0 / area
}

// SolidAngleFromAreaPDF converts an area-measure density to a solid-angle
// density for a sample at distance t hitting a surface with normal ns along
// direction wi: pdf_omega = pdf_A * t^2 / |wi.ns|.
func SolidAngleFromAreaPDF(pdfArea, t float64, wi, ns Vec3) float64 {
	cosine := math.Abs(wi.Dot(ns))
	if cosine < 1e-12 {
		return 0
	}
	return pdfArea * t * t / cosine
}

// PowerHeuristic combines two sampling strategies using the power heuristic
// with beta=2.
func PowerHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	if fPdf == 0 {
		return 0
	}
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	return (f * f) / (f*f + g*g)
}

// BalanceHeuristic combines two sampling strategies using the balance
// heuristic; the radiance estimator's single p_mix denominator (spec.md
// §4.G) is an instance of this heuristic applied to a pre-summed mixture.
func BalanceHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	if fPdf == 0 {
		return 0
	}
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	return f / (f + g)
}
