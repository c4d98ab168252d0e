package material

import (
	"math"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64   // Index of refraction (e.g., 1.5 for glass)
	Albedo          core.Vec3 // Tint applied on every bounce; white for clear glass
}

// NewDielectric creates a new clear dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return NewTintedDielectric(core.NewVec3(1.0, 1.0, 1.0), refractiveIndex)
}

// NewTintedDielectric creates a dielectric that attenuates by albedo on each interaction
func NewTintedDielectric(albedo core.Vec3, refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex, Albedo: albedo}
}

// Scatter implements the Material interface for dielectric scattering.
// Dielectrics never absorb; they only choose between reflection and refraction.
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Determine if we're entering or exiting the material
	var refractionRatio float64
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex
	} else {
		refractionRatio = d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)
	reflectDraw := sampler.Get1D()

	var direction core.Vec3
	if refracted, ok := Refract(unitDirection, hit.Normal, refractionRatio); ok {
		if reflectDraw < Reflectance(cosTheta, d.RefractiveIndex) {
			direction = Reflect(unitDirection, hit.Normal)
		} else {
			direction = refracted
		}
	} else {
		// Total internal reflection
		direction = Reflect(unitDirection, hit.Normal)
	}

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: d.Albedo,
	}, true
}

// Refract bends the unit vector uv through a surface with normal n using Snell's law.
// It returns false when the discriminant is not positive (total internal reflection).
func Refract(uv, n core.Vec3, etaiOverEtat float64) (core.Vec3, bool) {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	discriminant := 1.0 - etaiOverEtat*etaiOverEtat*(1-cosTheta*cosTheta)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}

	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(discriminant))
	return rOutPerp.Add(rOutParallel), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractiveIndex float64) float64 {
	// Matched indices form no optical interface
	if refractiveIndex == 1.0 {
		return 0
	}
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
