package scene

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

func init() {
	register(SceneInfo{
		ID:          "basic",
		DisplayName: "Basic Sphere",
		Description: "One diffuse sphere on a diffuse ground sphere, pinhole camera",
	}, func() renderer.SamplingConfig { return samplingConfig(200, 100, 100, 50) }, NewBasicScene)

	register(SceneInfo{
		ID:          "random",
		DisplayName: "Random Spheres",
		Description: "Grid of randomly placed small spheres around three large ones",
	}, func() renderer.SamplingConfig { return samplingConfig(600, 400, 60, 20) }, NewRandomScene)

	register(SceneInfo{
		ID:          "moving",
		DisplayName: "Moving Sphere",
		Description: "Three large spheres and one sphere moving across the shutter interval",
	}, func() renderer.SamplingConfig { return samplingConfig(600, 338, 60, 20) }, NewMovingSphereScene)
}

// NewBasicScene creates a single diffuse sphere resting on a large ground sphere,
// viewed head-on through a pinhole camera at the origin
func NewBasicScene(cfg renderer.SamplingConfig, opts Options, sampler core.Sampler) *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     90,
		Aperture: 0,
	}
	s := newScene("basic", cameraConfig, cfg)

	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	return s
}

// addHeroSpheres adds the three large spheres shared by the weekend scenes
func addHeroSpheres(s *Scene) {
	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, material.NewTintedDielectric(core.NewVec3(0.9, 0.9, 0.9), 1.5))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))
}

// weekendCamera frames the large spheres from far away with a narrow field of view
func weekendCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:     core.NewVec3(0, 2, 24),
		LookAt:       core.NewVec3(0, 1, 0),
		Up:           core.NewVec3(0, 1, 0),
		VFov:         20,
		Aperture:     0.1,
		ShutterOpen:  0,
		ShutterClose: 1,
	}
}

// NewRandomScene creates the 22x22 grid of small random spheres around three large ones
func NewRandomScene(cfg renderer.SamplingConfig, opts Options, sampler core.Sampler) *Scene {
	s := newScene("random", weekendCamera(), cfg)

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			materialChance := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)

			// Keep clear of the large metal sphere
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			var sphereMaterial material.Material
			switch {
			case materialChance < 0.8:
				albedo := core.RandomVec3(sampler).MultiplyVec(core.RandomVec3(sampler))
				sphereMaterial = material.NewLambertian(albedo)
			case materialChance < 0.95:
				albedo := core.RandomVec3Range(sampler, 0.5, 1)
				fuzz := core.RandomRange(sampler, 0, 0.5)
				sphereMaterial = material.NewMetal(albedo, fuzz)
			default:
				sphereMaterial = material.NewTintedDielectric(core.NewVec3(0.9, 0.9, 0.9), 1.5)
			}
			s.AddSphere(center, 0.2, sphereMaterial)
		}
	}

	addHeroSpheres(s)
	return s
}

// NewMovingSphereScene compares a sphere sweeping across the shutter interval with still ones
func NewMovingSphereScene(cfg renderer.SamplingConfig, opts Options, sampler core.Sampler) *Scene {
	s := newScene("moving", weekendCamera(), cfg)

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, material.NewTintedDielectric(core.NewVec3(0.9, 0.9, 0.0), 1.5))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	s.Add(geometry.NewMovingSphere(
		core.NewVec3(-4, 3, 0), core.NewVec3(4, 3, 0),
		0.25, 0.75, 1.0,
		material.NewLambertian(core.NewVec3(0.0, 0.0, 0.0)),
	))

	return s
}
