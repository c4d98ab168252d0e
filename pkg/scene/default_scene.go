package scene

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

func init() {
	register(SceneInfo{
		ID:          "materials",
		DisplayName: "Material Showcase",
		Description: "Diffuse, metal, solid glass and hollow glass spheres with depth of field",
	}, func() renderer.SamplingConfig { return samplingConfig(400, 225, 200, 50) }, NewMaterialsScene)
}

// NewMaterialsScene creates a scene with one sphere of each material plus a hollow glass shell
func NewMaterialsScene(cfg renderer.SamplingConfig, opts Options, sampler core.Sampler) *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0, // Narrower field of view for focus effect
		Aperture:      0.05,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}
	s := newScene("materials", cameraConfig, cfg)

	// Create materials
	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(1.5)
	amberGlass := material.NewTintedDielectric(core.NewVec3(1.0, 0.85, 0.6), 1.5)

	s.AddSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed)
	s.AddSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver)
	s.AddSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold)
	s.AddSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, amberGlass)

	// Hollow glass sphere with a blue sphere inside; the negative radius flips the inner normals
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, materialGlass)
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), -0.24, materialGlass)
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue)

	// Ground sphere large enough to read as a plane
	s.AddSphere(core.NewVec3(0, -1000, -1), 1000, lambertianGreen)

	return s
}
