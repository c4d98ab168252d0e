package scene

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/loaders"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

func init() {
	register(SceneInfo{
		ID:          "checker",
		DisplayName: "Checkered Spheres",
		Description: "Two large spheres sharing a solid checker texture",
	}, func() renderer.SamplingConfig { return samplingConfig(400, 225, 100, 50) }, NewCheckerScene)

	register(SceneInfo{
		ID:          "perlin",
		DisplayName: "Perlin Spheres",
		Description: "Noise-textured ground with a marble sphere",
	}, func() renderer.SamplingConfig { return samplingConfig(400, 225, 100, 50) }, NewPerlinScene)

	register(SceneInfo{
		ID:          "earth",
		DisplayName: "Earth",
		Description: "Image-textured globe; set the texture path to a world map",
	}, func() renderer.SamplingConfig { return samplingConfig(400, 225, 100, 50) }, NewEarthScene)
}

// textureCamera looks at the origin from a distance with a narrow field of view
func textureCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom: core.NewVec3(13, 2, 3),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     20,
		Aperture: 0,
	}
}

// NewCheckerScene creates two stacked spheres cut by the same 3D checker pattern
func NewCheckerScene(cfg renderer.SamplingConfig, opts Options, sampler core.Sampler) *Scene {
	s := newScene("checker", textureCamera(), cfg)

	checker := material.NewCheckerTextureFromColors(0.32,
		core.NewVec3(0.2, 0.3, 0.1),
		core.NewVec3(0.9, 0.9, 0.9),
	)
	s.AddSphere(core.NewVec3(0, -10, 0), 10, material.NewTexturedLambertian(checker))
	s.AddSphere(core.NewVec3(0, 10, 0), 10, material.NewTexturedLambertian(checker))

	return s
}

// NewPerlinScene creates a noise-textured ground with a marble sphere on top
func NewPerlinScene(cfg renderer.SamplingConfig, opts Options, sampler core.Sampler) *Scene {
	s := newScene("perlin", textureCamera(), cfg)

	noise := material.NewNoiseTexture(4, sampler)
	marble := material.NewMarbleTexture(4, sampler)
	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(noise))
	s.AddSphere(core.NewVec3(0, 2, 0), 2, material.NewTexturedLambertian(marble))

	return s
}

// NewEarthScene creates a single globe textured with the image at opts.TexturePath.
// A missing or unreadable image is logged and the globe renders cyan.
func NewEarthScene(cfg renderer.SamplingConfig, opts Options, sampler core.Sampler) *Scene {
	cameraConfig := textureCamera()
	cameraConfig.LookFrom = core.NewVec3(0, 0, 12)
	s := newScene("earth", cameraConfig, cfg)

	logger := opts.Logger
	if logger == nil {
		logger = renderer.NewDefaultLogger()
	}

	var source material.PixelSource
	if opts.TexturePath == "" {
		logger.Printf("Warning: earth scene has no texture path, rendering without image\n")
	} else if img, err := loaders.LoadImage(opts.TexturePath); err != nil {
		logger.Printf("Warning: %v\n", err)
	} else {
		source = img
	}

	s.AddSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(material.NewImageTexture(source)))
	return s
}
