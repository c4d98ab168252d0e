package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// ErrEmptyScene is returned when a scene has nothing to render
var ErrEmptyScene = errors.New("scene contains no objects")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	Objects        *geometry.HittableList // Objects in the scene
	World          geometry.Hittable      // What rays are traced against; set by Preprocess
	SamplingConfig renderer.SamplingConfig
	Background     integrator.Background
}

// newScene creates an empty scene with a camera sized for config
func newScene(name string, cameraConfig renderer.CameraConfig, samplingConfig renderer.SamplingConfig) *Scene {
	cameraConfig.AspectRatio = float64(samplingConfig.Width) / float64(samplingConfig.Height)
	camera := renderer.NewCamera(cameraConfig)

	return &Scene{
		Name:           name,
		Camera:         camera,
		CameraConfig:   camera.Config(),
		Objects:        geometry.NewHittableList(),
		SamplingConfig: samplingConfig,
		Background:     integrator.DefaultSky(),
	}
}

// Add appends an object to the scene
func (s *Scene) Add(object geometry.Hittable) {
	s.Objects.Add(object)
}

// AddSphere adds a stationary sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.Add(geometry.NewSphere(center, radius, mat))
}

// Preprocess prepares the scene for rendering. With useBVH the objects are wrapped in a
// bounding volume hierarchy built with sampler; otherwise rays test the flat list.
func (s *Scene) Preprocess(useBVH bool, sampler core.Sampler) error {
	if s.Objects == nil || s.Objects.Len() == 0 {
		return fmt.Errorf("scene %q: %w", s.Name, ErrEmptyScene)
	}

	if useBVH {
		s.World = geometry.NewBVHFromList(s.Objects, sampler)
	} else {
		s.World = s.Objects
	}
	return nil
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	if s.Objects == nil {
		return 0
	}
	return s.Objects.Len()
}

// NewRaytracer creates a path-tracing raytracer for the preprocessed scene
func (s *Scene) NewRaytracer(logger core.Logger) (*renderer.Raytracer, error) {
	if s.World == nil {
		return nil, fmt.Errorf("scene %q has not been preprocessed", s.Name)
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", s.Name, err)
	}

	pathTracer := integrator.NewPathTracingIntegrator(s.Background)
	return renderer.NewRaytracer(s.Camera, s.World, pathTracer, s.SamplingConfig, logger), nil
}
