package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// Options customizes a built-in scene
type Options struct {
	// Sampling overrides the scene's recommended settings; zero fields keep the scene default
	Sampling renderer.SamplingConfig
	// TexturePath is the image used by texture-mapped scenes
	TexturePath string
	// Logger receives warnings raised while building the scene
	Logger core.Logger
}

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string // Name accepted by Create
	DisplayName string // Human-readable title
	Description string
}

// builder assembles a scene for a resolved sampling config. sampler drives any
// random placement so that a fixed seed reproduces the same scene.
type builder func(cfg renderer.SamplingConfig, opts Options, sampler core.Sampler) *Scene

type registryEntry struct {
	info     SceneInfo
	defaults func() renderer.SamplingConfig
	build    builder
}

var registry = map[string]registryEntry{}

func register(info SceneInfo, defaults func() renderer.SamplingConfig, build builder) {
	registry[info.ID] = registryEntry{info: info, defaults: defaults, build: build}
}

// Names returns the IDs of all built-in scenes in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListScenes returns metadata for every built-in scene, sorted by ID
func ListScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(registry))
	for _, name := range Names() {
		infos = append(infos, registry[name].info)
	}
	return infos
}

// Create builds the named scene. The returned scene still needs Preprocess.
func Create(name string, opts Options) (*Scene, error) {
	entry, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	if opts.Logger == nil {
		opts.Logger = renderer.NewDefaultLogger()
	}

	cfg := MergeSamplingConfig(entry.defaults(), opts.Sampling)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}

	return entry.build(cfg, opts, core.NewSeededSampler(cfg.Seed)), nil
}

// MergeSamplingConfig returns base with every non-zero field of override applied
func MergeSamplingConfig(base, override renderer.SamplingConfig) renderer.SamplingConfig {
	result := base
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.TileSize != 0 {
		result.TileSize = override.TileSize
	}
	if override.NumWorkers != 0 {
		result.NumWorkers = override.NumWorkers
	}
	if override.Seed != 0 {
		result.Seed = override.Seed
	}
	return result
}

// samplingConfig fills in the settings shared by every built-in scene
func samplingConfig(width, height, samples, depth int) renderer.SamplingConfig {
	cfg := renderer.DefaultSamplingConfig()
	cfg.Width = width
	cfg.Height = height
	cfg.SamplesPerPixel = samples
	cfg.MaxDepth = depth
	return cfg
}
