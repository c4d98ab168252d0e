package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config is the top-level render configuration
type Config struct {
	Render   RenderConfig  `yaml:"render"`
	Output   OutputConfig  `yaml:"output"`
	Publish  PublishConfig `yaml:"publish"`
	LogLevel string        `yaml:"log_level"` // debug, info, warn, error
	LogFile  string        `yaml:"log_file"`  // Optional; logs go to stdout and this file
}

// RenderConfig selects the scene and sampling settings. Zero numeric values
// keep the scene's recommended setting.
type RenderConfig struct {
	Scene           string `yaml:"scene"`
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	SamplesPerPixel int    `yaml:"samples_per_pixel"`
	MaxDepth        int    `yaml:"max_depth"`
	Seed            int64  `yaml:"seed"`
	Workers         int    `yaml:"workers"`
	TileSize        int    `yaml:"tile_size"`
	UseBVH          bool   `yaml:"use_bvh"`
	TexturePath     string `yaml:"texture_path"`
}

// OutputConfig controls where the image is written
type OutputConfig struct {
	Path           string `yaml:"path"`            // Extension picks the format; {scene} and {timestamp} are expanded
	ThumbnailWidth int    `yaml:"thumbnail_width"` // 0 disables the preview thumbnail
}

// PublishConfig holds the optional S3 upload settings
type PublishConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"` // Empty uses the AWS default endpoint
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Prefix    string `yaml:"prefix"`
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Scene:  "random",
			UseBVH: true,
		},
		Output: OutputConfig{
			Path:           "output/{scene}/render_{timestamp}.png",
			ThumbnailWidth: 0,
		},
		Publish: PublishConfig{
			Region: "us-east-1",
			Prefix: "renders/",
		},
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML file on top of the defaults. On error the defaults
// are returned alongside it.
func LoadConfig(filePath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", filePath, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", filePath, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML
func SaveConfig(cfg *Config, filePath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("writing config %s: %w", filePath, err)
	}
	return nil
}

// Validate reports every invalid field at once
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Render.Scene) == "" {
		errs = append(errs, errors.New("render.scene is required"))
	}
	nonNegative := []struct {
		name  string
		value int
	}{
		{"render.width", c.Render.Width},
		{"render.height", c.Render.Height},
		{"render.samples_per_pixel", c.Render.SamplesPerPixel},
		{"render.max_depth", c.Render.MaxDepth},
		{"render.workers", c.Render.Workers},
		{"render.tile_size", c.Render.TileSize},
		{"output.thumbnail_width", c.Output.ThumbnailWidth},
	}
	for _, field := range nonNegative {
		if field.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", field.name, field.value))
		}
	}
	if c.Output.Path == "" {
		errs = append(errs, errors.New("output.path is required"))
	}
	if c.Publish.Enabled {
		if c.Publish.Bucket == "" {
			errs = append(errs, errors.New("publish.bucket is required when publishing"))
		}
		if c.Publish.Region == "" {
			errs = append(errs, errors.New("publish.region is required when publishing"))
		}
	}
	return errors.Join(errs...)
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables already set are kept; a missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// EnvPrefix prefixes every environment override
const EnvPrefix = "PATHTRACER_"

// ApplyEnv overrides fields from PATHTRACER_* variables looked up with getenv.
// Pass os.Getenv for the process environment.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	var errs []error

	str := func(key string, dst *string) {
		if v := getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		if v := getenv(EnvPrefix + key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v := getenv(EnvPrefix + key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}

	str("SCENE", &c.Render.Scene)
	integer("WIDTH", &c.Render.Width)
	integer("HEIGHT", &c.Render.Height)
	integer("SAMPLES", &c.Render.SamplesPerPixel)
	integer("MAX_DEPTH", &c.Render.MaxDepth)
	integer("WORKERS", &c.Render.Workers)
	integer("TILE_SIZE", &c.Render.TileSize)
	boolean("USE_BVH", &c.Render.UseBVH)
	str("TEXTURE_PATH", &c.Render.TexturePath)
	if v := getenv(EnvPrefix + "SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", EnvPrefix, err))
		} else {
			c.Render.Seed = seed
		}
	}

	str("OUTPUT", &c.Output.Path)
	integer("THUMBNAIL_WIDTH", &c.Output.ThumbnailWidth)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FILE", &c.LogFile)

	boolean("S3_ENABLED", &c.Publish.Enabled)
	str("S3_BUCKET", &c.Publish.Bucket)
	str("S3_REGION", &c.Publish.Region)
	str("S3_ENDPOINT", &c.Publish.Endpoint)
	str("S3_ACCESS_KEY", &c.Publish.AccessKey)
	str("S3_SECRET_KEY", &c.Publish.SecretKey)
	str("S3_PREFIX", &c.Publish.Prefix)

	return errors.Join(errs...)
}
