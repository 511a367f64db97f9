// Package config loads umlgen settings from an optional YAML file and the
// environment. Environment variables override YAML values; API keys only come
// from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DefaultPath is read when no config file is named.
const DefaultPath = "umlgen.yaml"

// Config holds all configuration for umlgen.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Generation GenerationConfig `yaml:"generation"`
	Vision     VisionConfig     `yaml:"vision"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	BindAddr     string        `yaml:"bind_addr" env:"UMLGEN_BIND_ADDR" env-default:"127.0.0.1"`
	Port         string        `yaml:"port" env:"UMLGEN_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"UMLGEN_READ_TIMEOUT" env-default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"UMLGEN_WRITE_TIMEOUT" env-default:"120s"`
	// AllowedOrigins is a comma-separated CORS allow list; "*" allows any origin.
	AllowedOrigins string `yaml:"allowed_origins" env:"UMLGEN_ALLOWED_ORIGINS" env-default:"*"`
	// MaxUploadMB bounds request bodies, images included.
	MaxUploadMB int64 `yaml:"max_upload_mb" env:"UMLGEN_MAX_UPLOAD_MB" env-default:"10"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level" env:"UMLGEN_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"UMLGEN_LOG_FORMAT" env-default:"json"`
}

// GenerationConfig holds defaults applied when a request leaves them out.
type GenerationConfig struct {
	ProjectName string `yaml:"project_name" env:"UMLGEN_PROJECT_NAME" env-default:"Proyecto"`
	BasePackage string `yaml:"base_package" env:"UMLGEN_BASE_PACKAGE" env-default:"com.example"`
	OutputDir   string `yaml:"output_dir" env:"UMLGEN_OUTPUT_DIR" env-default:"./generated"`
	BaseURL     string `yaml:"base_url" env:"UMLGEN_BASE_URL" env-default:"http://localhost:8080"`
}

// VisionConfig configures the external image-to-diagram service.
type VisionConfig struct {
	Provider string        `yaml:"provider" env:"UMLGEN_VISION_PROVIDER" env-default:"openai"`
	Model    string        `yaml:"model" env:"UMLGEN_VISION_MODEL" env-default:""`
	BaseURL  string        `yaml:"base_url" env:"UMLGEN_VISION_BASE_URL" env-default:""`
	Timeout  time.Duration `yaml:"timeout" env:"UMLGEN_VISION_TIMEOUT" env-default:"60s"`
	APIKey   string        `yaml:"-" env:"UMLGEN_VISION_API_KEY"` // Secret - not in YAML
}

// Enabled reports whether a vision provider can be called.
func (v *VisionConfig) Enabled() bool {
	return v.APIKey != ""
}

// Origins splits AllowedOrigins.
func (s *ServerConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(s.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Addr is the listen address.
func (s *ServerConfig) Addr() string {
	return s.BindAddr + ":" + s.Port
}

// Load reads path (DefaultPath when empty) if it exists, then the
// environment. A .env file in the working directory is loaded first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = DefaultPath
	}
	cfg := &Config{}
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log format must be json or console, got %q", c.Log.Format)
	}
	switch c.Vision.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("vision provider must be openai or anthropic, got %q", c.Vision.Provider)
	}
	if c.Vision.Timeout <= 0 {
		return fmt.Errorf("vision timeout must be positive")
	}
	return nil
}
