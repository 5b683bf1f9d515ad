package config

import (
	"fmt"
	"time"

	"github.com/jackzampolin/pagenum/internal/label"
)

// Config holds pagenum configuration.
// Stored at: $HOME/.pagenum/config.yaml
type Config struct {
	Numbering label.RawOptions `mapstructure:"numbering" json:"numbering" yaml:"numbering"`
	Preview   PreviewConfig    `mapstructure:"preview" json:"preview" yaml:"preview"`
	Server    ServerConfig     `mapstructure:"server" json:"server" yaml:"server"`
}

// PreviewConfig controls preview rendering.
type PreviewConfig struct {
	Scale      float64 `mapstructure:"scale" json:"scale" yaml:"scale"`                   // zoom relative to 72 DPI
	DebounceMS int     `mapstructure:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms"` // quiet period before option changes rebuild
	Pdftoppm   string  `mapstructure:"pdftoppm" json:"pdftoppm" yaml:"pdftoppm"`          // renderer binary (supports ${ENV_VAR} syntax)
	ScratchDir string  `mapstructure:"scratch_dir" json:"scratch_dir" yaml:"scratch_dir"` // empty: $HOME/.pagenum/scratch
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host              string `mapstructure:"host" json:"host" yaml:"host"`
	Port              string `mapstructure:"port" json:"port" yaml:"port"`
	MaxUploadMB       int    `mapstructure:"max_upload_mb" json:"max_upload_mb" yaml:"max_upload_mb"`
	SessionTTLMinutes int    `mapstructure:"session_ttl_minutes" json:"session_ttl_minutes" yaml:"session_ttl_minutes"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	numbering := label.DefaultRawOptions()
	opacity := label.DefaultOpacity
	numbering.Opacity = &opacity

	return &Config{
		Numbering: numbering,
		Preview: PreviewConfig{
			Scale:      1.5,
			DebounceMS: 300,
			Pdftoppm:   "pdftoppm",
		},
		Server: ServerConfig{
			Host:              "127.0.0.1",
			Port:              "8080",
			MaxUploadMB:       100,
			SessionTTLMinutes: 30,
		},
	}
}

// Debounce returns the debounce interval.
func (p PreviewConfig) Debounce() time.Duration {
	return time.Duration(p.DebounceMS) * time.Millisecond
}

// PdftoppmPath returns the renderer binary with env references expanded.
func (p PreviewConfig) PdftoppmPath() string {
	if bin := ResolveEnvVars(p.Pdftoppm); bin != "" {
		return bin
	}
	return "pdftoppm"
}

// MaxUploadBytes returns the upload limit in bytes.
func (s ServerConfig) MaxUploadBytes() int64 {
	return int64(s.MaxUploadMB) << 20
}

// SessionTTL returns the idle expiry for workspaces.
func (s ServerConfig) SessionTTL() time.Duration {
	return time.Duration(s.SessionTTLMinutes) * time.Minute
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	if _, err := c.Numbering.Resolve(); err != nil {
		return fmt.Errorf("numbering: %w", err)
	}
	if c.Preview.Scale <= 0 {
		return fmt.Errorf("preview.scale must be positive, got %g", c.Preview.Scale)
	}
	if c.Preview.DebounceMS < 0 {
		return fmt.Errorf("preview.debounce_ms must not be negative, got %d", c.Preview.DebounceMS)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}
	if c.Server.SessionTTLMinutes <= 0 {
		return fmt.Errorf("server.session_ttl_minutes must be positive, got %d", c.Server.SessionTTLMinutes)
	}
	return nil
}
