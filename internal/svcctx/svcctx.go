// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/jackzampolin/pagenum/internal/config"
	"github.com/jackzampolin/pagenum/internal/document"
	"github.com/jackzampolin/pagenum/internal/export"
	"github.com/jackzampolin/pagenum/internal/home"
	"github.com/jackzampolin/pagenum/internal/label"
	"github.com/jackzampolin/pagenum/internal/render"
	"github.com/jackzampolin/pagenum/internal/workspace"
)

// Renderer is a rasterizer that can report whether its backend is usable.
type Renderer interface {
	render.Rasterizer
	Available() bool
}

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Workspaces    *workspace.Store
	Loader        document.Loader
	Renderer      Renderer
	Exporter      *export.Exporter
	ConfigManager *config.Manager
	Logger        *slog.Logger
	Home          *home.Dir
	MaxUpload     int64 // accessed atomically, updated on config reload
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// WorkspacesFrom extracts the workspace store from context.
func WorkspacesFrom(ctx context.Context) *workspace.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Workspaces
	}
	return nil
}

// LoaderFrom extracts the document loader from context.
func LoaderFrom(ctx context.Context) document.Loader {
	if s := ServicesFrom(ctx); s != nil {
		return s.Loader
	}
	return nil
}

// RendererFrom extracts the page renderer from context.
func RendererFrom(ctx context.Context) Renderer {
	if s := ServicesFrom(ctx); s != nil {
		return s.Renderer
	}
	return nil
}

// ExporterFrom extracts the exporter from context.
func ExporterFrom(ctx context.Context) *export.Exporter {
	if s := ServicesFrom(ctx); s != nil {
		return s.Exporter
	}
	return nil
}

// LoggerFrom extracts the logger from context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil && s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}

// MaxUploadFrom returns the upload size limit in bytes, or 0 for none.
func MaxUploadFrom(ctx context.Context) int64 {
	if s := ServicesFrom(ctx); s != nil {
		return atomic.LoadInt64(&s.MaxUpload)
	}
	return 0
}

// DefaultOptionsFrom returns the configured default numbering options,
// falling back to the built-in defaults.
func DefaultOptionsFrom(ctx context.Context) label.RawOptions {
	if s := ServicesFrom(ctx); s != nil && s.ConfigManager != nil {
		return s.ConfigManager.Get().Numbering.Clone()
	}
	return label.DefaultRawOptions()
}
