package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackzampolin/pagenum/internal/api"
	"github.com/jackzampolin/pagenum/internal/config"
	"github.com/jackzampolin/pagenum/internal/document"
	"github.com/jackzampolin/pagenum/internal/export"
	"github.com/jackzampolin/pagenum/internal/home"
	"github.com/jackzampolin/pagenum/internal/render"
	"github.com/jackzampolin/pagenum/internal/server/endpoints"
	"github.com/jackzampolin/pagenum/internal/svcctx"
	"github.com/jackzampolin/pagenum/internal/workspace"
)

// Server is the main pagenum HTTP server.
// It owns the in-memory workspace store and sweeps idle workspaces while
// running.
type Server struct {
	httpServer *http.Server
	workspaces *workspace.Store
	renderer   svcctx.Renderer
	configMgr  *config.Manager
	home       *home.Dir
	logger     *slog.Logger

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
	ready   atomic.Bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8080)
	Port string
	// Home is the pagenum home directory (scratch files live there)
	Home *home.Dir
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Renderer overrides the pdftoppm renderer built from config
	Renderer svcctx.Renderer
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Home == nil {
		h, err := home.New("")
		if err != nil {
			return nil, err
		}
		cfg.Home = h
	}

	appCfg := config.DefaultConfig()
	if cfg.ConfigManager != nil {
		appCfg = cfg.ConfigManager.Get()
	}

	scratch := appCfg.Preview.ScratchDir
	if scratch == "" {
		scratch = cfg.Home.ScratchDir()
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = render.NewPdftoppm(render.PdftoppmConfig{
			Binary:     appCfg.Preview.PdftoppmPath(),
			ScratchDir: scratch,
			Logger:     cfg.Logger,
		})
	}

	loader := document.NewPDFLoader(cfg.Logger)
	store := workspace.NewStore(workspace.Config{
		Loader:     loader,
		Rasterizer: renderer,
		Scale:      appCfg.Preview.Scale,
		Debounce:   appCfg.Preview.Debounce(),
		TTL:        appCfg.Server.SessionTTL(),
		Logger:     cfg.Logger,
	})

	s := &Server{
		workspaces: store,
		renderer:   renderer,
		configMgr:  cfg.ConfigManager,
		home:       cfg.Home,
		logger:     cfg.Logger,
	}

	s.services = &svcctx.Services{
		Workspaces:    store,
		Loader:        loader,
		Renderer:      renderer,
		Exporter:      export.New(loader, cfg.Logger),
		ConfigManager: cfg.ConfigManager,
		Logger:        cfg.Logger,
		Home:          cfg.Home,
		MaxUpload:     appCfg.Server.MaxUploadBytes(),
	}

	// Watch for config changes. Renderer binary and listen address need a
	// restart; everything else applies to new requests.
	if cfg.ConfigManager != nil {
		cfg.ConfigManager.OnChange(func(c *config.Config) {
			store.SetPreview(c.Preview.Scale, c.Preview.Debounce())
			store.SetTTL(c.Server.SessionTTL())
			atomic.StoreInt64(&s.services.MaxUpload, c.Server.MaxUploadBytes())
			cfg.Logger.Info("server settings reloaded from config")
		})
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{SwaggerSpecPath: endpoints.GetSwaggerSpecPath()}) {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.withServices(mux),
		ReadTimeout:  2 * time.Minute, // uploads
		WriteTimeout: 5 * time.Minute, // exports of large documents
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start prepares the home directory, starts the workspace janitor and serves
// HTTP. It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if err := s.home.EnsureExists(); err != nil {
		s.setNotRunning()
		return fmt.Errorf("failed to prepare home directory: %w", err)
	}
	if err := s.home.CleanScratch(); err != nil {
		s.logger.Warn("failed to clean scratch directory", "error", err)
	}

	if !s.renderer.Available() {
		s.logger.Warn("page renderer not available, previews will fail until it is installed")
	}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	janitorDone := make(chan struct{})
	go func() {
		s.workspaces.Run(janitorCtx)
		close(janitorDone)
	}()

	s.ready.Store(true)

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	var serveErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			serveErr = fmt.Errorf("HTTP server error: %w", err)
		}
	}

	s.shutdown()
	stopJanitor()
	<-janitorDone
	s.setNotRunning()
	s.logger.Info("server stopped")
	return serveErr
}

// shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) shutdown() {
	s.logger.Info("shutting down server")
	s.ready.Store(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Workspaces returns the workspace store.
func (s *Server) Workspaces() *workspace.Store {
	return s.workspaces
}

// Endpoints returns the endpoint registry, used to build CLI commands.
func (s *Server) Endpoints() *api.Registry {
	return s.endpointRegistry
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := svcctx.WithServices(r.Context(), s.services)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable before Start has prepared the home
// directory and after shutdown has begun.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.ready.Load() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}
