package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackzampolin/pagenum/internal/api"
	"github.com/jackzampolin/pagenum/internal/config"
	"github.com/jackzampolin/pagenum/internal/home"
	"github.com/jackzampolin/pagenum/internal/render"
	"github.com/jackzampolin/pagenum/internal/server/endpoints"
	"github.com/jackzampolin/pagenum/internal/testutil"
)

// stubRenderer reports itself available but is never asked to render here.
type stubRenderer struct{}

func (stubRenderer) Available() bool { return true }

func (stubRenderer) Open(ctx context.Context, data []byte) (render.Source, error) {
	return nil, errors.New("rendering not supported in this test")
}

func startTestServer(t *testing.T) (*Server, testutil.ServerConfig) {
	t.Helper()
	cfg := testutil.NewServerConfig(t)

	if err := config.WriteDefault(cfg.ConfigFile); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfgMgr, err := config.NewManager(cfg.ConfigFile)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	h, err := home.New(cfg.HomeDir)
	if err != nil {
		t.Fatalf("failed to create home: %v", err)
	}

	srv, err := New(Config{
		Host:          cfg.Host,
		Port:          cfg.Port,
		Home:          h,
		ConfigManager: cfgMgr,
		Renderer:      stubRenderer{},
		Logger:        cfg.Logger,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()
	starter := &testutil.StartServer{Cancel: cancel, Done: done}
	t.Cleanup(starter.Stop)

	if err := testutil.WaitForServer(cfg.URL(), 5*time.Second); err != nil {
		t.Fatalf("server did not start: %v", err)
	}
	return srv, cfg
}

func TestServer_Lifecycle(t *testing.T) {
	cfg := testutil.NewServerConfig(t)
	h, _ := home.New(cfg.HomeDir)

	srv, err := New(Config{Host: cfg.Host, Port: cfg.Port, Home: h, Renderer: stubRenderer{}, Logger: cfg.Logger})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if srv.IsRunning() {
		t.Error("server should not be running before Start")
	}
	if srv.Addr() != cfg.Host+":"+cfg.Port {
		t.Errorf("expected addr %s:%s, got %s", cfg.Host, cfg.Port, srv.Addr())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	if err := testutil.WaitForServer(cfg.URL(), 5*time.Second); err != nil {
		cancel()
		t.Fatalf("server did not start: %v", err)
	}
	if !srv.IsRunning() {
		t.Error("expected server to be running")
	}
	if !h.Exists() {
		t.Error("expected Start to create the home directory")
	}

	cancel()
	if err := testutil.WaitForShutdown(done, 10*time.Second); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
	if srv.IsRunning() {
		t.Error("expected server to be stopped")
	}
}

func TestServer_RequiresInitBeforeStart(t *testing.T) {
	cfg := testutil.NewServerConfig(t)
	h, _ := home.New(cfg.HomeDir)
	srv, err := New(Config{Home: h, Renderer: stubRenderer{}, Logger: cfg.Logger})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/documents", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503 before Start, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected health to answer before Start, got %d", rec.Code)
	}
}

func TestServer_UploadAndExport(t *testing.T) {
	srv, cfg := startTestServer(t)
	ctx := context.Background()
	client := api.NewClient(cfg.URL())

	if err := client.WaitReady(ctx, 5, 50*time.Millisecond); err != nil {
		t.Fatalf("WaitReady() error = %v", err)
	}

	var doc endpoints.DocumentResponse
	if err := client.Upload(ctx, "/api/documents", "report.pdf", testutil.SamplePDF(), &doc); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if doc.PageCount != 3 {
		t.Errorf("expected 3 pages, got %d", doc.PageCount)
	}
	if srv.Workspaces().Len() != 1 {
		t.Errorf("expected 1 workspace, got %d", srv.Workspaces().Len())
	}

	data, name, err := client.Download(ctx, "POST", "/api/documents/"+doc.ID+"/export", map[string]any{"format": "-1-"})
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if name != "report_with_pagenums.pdf" {
		t.Errorf("expected report_with_pagenums.pdf, got %q", name)
	}
	if len(data) == 0 {
		t.Error("expected exported bytes")
	}

	var status endpoints.StatusResponse
	if err := client.Get(ctx, "/status", &status); err != nil {
		t.Fatalf("Get(/status) error = %v", err)
	}
	if status.Workspaces != 1 || status.Renderer != "available" {
		t.Errorf("unexpected status %+v", status)
	}

	err = client.Get(ctx, "/api/documents/missing", &doc)
	var se *api.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Errorf("expected 404 status error, got %v", err)
	}
}
