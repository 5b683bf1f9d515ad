package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/pagenum/internal/apperr"
	"github.com/jackzampolin/pagenum/internal/document"
	"github.com/jackzampolin/pagenum/internal/preview"
	"github.com/jackzampolin/pagenum/internal/render"
)

// DefaultTTL is how long an idle workspace is kept.
const DefaultTTL = 30 * time.Minute

// ErrNotFound is returned for unknown workspace ids.
var ErrNotFound = errors.New("workspace not found")

// Config configures a Store.
type Config struct {
	Loader     document.Loader
	Rasterizer render.Rasterizer

	// Preview settings applied to sessions created after they are set.
	Scale    float64
	Debounce time.Duration

	TTL    time.Duration // default DefaultTTL
	Logger *slog.Logger
}

// Store is an in-memory set of workspaces.
type Store struct {
	loader     document.Loader
	rasterizer render.Rasterizer
	logger     *slog.Logger

	mu       sync.RWMutex
	items    map[string]*Workspace
	scale    float64
	debounce time.Duration
	ttl      time.Duration
}

// NewStore creates an empty store.
func NewStore(cfg Config) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Store{
		loader:     cfg.Loader,
		rasterizer: cfg.Rasterizer,
		logger:     cfg.Logger.With("component", "workspace"),
		items:      make(map[string]*Workspace),
		scale:      cfg.Scale,
		debounce:   cfg.Debounce,
		ttl:        cfg.TTL,
	}
}

// SetPreview updates the settings used for new preview sessions.
func (s *Store) SetPreview(scale float64, debounce time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scale = scale
	s.debounce = debounce
}

// SetTTL updates the idle expiry.
func (s *Store) SetTTL(ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ttl = ttl
}

// Create parses data and registers a new workspace for it.
func (s *Store) Create(ctx context.Context, filename string, data []byte) (*Workspace, error) {
	if len(data) == 0 {
		return nil, apperr.InputErr("upload", apperr.ErrNoDocument)
	}

	doc, err := document.Load(ctx, s.loader, data)
	if err != nil {
		if apperr.IsCanceled(err) {
			return nil, err
		}
		s.logger.Error("failed to load document", "file", filename, "error", err)
		return nil, apperr.ProcessingErr("upload", err)
	}
	geoms, err := document.Geometries(doc)
	if err != nil {
		s.logger.Error("failed to read page sizes", "file", filename, "error", err)
		return nil, apperr.ProcessingErr("upload", err)
	}

	s.mu.RLock()
	scale, debounce := s.scale, s.debounce
	s.mu.RUnlock()

	session, err := preview.New(preview.Config{
		Source:     data,
		Loader:     s.loader,
		Rasterizer: s.rasterizer,
		Scale:      scale,
		Debounce:   debounce,
		Logger:     s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create preview session: %w", err)
	}

	now := time.Now()
	w := &Workspace{
		ID:         uuid.New().String(),
		FileName:   filename,
		PageCount:  len(geoms),
		Geometries: geoms,
		CreatedAt:  now,
		source:     data,
		session:    session,
		lastUsed:   now,
	}

	s.mu.Lock()
	s.items[w.ID] = w
	s.mu.Unlock()

	s.logger.Info("document loaded", "id", w.ID, "file", filename, "pages", w.PageCount, "size", FormatSize(len(data)))
	return w, nil
}

// Get returns the workspace with id and marks it used.
func (s *Store) Get(id string) (*Workspace, error) {
	s.mu.RLock()
	w, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	w.Touch()
	return w, nil
}

// List returns all workspaces, oldest first.
func (s *Store) List() []*Workspace {
	s.mu.RLock()
	out := make([]*Workspace, 0, len(s.items))
	for _, w := range s.items {
		out = append(out, w)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Len returns the number of workspaces.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Delete removes a workspace and closes its session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	w, ok := s.items[id]
	delete(s.items, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.release(w)
	return nil
}

// Sweep removes workspaces idle since before now minus the TTL.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	cutoff := now.Add(-s.ttl)
	var expired []*Workspace
	for id, w := range s.items {
		if w.LastUsed().Before(cutoff) {
			expired = append(expired, w)
			delete(s.items, id)
		}
	}
	s.mu.Unlock()

	for _, w := range expired {
		s.logger.Info("workspace expired", "id", w.ID, "file", w.FileName)
		s.release(w)
	}
	return len(expired)
}

// Run sweeps expired workspaces until ctx is done, then closes every
// remaining session.
func (s *Store) Run(ctx context.Context) {
	s.mu.RLock()
	interval := s.ttl / 4
	s.mu.RUnlock()
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.Close()
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}

// Close drops every workspace.
func (s *Store) Close() {
	s.mu.Lock()
	items := s.items
	s.items = make(map[string]*Workspace)
	s.mu.Unlock()

	for _, w := range items {
		s.release(w)
	}
}

func (s *Store) release(w *Workspace) {
	if err := w.session.Close(); err != nil {
		s.logger.Warn("failed to close preview session", "id", w.ID, "error", err)
	}
}
