// Package workspace holds uploaded documents and their preview sessions in
// memory. Nothing is persisted; workspaces expire after a period of
// inactivity.
package workspace

import (
	"fmt"
	"sync"
	"time"

	"github.com/jackzampolin/pagenum/internal/label"
	"github.com/jackzampolin/pagenum/internal/preview"
)

// Workspace is one uploaded document and its preview.
type Workspace struct {
	ID         string
	FileName   string
	PageCount  int
	Geometries []label.PageGeometry
	CreatedAt  time.Time

	source  []byte
	session *preview.Session

	mu       sync.Mutex
	lastUsed time.Time
}

// Info describes a workspace for API output.
type Info struct {
	ID         string               `json:"id" yaml:"id"`
	FileName   string               `json:"file_name" yaml:"file_name"`
	PageCount  int                  `json:"page_count" yaml:"page_count"`
	SizeBytes  int                  `json:"size_bytes" yaml:"size_bytes"`
	Size       string               `json:"size" yaml:"size"`
	Geometries []label.PageGeometry `json:"geometries,omitempty" yaml:"geometries,omitempty"`
	CreatedAt  time.Time            `json:"created_at" yaml:"created_at"`
	LastUsed   time.Time            `json:"last_used" yaml:"last_used"`
}

// Source returns the original document bytes. Callers must not modify them.
func (w *Workspace) Source() []byte {
	return w.source
}

// Session returns the workspace's preview session.
func (w *Workspace) Session() *preview.Session {
	return w.session
}

// Touch marks the workspace as used now.
func (w *Workspace) Touch() {
	w.mu.Lock()
	w.lastUsed = time.Now()
	w.mu.Unlock()
}

// LastUsed returns when the workspace was last touched.
func (w *Workspace) LastUsed() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastUsed
}

// Info returns the workspace description. Geometry is included when
// detailed is true.
func (w *Workspace) Info(detailed bool) Info {
	info := Info{
		ID:        w.ID,
		FileName:  w.FileName,
		PageCount: w.PageCount,
		SizeBytes: len(w.source),
		Size:      FormatSize(len(w.source)),
		CreatedAt: w.CreatedAt,
		LastUsed:  w.LastUsed(),
	}
	if detailed {
		info.Geometries = w.Geometries
	}
	return info
}

// FormatSize renders a byte count in kilobytes with one decimal.
func FormatSize(n int) string {
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
