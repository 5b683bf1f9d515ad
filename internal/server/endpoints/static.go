package endpoints

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pagenum/internal/api"
	"github.com/jackzampolin/pagenum/web"
)

// StaticEndpoint serves the embedded preview page.
// Unknown paths outside /api fall back to index.html.
type StaticEndpoint struct{}

var _ api.Endpoint = (*StaticEndpoint)(nil)

func (e *StaticEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/{path...}", e.handler
}

func (e *StaticEndpoint) RequiresInit() bool { return false }

func (e *StaticEndpoint) Command(_ func() string) *cobra.Command {
	return nil
}

func (e *StaticEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	distFS, err := web.DistFS()
	if err != nil {
		http.Error(w, "Frontend not available", http.StatusInternalServerError)
		return
	}

	filePath := strings.TrimPrefix(r.URL.Path, "/")
	if filePath == "" {
		filePath = "index.html"
	}

	if f, err := distFS.Open(filePath); err == nil {
		f.Close()
		http.FileServer(http.FS(distFS)).ServeHTTP(w, r)
		return
	}

	index, err := fs.ReadFile(distFS, "index.html")
	if err != nil {
		http.Error(w, "Frontend not available", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(index)
}
