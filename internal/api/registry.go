package api

import (
	"net/http"

	"github.com/spf13/cobra"
)

// Registry holds all registered endpoints.
type Registry struct {
	endpoints []Endpoint
}

// NewRegistry creates a new endpoint registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an endpoint to the registry.
func (r *Registry) Register(ep Endpoint) {
	r.endpoints = append(r.endpoints, ep)
}

// RegisterRoutes registers all endpoint HTTP routes with the given mux.
// initMiddleware wraps handlers that require full server initialization.
func (r *Registry) RegisterRoutes(mux *http.ServeMux, initMiddleware func(http.HandlerFunc) http.HandlerFunc) {
	for _, ep := range r.endpoints {
		method, path, handler := ep.Route()
		if ep.RequiresInit() {
			handler = initMiddleware(handler)
		}
		mux.HandleFunc(method+" "+path, handler)
	}
}

// groupShort describes the known command groups.
var groupShort = map[string]string{
	"documents": "Manage uploaded documents",
	"preview":   "Build and navigate document previews",
}

// BuildCommands returns a cobra.Command tree for all registered endpoints.
// Commands of Grouped endpoints are nested under their group.
// getServerURL is called at runtime to get the server URL.
func (r *Registry) BuildCommands(getServerURL func() string) *cobra.Command {
	apiCmd := &cobra.Command{
		Use:   "api",
		Short: "Commands that call the running server",
		Long: `API commands call the running pagenum server via HTTP.

These commands require a running server (pagenum serve).
Use --server to specify a custom server URL.

Examples:
  pagenum api health                          # Check server health
  pagenum api documents upload book.pdf       # Upload a document
  pagenum api preview build <id> --format i,ii,iii
  pagenum api documents export <id>           # Download the labeled PDF`,
	}

	groups := make(map[string]*cobra.Command)
	for _, ep := range r.endpoints {
		cmd := ep.Command(getServerURL)
		if cmd == nil {
			continue
		}

		parent := apiCmd
		if g, ok := ep.(Grouped); ok && g.Group() != "" {
			name := g.Group()
			if groups[name] == nil {
				groups[name] = &cobra.Command{Use: name, Short: groupShort[name]}
				apiCmd.AddCommand(groups[name])
			}
			parent = groups[name]
		}
		parent.AddCommand(cmd)
	}

	return apiCmd
}

// Endpoints returns all registered endpoints.
func (r *Registry) Endpoints() []Endpoint {
	return r.endpoints
}
