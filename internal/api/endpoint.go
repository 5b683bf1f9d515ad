package api

import (
	"net/http"

	"github.com/spf13/cobra"
)

// Endpoint defines both an HTTP route and its corresponding CLI command.
// This provides a single source of truth for API operations.
type Endpoint interface {
	// Route returns the HTTP method, path, and handler for this endpoint.
	Route() (method, path string, handler http.HandlerFunc)

	// RequiresInit returns true if this endpoint requires the server
	// to be fully initialized (workspace store and renderer ready).
	RequiresInit() bool

	// Command returns a Cobra command that calls this endpoint via HTTP.
	// getServerURL is called at runtime to get the server URL (deferred evaluation).
	// Endpoints without a CLI counterpart return nil.
	Command(getServerURL func() string) *cobra.Command
}

// Grouped is implemented by endpoints whose command belongs under a
// subcommand, e.g. "pagenum api documents list".
type Grouped interface {
	Group() string
}
