package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pagenum/internal/api"
	"github.com/jackzampolin/pagenum/internal/apperr"
	"github.com/jackzampolin/pagenum/internal/preview"
	"github.com/jackzampolin/pagenum/internal/svcctx"
	"github.com/jackzampolin/pagenum/internal/workspace"
)

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

func (e *HealthEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Health check
//	@Description	Returns ok while the HTTP server is responding
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/health", &resp); err != nil {
				return err
			}
			fmt.Printf("Status: %s\n", resp.Status)
			return nil
		},
	}
}

// StatusResponse is the detailed status response.
type StatusResponse struct {
	Server     string `json:"server"`
	Renderer   string `json:"renderer"`
	Workspaces int    `json:"workspaces"`
}

// StatusEndpoint handles GET /status.
type StatusEndpoint struct{}

func (e *StatusEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/status", e.handler
}

func (e *StatusEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Server status
//	@Description	Reports renderer availability and the number of open documents
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	StatusResponse
//	@Router			/status [get]
func (e *StatusEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Server:   "running",
		Renderer: "not_initialized",
	}

	if renderer := svcctx.RendererFrom(r.Context()); renderer != nil {
		if renderer.Available() {
			resp.Renderer = "available"
		} else {
			resp.Renderer = "missing"
		}
	}
	if store := svcctx.WorkspacesFrom(r.Context()); store != nil {
		resp.Workspaces = store.Len()
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *StatusEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get detailed server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp StatusResponse
			if err := client.Get(cmd.Context(), "/status", &resp); err != nil {
				return err
			}
			fmt.Printf("Server:     %s\n", resp.Server)
			fmt.Printf("Renderer:   %s\n", resp.Renderer)
			fmt.Printf("Workspaces: %d\n", resp.Workspaces)
			return nil
		},
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeAppError maps an operation error to a response. Input errors are
// shown as-is; processing errors get a generic message and are logged in
// full. A canceled request writes nothing since the client is gone.
func writeAppError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, workspace.ErrNotFound):
		writeError(w, http.StatusNotFound, "document not found")
	case errors.Is(err, preview.ErrClosed):
		writeError(w, http.StatusGone, "document was closed")
	case apperr.IsInput(err):
		writeError(w, http.StatusBadRequest, apperr.UserMessage(err))
	case apperr.IsCanceled(err):
		logger.Debug("request canceled", "error", err)
	default:
		logger.Error("request failed", "kind", apperr.KindOf(err), "error", err)
		writeError(w, http.StatusUnprocessableEntity, apperr.GenericProcessingMessage)
	}
}
