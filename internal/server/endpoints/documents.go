package endpoints

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pagenum/internal/api"
	"github.com/jackzampolin/pagenum/internal/label"
	"github.com/jackzampolin/pagenum/internal/svcctx"
	"github.com/jackzampolin/pagenum/internal/workspace"
)

// DocumentResponse describes an uploaded document and the options a new
// preview starts from.
type DocumentResponse struct {
	workspace.Info `yaml:",inline"`
	StartValue     int              `json:"start_value" yaml:"start_value"`
	Defaults       label.RawOptions `json:"defaults" yaml:"defaults"`
}

func newDocumentResponse(ws *workspace.Workspace, defaults label.RawOptions) DocumentResponse {
	return DocumentResponse{
		Info:       ws.Info(true),
		StartValue: defaults.StartValue,
		Defaults:   defaults,
	}
}

// ListDocumentsResponse is the response for listing documents.
type ListDocumentsResponse struct {
	Documents []workspace.Info `json:"documents" yaml:"documents"`
	Total     int              `json:"total" yaml:"total"`
}

// lookupWorkspace resolves the {id} path value, writing the error response
// itself when the workspace is missing.
func lookupWorkspace(w http.ResponseWriter, r *http.Request) (*workspace.Workspace, bool) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "document id is required")
		return nil, false
	}

	store := svcctx.WorkspacesFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "workspace store not initialized")
		return nil, false
	}

	ws, err := store.Get(id)
	if err != nil {
		writeAppError(w, svcctx.LoggerFrom(r.Context()), err)
		return nil, false
	}
	return ws, true
}

// UploadDocumentEndpoint handles POST /api/documents with multipart file upload.
type UploadDocumentEndpoint struct{}

var _ api.Endpoint = (*UploadDocumentEndpoint)(nil)

func (e *UploadDocumentEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/documents", e.handler
}

func (e *UploadDocumentEndpoint) RequiresInit() bool { return true }

func (e *UploadDocumentEndpoint) Group() string { return "documents" }

// handler godoc
//
//	@Summary		Upload a PDF
//	@Description	Upload a PDF to label. The document is kept in memory until deleted or idle too long.
//	@Tags			documents
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"PDF file"
//	@Success		201		{object}	DocumentResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/documents [post]
func (e *UploadDocumentEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := svcctx.LoggerFrom(ctx)

	store := svcctx.WorkspacesFrom(ctx)
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "workspace store not initialized")
		return
	}

	if limit := svcctx.MaxUploadFrom(ctx); limit > 0 {
		if r.ContentLength > limit {
			writeError(w, http.StatusRequestEntityTooLarge, uploadLimitMessage(limit))
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	const maxMemory = 32 << 20
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, uploadLimitMessage(tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, fh, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	if err := workspace.ValidateUpload(fh.Filename, fh.Header.Get("Content-Type")); err != nil {
		writeAppError(w, logger, err)
		return
	}

	data, err := io.ReadAll(&progressReader{r: file, total: fh.Size, logger: logger.With("file", fh.Filename)})
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err))
		return
	}

	ws, err := store.Create(ctx, filepath.Base(fh.Filename), data)
	if err != nil {
		writeAppError(w, logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, newDocumentResponse(ws, svcctx.DefaultOptionsFrom(ctx)))
}

func (e *UploadDocumentEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file.pdf>",
		Short: "Upload a PDF to the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := workspace.ValidateUpload(args[0], ""); err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			client := api.NewClient(getServerURL())
			var resp DocumentResponse
			if err := client.Upload(cmd.Context(), "/api/documents", args[0], data, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

func uploadLimitMessage(limit int64) string {
	if limit < 1<<20 {
		return fmt.Sprintf("file exceeds the %d byte upload limit", limit)
	}
	return fmt.Sprintf("file exceeds the %d MB upload limit", limit>>20)
}

// progressReader logs read progress in quarter steps.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	logged int64
	logger *slog.Logger
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.total > 0 {
		if pct := p.read * 100 / p.total / 25 * 25; pct > p.logged {
			p.logged = pct
			p.logger.Debug("reading upload", "percent", pct, "bytes", p.read)
		}
	}
	return n, err
}

// ListDocumentsEndpoint handles GET /api/documents.
type ListDocumentsEndpoint struct{}

func (e *ListDocumentsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/documents", e.handler
}

func (e *ListDocumentsEndpoint) RequiresInit() bool { return true }

func (e *ListDocumentsEndpoint) Group() string { return "documents" }

// handler godoc
//
//	@Summary		List documents
//	@Description	List uploaded documents, oldest first
//	@Tags			documents
//	@Produce		json
//	@Success		200	{object}	ListDocumentsResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/documents [get]
func (e *ListDocumentsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.WorkspacesFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "workspace store not initialized")
		return
	}

	list := store.List()
	resp := ListDocumentsResponse{Documents: make([]workspace.Info, 0, len(list)), Total: len(list)}
	for _, ws := range list {
		resp.Documents = append(resp.Documents, ws.Info(false))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *ListDocumentsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List uploaded documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ListDocumentsResponse
			if err := client.Get(cmd.Context(), "/api/documents", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// GetDocumentEndpoint handles GET /api/documents/{id}.
type GetDocumentEndpoint struct{}

func (e *GetDocumentEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/documents/{id}", e.handler
}

func (e *GetDocumentEndpoint) RequiresInit() bool { return true }

func (e *GetDocumentEndpoint) Group() string { return "documents" }

// handler godoc
//
//	@Summary		Get document
//	@Description	Get document details including per-page geometry
//	@Tags			documents
//	@Produce		json
//	@Param			id	path		string	true	"Document ID"
//	@Success		200	{object}	DocumentResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/documents/{id} [get]
func (e *GetDocumentEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newDocumentResponse(ws, svcctx.DefaultOptionsFrom(r.Context())))
}

func (e *GetDocumentEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a document by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp DocumentResponse
			if err := client.Get(cmd.Context(), "/api/documents/"+args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// DeleteDocumentEndpoint handles DELETE /api/documents/{id}.
type DeleteDocumentEndpoint struct{}

func (e *DeleteDocumentEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/api/documents/{id}", e.handler
}

func (e *DeleteDocumentEndpoint) RequiresInit() bool { return true }

func (e *DeleteDocumentEndpoint) Group() string { return "documents" }

// handler godoc
//
//	@Summary		Delete document
//	@Description	Drop a document and cancel its preview work
//	@Tags			documents
//	@Param			id	path	string	true	"Document ID"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/documents/{id} [delete]
func (e *DeleteDocumentEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.WorkspacesFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "workspace store not initialized")
		return
	}
	if err := store.Delete(r.PathValue("id")); err != nil {
		writeAppError(w, svcctx.LoggerFrom(r.Context()), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (e *DeleteDocumentEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			if err := client.Delete(cmd.Context(), "/api/documents/"+args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

