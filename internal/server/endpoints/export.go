package endpoints

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pagenum/internal/api"
	"github.com/jackzampolin/pagenum/internal/svcctx"
)

// HeaderExportMessage carries the user-facing completion message.
const HeaderExportMessage = "X-Export-Message"

// ExportEndpoint handles POST /api/documents/{id}/export.
// The export labels its own copy of the source, independent of the preview.
type ExportEndpoint struct{}

func (e *ExportEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/documents/{id}/export", e.handler
}

func (e *ExportEndpoint) RequiresInit() bool { return true }

func (e *ExportEndpoint) Group() string { return "documents" }

// handler godoc
//
//	@Summary		Export labeled PDF
//	@Description	Stamp page numbers onto the document and download the result
//	@Tags			documents
//	@Accept			json
//	@Produce		application/pdf
//	@Param			id		path		string				true	"Document ID"
//	@Param			request	body		label.RawOptions	false	"Numbering options (merged onto defaults)"
//	@Success		200		{file}		binary
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/documents/{id}/export [post]
func (e *ExportEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	logger := svcctx.LoggerFrom(ctx).With("document_id", ws.ID)

	exporter := svcctx.ExporterFrom(ctx)
	if exporter == nil {
		writeError(w, http.StatusServiceUnavailable, "exporter not initialized")
		return
	}

	_, opts, err := decodeOptions(r)
	if err != nil {
		writeAppError(w, logger, err)
		return
	}

	progress := func(done, total int) {
		if done == total || done%50 == 0 {
			logger.Debug("export progress", "page", done, "of", total)
		}
	}

	result, err := exporter.Run(ctx, ws.FileName, ws.Source(), opts, progress)
	if err != nil {
		writeAppError(w, logger, err)
		return
	}
	ws.Touch()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.Header().Set(HeaderPageCount, strconv.Itoa(result.PageCount))
	w.Header().Set(HeaderExportMessage, result.Message)
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

func (e *ExportEndpoint) Command(getServerURL func() string) *cobra.Command {
	var (
		flags *OptionFlags
		out   string
	)
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Download the document with page numbers added",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			data, name, err := client.Download(cmd.Context(), "POST", "/api/documents/"+args[0]+"/export", flags.Overrides(cmd))
			if err != nil {
				return err
			}
			if out == "" {
				out = name
			}
			if err := writeFile(out, data); err != nil {
				return err
			}
			fmt.Printf("Saved %s (%d bytes)\n", out, len(data))
			return nil
		},
	}
	flags = AddOptionFlags(cmd)
	cmd.Flags().StringVar(&out, "out", "", "output path (default: name sent by the server)")
	return cmd
}

func writeFile(path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("no output path given")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
