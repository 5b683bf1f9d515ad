package endpoints

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pagenum/internal/api"
	"github.com/jackzampolin/pagenum/internal/preview"
	"github.com/jackzampolin/pagenum/internal/svcctx"
)

// Headers set on frame responses.
const (
	HeaderPageNumber = "X-Page-Number"
	HeaderPageCount  = "X-Page-Count"
	HeaderGeneration = "X-Preview-Generation"
)

func previewPath(id string) string {
	return "/api/documents/" + id + "/preview"
}

// BuildPreviewEndpoint handles POST /api/documents/{id}/preview.
// The preview is rebuilt before the response is written.
type BuildPreviewEndpoint struct{}

func (e *BuildPreviewEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/documents/{id}/preview", e.handler
}

func (e *BuildPreviewEndpoint) RequiresInit() bool { return true }

func (e *BuildPreviewEndpoint) Group() string { return "preview" }

// handler godoc
//
//	@Summary		Rebuild preview
//	@Description	Label a working copy with the given options and render the current page.
//	@Description	A newer request for the same document supersedes this one.
//	@Tags			preview
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Document ID"
//	@Param			request	body		label.RawOptions	false	"Numbering options (merged onto defaults)"
//	@Success		200		{object}	preview.Snapshot
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/api/documents/{id}/preview [post]
func (e *BuildPreviewEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(w, r)
	if !ok {
		return
	}
	logger := svcctx.LoggerFrom(r.Context())

	_, opts, err := decodeOptions(r)
	if err != nil {
		writeAppError(w, logger, err)
		return
	}

	session := ws.Session()
	if err := session.Rebuild(r.Context(), opts); err != nil {
		writeAppError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (e *BuildPreviewEndpoint) Command(getServerURL func() string) *cobra.Command {
	var flags *OptionFlags
	cmd := &cobra.Command{
		Use:   "build <id>",
		Short: "Rebuild the preview with the given options",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp preview.Snapshot
			if err := client.Post(cmd.Context(), previewPath(args[0]), flags.Overrides(cmd), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	flags = AddOptionFlags(cmd)
	return cmd
}

// SchedulePreviewEndpoint handles PATCH /api/documents/{id}/preview.
// Rapid edits are collapsed into one rebuild after the debounce delay.
type SchedulePreviewEndpoint struct{}

func (e *SchedulePreviewEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PATCH", "/api/documents/{id}/preview", e.handler
}

func (e *SchedulePreviewEndpoint) RequiresInit() bool { return true }

func (e *SchedulePreviewEndpoint) Group() string { return "preview" }

// handler godoc
//
//	@Summary		Schedule preview rebuild
//	@Description	Queue a debounced rebuild. Poll GET on the same path to see when it is ready.
//	@Tags			preview
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Document ID"
//	@Param			request	body		label.RawOptions	false	"Numbering options (merged onto defaults)"
//	@Success		202		{object}	preview.Snapshot
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/documents/{id}/preview [patch]
func (e *SchedulePreviewEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(w, r)
	if !ok {
		return
	}

	_, opts, err := decodeOptions(r)
	if err != nil {
		writeAppError(w, svcctx.LoggerFrom(r.Context()), err)
		return
	}

	session := ws.Session()
	session.Schedule(opts)
	writeJSON(w, http.StatusAccepted, session.Snapshot())
}

func (e *SchedulePreviewEndpoint) Command(getServerURL func() string) *cobra.Command {
	var flags *OptionFlags
	cmd := &cobra.Command{
		Use:   "schedule <id>",
		Short: "Queue a debounced preview rebuild",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp preview.Snapshot
			if err := client.Patch(cmd.Context(), previewPath(args[0]), flags.Overrides(cmd), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	flags = AddOptionFlags(cmd)
	return cmd
}

// GetPreviewEndpoint handles GET /api/documents/{id}/preview.
type GetPreviewEndpoint struct{}

func (e *GetPreviewEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/documents/{id}/preview", e.handler
}

func (e *GetPreviewEndpoint) RequiresInit() bool { return true }

func (e *GetPreviewEndpoint) Group() string { return "preview" }

// handler godoc
//
//	@Summary		Get preview state
//	@Description	Get the preview state, current page and navigation availability
//	@Tags			preview
//	@Produce		json
//	@Param			id	path		string	true	"Document ID"
//	@Success		200	{object}	preview.Snapshot
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/documents/{id}/preview [get]
func (e *GetPreviewEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ws.Session().Snapshot())
}

func (e *GetPreviewEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show the preview state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp preview.Snapshot
			if err := client.Get(cmd.Context(), previewPath(args[0]), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// NavigatePreviewEndpoint handles POST /api/documents/{id}/preview/next and
// /previous. Requests past either end leave the preview unchanged.
type NavigatePreviewEndpoint struct {
	// Direction is "next" or "previous".
	Direction string
}

func (e *NavigatePreviewEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/documents/{id}/preview/" + e.Direction, e.handler
}

func (e *NavigatePreviewEndpoint) RequiresInit() bool { return true }

func (e *NavigatePreviewEndpoint) Group() string { return "preview" }

// handler godoc
//
//	@Summary		Move preview page
//	@Description	Render the next or previous page of the labeled preview
//	@Tags			preview
//	@Produce		json
//	@Param			id			path		string	true	"Document ID"
//	@Param			direction	path		string	true	"next or previous"
//	@Success		200			{object}	preview.Snapshot
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/api/documents/{id}/preview/{direction} [post]
func (e *NavigatePreviewEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(w, r)
	if !ok {
		return
	}

	session := ws.Session()
	var err error
	if e.Direction == "previous" {
		err = session.Previous(r.Context())
	} else {
		err = session.Next(r.Context())
	}
	if err != nil {
		writeAppError(w, svcctx.LoggerFrom(r.Context()), err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (e *NavigatePreviewEndpoint) Command(getServerURL func() string) *cobra.Command {
	short := "Show the next preview page"
	if e.Direction == "previous" {
		short = "Show the previous preview page"
	}
	return &cobra.Command{
		Use:   e.Direction + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp preview.Snapshot
			if err := client.Post(cmd.Context(), previewPath(args[0])+"/"+e.Direction, nil, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// PreviewFrameEndpoint handles GET /api/documents/{id}/preview/frame.
// Before the first render it serves the placeholder image.
type PreviewFrameEndpoint struct{}

func (e *PreviewFrameEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/documents/{id}/preview/frame", e.handler
}

func (e *PreviewFrameEndpoint) RequiresInit() bool { return true }

func (e *PreviewFrameEndpoint) Group() string { return "preview" }

// handler godoc
//
//	@Summary		Get preview image
//	@Description	Get the rendered preview page as PNG
//	@Tags			preview
//	@Produce		png
//	@Param			id	path		string	true	"Document ID"
//	@Success		200	{file}		binary
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/documents/{id}/preview/frame [get]
func (e *PreviewFrameEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(w, r)
	if !ok {
		return
	}

	session := ws.Session()
	frame := session.Frame()
	snap := session.Snapshot()

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", fmt.Sprintf("page-%d.png", frame.PageNum)))
	w.Header().Set(HeaderPageNumber, strconv.Itoa(frame.PageNum))
	w.Header().Set(HeaderPageCount, strconv.Itoa(snap.PageCount))
	w.Header().Set(HeaderGeneration, strconv.FormatUint(snap.Generation, 10))
	w.WriteHeader(http.StatusOK)
	w.Write(frame.PNG)
}

func (e *PreviewFrameEndpoint) Command(getServerURL func() string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "frame <id>",
		Short: "Download the current preview page as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			data, name, err := client.Download(cmd.Context(), "GET", previewPath(args[0])+"/frame", nil)
			if err != nil {
				return err
			}
			if out == "" {
				out = name
			}
			if out == "" {
				out = "preview.png"
			}
			if err := writeFile(out, data); err != nil {
				return err
			}
			fmt.Printf("Saved %s (%d bytes)\n", out, len(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output path (default: name sent by the server)")
	return cmd
}
