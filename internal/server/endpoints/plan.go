package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pagenum/internal/api"
	"github.com/jackzampolin/pagenum/internal/label"
	"github.com/jackzampolin/pagenum/internal/svcctx"
)

// PlanResponse is the label plan for a document under the given options.
type PlanResponse struct {
	DocumentID string           `json:"document_id"`
	Options    label.RawOptions `json:"options"`
	Plan       label.Plan       `json:"plan"`
}

// PlanEndpoint handles POST /api/documents/{id}/plan.
// It computes where every label goes without touching the document.
type PlanEndpoint struct{}

func (e *PlanEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/documents/{id}/plan", e.handler
}

func (e *PlanEndpoint) RequiresInit() bool { return true }

func (e *PlanEndpoint) Group() string { return "documents" }

// handler godoc
//
//	@Summary		Compute label plan
//	@Description	Compute the text and position of every page label for the given options
//	@Tags			documents
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Document ID"
//	@Param			request	body		label.RawOptions	false	"Numbering options (merged onto defaults)"
//	@Success		200		{object}	PlanResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/documents/{id}/plan [post]
func (e *PlanEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ws, ok := lookupWorkspace(w, r)
	if !ok {
		return
	}

	raw, opts, err := decodeOptions(r)
	if err != nil {
		writeAppError(w, svcctx.LoggerFrom(r.Context()), err)
		return
	}

	writeJSON(w, http.StatusOK, PlanResponse{
		DocumentID: ws.ID,
		Options:    raw,
		Plan:       label.Build(ws.Geometries, opts),
	})
}

func (e *PlanEndpoint) Command(getServerURL func() string) *cobra.Command {
	var flags *OptionFlags
	cmd := &cobra.Command{
		Use:   "plan <id>",
		Short: "Show where labels would be placed on an uploaded document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp PlanResponse
			if err := client.Post(cmd.Context(), "/api/documents/"+args[0]+"/plan", flags.Overrides(cmd), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	flags = AddOptionFlags(cmd)
	return cmd
}
