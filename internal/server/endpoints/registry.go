package endpoints

import (
	"github.com/jackzampolin/pagenum/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	SwaggerSpecPath string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&StatusEndpoint{},

		// Document endpoints
		&UploadDocumentEndpoint{},
		&ListDocumentsEndpoint{},
		&GetDocumentEndpoint{},
		&DeleteDocumentEndpoint{},
		&PlanEndpoint{},
		&ExportEndpoint{},

		// Preview endpoints
		&BuildPreviewEndpoint{},
		&SchedulePreviewEndpoint{},
		&GetPreviewEndpoint{},
		&NavigatePreviewEndpoint{Direction: "next"},
		&NavigatePreviewEndpoint{Direction: "previous"},
		&PreviewFrameEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{SpecPath: cfg.SwaggerSpecPath},
		&SwaggerUIEndpoint{},

		// Static files (catch-all, must be last)
		&StaticEndpoint{},
	}
}
