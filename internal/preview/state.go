package preview

// State is the lifecycle stage of a Session.
type State int

const (
	// StateEmpty means no preview has been built yet.
	StateEmpty State = iota
	// StatePlanning means a labeled copy is being built.
	StatePlanning
	// StateRendering means a page is being rasterized.
	StateRendering
	// StateReady means a frame is available and nothing is in flight.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePlanning:
		return "planning"
	case StateRendering:
		return "rendering"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// MarshalText renders the state by name in JSON and YAML output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is a point-in-time view of a Session.
type Snapshot struct {
	State        State  `json:"state" yaml:"state"`
	PageIndex    int    `json:"page_index" yaml:"page_index"`
	PageCount    int    `json:"page_count" yaml:"page_count"`
	RenderedPage int    `json:"rendered_page" yaml:"rendered_page"` // 1-based, 0 before the first frame
	PlanLength   int    `json:"plan_length" yaml:"plan_length"`
	HasNext      bool   `json:"has_next" yaml:"has_next"`
	HasPrevious  bool   `json:"has_previous" yaml:"has_previous"`
	Generation   uint64 `json:"generation" yaml:"generation"`
}
