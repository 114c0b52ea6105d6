package observability

// Metric namespace and subsystems
const (
	Namespace = "liga"

	SubsystemSettlement = "settlement"
	SubsystemStandings  = "standings"
	SubsystemEvents     = "events"
)

// Label keys
const (
	LabelResult    = "result"
	LabelMode      = "mode"
	LabelEventType = "event_type"
)

// Settlement run results
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// Tracer and instrumentation names
const (
	ServiceName = "liga"
	TracerName  = "liga/application"
)
