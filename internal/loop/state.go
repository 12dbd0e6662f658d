package loop

// Phase is the discriminant of State.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseWaiting
	PhaseAborted
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWaiting:
		return "waiting"
	case PhaseAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// State is one of Idle, Waiting or Aborted.
type State interface {
	Phase() Phase
	isState()
}

// Idle is ready to send. Result is the last outcome, nil before the first one.
type Idle struct {
	Result *Result
}

// Phase implements State.
func (Idle) Phase() Phase { return PhaseIdle }

func (Idle) isState() {}

// Waiting has one request outstanding. Handle is nil only between the Send
// transition and the RequestStarted message that follows it.
type Waiting struct {
	Handle *RequestHandle
}

// Phase implements State.
func (Waiting) Phase() Phase { return PhaseWaiting }

func (Waiting) isState() {}

// Aborted follows a user abort. RequestID names the aborted request, whose
// completion is still expected.
type Aborted struct {
	Result    *Result
	RequestID string
}

// Phase implements State.
func (Aborted) Phase() Phase { return PhaseAborted }

func (Aborted) isState() {}

// Decoding selects how a response body is turned into Response.Data.
type Decoding int

const (
	// DecodeText keeps the body as a string and fails on non-2xx statuses.
	DecodeText Decoding = iota
	// DecodeJSON decodes the body into ExpectedResponseData whatever the status.
	DecodeJSON
)

// String returns the decoding name
func (d Decoding) String() string {
	switch d {
	case DecodeText:
		return "text"
	case DecodeJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Endpoint describes the request issued on Send.
type Endpoint struct {
	Path     string
	Decoding Decoding
}

// Model is everything the update function reads and writes.
type Model struct {
	Endpoint Endpoint
	State    State
}

// NewModel returns a model in the initial Idle phase.
func NewModel(endpoint Endpoint) Model {
	return Model{
		Endpoint: endpoint,
		State:    Idle{},
	}
}

// Phase returns the phase of the current state.
func (m Model) Phase() Phase {
	if m.State == nil {
		return PhaseIdle
	}
	return m.State.Phase()
}

// Result returns the result displayed by the current state, if any.
func (m Model) Result() *Result {
	switch s := m.State.(type) {
	case Idle:
		return s.Result
	case Aborted:
		return s.Result
	default:
		return nil
	}
}
