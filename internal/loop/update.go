package loop

// Transition is what Update asks of the Dispatcher besides the new model.
type Transition struct {
	Effects []Effect
	// SkipRender suppresses the render pass for this message.
	SkipRender bool
	// Ignored is set when the message did not apply to the current state.
	Ignored bool
}

func ignored() Transition {
	return Transition{SkipRender: true, Ignored: true}
}

// Update is the pure transition function. It panics with *ProgrammerError
// when a message violates the state machine's preconditions.
func Update(m Model, msg Message) (Model, Transition) {
	if m.State == nil {
		m.State = Idle{}
	}

	switch msg := msg.(type) {
	case UserAction:
		switch msg {
		case ActionSend:
			return updateSend(m)
		case ActionAbort:
			return updateAbort(m)
		default:
			violation("dispatch", m.Phase(), "unknown user action "+msg.String())
		}
	case Pressed:
		if !Accepts(m, msg.Action) {
			return m, ignored()
		}
		return Update(m, msg.Action)
	case RequestStarted:
		return updateStarted(m, msg)
	case OperationCompleted:
		return updateCompleted(m, msg)
	default:
		violation("dispatch", m.Phase(), "unknown message "+describe(msg))
	}

	return m, Transition{}
}

// Accepts reports whether action is valid in m's current state.
func Accepts(m Model, action UserAction) bool {
	switch action {
	case ActionSend:
		return m.Phase() != PhaseWaiting
	case ActionAbort:
		waiting, ok := m.State.(Waiting)
		return ok && waiting.Handle != nil
	default:
		return false
	}
}

func updateSend(m Model) (Model, Transition) {
	switch m.State.(type) {
	case Idle, Aborted:
		m.State = Waiting{}
		return m, Transition{Effects: []Effect{StartRequest{Endpoint: m.Endpoint}}}
	default:
		// One request at a time.
		return m, ignored()
	}
}

func updateAbort(m Model) (Model, Transition) {
	waiting, ok := m.State.(Waiting)
	if !ok {
		violation("abort", m.Phase(), "no request in flight")
	}
	if waiting.Handle == nil {
		violation("abort", m.Phase(), "request handle has not been set")
	}

	m.State = Aborted{RequestID: waiting.Handle.ID()}
	return m, Transition{Effects: []Effect{AbortRequest{Handle: waiting.Handle}}}
}

func updateStarted(m Model, msg RequestStarted) (Model, Transition) {
	waiting, ok := m.State.(Waiting)
	if !ok || waiting.Handle != nil || msg.Handle == nil {
		violation("start", m.Phase(), "request handle delivered without a pending send")
	}

	m.State = Waiting{Handle: msg.Handle}
	return m, Transition{SkipRender: true}
}

func updateCompleted(m Model, msg OperationCompleted) (Model, Transition) {
	// Only the current request may settle the model. Anything else is the
	// late completion of a request that was aborted and then superseded.
	switch s := m.State.(type) {
	case Waiting:
		if s.Handle == nil || s.Handle.ID() != msg.RequestID {
			return m, ignored()
		}
	case Aborted:
		if s.RequestID != msg.RequestID {
			return m, ignored()
		}
	default:
		// Idle: nothing is outstanding.
		return m, ignored()
	}

	result := msg.Result
	m.State = Idle{Result: &result}
	return m, Transition{}
}
