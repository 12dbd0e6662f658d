package loop

import (
	"fmt"
	"strings"
)

// Message is the interface implemented by everything the Dispatcher accepts.
type Message interface {
	isMessage()
}

// UserAction is an input from the user boundary.
type UserAction int

const (
	// ActionSend starts a request.
	ActionSend UserAction = iota
	// ActionAbort cancels the outstanding request.
	ActionAbort
)

func (UserAction) isMessage() {}

// String returns the action name used in rendered buttons and scripts.
func (a UserAction) String() string {
	switch a {
	case ActionSend:
		return "send"
	case ActionAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// ParseAction parses an action name as produced by String.
func ParseAction(s string) (UserAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "send":
		return ActionSend, nil
	case "abort":
		return ActionAbort, nil
	default:
		return ActionSend, fmt.Errorf("invalid action: %q (valid: send, abort)", s)
	}
}

// OperationCompleted carries the outcome of one started request.
// Exactly one is delivered per StartRequest effect.
type OperationCompleted struct {
	RequestID string
	Result    Result
}

func (OperationCompleted) isMessage() {}

// RequestStarted hands a freshly created handle to the model. The Dispatcher
// sends it itself, inside the same dispatch that ran the StartRequest effect.
type RequestStarted struct {
	Handle *RequestHandle
}

func (RequestStarted) isMessage() {}

// Pressed is a user action taken from a rendered screen. Front ends send it
// instead of the bare action: the screen may be stale by the time the press
// is processed (a completion can land first), and a press the current state
// no longer accepts is dropped rather than treated as a programming error.
type Pressed struct {
	Action UserAction
}

func (Pressed) isMessage() {}

// describe returns a short log-friendly name for a message.
func describe(msg Message) string {
	switch m := msg.(type) {
	case UserAction:
		return "action:" + m.String()
	case OperationCompleted:
		return "completed:" + m.Result.Outcome()
	case RequestStarted:
		return "started"
	case Pressed:
		return "pressed:" + m.Action.String()
	default:
		return fmt.Sprintf("%T", msg)
	}
}
