package loop

import (
	"context"
	"sync"
)

// RequestHandle is the cancellation capability of one outstanding operation.
// Abort consumes it; a second Abort is a ProgrammerError.
type RequestHandle struct {
	id     string
	cancel context.CancelCauseFunc

	mu      sync.Mutex
	aborted bool
}

// NewRequestHandle derives a cancellable context from parent and returns the
// handle controlling it together with the context the operation must observe.
func NewRequestHandle(parent context.Context, id string) (*RequestHandle, context.Context) {
	ctx, cancel := context.WithCancelCause(parent)
	return &RequestHandle{id: id, cancel: cancel}, ctx
}

// ID identifies the operation in its OperationCompleted message.
func (h *RequestHandle) ID() string {
	return h.id
}

// Abort signals cancellation with ErrAborted. The operation still settles
// and reports a completion.
func (h *RequestHandle) Abort() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.aborted {
		violation("abort", PhaseAborted, "request handle "+h.id+" already aborted")
	}
	h.aborted = true
	h.cancel(ErrAborted)
}

// Aborted reports whether Abort has been called.
func (h *RequestHandle) Aborted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.aborted
}

// Release frees the context once the operation has settled. It is not an
// abort and may be called after one.
func (h *RequestHandle) Release() {
	h.cancel(context.Canceled)
}
