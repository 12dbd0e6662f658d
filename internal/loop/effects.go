package loop

import "context"

// Effect describes asynchronous work requested by Update.
type Effect interface {
	isEffect()
}

// StartRequest asks the Runner to issue a request to Endpoint.
type StartRequest struct {
	Endpoint Endpoint
}

func (StartRequest) isEffect() {}

// AbortRequest carries a handle moved out of the Waiting state.
type AbortRequest struct {
	Handle *RequestHandle
}

func (AbortRequest) isEffect() {}

// Runner executes StartRequest effects.
//
// Start must return the handle before the operation resolves and must call
// deliver exactly once with an OperationCompleted carrying the handle's ID.
type Runner interface {
	Start(ctx context.Context, endpoint Endpoint, deliver func(Message)) *RequestHandle
}

// Renderer receives the model after every dispatch that does not skip rendering.
type Renderer interface {
	Render(model Model)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Model)

// Render implements Renderer.
func (f RendererFunc) Render(model Model) {
	f(model)
}
