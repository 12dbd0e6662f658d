// Package loop provides the message-driven update/render cycle and the
// request lifecycle state machine.
//
// A Dispatcher owns the Model. Every change goes through Dispatch, which runs
// the pure Update function, executes the returned effects and renders. Effects
// run concurrently; their completions come back as messages and are processed
// one at a time in delivery order.
package loop

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Dispatcher serializes messages into the update function.
type Dispatcher struct {
	ctx      context.Context
	runner   Runner
	renderer Renderer
	logger   *zap.Logger

	mu       sync.Mutex // guards queue and draining
	settled  *sync.Cond // signalled when draining stops
	queue    []Message
	draining bool

	model Model // only touched by the goroutine that is draining
}

// NewDispatcher creates a dispatcher for model. ctx is the parent of every
// request context; cancelling it aborts all outstanding operations.
func NewDispatcher(ctx context.Context, model Model, runner Runner, renderer Renderer, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if model.State == nil {
		model.State = Idle{}
	}

	d := &Dispatcher{
		ctx:      ctx,
		runner:   runner,
		renderer: renderer,
		logger:   logger,
		model:    model,
	}
	d.settled = sync.NewCond(&d.mu)

	return d
}

// Start renders the initial model. Call it before the first Dispatch.
func (d *Dispatcher) Start() {
	d.renderer.Render(d.model)
}

// Dispatch queues msg. If no other call is draining the queue, this call
// drains it, so by the time the first Dispatch on an idle dispatcher returns
// msg and everything it caused synchronously have been processed.
func (d *Dispatcher) Dispatch(msg Message) {
	d.mu.Lock()
	d.queue = append(d.queue, msg)
	if d.draining {
		d.mu.Unlock()
		return
	}
	d.draining = true
	d.mu.Unlock()

	d.drain()
}

// Flush blocks until every message dispatched so far, on any goroutine, has
// been processed and rendered. It must not be called from a Renderer or a
// deliver callback.
func (d *Dispatcher) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for d.draining {
		d.settled.Wait()
	}
}

func (d *Dispatcher) drain() {
	defer func() {
		if r := recover(); r != nil {
			d.mu.Lock()
			d.queue = nil
			d.draining = false
			d.settled.Broadcast()
			d.mu.Unlock()
			panic(r)
		}
	}()

	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.draining = false
			d.settled.Broadcast()
			d.mu.Unlock()
			return
		}
		msg := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()

		d.process(msg)
	}
}

func (d *Dispatcher) process(msg Message) {
	before := d.model.Phase()

	next, transition := Update(d.model, msg)
	d.model = next

	if transition.Ignored {
		d.logger.Info("message ignored",
			zap.String("msg", describe(msg)),
			zap.Stringer("phase", before))
	} else {
		d.logger.Debug("message processed",
			zap.String("msg", describe(msg)),
			zap.Stringer("from", before),
			zap.Stringer("to", d.model.Phase()))
	}

	for _, effect := range transition.Effects {
		d.run(effect)
	}

	if !transition.SkipRender {
		d.renderer.Render(d.model)
	}
}

func (d *Dispatcher) run(effect Effect) {
	switch e := effect.(type) {
	case StartRequest:
		handle := d.runner.Start(d.ctx, e.Endpoint, d.Dispatch)
		d.logger.Debug("request started",
			zap.String("request_id", handle.ID()),
			zap.String("path", e.Endpoint.Path))

		// Attached before any queued completion can be processed.
		next, _ := Update(d.model, RequestStarted{Handle: handle})
		d.model = next
	case AbortRequest:
		d.logger.Debug("aborting request", zap.String("request_id", e.Handle.ID()))
		e.Handle.Abort()
	default:
		violation("run", d.model.Phase(), "unknown effect")
	}
}
