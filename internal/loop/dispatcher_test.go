//nolint:varnamelen // Test files use idiomatic short variable names (g, d, etc.)
package loop_test

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/fetch-examples/internal/loop"
)

// fakeRunner hands out handles and lets the test decide when requests complete.
type fakeRunner struct {
	mu       sync.Mutex
	started  []startedRequest
	nextID   int
	complete func(loop.Endpoint) *loop.Result // optional synchronous completion
}

type startedRequest struct {
	handle   *loop.RequestHandle
	ctx      context.Context
	endpoint loop.Endpoint
	deliver  func(loop.Message)
}

func (r *fakeRunner) Start(ctx context.Context, endpoint loop.Endpoint, deliver func(loop.Message)) *loop.RequestHandle {
	r.mu.Lock()
	r.nextID++
	id := fmt.Sprintf("req-%d", r.nextID)
	handle, reqCtx := loop.NewRequestHandle(ctx, id)
	r.started = append(r.started, startedRequest{handle: handle, ctx: reqCtx, endpoint: endpoint, deliver: deliver})
	complete := r.complete
	r.mu.Unlock()

	if complete != nil {
		if result := complete(endpoint); result != nil {
			deliver(loop.OperationCompleted{RequestID: id, Result: *result})
		}
	}

	return handle
}

func (r *fakeRunner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.started)
}

func (r *fakeRunner) request(i int) startedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started[i]
}

// finish completes request i the way a real runner would.
func (r *fakeRunner) finish(i int, result loop.Result) {
	req := r.request(i)
	defer req.handle.Release()
	req.deliver(loop.OperationCompleted{RequestID: req.handle.ID(), Result: result})
}

// finishFromContext settles request i as aborted if its context was cancelled.
func (r *fakeRunner) finishFromContext(i int) {
	req := r.request(i)
	if req.ctx.Err() != nil {
		r.finish(i, loop.Failed(loop.NewAbortedFailure(context.Cause(req.ctx))))
		return
	}
	r.finish(i, loop.Succeeded(loop.Response{Status: loop.Status{Code: 200, Text: "OK"}, Body: "done", Data: "done"}))
}

// recorder keeps every rendered model.
type recorder struct {
	mu     sync.Mutex
	models []loop.Model
}

func (r *recorder) Render(model loop.Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models = append(r.models, model)
}

func (r *recorder) last() loop.Model {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.models[len(r.models)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.models)
}

// gatedRecorder blocks the render of the first settled model until opened.
type gatedRecorder struct {
	recorder
	entered chan struct{}
	gate    chan struct{}
	once    sync.Once
}

func (r *gatedRecorder) Render(model loop.Model) {
	if model.Phase() == loop.PhaseIdle && model.Result() != nil {
		r.once.Do(func() {
			close(r.entered)
			<-r.gate
		})
	}
	r.recorder.Render(model)
}

func newTestDispatcher(endpoint loop.Endpoint) (*loop.Dispatcher, *fakeRunner, *recorder) {
	runner := &fakeRunner{}
	rec := &recorder{}
	d := loop.NewDispatcher(context.Background(), loop.NewModel(endpoint), runner, rec, nil)
	d.Start()
	return d, runner, rec
}

func TestDispatcherRendersInitialIdle(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, _, rec := newTestDispatcher(testEndpoint)

	g.Expect(rec.count()).To(Equal(1))
	g.Expect(rec.last().Phase()).To(Equal(loop.PhaseIdle))
	g.Expect(rec.last().Result()).To(BeNil())
}

func TestDispatcherDecodeFailureScenario(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	endpoint := loop.Endpoint{Path: "/api/non-existent-endpoint", Decoding: loop.DecodeJSON}
	d, runner, rec := newTestDispatcher(endpoint)

	d.Dispatch(loop.ActionSend)

	g.Expect(runner.count()).To(Equal(1))
	g.Expect(runner.request(0).endpoint).To(Equal(endpoint))
	g.Expect(rec.last().Phase()).To(Equal(loop.PhaseWaiting))

	failure := loop.DecodeFailure{Status: loop.Status{Code: 404, Text: "Not Found"}, Err: loop.ErrEmptyBody}
	runner.finish(0, loop.Failed(failure))

	final := rec.last()
	g.Expect(final.Phase()).To(Equal(loop.PhaseIdle))
	g.Expect(final.Result().Failure).To(Equal(failure))
	g.Expect(final.Result().Failure.Error()).To(ContainSubstring("decode failed"))
}

func TestDispatcherAbortScenario(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	d, runner, rec := newTestDispatcher(testEndpoint)

	d.Dispatch(loop.ActionSend)
	g.Expect(rec.last().Phase()).To(Equal(loop.PhaseWaiting))

	d.Dispatch(loop.ActionAbort)
	g.Expect(rec.last().Phase()).To(Equal(loop.PhaseAborted))
	g.Expect(runner.request(0).handle.Aborted()).To(BeTrue())

	// The aborted request still reports, after the abort.
	runner.finishFromContext(0)

	final := rec.last()
	g.Expect(final.Phase()).To(Equal(loop.PhaseIdle))
	g.Expect(final.Result().Failure).To(BeAssignableToTypeOf(loop.AbortedFailure{}))
	g.Expect(final.Result().Failure.(loop.AbortedFailure).Name).To(Equal(loop.AbortErrorName))
}

func TestDispatcherIgnoresSecondSend(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	d, runner, rec := newTestDispatcher(testEndpoint)

	d.Dispatch(loop.ActionSend)
	rendersAfterFirst := rec.count()
	d.Dispatch(loop.ActionSend)

	g.Expect(runner.count()).To(Equal(1), "exactly one operation outstanding")
	g.Expect(rec.count()).To(Equal(rendersAfterFirst), "ignored send does not render")

	runner.finishFromContext(0)
	g.Expect(rec.last().Phase()).To(Equal(loop.PhaseIdle))
	g.Expect(rec.last().Result().OK()).To(BeTrue())
}

func TestDispatcherAbortWhileIdlePanics(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	d, runner, _ := newTestDispatcher(testEndpoint)

	g.Expect(func() { d.Dispatch(loop.ActionAbort) }).
		To(PanicWith(BeAssignableToTypeOf(&loop.ProgrammerError{})))
	g.Expect(runner.count()).To(BeZero())
}

func TestDispatcherDropsAbortPressedAfterCompletion(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	d, runner, rec := newTestDispatcher(testEndpoint)

	d.Dispatch(loop.Pressed{Action: loop.ActionSend})
	g.Expect(rec.last().Phase()).To(Equal(loop.PhaseWaiting))

	// The request settles before the abort press reaches the dispatcher.
	runner.finish(0, loop.Succeeded(loop.Response{Body: "done"}))
	renders := rec.count()

	g.Expect(func() { d.Dispatch(loop.Pressed{Action: loop.ActionAbort}) }).NotTo(Panic())
	g.Expect(rec.last().Phase()).To(Equal(loop.PhaseIdle))
	g.Expect(rec.count()).To(Equal(renders), "dropped press does not render")
}

func TestDispatcherFlushWaitsForOtherDrainer(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	runner := &fakeRunner{}
	rec := &gatedRecorder{entered: make(chan struct{}), gate: make(chan struct{})}
	d := loop.NewDispatcher(context.Background(), loop.NewModel(testEndpoint), runner, rec, nil)
	d.Start()

	d.Dispatch(loop.ActionSend)

	// The completion is drained on another goroutine, which then stalls in Render.
	go runner.finish(0, loop.Succeeded(loop.Response{Body: "done"}))
	<-rec.entered

	// Only queued: the other goroutine is draining.
	d.Dispatch(loop.Pressed{Action: loop.ActionSend})

	flushed := make(chan struct{})
	go func() {
		d.Flush()
		close(flushed)
	}()
	g.Consistently(flushed, 50*time.Millisecond).ShouldNot(BeClosed())

	close(rec.gate)
	g.Eventually(flushed).Should(BeClosed())

	g.Expect(rec.last().Phase()).To(Equal(loop.PhaseWaiting), "the queued press was processed before Flush returned")
	g.Expect(runner.count()).To(Equal(2))
}

func TestDispatcherFlushWhenIdleReturns(t *testing.T) {
	t.Parallel()

	d, _, _ := newTestDispatcher(testEndpoint)
	d.Flush()
}

func TestDispatcherToleratesStaleCompletion(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	d, runner, rec := newTestDispatcher(testEndpoint)

	d.Dispatch(loop.ActionSend)
	d.Dispatch(loop.ActionAbort)
	d.Dispatch(loop.ActionSend) // Aborted -> Waiting, second request
	g.Expect(runner.count()).To(Equal(2))

	// The first request settles late; the second must stay abortable.
	runner.finishFromContext(0)
	g.Expect(rec.last().Phase()).To(Equal(loop.PhaseWaiting))

	d.Dispatch(loop.ActionAbort)
	g.Expect(runner.request(1).handle.Aborted()).To(BeTrue())

	runner.finishFromContext(1)
	g.Expect(rec.last().Phase()).To(Equal(loop.PhaseIdle))
}

func TestDispatcherSynchronousCompletionIsQueued(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	runner := &fakeRunner{complete: func(loop.Endpoint) *loop.Result {
		result := loop.Failed(loop.TransportFailure{Err: fmt.Errorf("connection refused")})
		return &result
	}}
	rec := &recorder{}
	d := loop.NewDispatcher(context.Background(), loop.NewModel(testEndpoint), runner, rec, nil)

	// The runner completes inside Start; the handle must be attached first.
	d.Dispatch(loop.ActionSend)

	g.Expect(rec.count()).To(Equal(2))
	g.Expect(rec.models[0].Phase()).To(Equal(loop.PhaseWaiting))
	g.Expect(rec.last().Phase()).To(Equal(loop.PhaseIdle))
	g.Expect(rec.last().Result().Outcome()).To(Equal("transport"))
}

func TestDispatcherSerializesConcurrentCompletions(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	d, runner, rec := newTestDispatcher(testEndpoint)

	const rounds = 50

	var wg sync.WaitGroup
	for i := range rounds {
		d.Dispatch(loop.ActionSend)
		// The request may settle before the abort is processed.
		d.Dispatch(loop.Pressed{Action: loop.ActionAbort})

		wg.Add(1)
		go func() {
			defer wg.Done()
			for runner.count() <= i {
				runtime.Gosched()
			}
			runner.finishFromContext(i)
		}()
	}
	wg.Wait()

	// The last request always settles after its send, so the model ends in
	// Idle whether or not its abort was applied.
	g.Expect(runner.count()).To(Equal(rounds))
	g.Expect(rec.last().Phase()).To(Equal(loop.PhaseIdle))
}

func TestDispatcherParentCancellationAbortsRequests(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ctx, cancel := context.WithCancel(context.Background())
	runner := &fakeRunner{}
	rec := &recorder{}
	d := loop.NewDispatcher(ctx, loop.NewModel(testEndpoint), runner, rec, nil)

	d.Dispatch(loop.ActionSend)
	cancel()

	g.Expect(runner.request(0).ctx.Err()).To(HaveOccurred())
	runner.finishFromContext(0)
	g.Expect(rec.last().Result().Outcome()).To(Equal("aborted"))
}
