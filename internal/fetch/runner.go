package fetch

import (
	"context"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/joe/fetch-examples/internal/loop"
)

// Runner executes StartRequest effects over HTTP. It implements loop.Runner.
type Runner struct {
	client  *resty.Client
	limiter *rate.Limiter
	metrics *Metrics
	logger  *zap.Logger

	wg sync.WaitGroup
}

// NewRunner creates a runner. A nil metrics or logger is replaced by an
// unregistered or no-op one.
func NewRunner(opts Options, metrics *Metrics, logger *zap.Logger) *Runner {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{
		client:  NewClient(opts),
		limiter: NewLimiter(opts),
		metrics: metrics,
		logger:  logger,
	}
}

// Start issues the request in the background and returns its handle
// immediately. deliver is called exactly once, after which the handle is
// released.
func (r *Runner) Start(ctx context.Context, endpoint loop.Endpoint, deliver func(loop.Message)) *loop.RequestHandle {
	handle, reqCtx := loop.NewRequestHandle(ctx, uuid.NewString())
	r.metrics.recordStart(endpoint)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer handle.Release()

		start := time.Now()
		result := r.fetch(reqCtx, endpoint)
		elapsed := time.Since(start)
		r.metrics.recordSettled(endpoint, result, elapsed)

		fields := []zap.Field{
			zap.String("request_id", handle.ID()),
			zap.String("path", endpoint.Path),
			zap.String("outcome", result.Outcome()),
			zap.Duration("elapsed", elapsed),
		}
		switch result.Failure.(type) {
		case nil, loop.AbortedFailure:
			r.logger.Debug("request settled", fields...)
		default:
			r.logger.Warn("request failed", append(fields, zap.Error(result.Failure))...)
		}

		deliver(loop.OperationCompleted{RequestID: handle.ID(), Result: result})
	}()

	return handle
}

// Wait blocks until every started request has delivered its completion.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) fetch(ctx context.Context, endpoint loop.Endpoint) loop.Result {
	if err := r.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return loop.Failed(loop.NewAbortedFailure(context.Cause(ctx)))
		}
		return loop.Failed(loop.TransportFailure{Err: err})
	}

	resp, err := r.client.R().
		SetContext(ctx).
		Get(endpoint.Path)
	if err != nil {
		if ctx.Err() != nil {
			return loop.Failed(loop.NewAbortedFailure(context.Cause(ctx)))
		}
		return loop.Failed(loop.TransportFailure{Err: err})
	}

	return classify(endpoint.Decoding, statusOf(resp), resp.Body())
}
