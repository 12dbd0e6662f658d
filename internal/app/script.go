package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/joe/fetch-examples/internal/config"
	"github.com/joe/fetch-examples/internal/loop"
	"github.com/joe/fetch-examples/internal/view"
)

// frame is one render captured by a script run.
type frame struct {
	phase loop.Phase
	tree  *view.Node
}

// frames collects renders; requests deliver them from their own goroutines.
type frames struct {
	view *view.View

	mu   sync.Mutex
	list []frame
}

func (f *frames) Render(model loop.Model) {
	tree := f.view.Render(model)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.list = append(f.list, frame{phase: model.Phase(), tree: tree})
}

func (f *frames) latest() *view.Node {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.list) == 0 {
		return nil
	}
	return f.list[len(f.list)-1].tree
}

func (f *frames) snapshot() []frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]frame(nil), f.list...)
}

// RunScript plays steps without a terminal: actions are pressed on the
// latest render, pauses sleep. Once every request has settled, each render
// is written to out as plain text. Actions the screen does not offer are
// skipped and reported.
func (a *App) RunScript(ctx context.Context, steps []config.Step, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.serveMetrics(ctx)

	rendered := &frames{view: view.New(a.scenario.Page)}
	dispatcher := a.newDispatcher(ctx, rendered)
	dispatcher.Start()

	var skipped []string
	var runErr error

	for i, step := range steps {
		if step.IsPause() {
			if err := sleep(ctx, step.Pause); err != nil {
				runErr = err
				break
			}
			continue
		}

		// A completion may still be draining on a request goroutine; let it
		// land so the check sees the current screen.
		dispatcher.Flush()

		if !rendered.latest().Offers(step.Action) {
			a.logger.Info("script step skipped",
				zap.Int("step", i+1),
				zap.Stringer("action", step.Action))
			skipped = append(skipped, fmt.Sprintf("step %d: %s is not offered", i+1, step.Action))
			continue
		}

		dispatcher.Dispatch(loop.Pressed{Action: step.Action})
	}

	a.runner.Wait()

	for i, f := range rendered.snapshot() {
		if _, err := fmt.Fprintf(out, "--- render %d (%s)\n%s", i+1, f.phase, f.tree.Plain()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	for _, s := range skipped {
		if _, err := fmt.Fprintf(out, "--- skipped %s\n", s); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	return runErr
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("script interrupted: %w", ctx.Err())
	}
}
