package shared

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/fetch-examples/internal/loop"
	"github.com/joe/fetch-examples/internal/view"
)

// RenderMsg carries a freshly rendered tree into the bubble tea loop.
type RenderMsg struct {
	Tree  *view.Node
	Phase loop.Phase
}

// RenderBridge adapts dispatcher renders to bubble tea messages.
// It implements loop.Renderer. Only the latest render is kept: a frame the
// UI has not picked up yet is replaced by the newer one.
type RenderBridge struct {
	view *view.View

	mu     sync.Mutex
	ch     chan tea.Msg
	closed bool
}

// NewRenderBridge creates a bridge rendering models with v.
func NewRenderBridge(v *view.View) *RenderBridge {
	return &RenderBridge{
		view: v,
		ch:   make(chan tea.Msg, 1),
	}
}

// Render implements loop.Renderer.
func (b *RenderBridge) Render(model loop.Model) {
	msg := RenderMsg{Tree: b.view.Render(model), Phase: model.Phase()}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	select {
	case b.ch <- msg:
	default:
		// Drop the stale frame; the slot is then free for this one.
		select {
		case <-b.ch:
		default:
		}
		b.ch <- msg
	}
}

// ListenCmd returns a tea.Cmd that blocks until a render is received.
// Issue it again after every RenderMsg to keep listening.
func (b *RenderBridge) ListenCmd() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-b.ch
		if !ok {
			return nil
		}
		return msg
	}
}

// Close closes the channel. Later renders are dropped.
func (b *RenderBridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.closed = true
		close(b.ch)
	}
}
