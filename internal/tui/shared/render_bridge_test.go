package shared_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/fetch-examples/internal/loop"
	"github.com/joe/fetch-examples/internal/tui/shared"
	"github.com/joe/fetch-examples/internal/view"
)

var bridgePage = view.Page{Title: "Example C", Description: "desc", SendLabel: "Send request"}

var bridgeEndpoint = loop.Endpoint{Path: "/api/delayed-response/10", Decoding: loop.DecodeText}

// listen runs the bridge's listen command in the background.
func listen(bridge *shared.RenderBridge) <-chan tea.Msg {
	out := make(chan tea.Msg, 1)
	go func() { out <- bridge.ListenCmd()() }()
	return out
}

// TestRenderBridge_ImplementsRenderer verifies the bridge can be handed to a dispatcher.
func TestRenderBridge_ImplementsRenderer(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	bridge := shared.NewRenderBridge(view.New(bridgePage))
	defer bridge.Close()

	var renderer loop.Renderer = bridge
	g.Expect(renderer).ToNot(BeNil())
}

// TestRenderBridge_RenderSendsTree verifies renders arrive as RenderMsg.
func TestRenderBridge_RenderSendsTree(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	bridge := shared.NewRenderBridge(view.New(bridgePage))
	defer bridge.Close()

	bridge.Render(loop.NewModel(bridgeEndpoint))

	select {
	case msg := <-listen(bridge):
		renderMsg, ok := msg.(shared.RenderMsg)
		g.Expect(ok).To(BeTrue(), "Expected RenderMsg")
		g.Expect(renderMsg.Phase).To(Equal(loop.PhaseIdle))
		g.Expect(renderMsg.Tree.Offers(loop.ActionSend)).To(BeTrue())
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timed out waiting for render")
	}
}

// TestRenderBridge_LatestWins verifies an unconsumed frame is replaced.
func TestRenderBridge_LatestWins(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	bridge := shared.NewRenderBridge(view.New(bridgePage))
	defer bridge.Close()

	bridge.Render(loop.NewModel(bridgeEndpoint))
	bridge.Render(loop.Model{Endpoint: bridgeEndpoint, State: loop.Waiting{}})
	bridge.Render(loop.Model{Endpoint: bridgeEndpoint, State: loop.Aborted{}})

	msg := bridge.ListenCmd()()
	g.Expect(msg.(shared.RenderMsg).Phase).To(Equal(loop.PhaseAborted)) //nolint:forcetypeassert

	select {
	case extra := <-listen(bridge):
		t.Fatalf("expected a single frame, got another: %v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

// TestRenderBridge_CloseStopsChannel verifies Close closes the channel and drops later renders.
func TestRenderBridge_CloseStopsChannel(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	bridge := shared.NewRenderBridge(view.New(bridgePage))
	bridge.Close()
	bridge.Close()

	g.Expect(func() { bridge.Render(loop.NewModel(bridgeEndpoint)) }).NotTo(Panic())

	g.Expect(bridge.ListenCmd()()).To(BeNil(), "closed bridge delivers nothing")
}

// TestRenderBridge_ListenCmd verifies the listen command blocks until a render.
func TestRenderBridge_ListenCmd(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	bridge := shared.NewRenderBridge(view.New(bridgePage))
	defer bridge.Close()

	cmd := bridge.ListenCmd()
	g.Expect(cmd).ToNot(BeNil())

	go func() {
		time.Sleep(10 * time.Millisecond)
		bridge.Render(loop.NewModel(bridgeEndpoint))
	}()

	msg := cmd()
	_, ok := msg.(shared.RenderMsg)
	g.Expect(ok).To(BeTrue())
}
