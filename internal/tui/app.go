// Package tui hosts the fetch screen in a bubble tea program. The model is
// owned by a loop.Dispatcher; the program only draws the rendered trees it
// receives through a RenderBridge and turns key presses into actions.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/fetch-examples/internal/loop"
	"github.com/joe/fetch-examples/internal/tui/shared"
	"github.com/joe/fetch-examples/internal/view"
)

// Dispatcher accepts actions. *loop.Dispatcher implements it.
type Dispatcher interface {
	Dispatch(msg loop.Message)
}

// DispatchedMsg reports that an action was handed to the dispatcher.
type DispatchedMsg struct {
	Action loop.UserAction
}

// AppModel is the top-level bubble tea model.
type AppModel struct {
	dispatcher Dispatcher
	bridge     *shared.RenderBridge
	keys       KeyMap
	help       help.Model
	spinner    spinner.Model

	tree         *view.Node
	phase        loop.Phase
	waitingSince time.Time
	now          func() time.Time

	logPath string
	width   int
	height  int
}

// NewAppModel creates the app model. Renders arrive through bridge; the
// first one is expected to be pushed by the dispatcher's Start.
func NewAppModel(dispatcher Dispatcher, bridge *shared.RenderBridge, logPath string) AppModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = shared.LabelStyle()

	return AppModel{
		dispatcher: dispatcher,
		bridge:     bridge,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		spinner:    s,
		now:        time.Now,
		logPath:    logPath,
	}
}

// Init implements tea.Model
func (a AppModel) Init() tea.Cmd {
	return tea.Batch(a.bridge.ListenCmd(), a.spinner.Tick)
}

// LogPath returns the debug log path
func (a AppModel) LogPath() string {
	return a.logPath
}

// Phase returns the phase of the latest render.
func (a AppModel) Phase() loop.Phase {
	return a.phase
}

// Tree returns the latest rendered tree, nil before the first render.
func (a AppModel) Tree() *view.Node {
	return a.tree
}

// Update implements tea.Model
func (a AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width

		return a, nil

	case shared.RenderMsg:
		if msg.Phase == loop.PhaseWaiting && a.phase != loop.PhaseWaiting {
			a.waitingSince = a.now()
		}
		a.tree = msg.Tree
		a.phase = msg.Phase

		return a, a.bridge.ListenCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)

		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil
	case key.Matches(msg, a.keys.Send):
		return a, a.dispatch(loop.ActionSend)
	case key.Matches(msg, a.keys.Abort):
		return a, a.dispatch(loop.ActionAbort)
	}

	return a, nil
}

// dispatch returns a command pressing action on the dispatcher, or nil when
// the current screen has no enabled button for it.
func (a AppModel) dispatch(action loop.UserAction) tea.Cmd {
	if !a.tree.Offers(action) {
		return nil
	}

	d := a.dispatcher

	return func() tea.Msg {
		d.Dispatch(loop.Pressed{Action: action})
		return DispatchedMsg{Action: action}
	}
}
