package tui

import (
	"strings"

	"github.com/joe/fetch-examples/internal/loop"
	"github.com/joe/fetch-examples/internal/tui/shared"
	"github.com/joe/fetch-examples/internal/view"
)

const responseBoxTitle = "Response"

// View implements tea.Model
func (a AppModel) View() string {
	if a.tree == nil {
		return shared.RenderDim("Loading...") + "\n"
	}

	var b strings.Builder

	if title := a.tree.Find(view.IDTitle); title != nil {
		b.WriteString(shared.RenderTitle(title.Props[view.PropText]))
		b.WriteString("\n")
	}
	if desc := a.tree.Find(view.IDDescription); desc != nil {
		b.WriteString(shared.RenderSubtitle(desc.Props[view.PropText]))
		b.WriteString("\n")
	}

	b.WriteString(shared.RenderTimeline(a.phase))
	b.WriteString("\n\n")

	var body strings.Builder
	for _, child := range a.tree.Children {
		a.renderNode(&body, child)
	}
	b.WriteString(shared.RenderWidgetBox(responseBoxTitle, strings.TrimRight(body.String(), "\n"), a.width))
	b.WriteString("\n\n")

	b.WriteString(a.help.View(a.keys))
	if a.logPath != "" {
		b.WriteString("\n")
		b.WriteString(shared.RenderDim("Debug log: " + a.logPath))
	}
	b.WriteString("\n")

	return b.String()
}

func (a AppModel) renderNode(b *strings.Builder, n *view.Node) {
	switch n.Type {
	case view.TypeVBox:
		for _, child := range n.Children {
			a.renderNode(b, child)
		}
		return
	case view.TypeButton:
		b.WriteString(a.renderButton(n))
	case view.TypeText:
		text, ok := a.renderText(n)
		if !ok {
			return
		}
		b.WriteString(text)
	default:
		return
	}
	b.WriteString("\n")
}

func (a AppModel) renderText(n *view.Node) (string, bool) {
	text := n.Props[view.PropText]

	switch n.ID {
	case view.IDTitle, view.IDDescription:
		// Drawn in the header.
		return "", false
	case view.IDWaiting:
		elapsed := a.now().Sub(a.waitingSince)
		return a.spinner.View() + " " + shared.RenderWarning(text) +
			shared.RenderDim(" "+shared.FormatDuration(elapsed)), true
	}

	switch n.Props[view.PropRole] {
	case view.RoleError:
		return shared.RenderError(text), true
	case view.RoleHint:
		return "\n" + shared.RenderDim(text), true
	case view.RoleSuccess:
		return shared.RenderSuccess(text), true
	default:
		return shared.NormalStyle().Render(text), true
	}
}

func (a AppModel) renderButton(n *view.Node) string {
	label := "[ " + n.Props[view.PropText] + " ]"

	if n.Props[view.PropDisabled] == "1" {
		return shared.DisabledButtonStyle().Render(label)
	}

	action, err := loop.ParseAction(n.Props[view.PropOn])
	if err != nil {
		return shared.RenderDim(label)
	}

	hint := ""
	switch action {
	case loop.ActionSend:
		hint = a.keys.Send.Help().Key
	case loop.ActionAbort:
		hint = a.keys.Abort.Help().Key
	}

	return shared.PromptArrow + shared.ButtonStyle().Render(label) + shared.RenderDim("  "+hint)
}
