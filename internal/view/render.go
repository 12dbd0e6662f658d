package view

import (
	"fmt"
	"strconv"

	"github.com/joe/fetch-examples/internal/loop"
	pkgerrors "github.com/joe/fetch-examples/pkg/errors"
)

// Fixed texts shown by every page.
const (
	WaitingText  = "Waiting for response..."
	AbortLabel   = "Abort request"
	AbortedLabel = "Request aborted"
)

// Node ids that front ends and tests look up.
const (
	IDPage        = "page"
	IDTitle       = "title"
	IDDescription = "description"
	IDResult      = "result"
	IDWaiting     = "waiting"
	IDSend        = "send"
	IDAbort       = "abort"
	IDAborted     = "aborted"
	IDSuggestions = "suggestions"
)

// Page is the static part of a scenario's screen.
type Page struct {
	Title       string
	Description string
	SendLabel   string
}

// View renders models of one page.
type View struct {
	page     Page
	enricher pkgerrors.Enricher
}

// New creates a view for page.
func New(page Page) *View {
	return &View{page: page, enricher: pkgerrors.NewEnricher()}
}

// Page returns the page the view renders.
func (v *View) Page() Page {
	return v.page
}

// Render builds the tree for m. It has no side effects.
func (v *View) Render(m loop.Model) *Node {
	root := VBox(IDPage,
		TextNode(IDTitle, v.page.Title),
		TextNode(IDDescription, v.page.Description),
	)

	switch s := m.State.(type) {
	case loop.Waiting:
		root.Child(
			TextNode(IDWaiting, WaitingText),
			Button(IDAbort, AbortLabel, loop.ActionAbort),
		)
	case loop.Aborted:
		root.Child(
			v.result(m.Endpoint, s.Result),
			DisabledButton(IDAborted, AbortedLabel),
			Button(IDSend, v.page.SendLabel, loop.ActionSend),
		)
	case loop.Idle:
		root.Child(
			v.result(m.Endpoint, s.Result),
			Button(IDSend, v.page.SendLabel, loop.ActionSend),
		)
	default:
		root.Child(Button(IDSend, v.page.SendLabel, loop.ActionSend))
	}

	return root
}

func (v *View) result(endpoint loop.Endpoint, r *loop.Result) *Node {
	if r == nil {
		return nil
	}

	if r.Response != nil {
		return responseNode(r.Response)
	}

	switch f := r.Failure.(type) {
	case loop.AbortedFailure:
		return VBox(IDResult,
			TextNode("error-name", fmt.Sprintf("Error name: %q", f.Name)).Prop(PropRole, RoleError),
			TextNode("error-message", fmt.Sprintf("Error message: %q", f.Message)).Prop(PropRole, RoleError),
		)
	case loop.DecodeFailure:
		return VBox(IDResult,
			statusNodes(f.Status),
			TextNode("decode-error", "Decode failed: "+f.Err.Error()).Prop(PropRole, RoleError),
			v.suggestions(endpoint, f),
		)
	case loop.StatusFailure:
		return VBox(IDResult,
			statusNodes(f.Status),
			TextNode("error", "Error: "+f.Error()).Prop(PropRole, RoleError),
			v.suggestions(endpoint, f),
		)
	case nil:
		return nil
	default:
		return VBox(IDResult,
			TextNode("error", "Error: "+f.Error()).Prop(PropRole, RoleError),
			v.suggestions(endpoint, f),
		)
	}
}

func responseNode(resp *loop.Response) *Node {
	switch data := resp.Data.(type) {
	case loop.ExpectedResponseData:
		return VBox(IDResult,
			statusNodes(resp.Status),
			TextNode("data", fmt.Sprintf("Data: %+v", data)).Prop(PropRole, RoleSuccess),
		)
	case string:
		return VBox(IDResult,
			TextNode("body", fmt.Sprintf("Response String body: %q", data)).Prop(PropRole, RoleSuccess),
		)
	default:
		return VBox(IDResult,
			statusNodes(resp.Status),
			TextNode("body", fmt.Sprintf("Response String body: %q", resp.Body)).Prop(PropRole, RoleSuccess),
		)
	}
}

func statusNodes(status loop.Status) *Node {
	return VBox("status",
		TextNode("status-code", "Status code: "+strconv.Itoa(status.Code)),
		TextNode("status-text", fmt.Sprintf("Status text: %q", status.Text)),
	)
}

func (v *View) suggestions(endpoint loop.Endpoint, err error) *Node {
	d := v.enricher.Enrich(err, endpoint.Path)
	hint := d.Hint()
	if hint == "" {
		return nil
	}
	return TextNode(IDSuggestions, fmt.Sprintf("Try these solutions (%s failure):\n%s", d.Category, hint)).
		Prop(PropRole, RoleHint).
		Prop(PropCategory, string(d.Category))
}
