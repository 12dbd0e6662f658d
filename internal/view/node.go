// Package view renders the model into an immutable tree of text and button
// nodes. Front ends (the terminal UI, the script runner) draw the tree and
// turn button presses back into loop actions.
package view

import (
	"strings"

	"github.com/joe/fetch-examples/internal/loop"
)

// Node types.
const (
	TypeVBox   = "vbox"
	TypeText   = "text"
	TypeButton = "button"
)

// Node property keys.
const (
	PropText     = "text"
	PropOn       = "on"
	PropDisabled = "disabled"
	PropRole     = "role"
	PropCategory = "category"
)

// Roles tell front ends how to emphasize a text node.
const (
	RoleError   = "error"
	RoleHint    = "hint"
	RoleSuccess = "success"
)

// Node is a view tree node with an ID, type, props, and children.
type Node struct {
	ID       string
	Type     string
	Props    map[string]string
	Children []*Node
}

// N creates a new node with the given id and type.
func N(id, typ string) *Node {
	return &Node{
		ID:    id,
		Type:  typ,
		Props: make(map[string]string),
	}
}

// Prop sets a property on the node and returns it for chaining.
func (n *Node) Prop(k, v string) *Node {
	n.Props[k] = v
	return n
}

// Text sets the "text" property.
func (n *Node) Text(s string) *Node {
	return n.Prop(PropText, s)
}

// Child appends child nodes and returns the parent for chaining. Nil
// children are skipped.
func (n *Node) Child(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// VBox creates a vertical box layout node.
func VBox(id string, children ...*Node) *Node {
	return N(id, TypeVBox).Child(children...)
}

// TextNode creates a text display node.
func TextNode(id, text string) *Node {
	return N(id, TypeText).Text(text)
}

// Button creates a button that dispatches action when pressed.
func Button(id, text string, action loop.UserAction) *Node {
	return N(id, TypeButton).Text(text).Prop(PropOn, action.String())
}

// DisabledButton creates a button that does nothing.
func DisabledButton(id, text string) *Node {
	return N(id, TypeButton).Text(text).Prop(PropDisabled, "1")
}

// Walk visits n and its descendants depth first.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first node with the given id.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) {
		if found == nil && c.ID == id {
			found = c
		}
	})
	return found
}

// Actions returns the actions offered by enabled buttons, in tree order.
func (n *Node) Actions() []loop.UserAction {
	var actions []loop.UserAction
	n.Walk(func(c *Node) {
		if c.Type != TypeButton || c.Props[PropDisabled] == "1" {
			return
		}
		if action, err := loop.ParseAction(c.Props[PropOn]); err == nil {
			actions = append(actions, action)
		}
	})
	return actions
}

// Offers reports whether an enabled button dispatches action.
func (n *Node) Offers(action loop.UserAction) bool {
	for _, a := range n.Actions() {
		if a == action {
			return true
		}
	}
	return false
}

// Plain renders the tree as plain text, one line per text or button node.
// Buttons are shown in brackets.
func (n *Node) Plain() string {
	var b strings.Builder
	n.Walk(func(c *Node) {
		switch c.Type {
		case TypeText:
			b.WriteString(c.Props[PropText])
			b.WriteByte('\n')
		case TypeButton:
			b.WriteString("[ ")
			b.WriteString(c.Props[PropText])
			b.WriteString(" ]\n")
		}
	})
	return b.String()
}
