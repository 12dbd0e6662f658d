package view_test

import (
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/fetch-examples/internal/loop"
	"github.com/joe/fetch-examples/internal/view"
)

func TestBuilders(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tree := view.VBox("root",
		view.TextNode("greeting", "hello"),
		nil,
		view.VBox("inner", view.Button("go", "Go", loop.ActionSend)),
		view.DisabledButton("off", "Off"),
	)

	g.Expect(tree.Children).To(HaveLen(3))
	g.Expect(tree.Find("go").Props).To(HaveKeyWithValue(view.PropOn, "send"))
	g.Expect(tree.Find("missing")).To(BeNil())
	g.Expect(tree.Actions()).To(Equal([]loop.UserAction{loop.ActionSend}))
	g.Expect(tree.Plain()).To(Equal("hello\n[ Go ]\n[ Off ]\n"))
}

func TestWalkOrder(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tree := view.VBox("a", view.VBox("b", view.TextNode("c", "")), view.TextNode("d", ""))

	var ids []string
	tree.Walk(func(n *view.Node) { ids = append(ids, n.ID) })

	g.Expect(ids).To(Equal([]string{"a", "b", "c", "d"}))
}

func TestNilNodeIsEmpty(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var tree *view.Node
	g.Expect(tree.Find("x")).To(BeNil())
	g.Expect(tree.Actions()).To(BeEmpty())
	g.Expect(tree.Plain()).To(BeEmpty())
}
