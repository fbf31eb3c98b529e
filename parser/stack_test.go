package parser

import (
	"testing"

	"github.com/heathj/htmltree/parser/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type elemSpec struct {
	ns   dom.Namespace
	name string
}

func htmlEl(name string) elemSpec { return elemSpec{dom.Htmlns, name} }

func stackOf(specs ...elemSpec) *StackOfOpenElements {
	doc := dom.NewHTMLDocumentNode()
	s := &StackOfOpenElements{}
	for _, e := range specs {
		s.Push(dom.NewDOMElement(doc, e.name, e.ns))
	}
	return s
}

func TestHasElementInScope(t *testing.T) {
	tests := []struct {
		name  string
		stack []elemSpec
		query string
		want  bool
	}{
		{"found at top", []elemSpec{htmlEl("html"), htmlEl("body"), htmlEl("p")}, "p", true},
		{"found below inline", []elemSpec{htmlEl("html"), htmlEl("body"), htmlEl("p"), htmlEl("b")}, "p", true},
		{"table boundary", []elemSpec{htmlEl("html"), htmlEl("body"), htmlEl("p"), htmlEl("table")}, "p", false},
		{"template boundary", []elemSpec{htmlEl("html"), htmlEl("p"), htmlEl("template"), htmlEl("span")}, "p", false},
		{"html boundary", []elemSpec{htmlEl("html")}, "p", false},
		{"td boundary", []elemSpec{htmlEl("html"), htmlEl("p"), htmlEl("table"), htmlEl("tr"), htmlEl("td")}, "p", false},
		{"svg boundary", []elemSpec{htmlEl("html"), htmlEl("p"), {dom.Svgns, "foreignObject"}}, "p", false},
		{"mathml boundary", []elemSpec{htmlEl("html"), htmlEl("p"), {dom.Mathmlns, "mi"}}, "p", false},
		{"svg element is not html", []elemSpec{htmlEl("html"), {dom.Svgns, "p"}}, "p", false},
		{"empty stack", nil, "p", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s := stackOf(tt.stack...)
			assert.Equal(t, tt.want, s.HasElementInScope(tt.query))
		})
	}
}

func TestSpecificScopes(t *testing.T) {
	s := stackOf(htmlEl("html"), htmlEl("body"), htmlEl("ul"), htmlEl("li"), htmlEl("button"), htmlEl("span"))
	assert.True(t, s.HasElementInScope("li"))
	assert.True(t, s.HasElementInListItemScope("li"))
	assert.False(t, s.HasElementInButtonScope("li"))
	assert.True(t, s.HasElementInButtonScope("span"))

	s = stackOf(htmlEl("html"), htmlEl("body"), htmlEl("li"), htmlEl("ol"), htmlEl("p"))
	assert.False(t, s.HasElementInListItemScope("li"))
	assert.True(t, s.HasElementInScope("li"))

	s = stackOf(htmlEl("html"), htmlEl("body"), htmlEl("table"), htmlEl("tbody"), htmlEl("tr"), htmlEl("td"), htmlEl("div"))
	assert.True(t, s.HasElementInTableScope("td"))
	assert.True(t, s.HasElementInTableScope("tr"))
	assert.False(t, s.HasElementInTableScope("body"))

	s = stackOf(htmlEl("html"), htmlEl("body"), htmlEl("select"), htmlEl("optgroup"), htmlEl("option"))
	assert.True(t, s.HasElementInSelectScope("select"))
	s = stackOf(htmlEl("html"), htmlEl("body"), htmlEl("select"), htmlEl("div"))
	assert.False(t, s.HasElementInSelectScope("select"))
}

func TestHasNodeInScope(t *testing.T) {
	s := stackOf(htmlEl("html"), htmlEl("body"), htmlEl("b"))
	b := s.Top()
	assert.True(t, s.HasNodeInScope(b))
	s.Push(dom.NewDOMElement(nil, "object", dom.Htmlns))
	assert.False(t, s.HasNodeInScope(b))
}

func TestPopUntil(t *testing.T) {
	s := stackOf(htmlEl("html"), htmlEl("body"), htmlEl("p"), htmlEl("b"), htmlEl("i"))
	popped := s.PopUntil("p")
	require.NotNil(t, popped)
	assert.Equal(t, "p", popped.LocalName)
	assert.Equal(t, "body", s.Top().LocalName)
	assert.Equal(t, 2, s.Len())

	assert.Nil(t, s.PopUntil("table"))
	assert.Equal(t, 0, s.Len())
}

func TestClearBackToTableContexts(t *testing.T) {
	s := stackOf(htmlEl("html"), htmlEl("body"), htmlEl("table"), htmlEl("tbody"), htmlEl("tr"))
	s.ClearBackToTableRowContext()
	assert.Equal(t, "tr", s.Top().LocalName)
	s.ClearBackToTableBodyContext()
	assert.Equal(t, "tbody", s.Top().LocalName)

	s = stackOf(htmlEl("html"), htmlEl("body"), htmlEl("table"), htmlEl("tbody"), htmlEl("tr"))
	s.ClearBackToTableContext()
	assert.Equal(t, "table", s.Top().LocalName)

	s = stackOf(htmlEl("html"), htmlEl("template"), htmlEl("div"))
	s.ClearBackToTableContext()
	assert.Equal(t, "template", s.Top().LocalName)
}

func TestStackPositionalOps(t *testing.T) {
	s := stackOf(htmlEl("html"), htmlEl("body"), htmlEl("div"))
	doc := dom.NewHTMLDocumentNode()
	span := dom.NewDOMElement(doc, "span", dom.Htmlns)
	body := s.At(1)

	s.Insert(2, span)
	assert.Equal(t, 2, s.IndexOf(span))
	assert.Equal(t, "div", s.Top().LocalName)

	em := dom.NewDOMElement(doc, "em", dom.Htmlns)
	s.Replace(span, em)
	assert.False(t, s.ContainsNode(span))
	assert.Equal(t, 2, s.IndexOf(em))

	s.RemoveNode(body)
	assert.Equal(t, -1, s.IndexOf(body))
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.ContainsHTML("em"))
	assert.False(t, s.ContainsTemplateElement())
}
