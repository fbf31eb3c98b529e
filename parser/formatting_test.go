package parser

import (
	"testing"

	"github.com/heathj/htmltree/parser/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFormattingElement(doc *dom.Node, name string, attrs ...dom.Attr) (*dom.Node, *Token) {
	t := &Token{TokenType: startTagToken, TagName: name, Attributes: attrs}
	el := dom.NewDOMElement(doc, name, dom.Htmlns)
	el.Attributes = dom.NewNamedNodeMap(attrs)
	return el, t
}

func TestNoahsArk(t *testing.T) {
	doc := dom.NewHTMLDocumentNode()
	var afe ActiveFormattingElements
	var bs []*dom.Node
	for i := 0; i < 4; i++ {
		b, tok := newFormattingElement(doc, "b")
		afe.Push(b, tok)
		bs = append(bs, b)
	}
	require.Equal(t, 3, afe.Len())
	assert.False(t, afe.Contains(bs[0]), "the earliest duplicate is dropped")
	for _, b := range bs[1:] {
		assert.True(t, afe.Contains(b))
	}

	// different attributes are not duplicates
	b, tok := newFormattingElement(doc, "b", dom.Attr{LocalName: "class", Value: "x"})
	afe.Push(b, tok)
	assert.Equal(t, 4, afe.Len())
}

func TestNoahsArkStopsAtMarker(t *testing.T) {
	doc := dom.NewHTMLDocumentNode()
	var afe ActiveFormattingElements
	for i := 0; i < 3; i++ {
		b, tok := newFormattingElement(doc, "b")
		afe.Push(b, tok)
	}
	afe.PushMarker()
	b, tok := newFormattingElement(doc, "b")
	afe.Push(b, tok)
	assert.Equal(t, 5, afe.Len())
}

func TestClearToLastMarker(t *testing.T) {
	doc := dom.NewHTMLDocumentNode()
	var afe ActiveFormattingElements
	a, at := newFormattingElement(doc, "a")
	afe.Push(a, at)
	afe.PushMarker()
	i, it := newFormattingElement(doc, "i")
	afe.Push(i, it)

	assert.Nil(t, afe.LastAfterMarker("a"), "a is hidden behind the marker")
	require.NotNil(t, afe.LastAfterMarker("i"))

	afe.ClearToLastMarker()
	assert.Equal(t, 1, afe.Len())
	entry := afe.LastAfterMarker("a")
	require.NotNil(t, entry)
	assert.Same(t, a, entry.element)
}

func TestReplaceAndInsertAt(t *testing.T) {
	doc := dom.NewHTMLDocumentNode()
	var afe ActiveFormattingElements
	b, bt := newFormattingElement(doc, "b")
	i, it := newFormattingElement(doc, "i")
	afe.Push(b, bt)
	afe.Push(i, it)

	clone := b.CloneNode(false)
	afe.Replace(b, clone)
	assert.Equal(t, 0, afe.IndexOf(clone))
	assert.Same(t, bt, afe.At(0).token)

	u, ut := newFormattingElement(doc, "u")
	afe.InsertAt(1, u, ut)
	assert.Equal(t, 1, afe.IndexOf(u))
	assert.Equal(t, 2, afe.IndexOf(i))

	afe.Remove(u)
	assert.Equal(t, -1, afe.IndexOf(u))
	assert.Equal(t, 2, afe.Len())
}

func TestReconstructActiveFormattingElements(t *testing.T) {
	c := NewHTMLTreeConstructor(defaultConfig())
	body := dom.NewDOMElement(c.HTMLDocument, "body", dom.Htmlns)
	c.stackOfOpenElements.Push(body)

	b, bt := newFormattingElement(c.HTMLDocument, "b")
	i, it := newFormattingElement(c.HTMLDocument, "i", dom.Attr{LocalName: "id", Value: "x"})
	c.activeFormattingElements.Push(b, bt)
	c.activeFormattingElements.Push(i, it)

	c.reconstructActiveFormattingElements()

	require.Equal(t, 3, c.stackOfOpenElements.Len())
	newB, newI := c.stackOfOpenElements.At(1), c.stackOfOpenElements.At(2)
	assert.NotSame(t, b, newB)
	assert.Equal(t, "b", newB.LocalName)
	assert.Same(t, body, newB.ParentNode)
	assert.Same(t, newB, newI.ParentNode)
	v, _ := newI.GetAttribute("id")
	assert.Equal(t, "x", v)
	assert.Same(t, newB, c.activeFormattingElements.At(0).element)
	assert.Same(t, newI, c.activeFormattingElements.At(1).element)

	// nothing to do once every entry is open
	c.reconstructActiveFormattingElements()
	assert.Equal(t, 3, c.stackOfOpenElements.Len())
}
