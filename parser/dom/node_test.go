package dom

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertBefore(t *testing.T) {
	doc := NewHTMLDocumentNode()
	div := NewDOMElement(doc, "div", Htmlns)
	a := NewTextNode(doc, "a")
	c := NewTextNode(doc, "c")
	_, err := div.AppendChild(a)
	require.NoError(t, err)
	_, err = div.AppendChild(c)
	require.NoError(t, err)

	b := NewDOMElement(doc, "b", Htmlns)
	_, err = div.InsertBefore(b, c)
	require.NoError(t, err)

	require.Len(t, div.ChildNodes, 3)
	assert.Equal(t, a, div.FirstChild)
	assert.Equal(t, c, div.LastChild)
	assert.Equal(t, b, a.NextSibling)
	assert.Equal(t, b, c.PreviousSibling)
	assert.Equal(t, a, b.PreviousSibling)
	assert.Equal(t, div, b.ParentNode)
}

func TestAppendChildMovesNode(t *testing.T) {
	doc := NewHTMLDocumentNode()
	p1 := NewDOMElement(doc, "p", Htmlns)
	p2 := NewDOMElement(doc, "p", Htmlns)
	child := NewDOMElement(doc, "span", Htmlns)
	_, err := p1.AppendChild(child)
	require.NoError(t, err)
	_, err = p2.AppendChild(child)
	require.NoError(t, err)

	assert.Empty(t, p1.ChildNodes)
	assert.Nil(t, p1.FirstChild)
	assert.Nil(t, p1.LastChild)
	assert.Equal(t, p2, child.ParentNode)
}

func TestRemoveChild(t *testing.T) {
	doc := NewHTMLDocumentNode()
	div := NewDOMElement(doc, "div", Htmlns)
	kids := []*Node{NewTextNode(doc, "1"), NewTextNode(doc, "2"), NewTextNode(doc, "3")}
	for _, k := range kids {
		_, err := div.AppendChild(k)
		require.NoError(t, err)
	}

	_, err := div.RemoveChild(kids[1])
	require.NoError(t, err)
	assert.Equal(t, kids[2], kids[0].NextSibling)
	assert.Equal(t, kids[0], kids[2].PreviousSibling)
	assert.Nil(t, kids[1].ParentNode)

	_, err = div.RemoveChild(kids[1])
	assert.Equal(t, ErrNotFound, errors.Cause(err))
}

func TestDocumentHierarchy(t *testing.T) {
	doc := NewHTMLDocumentNode()
	_, err := doc.AppendChild(NewDocTypeNode("html", "", ""))
	require.NoError(t, err)
	_, err = doc.AppendChild(NewDOMElement(doc, "html", Htmlns))
	require.NoError(t, err)

	_, err = doc.AppendChild(NewDOMElement(doc, "html", Htmlns))
	assert.Equal(t, ErrHierarchyRequest, errors.Cause(err))

	_, err = doc.AppendChild(NewDocTypeNode("html", "", ""))
	assert.Equal(t, ErrHierarchyRequest, errors.Cause(err))

	_, err = doc.AppendChild(NewTextNode(doc, "x"))
	assert.Equal(t, ErrHierarchyRequest, errors.Cause(err))

	_, err = doc.AppendChild(NewComment("ok", doc))
	assert.NoError(t, err)
}

func TestCannotInsertAncestor(t *testing.T) {
	doc := NewHTMLDocumentNode()
	outer := NewDOMElement(doc, "div", Htmlns)
	inner := NewDOMElement(doc, "div", Htmlns)
	_, err := outer.AppendChild(inner)
	require.NoError(t, err)

	_, err = inner.AppendChild(outer)
	assert.Equal(t, ErrHierarchyRequest, errors.Cause(err))
}

func TestCloneNode(t *testing.T) {
	doc := NewHTMLDocumentNode()
	b := NewDOMElement(doc, "b", Htmlns)
	b.SetAttribute("class", "x")
	_, err := b.AppendChild(NewTextNode(doc, "bold"))
	require.NoError(t, err)

	shallow := b.CloneNode(false)
	assert.Empty(t, shallow.ChildNodes)
	v, ok := shallow.GetAttribute("class")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	shallow.SetAttribute("class", "y")
	v, _ = b.GetAttribute("class")
	assert.Equal(t, "x", v, "clone must not share attributes")

	deep := b.CloneNode(true)
	require.Len(t, deep.ChildNodes, 1)
	assert.Equal(t, "bold", deep.FirstChild.Text.Data)
	assert.NotSame(t, b.FirstChild, deep.FirstChild)
}

func TestTemplateContents(t *testing.T) {
	doc := NewHTMLDocumentNode()
	tmpl := NewDOMElement(doc, "template", Htmlns)
	require.NotNil(t, tmpl.TemplateContents)
	assert.Equal(t, DocumentFragmentNode, tmpl.TemplateContents.NodeType)

	svgTemplate := NewDOMElement(doc, "template", Svgns)
	assert.Nil(t, svgTemplate.TemplateContents)
}

func TestString(t *testing.T) {
	doc := NewHTMLDocumentNode()
	_, _ = doc.AppendChild(NewDocTypeNode("html", "", ""))
	html := NewDOMElement(doc, "html", Htmlns)
	_, _ = doc.AppendChild(html)
	body := NewDOMElement(doc, "body", Htmlns)
	_, _ = html.AppendChild(body)
	svg := NewDOMElement(doc, "svg", Svgns)
	svg.SetAttributeNS(Xlinkns, "xlink", "href", "#a")
	svg.SetAttribute("viewBox", "0 0 1 1")
	_, _ = body.AppendChild(svg)
	_, _ = body.AppendChild(NewComment("c", doc))
	tmpl := NewDOMElement(doc, "template", Htmlns)
	_, _ = body.AppendChild(tmpl)
	_, _ = tmpl.TemplateContents.AppendChild(NewTextNode(doc, "t"))

	expected := `| <!DOCTYPE html>
| <html>
|   <body>
|     <svg svg>
|       viewBox="0 0 1 1"
|       xlink href="#a"
|     <!-- c -->
|     <template>
|       content
|         "t"`
	assert.Equal(t, expected, doc.String())
}
