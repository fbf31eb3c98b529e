package parser

import (
	"strings"
	"testing"

	"github.com/heathj/htmltree/parser/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFragment(t *testing.T, context *dom.Node, in string, opts ...Option) *dom.Node {
	t.Helper()
	nodes, err := ParseHTMLFragment(context, strings.NewReader(in), opts...)
	require.NoError(t, err)
	frag := dom.NewDocumentFragment(nil)
	for _, n := range nodes {
		_, err := frag.AppendChild(n)
		require.NoError(t, err)
	}
	return frag
}

func TestTitleContextIsRCDATA(t *testing.T) {
	frag := parseFragment(t, contextNode("title"), "<b>not a tag</b>")
	require.Len(t, frag.ChildNodes, 1)
	text := frag.FirstChild
	require.Equal(t, dom.TextNode, text.NodeType)
	assert.Equal(t, "<b>not a tag</b>", text.Text.Data)
}

func TestFragmentLeavesContextUntouched(t *testing.T) {
	context := contextNode("div")
	frag := parseFragment(t, context, "<p>a<p>b")
	assert.Len(t, frag.ChildNodes, 2)
	assert.Empty(t, context.ChildNodes)
	assert.Nil(t, context.ParentNode)
}

func TestFragmentRoundTrip(t *testing.T) {
	tests := []struct {
		context string
		in      string
	}{
		{"div", "<p>1<b>2<i>3</p>4"},
		{"body", "<table><tr><td>cell</td></tr></table>"},
		{"div", `<svg viewBox="0 0 1 1"><foreignObject><p>x</p></foreignObject></svg>`},
		{"div", "a&amp;b &lt; c&nbsp;d"},
		{"div", "<template><td>x</td></template>"},
		{"body", "<pre>\n\nx</pre>"},
		{"div", "<!--c--><br><img src=x alt='\"q\"'>"},
		{"body", "<script>if (a<b) {}</script><style>p>b{}</style>"},
		{"tr", "<td>1<td>2"},
		{"select", "<option>a<optgroup><option>b"},
		{"svg path", "<circle r=1/><desc><b>x</b></desc>"},
		{"textarea", "</b>raw<p>"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.context+"/"+tt.in, func(t *testing.T) {
			first := SerializeHTMLFragment(parseFragment(t, contextNode(tt.context), tt.in))
			second := SerializeHTMLFragment(parseFragment(t, contextNode(tt.context), first))
			assert.Equal(t, first, second)
		})
	}
}

func TestSerializeHTMLFragment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"adoption", "<p>1<b>2<i>3</p>4", "<p>1<b>2<i>3</i></b></p><b><i>4</i></b>"},
		{"attribute escaping", `<div title='a"b&amp;'>x&lt;y&nbsp;</div>`, `<div title="a&quot;b&amp;">x&lt;y&nbsp;</div>`},
		{"void elements", "<br><img src=x><hr>", `<br><img src="x"><hr>`},
		{"raw text", "<script>a<b</script>", "<script>a<b</script>"},
		{"template contents", "<template><b>x</b></template>", "<template><b>x</b></template>"},
		{"leading newline in pre", "<pre>\n\nx</pre>", "<pre>\n\nx</pre>"},
		{"single newline in pre is dropped", "<pre>\nx</pre>", "<pre>x</pre>"},
		{"comment", "<!--c-->", "<!--c-->"},
		{"foreign attributes", `<svg xlink:href="#a"></svg>`, `<svg xlink:href="#a"></svg>`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := SerializeHTMLFragment(parseFragment(t, contextNode("body"), tt.in))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNoscriptFollowsScripting(t *testing.T) {
	in := "<noscript><b>x</b></noscript>"

	on := parseFragment(t, contextNode("body"), in, WithScripting(true))
	require.Len(t, on.ChildNodes, 1)
	noscript := on.FirstChild
	require.Len(t, noscript.ChildNodes, 1)
	assert.Equal(t, dom.TextNode, noscript.FirstChild.NodeType)
	assert.Equal(t, in, SerializeHTMLFragment(on, WithScripting(true)))

	off := parseFragment(t, contextNode("body"), in, WithScripting(false))
	require.Len(t, off.ChildNodes, 1)
	assert.True(t, off.FirstChild.FirstChild.IsHTML("b"))
	assert.Equal(t, in, SerializeHTMLFragment(off, WithScripting(false)))
}

func TestFragmentQuirksMode(t *testing.T) {
	context := contextNode("div")
	context.OwnerDocument.Mode = dom.Quirks
	frag := parseFragment(t, context, "<p><table>")
	require.Len(t, frag.ChildNodes, 1)
	assert.True(t, frag.FirstChild.FirstChild.IsHTML("table"), "table nests inside p in quirks mode")

	frag = parseFragment(t, contextNode("div"), "<p><table>")
	assert.Len(t, frag.ChildNodes, 2)

	frag = parseFragment(t, contextNode("div"), "<p><table>", WithQuirksMode(dom.Quirks))
	assert.Len(t, frag.ChildNodes, 1)
}

func TestFragmentFormPointer(t *testing.T) {
	doc := dom.NewHTMLDocumentNode()
	form := dom.NewDOMElement(doc, "form", dom.Htmlns)
	div := dom.NewDOMElement(doc, "div", dom.Htmlns)
	_, err := form.AppendChild(div)
	require.NoError(t, err)

	frag := parseFragment(t, div, "<form><input>")
	require.Len(t, frag.ChildNodes, 1)
	assert.True(t, frag.FirstChild.IsHTML("input"), "nested form start tag is ignored")
}

func TestTemplateContext(t *testing.T) {
	frag := parseFragment(t, contextNode("template"), "<td>x</td><td>y")
	require.Len(t, frag.ChildNodes, 2)
	assert.True(t, frag.FirstChild.IsHTML("td"))
	assert.True(t, frag.LastChild.IsHTML("td"))
}
