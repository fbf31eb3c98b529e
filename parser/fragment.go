package parser

import (
	"io"
	"strings"

	"github.com/heathj/htmltree/parser/dom"
)

// ParseHTMLFragment is https://html.spec.whatwg.org/multipage/parsing.html#parsing-html-fragments
// It parses input as the contents of context and returns the resulting
// top-level nodes in tree order. The context element is not modified.
func ParseHTMLFragment(context *dom.Node, input io.Reader, opts ...Option) ([]*dom.Node, error) {
	cfg := buildConfig(opts)
	treeConstructor := NewHTMLTreeConstructor(cfg)
	doc := treeConstructor.HTMLDocument

	doc.Mode = cfg.quirks
	if od := context.OwnerDocument; od != nil && od.Document != nil && cfg.quirks == dom.NoQuirks {
		doc.Mode = od.Mode
	}

	startState := dataState
	if context.NamespaceURI == dom.Htmlns {
		switch context.LocalName {
		case "title", "textarea":
			startState = rcDataState
		case "style", "xmp", "iframe", "noembed", "noframes":
			startState = rawTextState
		case "script":
			startState = scriptDataState
		case "noscript":
			if cfg.scripting {
				startState = rawTextState
			}
		case "plaintext":
			startState = plaintextState
		}
	}

	root := dom.NewDOMElement(doc, "html", dom.Htmlns)
	if _, err := doc.AppendChild(root); err != nil {
		return nil, err
	}
	treeConstructor.stackOfOpenElements.Push(root)
	treeConstructor.context = context
	if context.IsHTML("template") {
		treeConstructor.pushTemplateMode(inTemplate)
	}
	treeConstructor.insertionMode = treeConstructor.resetInsertionMode()

	for n := context; n != nil; n = n.ParentNode {
		if n.IsHTML("form") {
			treeConstructor.formElementPointer = n
			break
		}
	}

	p := &Parser{
		Tokenizer: newFragmentTokenizer(
			newPreprocessor(input, treeConstructor.inputError),
			context.LocalName,
			startState,
		),
		TreeConstructor: treeConstructor,
	}
	if err := p.run(MakeProgress(treeConstructor.adjustedCurrentNode(), nil)); err != nil {
		return nil, err
	}
	return append([]*dom.Node(nil), root.ChildNodes...), nil
}

// https://html.spec.whatwg.org/#escapingString
func escapeString(s string, attrVal bool) string {
	s = strings.Replace(s, "&", "&amp;", -1)
	s = strings.Replace(s, "\u00A0", "&nbsp;", -1)
	if attrVal {
		s = strings.Replace(s, "\"", "&quot;", -1)
	} else {
		s = strings.Replace(s, "<", "&lt;", -1)
		s = strings.Replace(s, ">", "&gt;", -1)
	}

	return s
}

var voidElements = []string{
	"area", "base", "basefont", "bgsound", "br", "col", "embed", "frame", "hr",
	"img", "input", "keygen", "link", "meta", "param", "source", "track", "wbr",
}

// SerializeHTMLFragment is https://html.spec.whatwg.org/multipage/parsing.html#serialising-html-fragments
// It serializes the children of node.
func SerializeHTMLFragment(node *dom.Node, opts ...Option) string {
	cfg := buildConfig(opts)
	var sb strings.Builder
	serializeChildren(&sb, node, cfg.scripting)
	return sb.String()
}

func serializeChildren(sb *strings.Builder, node *dom.Node, scripting bool) {
	if node.IsHTML(voidElements...) {
		return
	}
	if node.IsHTML("template") {
		node = node.TemplateContents
	}

	for _, child := range node.ChildNodes {
		switch child.NodeType {
		case dom.ElementNode:
			name := serializedTagName(child)
			sb.WriteString("<" + name)
			for _, a := range child.Attributes.Attrs {
				sb.WriteString(" " + serializedAttrName(a) + "=\"" + escapeString(a.Value, true) + "\"")
			}
			sb.WriteString(">")
			if child.IsHTML(voidElements...) {
				continue
			}
			if child.IsHTML("pre", "textarea", "listing") {
				if first := child.FirstChild; first != nil && first.NodeType == dom.TextNode &&
					strings.HasPrefix(first.Text.Data, "\n") {
					sb.WriteString("\n")
				}
			}
			serializeChildren(sb, child, scripting)
			sb.WriteString("</" + name + ">")
		case dom.TextNode:
			if isRawTextParent(child.ParentNode, scripting) {
				sb.WriteString(child.Text.Data)
			} else {
				sb.WriteString(escapeString(child.Text.Data, false))
			}
		case dom.CommentNode:
			sb.WriteString("<!--" + child.Comment.Data + "-->")
		case dom.ProcessingInstructionNode:
			sb.WriteString("<?" + child.Target + " " + child.ProcessingInstruction.Data + ">")
		case dom.DocumentTypeNode:
			sb.WriteString("<!DOCTYPE " + child.DocumentType.Name + ">")
		}
	}
}

func serializedTagName(n *dom.Node) string {
	switch n.NamespaceURI {
	case dom.Htmlns, dom.Mathmlns, dom.Svgns:
		return n.LocalName
	}
	if n.Element.Prefix != "" {
		return n.Element.Prefix + ":" + n.LocalName
	}
	return n.LocalName
}

func serializedAttrName(a *dom.Attr) string {
	switch a.Namespace {
	case dom.Nons:
		return a.LocalName
	case dom.Xmlns:
		return "xml:" + a.LocalName
	case dom.Xmlnsns:
		if a.LocalName == "xmlns" {
			return "xmlns"
		}
		return "xmlns:" + a.LocalName
	case dom.Xlinkns:
		return "xlink:" + a.LocalName
	}
	return a.QualifiedName()
}

func isRawTextParent(n *dom.Node, scripting bool) bool {
	if n.IsHTML("style", "script", "xmp", "iframe", "noembed", "noframes", "plaintext") {
		return true
	}
	return scripting && n.IsHTML("noscript")
}
