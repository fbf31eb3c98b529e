package parser

import (
	"github.com/beevik/etree"
	"github.com/heathj/htmltree/parser/dom"
)

// XMLExport converts a parsed tree into an XML document. Elements carry an
// xmlns attribute wherever their namespace differs from their parent's.
// Template contents are exported as the children of the template element.
func XMLExport(node *dom.Node) *etree.Document {
	doc := etree.NewDocument()
	switch node.NodeType {
	case dom.DocumentNode, dom.DocumentFragmentNode:
		for _, c := range node.ChildNodes {
			exportNode(&doc.Element, c, dom.Nons)
		}
	default:
		exportNode(&doc.Element, node, dom.Nons)
	}
	return doc
}

func exportNode(parent *etree.Element, n *dom.Node, parentNS dom.Namespace) {
	switch n.NodeType {
	case dom.ElementNode:
		el := parent.CreateElement(n.LocalName)
		if n.NamespaceURI != parentNS && n.NamespaceURI != dom.Nons {
			el.CreateAttr("xmlns", n.NamespaceURI.URI())
		}
		for _, a := range n.Attributes.Attrs {
			key := a.LocalName
			if a.Namespace == dom.Xmlnsns && a.LocalName == "xmlns" {
				continue
			}
			if p := a.Namespace.Prefix(); p != "" {
				key = p + ":" + a.LocalName
			}
			el.CreateAttr(key, a.Value)
		}
		children := n.ChildNodes
		if n.TemplateContents != nil {
			children = n.TemplateContents.ChildNodes
		}
		for _, c := range children {
			exportNode(el, c, n.NamespaceURI)
		}
	case dom.TextNode:
		parent.CreateText(n.Text.Data)
	case dom.CommentNode:
		parent.CreateComment(n.Comment.Data)
	case dom.ProcessingInstructionNode:
		parent.CreateProcInst(n.Target, n.ProcessingInstruction.Data)
	case dom.DocumentTypeNode:
		parent.CreateDirective("DOCTYPE " + n.DocumentType.Name)
	}
}
