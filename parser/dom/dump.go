package dom

import (
	"sort"
	"strings"
)

// String renders the subtree in the html5lib tree-construction test format.
// Documents and fragments render their children only.
func (n *Node) String() string {
	var sb strings.Builder
	switch n.NodeType {
	case DocumentNode, DocumentFragmentNode:
		for _, c := range n.ChildNodes {
			c.dump(&sb, 0)
		}
	default:
		n.dump(&sb, 0)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString("| ")
	for i := 0; i < depth; i++ {
		sb.WriteString("  ")
	}
}

func (n *Node) dump(sb *strings.Builder, depth int) {
	indent(sb, depth)
	switch n.NodeType {
	case ElementNode:
		sb.WriteString("<")
		if p := n.NamespaceURI.Prefix(); p != "" && n.NamespaceURI != Htmlns {
			sb.WriteString(p + " ")
		}
		sb.WriteString(n.LocalName + ">\n")
		attrs := make([]string, 0, n.Attributes.Length())
		for _, a := range n.Attributes.Attrs {
			name := a.LocalName
			if a.Namespace != Nons {
				name = a.Namespace.Prefix() + " " + a.LocalName
			}
			attrs = append(attrs, name+"=\""+a.Value+"\"")
		}
		sort.Strings(attrs)
		for _, a := range attrs {
			indent(sb, depth+1)
			sb.WriteString(a + "\n")
		}
		if n.TemplateContents != nil {
			indent(sb, depth+1)
			sb.WriteString("content\n")
			for _, c := range n.TemplateContents.ChildNodes {
				c.dump(sb, depth+2)
			}
		}
	case TextNode:
		sb.WriteString("\"" + n.Text.Data + "\"\n")
	case CommentNode:
		sb.WriteString("<!-- " + n.Comment.Data + " -->\n")
	case ProcessingInstructionNode:
		sb.WriteString("<?" + n.Target + " " + n.ProcessingInstruction.Data + ">\n")
	case DocumentTypeNode:
		sb.WriteString("<!DOCTYPE " + n.Name)
		if n.PublicID != "" || n.SystemID != "" {
			sb.WriteString(" \"" + n.PublicID + "\" \"" + n.SystemID + "\"")
		}
		sb.WriteString(">\n")
	default:
		sb.WriteString(n.NodeName + "\n")
	}
	for _, c := range n.ChildNodes {
		c.dump(sb, depth+1)
	}
}
