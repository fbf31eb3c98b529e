package dom

import (
	"github.com/pkg/errors"
)

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	AttrNode
	TextNode
	CDATASectionNode
	ProcessingInstructionNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
)

// https://dom.whatwg.org/#node
type Node struct {
	NodeType                                                        NodeType
	NodeName                                                        string
	OwnerDocument                                                   *Node
	ParentNode, FirstChild, LastChild, PreviousSibling, NextSibling *Node
	ChildNodes                                                      NodeList

	// Node types
	*Element
	*Text
	*Comment
	*ProcessingInstruction
	*Document
	*DocumentType
	*DocumentFragment
}

// NewComment returns a comment node with its Data section filled.
func NewComment(data string, od *Node) *Node {
	return &Node{
		NodeType:      CommentNode,
		NodeName:      "#comment",
		OwnerDocument: od,
		Comment:       &Comment{CharacterData: &CharacterData{Data: data}},
	}
}

func NewHTMLDocumentNode() *Node {
	n := &Node{
		NodeType: DocumentNode,
		NodeName: "#document",
		Document: &Document{
			Type:        "html",
			ContentType: "text/html",
			Mode:        NoQuirks,
			ReadyState:  Loading,
		},
	}
	n.OwnerDocument = n
	return n
}

func NewTextNode(od *Node, text string) *Node {
	return &Node{
		NodeType:      TextNode,
		NodeName:      "#text",
		OwnerDocument: od,
		Text:          &Text{CharacterData: &CharacterData{Data: text}},
	}
}

func NewDocTypeNode(name, pub, sys string) *Node {
	return &Node{
		NodeType: DocumentTypeNode,
		NodeName: name,
		DocumentType: &DocumentType{
			Name:     name,
			PublicID: pub,
			SystemID: sys,
		},
	}
}

func NewDocumentFragment(od *Node) *Node {
	return &Node{
		NodeType:         DocumentFragmentNode,
		NodeName:         "#document-fragment",
		OwnerDocument:    od,
		DocumentFragment: &DocumentFragment{},
	}
}

func NewProcessingInstruction(od *Node, target, data string) *Node {
	return &Node{
		NodeType:      ProcessingInstructionNode,
		NodeName:      target,
		OwnerDocument: od,
		ProcessingInstruction: &ProcessingInstruction{
			Target:        target,
			CharacterData: &CharacterData{Data: data},
		},
	}
}

// NewDOMElement creates an element in the given namespace. An HTML template
// element gets its contents fragment here.
func NewDOMElement(od *Node, name string, namespace Namespace, optionals ...string) *Node {
	var prefix string
	if len(optionals) >= 1 {
		prefix = optionals[0]
	}
	n := &Node{
		NodeType:      ElementNode,
		NodeName:      name,
		OwnerDocument: od,
		Element: &Element{
			NamespaceURI: namespace,
			Prefix:       prefix,
			LocalName:    name,
			Attributes:   &NamedNodeMap{},
		},
	}
	if namespace == Htmlns && name == "template" {
		n.TemplateContents = NewDocumentFragment(od)
		n.TemplateContents.Host = n
	}
	return n
}

// Is reports whether n is an element in namespace ns with one of the given local names.
func (n *Node) Is(ns Namespace, names ...string) bool {
	if n == nil || n.NodeType != ElementNode || n.NamespaceURI != ns {
		return false
	}
	for _, name := range names {
		if n.LocalName == name {
			return true
		}
	}
	return false
}

// IsHTML is shorthand for Is(Htmlns, names...).
func (n *Node) IsHTML(names ...string) bool {
	return n.Is(Htmlns, names...)
}

func (n *Node) HasChildNodes() bool {
	return len(n.ChildNodes) > 0
}

// CloneNode is https://dom.whatwg.org/#concept-node-clone
func (n *Node) CloneNode(deep bool) *Node {
	var c *Node
	switch n.NodeType {
	case ElementNode:
		c = NewDOMElement(n.OwnerDocument, n.LocalName, n.NamespaceURI, n.Element.Prefix)
		c.Attributes = n.Attributes.Clone()
		if deep && n.TemplateContents != nil {
			for _, child := range n.TemplateContents.ChildNodes {
				c.TemplateContents.appendUnchecked(child.CloneNode(true))
			}
		}
	case TextNode:
		c = NewTextNode(n.OwnerDocument, n.Text.Data)
	case CommentNode:
		c = NewComment(n.Comment.Data, n.OwnerDocument)
	case ProcessingInstructionNode:
		c = NewProcessingInstruction(n.OwnerDocument, n.Target, n.ProcessingInstruction.Data)
	case DocumentTypeNode:
		c = NewDocTypeNode(n.Name, n.PublicID, n.SystemID)
		c.OwnerDocument = n.OwnerDocument
	case DocumentFragmentNode:
		c = NewDocumentFragment(n.OwnerDocument)
	case DocumentNode:
		c = NewHTMLDocumentNode()
		*c.Document = *n.Document
	default:
		c = &Node{NodeType: n.NodeType, NodeName: n.NodeName, OwnerDocument: n.OwnerDocument}
	}

	if deep {
		for _, child := range n.ChildNodes {
			c.appendUnchecked(child.CloneNode(true))
		}
	}
	return c
}

// AppendChild is https://dom.whatwg.org/#dom-node-appendchild
func (n *Node) AppendChild(on *Node) (*Node, error) {
	return n.InsertBefore(on, nil)
}

// InsertBefore is https://dom.whatwg.org/#dom-node-insertbefore. A nil child
// appends.
func (n *Node) InsertBefore(on, child *Node) (*Node, error) {
	if err := n.ensurePreInsertionValidity(on, child); err != nil {
		return nil, err
	}
	if on.ParentNode != nil {
		if _, err := on.ParentNode.RemoveChild(on); err != nil {
			return nil, err
		}
	}
	if child == nil {
		n.appendUnchecked(on)
		return on, nil
	}

	i := n.ChildNodes.Contains(child)
	n.ChildNodes.WedgeIn(i, on)
	on.ParentNode = n
	on.NextSibling = child
	on.PreviousSibling = child.PreviousSibling
	if child.PreviousSibling != nil {
		child.PreviousSibling.NextSibling = on
	} else {
		n.FirstChild = on
	}
	child.PreviousSibling = on
	return on, nil
}

// RemoveChild is https://dom.whatwg.org/#dom-node-removechild
func (n *Node) RemoveChild(child *Node) (*Node, error) {
	i := n.ChildNodes.Contains(child)
	if i == -1 {
		return nil, errors.Wrapf(ErrNotFound, "%s is not a child of %s", child.NodeName, n.NodeName)
	}
	n.ChildNodes.Remove(i)
	if child.PreviousSibling != nil {
		child.PreviousSibling.NextSibling = child.NextSibling
	} else {
		n.FirstChild = child.NextSibling
	}
	if child.NextSibling != nil {
		child.NextSibling.PreviousSibling = child.PreviousSibling
	} else {
		n.LastChild = child.PreviousSibling
	}
	child.ParentNode, child.PreviousSibling, child.NextSibling = nil, nil, nil
	return child, nil
}

func (n *Node) appendUnchecked(on *Node) {
	if n.LastChild != nil {
		on.PreviousSibling = n.LastChild
		n.LastChild.NextSibling = on
	} else {
		n.FirstChild = on
	}
	on.ParentNode = n
	n.LastChild = on
	n.ChildNodes = append(n.ChildNodes, on)
}

// https://dom.whatwg.org/#concept-node-ensure-pre-insertion-validity
func (n *Node) ensurePreInsertionValidity(on, child *Node) error {
	switch n.NodeType {
	case DocumentNode, DocumentFragmentNode, ElementNode:
	default:
		return errors.Wrapf(ErrHierarchyRequest, "%s cannot have children", n.NodeName)
	}
	for a := n; a != nil; a = a.ParentNode {
		if a == on {
			return errors.Wrapf(ErrHierarchyRequest, "%s is an inclusive ancestor of %s", on.NodeName, n.NodeName)
		}
	}
	if child != nil && child.ParentNode != n {
		return errors.Wrapf(ErrNotFound, "%s is not a child of %s", child.NodeName, n.NodeName)
	}
	switch on.NodeType {
	case DocumentNode:
		return errors.Wrap(ErrHierarchyRequest, "a document cannot be inserted")
	case TextNode:
		if n.NodeType == DocumentNode {
			return errors.Wrap(ErrHierarchyRequest, "text cannot be a child of a document")
		}
	case DocumentTypeNode:
		if n.NodeType != DocumentNode {
			return errors.Wrap(ErrHierarchyRequest, "a doctype must be a child of a document")
		}
	}
	if n.NodeType != DocumentNode {
		return nil
	}

	switch on.NodeType {
	case ElementNode:
		if n.DocumentElement() != nil {
			return errors.Wrap(ErrHierarchyRequest, "document already has an element child")
		}
		for c := child; c != nil; c = c.NextSibling {
			if c.NodeType == DocumentTypeNode {
				return errors.Wrap(ErrHierarchyRequest, "element cannot precede the doctype")
			}
		}
	case DocumentTypeNode:
		if n.Doctype() != nil {
			return errors.Wrap(ErrHierarchyRequest, "document already has a doctype")
		}
		if child == nil && n.DocumentElement() != nil {
			return errors.Wrap(ErrHierarchyRequest, "doctype cannot follow the document element")
		}
		for c := n.FirstChild; c != nil && c != child; c = c.NextSibling {
			if c.NodeType == ElementNode {
				return errors.Wrap(ErrHierarchyRequest, "doctype cannot follow the document element")
			}
		}
	}
	return nil
}
