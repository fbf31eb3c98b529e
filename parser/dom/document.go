package dom

import "github.com/pkg/errors"

type QuirksMode string

const (
	NoQuirks      QuirksMode = "no-quirks"
	Quirks        QuirksMode = "quirks"
	LimitedQuirks QuirksMode = "limited-quirks"
)

type DocumentReadyState string

const (
	Loading     DocumentReadyState = "loading"
	Interactive DocumentReadyState = "interactive"
	Complete    DocumentReadyState = "complete"
)

var (
	// ErrHierarchyRequest is https://webidl.spec.whatwg.org/#hierarchyrequesterror
	ErrHierarchyRequest = errors.New("hierarchy request error")
	// ErrNotFound is https://webidl.spec.whatwg.org/#notfounderror
	ErrNotFound = errors.New("not found error")
)

// Document is https://dom.whatwg.org/#interface-document
type Document struct {
	Mode         QuirksMode
	ReadyState   DocumentReadyState
	IframeSrcdoc bool
	ContentType  string
	Type         string
}

// DocumentType is https://dom.whatwg.org/#documenttype
type DocumentType struct {
	Name     string
	PublicID string
	SystemID string
}

// DocumentFragment is https://dom.whatwg.org/#documentfragment
type DocumentFragment struct {
	Host *Node
}

// Doctype returns the document's doctype child, if any.
func (n *Node) Doctype() *Node {
	for _, c := range n.ChildNodes {
		if c.NodeType == DocumentTypeNode {
			return c
		}
	}
	return nil
}

// DocumentElement returns the document's element child, if any.
func (n *Node) DocumentElement() *Node {
	for _, c := range n.ChildNodes {
		if c.NodeType == ElementNode {
			return c
		}
	}
	return nil
}

// CreateDocumentType is https://dom.whatwg.org/#dom-domimplementation-createdocumenttype
func (n *Node) CreateDocumentType(name, pub, sys string) *Node {
	dt := NewDocTypeNode(name, pub, sys)
	dt.OwnerDocument = n
	return dt
}
