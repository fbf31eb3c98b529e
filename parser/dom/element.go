package dom

import "strings"

type Namespace uint

const (
	Nons Namespace = iota
	Htmlns
	Mathmlns
	Svgns
	Xlinkns
	Xmlns
	Xmlnsns
)

var namespaceURIs = map[Namespace]string{
	Htmlns:   "http://www.w3.org/1999/xhtml",
	Mathmlns: "http://www.w3.org/1998/Math/MathML",
	Svgns:    "http://www.w3.org/2000/svg",
	Xlinkns:  "http://www.w3.org/1999/xlink",
	Xmlns:    "http://www.w3.org/XML/1998/namespace",
	Xmlnsns:  "http://www.w3.org/2000/xmlns/",
}

// URI returns the namespace URI, or "" for Nons.
func (ns Namespace) URI() string {
	return namespaceURIs[ns]
}

// Prefix is the short name used by the html5lib tree format and the XML export.
func (ns Namespace) Prefix() string {
	switch ns {
	case Svgns:
		return "svg"
	case Mathmlns:
		return "math"
	case Xlinkns:
		return "xlink"
	case Xmlns:
		return "xml"
	case Xmlnsns:
		return "xmlns"
	}
	return ""
}

func (ns Namespace) String() string {
	switch ns {
	case Htmlns:
		return "html"
	case Nons:
		return "none"
	}
	return ns.Prefix()
}

// Element is https://dom.whatwg.org/#interface-element
type Element struct {
	NamespaceURI Namespace
	Prefix       string
	LocalName    string
	Attributes   *NamedNodeMap

	// TemplateContents is the DocumentFragment holding the children of an
	// HTML template element. It is nil for every other element.
	TemplateContents *Node
}

func (e *Element) HasAttributes() bool {
	return e.Attributes.Length() > 0
}

func (e *Element) GetAttributeNames() []string {
	names := make([]string, 0, e.Attributes.Length())
	for _, a := range e.Attributes.Attrs {
		names = append(names, a.QualifiedName())
	}
	return names
}

// GetAttribute returns the value of the attribute with the given qualified name.
func (e *Element) GetAttribute(qualifiedName string) (string, bool) {
	a := e.Attributes.GetNamedItem(e.normalizeName(qualifiedName))
	if a == nil {
		return "", false
	}
	return a.Value, true
}

func (e *Element) GetAttributeNS(ns Namespace, localName string) (string, bool) {
	a := e.Attributes.GetNamedItemNS(ns, localName)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

func (e *Element) HasAttribute(qualifiedName string) bool {
	return e.Attributes.GetNamedItem(e.normalizeName(qualifiedName)) != nil
}

func (e *Element) SetAttribute(qualifiedName, value string) {
	qualifiedName = e.normalizeName(qualifiedName)
	if a := e.Attributes.GetNamedItem(qualifiedName); a != nil {
		a.Value = value
		return
	}
	e.Attributes.SetNamedItem(&Attr{LocalName: qualifiedName, Value: value})
}

func (e *Element) SetAttributeNS(ns Namespace, prefix, localName, value string) {
	e.Attributes.SetNamedItem(&Attr{Namespace: ns, Prefix: prefix, LocalName: localName, Value: value})
}

func (e *Element) RemoveAttribute(qualifiedName string) {
	e.Attributes.RemoveNamedItem(e.normalizeName(qualifiedName))
}

// html elements lowercase the names they are queried with.
func (e *Element) normalizeName(name string) string {
	if e.NamespaceURI == Htmlns {
		return strings.ToLower(name)
	}
	return name
}
