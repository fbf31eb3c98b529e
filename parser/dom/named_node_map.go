package dom

// Attr is https://dom.whatwg.org/#attr
type Attr struct {
	Namespace Namespace
	Prefix    string
	LocalName string
	Value     string
}

// QualifiedName is the prefixed name when the attribute has a prefix.
func (a *Attr) QualifiedName() string {
	if a.Prefix == "" {
		return a.LocalName
	}
	return a.Prefix + ":" + a.LocalName
}

// NamedNodeMap keeps attributes in insertion order.
// https://dom.whatwg.org/#namednodemap
type NamedNodeMap struct {
	Attrs []*Attr
}

func NewNamedNodeMap(attrs []Attr) *NamedNodeMap {
	m := &NamedNodeMap{Attrs: make([]*Attr, 0, len(attrs))}
	for i := range attrs {
		a := attrs[i]
		m.Attrs = append(m.Attrs, &a)
	}
	return m
}

func (n *NamedNodeMap) Length() int {
	if n == nil {
		return 0
	}
	return len(n.Attrs)
}

func (n *NamedNodeMap) GetNamedItem(qn string) *Attr {
	if n == nil {
		return nil
	}
	for _, a := range n.Attrs {
		if a.QualifiedName() == qn {
			return a
		}
	}
	return nil
}

func (n *NamedNodeMap) GetNamedItemNS(ns Namespace, ln string) *Attr {
	if n == nil {
		return nil
	}
	for _, a := range n.Attrs {
		if a.Namespace == ns && a.LocalName == ln {
			return a
		}
	}
	return nil
}

// SetNamedItem replaces the attribute with the same namespace and local name,
// or appends it. The replaced attribute is returned.
func (n *NamedNodeMap) SetNamedItem(s *Attr) *Attr {
	for i, a := range n.Attrs {
		if a.Namespace == s.Namespace && a.LocalName == s.LocalName {
			n.Attrs[i] = s
			return a
		}
	}
	n.Attrs = append(n.Attrs, s)
	return nil
}

func (n *NamedNodeMap) RemoveNamedItem(qn string) *Attr {
	for i, a := range n.Attrs {
		if a.QualifiedName() == qn {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return a
		}
	}
	return nil
}

// Clone copies every attribute.
func (n *NamedNodeMap) Clone() *NamedNodeMap {
	c := &NamedNodeMap{Attrs: make([]*Attr, 0, n.Length())}
	if n == nil {
		return c
	}
	for _, a := range n.Attrs {
		cp := *a
		c.Attrs = append(c.Attrs, &cp)
	}
	return c
}

// Equal reports whether both maps hold the same set of attributes, ignoring order.
func (n *NamedNodeMap) Equal(o *NamedNodeMap) bool {
	if n.Length() != o.Length() {
		return false
	}
	for _, a := range n.Attrs {
		b := o.GetNamedItemNS(a.Namespace, a.LocalName)
		if b == nil || b.Value != a.Value || b.Prefix != a.Prefix {
			return false
		}
	}
	return true
}
