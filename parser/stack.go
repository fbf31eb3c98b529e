package parser

import (
	"github.com/heathj/htmltree/parser/dom"
)

// StackOfOpenElements is https://html.spec.whatwg.org/multipage/parsing.html#stack-of-open-elements
// The bottom of the stack is index 0; the current node is the last entry.
type StackOfOpenElements struct {
	dom.NodeList
}

func (s *StackOfOpenElements) Push(n *dom.Node) {
	s.NodeList = append(s.NodeList, n)
}

// Top returns the current node, or nil when the stack is empty.
func (s *StackOfOpenElements) Top() *dom.Node {
	if len(s.NodeList) == 0 {
		return nil
	}
	return s.NodeList[len(s.NodeList)-1]
}

func (s *StackOfOpenElements) Len() int {
	return len(s.NodeList)
}

func (s *StackOfOpenElements) At(i int) *dom.Node {
	return s.NodeList[i]
}

func (s *StackOfOpenElements) IndexOf(n *dom.Node) int {
	return s.NodeList.Contains(n)
}

func (s *StackOfOpenElements) ContainsNode(n *dom.Node) bool {
	return s.IndexOf(n) != -1
}

// Insert places n at index i, shifting the entries above it up.
func (s *StackOfOpenElements) Insert(i int, n *dom.Node) {
	s.NodeList.WedgeIn(i, n)
}

func (s *StackOfOpenElements) RemoveNode(n *dom.Node) {
	s.NodeList.Remove(s.IndexOf(n))
}

func (s *StackOfOpenElements) Replace(old, n *dom.Node) {
	if i := s.IndexOf(old); i != -1 {
		s.NodeList[i] = n
	}
}

// ContainsHTML reports whether an HTML element with one of the names is open.
func (s *StackOfOpenElements) ContainsHTML(names ...string) bool {
	for _, n := range s.NodeList {
		if n.IsHTML(names...) {
			return true
		}
	}
	return false
}

// ContainsTemplateElement reports whether an HTML template is open.
func (s *StackOfOpenElements) ContainsTemplateElement() bool {
	return s.ContainsHTML("template")
}

// PopUntil pops elements until an HTML element with one of the names has
// been popped. It returns the matching element, or nil if none was open.
func (s *StackOfOpenElements) PopUntil(names ...string) *dom.Node {
	for {
		popped := s.Pop()
		if popped == nil || popped.IsHTML(names...) {
			return popped
		}
	}
}

// PopUntilNode pops elements until n has been popped.
func (s *StackOfOpenElements) PopUntilNode(n *dom.Node) {
	for {
		popped := s.Pop()
		if popped == nil || popped == n {
			return
		}
	}
}

// PopUntilConditions pops until the current node satisfies one of funcs. The
// matching node stays on the stack.
func (s *StackOfOpenElements) PopUntilConditions(funcs ...func(e *dom.Node) bool) *dom.Node {
	for {
		top := s.Top()
		if top == nil {
			return nil
		}
		for _, f := range funcs {
			if f(top) {
				return top
			}
		}
		s.Pop()
	}
}

type scopeElement struct {
	ns   dom.Namespace
	name string
}

var defaultScope = []scopeElement{
	{dom.Htmlns, "applet"},
	{dom.Htmlns, "caption"},
	{dom.Htmlns, "html"},
	{dom.Htmlns, "table"},
	{dom.Htmlns, "td"},
	{dom.Htmlns, "th"},
	{dom.Htmlns, "marquee"},
	{dom.Htmlns, "object"},
	{dom.Htmlns, "template"},
	{dom.Mathmlns, "mi"},
	{dom.Mathmlns, "mo"},
	{dom.Mathmlns, "mn"},
	{dom.Mathmlns, "ms"},
	{dom.Mathmlns, "mtext"},
	{dom.Mathmlns, "annotation-xml"},
	{dom.Svgns, "foreignObject"},
	{dom.Svgns, "desc"},
	{dom.Svgns, "title"},
}

var (
	listItemScope = append(append([]scopeElement{}, defaultScope...), scopeElement{dom.Htmlns, "ol"}, scopeElement{dom.Htmlns, "ul"})
	buttonScope   = append(append([]scopeElement{}, defaultScope...), scopeElement{dom.Htmlns, "button"})
	tableScope    = []scopeElement{{dom.Htmlns, "html"}, {dom.Htmlns, "table"}, {dom.Htmlns, "template"}}
)

func inScopeList(n *dom.Node, list []scopeElement) bool {
	for _, se := range list {
		if n.Is(se.ns, se.name) {
			return true
		}
	}
	return false
}

// elementInSpecificScope walks down from the current node. It reports whether
// target matches before any element of the boundary list is seen.
func (s *StackOfOpenElements) elementInSpecificScope(target func(*dom.Node) bool, boundary []scopeElement) bool {
	for i := len(s.NodeList) - 1; i >= 0; i-- {
		entry := s.NodeList[i]
		if target(entry) {
			return true
		}
		if inScopeList(entry, boundary) {
			return false
		}
	}
	return false
}

func htmlNamed(names ...string) func(*dom.Node) bool {
	return func(n *dom.Node) bool { return n.IsHTML(names...) }
}

// HasElementInScope reports whether an HTML element with one of the names is in scope.
func (s *StackOfOpenElements) HasElementInScope(names ...string) bool {
	return s.elementInSpecificScope(htmlNamed(names...), defaultScope)
}

// HasNodeInScope reports whether the given element is in scope.
func (s *StackOfOpenElements) HasNodeInScope(n *dom.Node) bool {
	return s.elementInSpecificScope(func(e *dom.Node) bool { return e == n }, defaultScope)
}

func (s *StackOfOpenElements) HasElementInListItemScope(names ...string) bool {
	return s.elementInSpecificScope(htmlNamed(names...), listItemScope)
}

func (s *StackOfOpenElements) HasElementInButtonScope(names ...string) bool {
	return s.elementInSpecificScope(htmlNamed(names...), buttonScope)
}

func (s *StackOfOpenElements) HasElementInTableScope(names ...string) bool {
	return s.elementInSpecificScope(htmlNamed(names...), tableScope)
}

// HasElementInSelectScope treats every element except optgroup and option as
// a boundary.
func (s *StackOfOpenElements) HasElementInSelectScope(names ...string) bool {
	for i := len(s.NodeList) - 1; i >= 0; i-- {
		entry := s.NodeList[i]
		if entry.IsHTML(names...) {
			return true
		}
		if !entry.IsHTML("optgroup", "option") {
			return false
		}
	}
	return false
}

func (s *StackOfOpenElements) clearBackTo(names ...string) {
	s.PopUntilConditions(htmlNamed(names...))
}

// ClearBackToTableContext is https://html.spec.whatwg.org/multipage/parsing.html#clear-the-stack-back-to-a-table-context
func (s *StackOfOpenElements) ClearBackToTableContext() {
	s.clearBackTo("table", "template", "html")
}

// ClearBackToTableBodyContext is https://html.spec.whatwg.org/multipage/parsing.html#clear-the-stack-back-to-a-table-body-context
func (s *StackOfOpenElements) ClearBackToTableBodyContext() {
	s.clearBackTo("tbody", "tfoot", "thead", "template", "html")
}

// ClearBackToTableRowContext is https://html.spec.whatwg.org/multipage/parsing.html#clear-the-stack-back-to-a-table-row-context
func (s *StackOfOpenElements) ClearBackToTableRowContext() {
	s.clearBackTo("tr", "template", "html")
}
