package parser

import (
	"github.com/heathj/htmltree/parser/dom"
)

// formattingEntry is an entry in the list of active formatting elements. A
// nil element is a marker. The entry also keeps the token the element was
// created from, so dropping the entry drops the token with it.
type formattingEntry struct {
	element *dom.Node
	token   *Token
}

func (e *formattingEntry) isMarker() bool {
	return e.element == nil
}

// ActiveFormattingElements is https://html.spec.whatwg.org/multipage/parsing.html#list-of-active-formatting-elements
type ActiveFormattingElements struct {
	entries []*formattingEntry
}

func (a *ActiveFormattingElements) Len() int {
	return len(a.entries)
}

func (a *ActiveFormattingElements) At(i int) *formattingEntry {
	return a.entries[i]
}

func (a *ActiveFormattingElements) PushMarker() {
	a.entries = append(a.entries, &formattingEntry{})
}

// Push adds a formatting element, applying the Noah's Ark clause: at most
// three identical elements may follow the last marker.
func (a *ActiveFormattingElements) Push(n *dom.Node, t *Token) {
	var similar []int
	for i := len(a.entries) - 1; i >= 0; i-- {
		e := a.entries[i]
		if e.isMarker() {
			break
		}
		if sameFormattingElement(e.element, n) {
			similar = append(similar, i)
		}
	}
	if len(similar) >= 3 {
		// the earliest match is the last one found walking backwards
		a.removeAt(similar[len(similar)-1])
	}
	a.entries = append(a.entries, &formattingEntry{element: n, token: t})
}

func sameFormattingElement(a, b *dom.Node) bool {
	return a.LocalName == b.LocalName &&
		a.NamespaceURI == b.NamespaceURI &&
		a.Attributes.Equal(b.Attributes)
}

func (a *ActiveFormattingElements) IndexOf(n *dom.Node) int {
	for i, e := range a.entries {
		if e.element == n && n != nil {
			return i
		}
	}
	return -1
}

func (a *ActiveFormattingElements) Contains(n *dom.Node) bool {
	return a.IndexOf(n) != -1
}

func (a *ActiveFormattingElements) removeAt(i int) {
	if i < 0 || i >= len(a.entries) {
		return
	}
	a.entries = append(a.entries[:i], a.entries[i+1:]...)
}

func (a *ActiveFormattingElements) Remove(n *dom.Node) {
	a.removeAt(a.IndexOf(n))
}

// Replace swaps the element of old's entry for n, keeping the creation token.
func (a *ActiveFormattingElements) Replace(old, n *dom.Node) {
	if i := a.IndexOf(old); i != -1 {
		a.entries[i] = &formattingEntry{element: n, token: a.entries[i].token}
	}
}

// InsertAt places a new entry at index i. It is used with a bookmark.
func (a *ActiveFormattingElements) InsertAt(i int, n *dom.Node, t *Token) {
	e := &formattingEntry{element: n, token: t}
	if i >= len(a.entries) {
		a.entries = append(a.entries, e)
		return
	}
	a.entries = append(a.entries[:i+1], a.entries[i:]...)
	a.entries[i] = e
}

// ClearToLastMarker is https://html.spec.whatwg.org/multipage/parsing.html#clear-the-list-of-active-formatting-elements-up-to-the-last-marker
func (a *ActiveFormattingElements) ClearToLastMarker() {
	for len(a.entries) > 0 {
		e := a.entries[len(a.entries)-1]
		a.entries = a.entries[:len(a.entries)-1]
		if e.isMarker() {
			return
		}
	}
}

// LastAfterMarker returns the last HTML element named name that sits between
// the end of the list and the last marker.
func (a *ActiveFormattingElements) LastAfterMarker(name string) *formattingEntry {
	for i := len(a.entries) - 1; i >= 0; i-- {
		e := a.entries[i]
		if e.isMarker() {
			return nil
		}
		if e.element.IsHTML(name) {
			return e
		}
	}
	return nil
}

// reconstructActiveFormattingElements is https://html.spec.whatwg.org/multipage/parsing.html#reconstruct-the-active-formatting-elements
func (c *HTMLTreeConstructor) reconstructActiveFormattingElements() {
	afe := &c.activeFormattingElements
	if afe.Len() == 0 {
		return
	}
	last := afe.At(afe.Len() - 1)
	if last.isMarker() || c.stackOfOpenElements.ContainsNode(last.element) {
		return
	}

	// rewind to the entry after the last marker or open element
	i := afe.Len() - 1
	for i > 0 {
		prev := afe.At(i - 1)
		if prev.isMarker() || c.stackOfOpenElements.ContainsNode(prev.element) {
			break
		}
		i--
	}

	// advance, creating an element for every entry up to the end of the list
	for ; i < afe.Len(); i++ {
		entry := afe.At(i)
		elem := c.insertHTMLElementForToken(entry.token)
		afe.entries[i] = &formattingEntry{element: elem, token: entry.token}
	}
}
