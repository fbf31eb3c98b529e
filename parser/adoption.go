package parser

import (
	"github.com/heathj/htmltree/parser/dom"
)

const (
	adoptionOuterLoopLimit = 8
	adoptionInnerLoopEvict = 3
)

// adoptionAgencyAlgorithm is https://html.spec.whatwg.org/multipage/parsing.html#adoption-agency-algorithm
// It returns true when the token must be handled like any other end tag.
func (c *HTMLTreeConstructor) adoptionAgencyAlgorithm(t *Token) bool {
	subject := t.TagName
	s := &c.stackOfOpenElements
	afe := &c.activeFormattingElements

	if cur := c.getCurrentNode(); cur.IsHTML(subject) && !afe.Contains(cur) {
		s.Pop()
		return false
	}

	for outer := 0; outer < adoptionOuterLoopLimit; outer++ {
		entry := afe.LastAfterMarker(subject)
		if entry == nil {
			return true
		}
		formattingElement := entry.element

		feIndex := s.IndexOf(formattingElement)
		if feIndex == -1 {
			c.parseError(t, misnestedTag)
			afe.Remove(formattingElement)
			return false
		}
		if !s.HasNodeInScope(formattingElement) {
			c.parseError(t, misnestedTag)
			return false
		}
		if formattingElement != c.getCurrentNode() {
			c.parseError(t, misnestedTag)
		}

		var furthestBlock *dom.Node
		for i := feIndex + 1; i < s.Len(); i++ {
			if isSpecial(s.At(i)) {
				furthestBlock = s.At(i)
				break
			}
		}
		if furthestBlock == nil {
			s.PopUntilNode(formattingElement)
			afe.Remove(formattingElement)
			return false
		}

		commonAncestor := s.At(feIndex - 1)
		bookmark := afe.IndexOf(formattingElement)

		lastNode := furthestBlock
		nodeIndex := s.IndexOf(furthestBlock)
		for inner := 1; ; inner++ {
			nodeIndex--
			node := s.At(nodeIndex)
			if node == formattingElement {
				break
			}

			if ni := afe.IndexOf(node); inner > adoptionInnerLoopEvict && ni != -1 {
				afe.Remove(node)
				if ni < bookmark {
					bookmark--
				}
			}
			ni := afe.IndexOf(node)
			if ni == -1 {
				s.RemoveNode(node)
				continue
			}

			clone := c.createElementForToken(afe.At(ni).token, dom.Htmlns)
			afe.Replace(node, clone)
			s.Replace(node, clone)
			node = clone

			if lastNode == furthestBlock {
				bookmark = ni + 1
			}
			c.appendTo(node, lastNode)
			lastNode = node
		}

		c.insertAt(c.appropriatePlace(commonAncestor), lastNode)

		newElement := c.createElementForToken(entry.token, dom.Htmlns)
		for furthestBlock.FirstChild != nil {
			c.appendTo(newElement, furthestBlock.FirstChild)
		}
		c.appendTo(furthestBlock, newElement)

		if oldLoc := afe.IndexOf(formattingElement); oldLoc != -1 && oldLoc < bookmark {
			bookmark--
		}
		afe.Remove(formattingElement)
		afe.InsertAt(bookmark, newElement, entry.token)

		s.RemoveNode(formattingElement)
		s.Insert(s.IndexOf(furthestBlock)+1, newElement)

		if c.err != nil {
			return false
		}
	}
	return false
}
