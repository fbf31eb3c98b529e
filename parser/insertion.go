package parser

import (
	"github.com/heathj/htmltree/parser/dom"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// insertionLocation is a position inside parent, immediately before
// before. A nil before is the end of parent.
type insertionLocation struct {
	parent *dom.Node
	before *dom.Node
}

// appropriatePlace is https://html.spec.whatwg.org/multipage/parsing.html#appropriate-place-for-inserting-a-node
func (c *HTMLTreeConstructor) appropriatePlace(override *dom.Node) insertionLocation {
	target := override
	if target == nil {
		target = c.getCurrentNode()
	}

	var loc insertionLocation
	if c.fosterParenting && target.IsHTML("table", "tbody", "tfoot", "thead", "tr") {
		s := &c.stackOfOpenElements
		lastTemplate, lastTable := -1, -1
		for i := s.Len() - 1; i >= 0; i-- {
			if lastTemplate == -1 && s.At(i).IsHTML("template") {
				lastTemplate = i
			}
			if lastTable == -1 && s.At(i).IsHTML("table") {
				lastTable = i
			}
		}
		switch {
		case lastTemplate != -1 && (lastTable == -1 || lastTemplate > lastTable):
			return insertionLocation{parent: s.At(lastTemplate).TemplateContents}
		case lastTable == -1:
			loc = insertionLocation{parent: s.At(0)}
		case s.At(lastTable).ParentNode != nil:
			table := s.At(lastTable)
			loc = insertionLocation{parent: table.ParentNode, before: table}
		default:
			loc = insertionLocation{parent: s.At(lastTable - 1)}
		}
	} else {
		loc = insertionLocation{parent: target}
	}

	if loc.parent.IsHTML("template") {
		loc = insertionLocation{parent: loc.parent.TemplateContents}
	}
	return loc
}

// insertAt places n at loc. DOM errors stop the parse.
func (c *HTMLTreeConstructor) insertAt(loc insertionLocation, n *dom.Node) {
	if _, err := loc.parent.InsertBefore(n, loc.before); err != nil {
		c.fail(errors.Wrapf(err, "inserting %s into %s", n.NodeName, loc.parent.NodeName))
	}
}

func (c *HTMLTreeConstructor) appendTo(parent, n *dom.Node) {
	c.insertAt(insertionLocation{parent: parent}, n)
}

// fail records the first fatal error; parsing stops after the current token.
func (c *HTMLTreeConstructor) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// insertCharacter is https://html.spec.whatwg.org/multipage/parsing.html#insert-a-character
// Text next to an existing Text node is merged into it.
func (c *HTMLTreeConstructor) insertCharacter(data string) {
	if data == "" {
		return
	}
	loc := c.appropriatePlace(nil)
	if loc.parent.NodeType == dom.DocumentNode {
		return
	}
	prev := loc.parent.LastChild
	if loc.before != nil {
		prev = loc.before.PreviousSibling
	}
	if prev != nil && prev.NodeType == dom.TextNode {
		prev.Text.AppendData(data)
		return
	}
	c.insertAt(loc, dom.NewTextNode(c.HTMLDocument, data))
}

// insertComment is https://html.spec.whatwg.org/multipage/parsing.html#insert-a-comment
// A nil parent uses the appropriate place.
func (c *HTMLTreeConstructor) insertComment(t *Token, parent *dom.Node) {
	loc := insertionLocation{parent: parent}
	if parent == nil {
		loc = c.appropriatePlace(nil)
	}
	c.insertAt(loc, dom.NewComment(t.Data, c.HTMLDocument))
}

// createElementForToken is https://html.spec.whatwg.org/multipage/parsing.html#create-an-element-for-the-token
func (c *HTMLTreeConstructor) createElementForToken(t *Token, ns dom.Namespace) *dom.Node {
	el := dom.NewDOMElement(c.HTMLDocument, t.TagName, ns)
	el.Attributes = dom.NewNamedNodeMap(t.Attributes)
	return el
}

// insertForeignElement is https://html.spec.whatwg.org/multipage/parsing.html#insert-a-foreign-element
// An element that cannot be placed is still pushed onto the stack.
func (c *HTMLTreeConstructor) insertForeignElement(t *Token, ns dom.Namespace, onlyAddToStack bool) *dom.Node {
	loc := c.appropriatePlace(nil)
	el := c.createElementForToken(t, ns)
	if !onlyAddToStack {
		if _, err := loc.parent.InsertBefore(el, loc.before); err != nil {
			c.log.WithError(err).WithFields(logrus.Fields{
				"element": el.LocalName,
				"parent":  loc.parent.NodeName,
			}).Debug("dropping element that cannot be inserted")
		}
	}
	c.stackOfOpenElements.Push(el)
	return el
}

// insertHTMLElementForToken is https://html.spec.whatwg.org/multipage/parsing.html#insert-an-html-element
func (c *HTMLTreeConstructor) insertHTMLElementForToken(t *Token) *dom.Node {
	return c.insertForeignElement(t, dom.Htmlns, false)
}

// insertVoidElement inserts an element that never has children and pops it.
func (c *HTMLTreeConstructor) insertVoidElement(t *Token) *dom.Node {
	el := c.insertHTMLElementForToken(t)
	c.stackOfOpenElements.Pop()
	t.AcknowledgeSelfClosing()
	return el
}

// addMissingAttributes copies attributes of t that el does not have yet.
func addMissingAttributes(el *dom.Node, t *Token) {
	for _, a := range t.Attributes {
		if !el.HasAttribute(a.LocalName) {
			el.SetAttribute(a.LocalName, a.Value)
		}
	}
}
