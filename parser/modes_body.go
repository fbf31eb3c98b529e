package parser

import (
	"github.com/heathj/htmltree/parser/dom"
)

var headings = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// elements that may stay open at the end of the body without a parse error.
var eofAllowedOpen = []string{
	"dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc",
	"tbody", "td", "tfoot", "th", "thead", "tr", "body", "html",
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inbody
func (c *HTMLTreeConstructor) inBodyModeHandler(t *Token) (bool, insertionMode) {
	s := &c.stackOfOpenElements
	switch t.TokenType {
	case characterToken:
		switch {
		case t.isNUL():
			c.parseError(t, unexpectedNullCharacter)
		case t.isWhitespace():
			c.reconstructActiveFormattingElements()
			c.insertCharacter(t.Data)
		default:
			c.reconstructActiveFormattingElements()
			c.insertCharacter(t.Data)
			c.frameset = framesetNotOK
		}
		return false, c.insertionMode
	case commentToken:
		c.insertComment(t, nil)
		return false, c.insertionMode
	case docTypeToken:
		c.parseError(t, unexpectedDoctype)
		return false, c.insertionMode
	case endOfFileToken:
		if len(c.templateInsertionModes) > 0 {
			return c.inTemplateModeHandler(t)
		}
		for _, n := range s.NodeList {
			if !n.IsHTML(eofAllowedOpen...) {
				c.parseError(t, unexpectedEOF)
				break
			}
		}
		c.stopParsing()
		return false, c.insertionMode
	case startTagToken:
		return c.inBodyStartTag(t)
	}
	return c.inBodyEndTag(t)
}

func (c *HTMLTreeConstructor) inBodyStartTag(t *Token) (bool, insertionMode) {
	s := &c.stackOfOpenElements
	afe := &c.activeFormattingElements
	switch t.TagName {
	case "html":
		c.parseError(t, unexpectedStartTag)
		if !s.ContainsTemplateElement() {
			addMissingAttributes(s.At(0), t)
		}
	case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
		return c.inHeadModeHandler(t)
	case "body":
		c.parseError(t, unexpectedStartTag)
		if s.Len() == 1 || !s.At(1).IsHTML("body") || s.ContainsTemplateElement() {
			break
		}
		c.frameset = framesetNotOK
		addMissingAttributes(s.At(1), t)
	case "frameset":
		c.parseError(t, unexpectedStartTag)
		if s.Len() == 1 || !s.At(1).IsHTML("body") || c.frameset == framesetNotOK {
			break
		}
		body := s.At(1)
		if body.ParentNode != nil {
			if _, err := body.ParentNode.RemoveChild(body); err != nil {
				c.fail(err)
			}
		}
		for s.Len() > 1 {
			s.Pop()
		}
		c.insertHTMLElementForToken(t)
		return false, inFrameset
	case "address", "article", "aside", "blockquote", "center", "details", "dialog", "dir",
		"div", "dl", "fieldset", "figcaption", "figure", "footer", "header", "hgroup",
		"main", "menu", "nav", "ol", "p", "search", "section", "summary", "ul":
		c.closePElementInButtonScope(t)
		c.insertHTMLElementForToken(t)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		c.closePElementInButtonScope(t)
		if c.getCurrentNode().IsHTML(headings...) {
			c.parseError(t, misnestedTag)
			s.Pop()
		}
		c.insertHTMLElementForToken(t)
	case "pre", "listing":
		c.closePElementInButtonScope(t)
		c.insertHTMLElementForToken(t)
		c.ignoreNextLineFeed = true
		c.frameset = framesetNotOK
	case "form":
		if c.formElementPointer != nil && !s.ContainsTemplateElement() {
			c.parseError(t, unexpectedStartTag)
			break
		}
		c.closePElementInButtonScope(t)
		form := c.insertHTMLElementForToken(t)
		if !s.ContainsTemplateElement() {
			c.formElementPointer = form
		}
	case "li":
		c.frameset = framesetNotOK
		c.closeListItem(t, "li")
		c.closePElementInButtonScope(t)
		c.insertHTMLElementForToken(t)
	case "dd", "dt":
		c.frameset = framesetNotOK
		c.closeListItem(t, "dd", "dt")
		c.closePElementInButtonScope(t)
		c.insertHTMLElementForToken(t)
	case "plaintext":
		c.closePElementInButtonScope(t)
		c.insertHTMLElementForToken(t)
		c.switchTokenizer(plaintextState)
	case "button":
		if s.HasElementInScope("button") {
			c.parseError(t, unexpectedStartTag)
			c.generateImpliedEndTags()
			s.PopUntil("button")
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
	case "a":
		if entry := afe.LastAfterMarker("a"); entry != nil {
			c.parseError(t, misnestedTag)
			a := entry.element
			c.runAdoptionAgency(&Token{TokenType: endTagToken, TagName: "a"})
			afe.Remove(a)
			s.RemoveNode(a)
		}
		c.reconstructActiveFormattingElements()
		afe.Push(c.insertHTMLElementForToken(t), t)
	case "b", "big", "code", "em", "font", "i", "s", "small", "strike", "strong", "tt", "u":
		c.reconstructActiveFormattingElements()
		afe.Push(c.insertHTMLElementForToken(t), t)
	case "nobr":
		c.reconstructActiveFormattingElements()
		if s.HasElementInScope("nobr") {
			c.parseError(t, misnestedTag)
			c.runAdoptionAgency(&Token{TokenType: endTagToken, TagName: "nobr"})
			c.reconstructActiveFormattingElements()
		}
		afe.Push(c.insertHTMLElementForToken(t), t)
	case "applet", "marquee", "object":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		afe.PushMarker()
		c.frameset = framesetNotOK
	case "table":
		if c.HTMLDocument.Mode != dom.Quirks {
			c.closePElementInButtonScope(t)
		}
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
		return false, inTable
	case "area", "br", "embed", "img", "keygen", "wbr":
		c.reconstructActiveFormattingElements()
		c.insertVoidElement(t)
		c.frameset = framesetNotOK
	case "input":
		c.reconstructActiveFormattingElements()
		c.insertVoidElement(t)
		if typ, ok := t.Attr("type"); !ok || !equalFoldASCII(typ, "hidden") {
			c.frameset = framesetNotOK
		}
	case "param", "source", "track":
		c.insertVoidElement(t)
	case "hr":
		c.closePElementInButtonScope(t)
		c.insertVoidElement(t)
		c.frameset = framesetNotOK
	case "image":
		c.parseError(t, unexpectedStartTag)
		t.TagName = "img"
		return true, c.insertionMode
	case "textarea":
		c.insertHTMLElementForToken(t)
		c.ignoreNextLineFeed = true
		c.switchTokenizer(rcDataState)
		c.originalInsertionMode = c.insertionMode
		c.frameset = framesetNotOK
		return false, text
	case "xmp":
		c.closePElementInButtonScope(t)
		c.reconstructActiveFormattingElements()
		c.frameset = framesetNotOK
		return c.genericTextElementParsing(t, rawTextState)
	case "iframe":
		c.frameset = framesetNotOK
		return c.genericTextElementParsing(t, rawTextState)
	case "noembed":
		return c.genericTextElementParsing(t, rawTextState)
	case "noscript":
		if c.config.scripting {
			return c.genericTextElementParsing(t, rawTextState)
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
	case "select":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
		switch c.insertionMode {
		case inTable, inCaption, inTableBody, inRow, inCell:
			return false, inSelectInTable
		}
		return false, inSelect
	case "optgroup", "option":
		if c.getCurrentNode().IsHTML("option") {
			s.Pop()
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
	case "rb", "rtc":
		if s.HasElementInScope("ruby") {
			c.generateImpliedEndTags()
			if !c.getCurrentNode().IsHTML("ruby") {
				c.parseError(t, unexpectedStartTag)
			}
		}
		c.insertHTMLElementForToken(t)
	case "rp", "rt":
		if s.HasElementInScope("ruby") {
			c.generateImpliedEndTags("rtc")
			if !c.getCurrentNode().IsHTML("rtc", "ruby") {
				c.parseError(t, unexpectedStartTag)
			}
		}
		c.insertHTMLElementForToken(t)
	case "math":
		c.reconstructActiveFormattingElements()
		adjustMathMLAttributes(t)
		adjustForeignAttributes(t)
		c.insertForeignElement(t, dom.Mathmlns, false)
		if t.SelfClosing {
			s.Pop()
			t.AcknowledgeSelfClosing()
		}
	case "svg":
		c.reconstructActiveFormattingElements()
		adjustSVGAttributes(t)
		adjustForeignAttributes(t)
		c.insertForeignElement(t, dom.Svgns, false)
		if t.SelfClosing {
			s.Pop()
			t.AcknowledgeSelfClosing()
		}
	case "caption", "col", "colgroup", "frame", "head", "tbody", "td", "tfoot", "th", "thead", "tr":
		c.parseError(t, unexpectedStartTag)
	default:
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
	}
	return false, c.insertionMode
}

// closeListItem runs the li, dd and dt start tag loop that closes an open
// list item before a new one starts.
func (c *HTMLTreeConstructor) closeListItem(t *Token, names ...string) {
	s := &c.stackOfOpenElements
	for i := s.Len() - 1; i >= 0; i-- {
		node := s.At(i)
		if node.IsHTML(names...) {
			c.generateImpliedEndTags(node.LocalName)
			if !c.getCurrentNode().IsHTML(node.LocalName) {
				c.parseError(t, unexpectedStartTag)
			}
			s.PopUntil(node.LocalName)
			return
		}
		if isSpecial(node) && !node.IsHTML("address", "div", "p") {
			return
		}
	}
}

func (c *HTMLTreeConstructor) inBodyEndTag(t *Token) (bool, insertionMode) {
	s := &c.stackOfOpenElements
	switch t.TagName {
	case "template":
		return c.inHeadModeHandler(t)
	case "body":
		if !s.HasElementInScope("body") {
			c.parseError(t, unexpectedEndTag)
			break
		}
		c.checkOpenAtBodyEnd(t)
		return false, afterBody
	case "html":
		if !s.HasElementInScope("body") {
			c.parseError(t, unexpectedEndTag)
			break
		}
		c.checkOpenAtBodyEnd(t)
		return true, afterBody
	case "address", "article", "aside", "blockquote", "button", "center", "details", "dialog",
		"dir", "div", "dl", "fieldset", "figcaption", "figure", "footer", "header", "hgroup",
		"listing", "main", "menu", "nav", "ol", "pre", "search", "section", "summary", "ul":
		if !s.HasElementInScope(t.TagName) {
			c.parseError(t, unexpectedEndTag)
			break
		}
		c.generateImpliedEndTags()
		if !c.getCurrentNode().IsHTML(t.TagName) {
			c.parseError(t, unexpectedEndTag)
		}
		s.PopUntil(t.TagName)
	case "form":
		if !s.ContainsTemplateElement() {
			node := c.formElementPointer
			c.formElementPointer = nil
			if node == nil || !s.HasNodeInScope(node) {
				c.parseError(t, unexpectedEndTag)
				break
			}
			c.generateImpliedEndTags()
			if c.getCurrentNode() != node {
				c.parseError(t, unexpectedEndTag)
			}
			s.RemoveNode(node)
			break
		}
		if !s.HasElementInScope("form") {
			c.parseError(t, unexpectedEndTag)
			break
		}
		c.generateImpliedEndTags()
		if !c.getCurrentNode().IsHTML("form") {
			c.parseError(t, unexpectedEndTag)
		}
		s.PopUntil("form")
	case "p":
		if !s.HasElementInButtonScope("p") {
			c.parseError(t, unexpectedEndTag)
			c.insertHTMLElementForToken(syntheticStartTag("p"))
		}
		c.closePElement(t)
	case "li":
		if !s.HasElementInListItemScope("li") {
			c.parseError(t, unexpectedEndTag)
			break
		}
		c.generateImpliedEndTags("li")
		if !c.getCurrentNode().IsHTML("li") {
			c.parseError(t, unexpectedEndTag)
		}
		s.PopUntil("li")
	case "dd", "dt":
		if !s.HasElementInScope(t.TagName) {
			c.parseError(t, unexpectedEndTag)
			break
		}
		c.generateImpliedEndTags(t.TagName)
		if !c.getCurrentNode().IsHTML(t.TagName) {
			c.parseError(t, unexpectedEndTag)
		}
		s.PopUntil(t.TagName)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if !s.HasElementInScope(headings...) {
			c.parseError(t, unexpectedEndTag)
			break
		}
		c.generateImpliedEndTags()
		if !c.getCurrentNode().IsHTML(t.TagName) {
			c.parseError(t, unexpectedEndTag)
		}
		s.PopUntil(headings...)
	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small", "strike", "strong", "tt", "u":
		c.runAdoptionAgency(t)
	case "applet", "marquee", "object":
		if !s.HasElementInScope(t.TagName) {
			c.parseError(t, unexpectedEndTag)
			break
		}
		c.generateImpliedEndTags()
		if !c.getCurrentNode().IsHTML(t.TagName) {
			c.parseError(t, unexpectedEndTag)
		}
		s.PopUntil(t.TagName)
		c.activeFormattingElements.ClearToLastMarker()
	case "br":
		c.parseError(t, unexpectedEndTag)
		return c.inBodyStartTag(syntheticStartTag("br"))
	default:
		c.anyOtherEndTag(t)
	}
	return false, c.insertionMode
}

func (c *HTMLTreeConstructor) checkOpenAtBodyEnd(t *Token) {
	for _, n := range c.stackOfOpenElements.NodeList {
		if !n.IsHTML(eofAllowedOpen...) {
			c.parseError(t, unexpectedEndTag)
			return
		}
	}
}

// runAdoptionAgency runs the adoption agency for an end tag and falls back
// to the generic end tag steps when it asks for it.
func (c *HTMLTreeConstructor) runAdoptionAgency(t *Token) {
	if c.adoptionAgencyAlgorithm(t) {
		c.anyOtherEndTag(t)
	}
}

// anyOtherEndTag is the "any other end tag" entry of the in body insertion mode.
func (c *HTMLTreeConstructor) anyOtherEndTag(t *Token) {
	s := &c.stackOfOpenElements
	for i := s.Len() - 1; i >= 0; i-- {
		node := s.At(i)
		if node.IsHTML(t.TagName) {
			c.generateImpliedEndTags(t.TagName)
			if node != c.getCurrentNode() {
				c.parseError(t, unexpectedEndTag)
			}
			s.PopUntilNode(node)
			return
		}
		if isSpecial(node) {
			c.parseError(t, unexpectedEndTag)
			return
		}
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incdata
func (c *HTMLTreeConstructor) textModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		c.insertCharacter(t.Data)
		return false, c.insertionMode
	case endOfFileToken:
		c.parseError(t, unexpectedEOF)
		c.stackOfOpenElements.Pop()
		return true, c.originalInsertionMode
	case endTagToken:
		// scripts are never executed, so </script> only closes the element
		c.stackOfOpenElements.Pop()
		return false, c.originalInsertionMode
	}
	return false, c.insertionMode
}
