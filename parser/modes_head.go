package parser

import (
	"github.com/heathj/htmltree/parser/dom"
)

func syntheticStartTag(name string) *Token {
	return &Token{TokenType: startTagToken, TagName: name}
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
func (c *HTMLTreeConstructor) initialModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case t.isWhitespace():
		return false, c.insertionMode
	case t.TokenType == commentToken:
		c.insertComment(t, c.HTMLDocument)
		return false, c.insertionMode
	case t.TokenType == docTypeToken:
		if isDoctypeParseError(t) {
			c.parseError(t, nonConformingDoctype)
		}
		var pub, sys string
		if t.PublicIdentifier != nil {
			pub = *t.PublicIdentifier
		}
		if t.SystemIdentifier != nil {
			sys = *t.SystemIdentifier
		}
		c.appendTo(c.HTMLDocument, c.HTMLDocument.CreateDocumentType(t.TagName, pub, sys))
		c.HTMLDocument.Mode = quirksModeFor(t, c.config.iframeSrcdoc)
		return false, beforeHTML
	}

	if !c.config.iframeSrcdoc {
		c.parseError(t, missingDoctype)
		c.HTMLDocument.Mode = dom.Quirks
	}
	return true, beforeHTML
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-html-insertion-mode
func (c *HTMLTreeConstructor) beforeHTMLModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case t.TokenType == docTypeToken:
		c.parseError(t, unexpectedDoctype)
		return false, c.insertionMode
	case t.TokenType == commentToken:
		c.insertComment(t, c.HTMLDocument)
		return false, c.insertionMode
	case t.isWhitespace():
		return false, c.insertionMode
	case t.isStartTag("html"):
		html := c.createElementForToken(t, dom.Htmlns)
		c.appendTo(c.HTMLDocument, html)
		c.stackOfOpenElements.Push(html)
		return false, beforeHead
	case t.isEndTag("head", "body", "html", "br"):
	case t.TokenType == endTagToken:
		c.parseError(t, unexpectedEndTag)
		return false, c.insertionMode
	}

	html := c.createElementForToken(syntheticStartTag("html"), dom.Htmlns)
	c.appendTo(c.HTMLDocument, html)
	c.stackOfOpenElements.Push(html)
	return true, beforeHead
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-head-insertion-mode
func (c *HTMLTreeConstructor) beforeHeadModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case t.isWhitespace():
		return false, c.insertionMode
	case t.TokenType == commentToken:
		c.insertComment(t, nil)
		return false, c.insertionMode
	case t.TokenType == docTypeToken:
		c.parseError(t, unexpectedDoctype)
		return false, c.insertionMode
	case t.isStartTag("html"):
		return c.inBodyModeHandler(t)
	case t.isStartTag("head"):
		c.headElementPointer = c.insertHTMLElementForToken(t)
		return false, inHead
	case t.isEndTag("head", "body", "html", "br"):
	case t.TokenType == endTagToken:
		c.parseError(t, unexpectedEndTag)
		return false, c.insertionMode
	}

	c.headElementPointer = c.insertHTMLElementForToken(syntheticStartTag("head"))
	return true, inHead
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inhead
func (c *HTMLTreeConstructor) inHeadModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case t.isWhitespace():
		c.insertCharacter(t.Data)
		return false, c.insertionMode
	case t.TokenType == commentToken:
		c.insertComment(t, nil)
		return false, c.insertionMode
	case t.TokenType == docTypeToken:
		c.parseError(t, unexpectedDoctype)
		return false, c.insertionMode
	case t.isStartTag("html"):
		return c.inBodyModeHandler(t)
	case t.isStartTag("base", "basefont", "bgsound", "link", "meta"):
		c.insertVoidElement(t)
		return false, c.insertionMode
	case t.isStartTag("title"):
		return c.genericTextElementParsing(t, rcDataState)
	case t.isStartTag("noscript") && c.config.scripting, t.isStartTag("noframes", "style"):
		return c.genericTextElementParsing(t, rawTextState)
	case t.isStartTag("noscript"):
		c.insertHTMLElementForToken(t)
		return false, inHeadNoScript
	case t.isStartTag("script"):
		c.insertHTMLElementForToken(t)
		c.switchTokenizer(scriptDataState)
		c.originalInsertionMode = c.insertionMode
		return false, text
	case t.isEndTag("head"):
		c.stackOfOpenElements.Pop()
		return false, afterHead
	case t.isEndTag("body", "html", "br"):
	case t.isStartTag("template"):
		c.insertHTMLElementForToken(t)
		c.activeFormattingElements.PushMarker()
		c.frameset = framesetNotOK
		c.pushTemplateMode(inTemplate)
		return false, inTemplate
	case t.isEndTag("template"):
		if !c.stackOfOpenElements.ContainsTemplateElement() {
			c.parseError(t, unexpectedEndTag)
			return false, c.insertionMode
		}
		c.generateAllImpliedEndTagsThoroughly()
		if !c.getCurrentNode().IsHTML("template") {
			c.parseError(t, unexpectedEndTag)
		}
		c.stackOfOpenElements.PopUntil("template")
		c.activeFormattingElements.ClearToLastMarker()
		c.popTemplateMode()
		return false, c.resetInsertionMode()
	case t.isStartTag("head"), t.TokenType == endTagToken:
		c.parseError(t, unexpectedToken)
		return false, c.insertionMode
	}

	c.stackOfOpenElements.Pop()
	return true, afterHead
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inheadnoscript
func (c *HTMLTreeConstructor) inHeadNoScriptModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case t.TokenType == docTypeToken:
		c.parseError(t, unexpectedDoctype)
		return false, c.insertionMode
	case t.isStartTag("html"):
		return c.inBodyModeHandler(t)
	case t.isEndTag("noscript"):
		c.stackOfOpenElements.Pop()
		return false, inHead
	case t.isWhitespace(), t.TokenType == commentToken,
		t.isStartTag("basefont", "bgsound", "link", "meta", "noframes", "style"):
		return c.inHeadModeHandler(t)
	case t.isEndTag("br"):
	case t.isStartTag("head", "noscript"), t.TokenType == endTagToken:
		c.parseError(t, unexpectedToken)
		return false, c.insertionMode
	}

	c.parseError(t, unexpectedToken)
	c.stackOfOpenElements.Pop()
	return true, inHead
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-head-insertion-mode
func (c *HTMLTreeConstructor) afterHeadModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case t.isWhitespace():
		c.insertCharacter(t.Data)
		return false, c.insertionMode
	case t.TokenType == commentToken:
		c.insertComment(t, nil)
		return false, c.insertionMode
	case t.TokenType == docTypeToken:
		c.parseError(t, unexpectedDoctype)
		return false, c.insertionMode
	case t.isStartTag("html"):
		return c.inBodyModeHandler(t)
	case t.isStartTag("body"):
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
		return false, inBody
	case t.isStartTag("frameset"):
		c.insertHTMLElementForToken(t)
		return false, inFrameset
	case t.isStartTag("base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title"):
		c.parseError(t, unexpectedStartTag)
		head := c.headElementPointer
		c.stackOfOpenElements.Push(head)
		reprocess, next := c.inHeadModeHandler(t)
		c.stackOfOpenElements.RemoveNode(head)
		return reprocess, next
	case t.isEndTag("template"):
		return c.inHeadModeHandler(t)
	case t.isEndTag("body", "html", "br"):
	case t.isStartTag("head"), t.TokenType == endTagToken:
		c.parseError(t, unexpectedToken)
		return false, c.insertionMode
	}

	c.insertHTMLElementForToken(syntheticStartTag("body"))
	return true, inBody
}
