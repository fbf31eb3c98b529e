package parser

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inselect
func (c *HTMLTreeConstructor) inSelectModeHandler(t *Token) (bool, insertionMode) {
	s := &c.stackOfOpenElements
	switch {
	case t.TokenType == characterToken:
		if t.isNUL() {
			c.parseError(t, unexpectedNullCharacter)
			return false, c.insertionMode
		}
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
	case t.isStartTag("option"):
		if c.getCurrentNode().IsHTML("option") {
			s.Pop()
		}
		c.insertHTMLElementForToken(t)
		return false, c.insertionMode
	case t.isStartTag("optgroup", "hr"):
		if c.getCurrentNode().IsHTML("option") {
			s.Pop()
		}
		if c.getCurrentNode().IsHTML("optgroup") {
			s.Pop()
		}
		if t.TagName == "hr" {
			c.insertVoidElement(t)
		} else {
			c.insertHTMLElementForToken(t)
		}
		return false, c.insertionMode
	case t.isEndTag("optgroup"):
		if c.getCurrentNode().IsHTML("option") && s.Len() > 1 && s.At(s.Len()-2).IsHTML("optgroup") {
			s.Pop()
		}
		if !c.getCurrentNode().IsHTML("optgroup") {
			c.parseError(t, unexpectedEndTag)
			return false, c.insertionMode
		}
		s.Pop()
		return false, c.insertionMode
	case t.isEndTag("option"):
		if !c.getCurrentNode().IsHTML("option") {
			c.parseError(t, unexpectedEndTag)
			return false, c.insertionMode
		}
		s.Pop()
		return false, c.insertionMode
	case t.isEndTag("select"):
		if !s.HasElementInSelectScope("select") {
			c.parseError(t, unexpectedEndTag)
			return false, c.insertionMode
		}
		s.PopUntil("select")
		return false, c.resetInsertionMode()
	case t.isStartTag("select"):
		c.parseError(t, unexpectedStartTag)
		if !s.HasElementInSelectScope("select") {
			return false, c.insertionMode
		}
		s.PopUntil("select")
		return false, c.resetInsertionMode()
	case t.isStartTag("input", "keygen", "textarea"):
		c.parseError(t, unexpectedStartTag)
		if !s.HasElementInSelectScope("select") {
			return false, c.insertionMode
		}
		s.PopUntil("select")
		return true, c.resetInsertionMode()
	case t.isStartTag("script", "template"), t.isEndTag("template"):
		return c.inHeadModeHandler(t)
	case t.TokenType == endOfFileToken:
		return c.inBodyModeHandler(t)
	}

	c.parseError(t, unexpectedToken)
	return false, c.insertionMode
}

var selectInTableTags = []string{"caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th"}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inselectintable
func (c *HTMLTreeConstructor) inSelectInTableModeHandler(t *Token) (bool, insertionMode) {
	s := &c.stackOfOpenElements
	switch {
	case t.isStartTag(selectInTableTags...):
		c.parseError(t, unexpectedStartTag)
		s.PopUntil("select")
		return true, c.resetInsertionMode()
	case t.isEndTag(selectInTableTags...):
		c.parseError(t, unexpectedEndTag)
		if !s.HasElementInTableScope(t.TagName) {
			return false, c.insertionMode
		}
		s.PopUntil("select")
		return true, c.resetInsertionMode()
	}
	return c.inSelectModeHandler(t)
}

// switchTemplateMode replaces the current template insertion mode and
// reprocesses the token in it.
func (c *HTMLTreeConstructor) switchTemplateMode(m insertionMode) (bool, insertionMode) {
	c.popTemplateMode()
	c.pushTemplateMode(m)
	return true, m
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intemplate
func (c *HTMLTreeConstructor) inTemplateModeHandler(t *Token) (bool, insertionMode) {
	s := &c.stackOfOpenElements
	switch {
	case t.TokenType == characterToken, t.TokenType == commentToken, t.TokenType == docTypeToken:
		return c.inBodyModeHandler(t)
	case t.isStartTag("base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title"),
		t.isEndTag("template"):
		return c.inHeadModeHandler(t)
	case t.isStartTag("caption", "colgroup", "tbody", "tfoot", "thead"):
		return c.switchTemplateMode(inTable)
	case t.isStartTag("col"):
		return c.switchTemplateMode(inColumnGroup)
	case t.isStartTag("tr"):
		return c.switchTemplateMode(inTableBody)
	case t.isStartTag("td", "th"):
		return c.switchTemplateMode(inRow)
	case t.TokenType == startTagToken:
		return c.switchTemplateMode(inBody)
	case t.TokenType == endTagToken:
		c.parseError(t, unexpectedEndTag)
		return false, c.insertionMode
	}

	// end of file
	if !s.ContainsTemplateElement() {
		c.stopParsing()
		return false, c.insertionMode
	}
	c.parseError(t, unexpectedEOF)
	s.PopUntil("template")
	c.activeFormattingElements.ClearToLastMarker()
	c.popTemplateMode()
	return true, c.resetInsertionMode()
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-afterbody
func (c *HTMLTreeConstructor) afterBodyModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case t.isWhitespace(), t.isStartTag("html"):
		return c.inBodyModeHandler(t)
	case t.TokenType == commentToken:
		c.insertComment(t, c.stackOfOpenElements.At(0))
		return false, c.insertionMode
	case t.TokenType == docTypeToken:
		c.parseError(t, unexpectedDoctype)
		return false, c.insertionMode
	case t.isEndTag("html"):
		if c.isFragmentCase() {
			c.parseError(t, unexpectedEndTag)
			return false, c.insertionMode
		}
		return false, afterAfterBody
	case t.TokenType == endOfFileToken:
		c.stopParsing()
		return false, c.insertionMode
	}

	c.parseError(t, unexpectedToken)
	return true, inBody
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inframeset
func (c *HTMLTreeConstructor) inFramesetModeHandler(t *Token) (bool, insertionMode) {
	s := &c.stackOfOpenElements
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
	case t.isStartTag("frameset"):
		c.insertHTMLElementForToken(t)
		return false, c.insertionMode
	case t.isEndTag("frameset"):
		if s.Len() == 1 && c.getCurrentNode().IsHTML("html") {
			c.parseError(t, unexpectedEndTag)
			return false, c.insertionMode
		}
		s.Pop()
		if !c.isFragmentCase() && !c.getCurrentNode().IsHTML("frameset") {
			return false, afterFrameset
		}
		return false, c.insertionMode
	case t.isStartTag("frame"):
		c.insertVoidElement(t)
		return false, c.insertionMode
	case t.isStartTag("noframes"):
		return c.inHeadModeHandler(t)
	case t.TokenType == endOfFileToken:
		if !(s.Len() == 1 && c.getCurrentNode().IsHTML("html")) {
			c.parseError(t, unexpectedEOF)
		}
		c.stopParsing()
		return false, c.insertionMode
	}

	c.parseError(t, unexpectedToken)
	return false, c.insertionMode
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-afterframeset
func (c *HTMLTreeConstructor) afterFramesetModeHandler(t *Token) (bool, insertionMode) {
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
	case t.isEndTag("html"):
		return false, afterAfterFrameset
	case t.isStartTag("noframes"):
		return c.inHeadModeHandler(t)
	case t.TokenType == endOfFileToken:
		c.stopParsing()
		return false, c.insertionMode
	}

	c.parseError(t, unexpectedToken)
	return false, c.insertionMode
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-after-body-insertion-mode
func (c *HTMLTreeConstructor) afterAfterBodyModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case t.TokenType == commentToken:
		c.insertComment(t, c.HTMLDocument)
		return false, c.insertionMode
	case t.TokenType == docTypeToken, t.isWhitespace(), t.isStartTag("html"):
		return c.inBodyModeHandler(t)
	case t.TokenType == endOfFileToken:
		c.stopParsing()
		return false, c.insertionMode
	}

	c.parseError(t, unexpectedToken)
	return true, inBody
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-after-frameset-insertion-mode
func (c *HTMLTreeConstructor) afterAfterFramesetModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case t.TokenType == commentToken:
		c.insertComment(t, c.HTMLDocument)
		return false, c.insertionMode
	case t.TokenType == docTypeToken, t.isWhitespace(), t.isStartTag("html"):
		return c.inBodyModeHandler(t)
	case t.TokenType == endOfFileToken:
		c.stopParsing()
		return false, c.insertionMode
	case t.isStartTag("noframes"):
		return c.inHeadModeHandler(t)
	}

	c.parseError(t, unexpectedToken)
	return false, c.insertionMode
}
