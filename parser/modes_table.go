package parser

var tableSectionTags = []string{"tbody", "tfoot", "thead"}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intable
func (c *HTMLTreeConstructor) inTableModeHandler(t *Token) (bool, insertionMode) {
	s := &c.stackOfOpenElements
	switch {
	case t.TokenType == characterToken:
		if c.getCurrentNode().IsHTML("table", "tbody", "template", "tfoot", "thead", "tr") {
			c.pendingTableCharacterTokens = c.pendingTableCharacterTokens[:0]
			c.originalInsertionMode = c.insertionMode
			return true, inTableText
		}
	case t.TokenType == commentToken:
		c.insertComment(t, nil)
		return false, c.insertionMode
	case t.TokenType == docTypeToken:
		c.parseError(t, unexpectedDoctype)
		return false, c.insertionMode
	case t.isStartTag("caption"):
		s.ClearBackToTableContext()
		c.activeFormattingElements.PushMarker()
		c.insertHTMLElementForToken(t)
		return false, inCaption
	case t.isStartTag("colgroup"):
		s.ClearBackToTableContext()
		c.insertHTMLElementForToken(t)
		return false, inColumnGroup
	case t.isStartTag("col"):
		s.ClearBackToTableContext()
		c.insertHTMLElementForToken(syntheticStartTag("colgroup"))
		return true, inColumnGroup
	case t.isStartTag(tableSectionTags...):
		s.ClearBackToTableContext()
		c.insertHTMLElementForToken(t)
		return false, inTableBody
	case t.isStartTag("td", "th", "tr"):
		s.ClearBackToTableContext()
		c.insertHTMLElementForToken(syntheticStartTag("tbody"))
		return true, inTableBody
	case t.isStartTag("table"):
		c.parseError(t, unexpectedStartTag)
		if !s.HasElementInTableScope("table") {
			return false, c.insertionMode
		}
		s.PopUntil("table")
		return true, c.resetInsertionMode()
	case t.isEndTag("table"):
		if !s.HasElementInTableScope("table") {
			c.parseError(t, unexpectedEndTag)
			return false, c.insertionMode
		}
		s.PopUntil("table")
		return false, c.resetInsertionMode()
	case t.isEndTag("body", "caption", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr"):
		c.parseError(t, unexpectedEndTag)
		return false, c.insertionMode
	case t.isStartTag("style", "script", "template"), t.isEndTag("template"):
		return c.inHeadModeHandler(t)
	case t.isStartTag("input"):
		typ, ok := t.Attr("type")
		if !ok || !equalFoldASCII(typ, "hidden") {
			break
		}
		c.parseError(t, unexpectedStartTag)
		c.insertVoidElement(t)
		return false, c.insertionMode
	case t.isStartTag("form"):
		c.parseError(t, unexpectedStartTag)
		if s.ContainsTemplateElement() || c.formElementPointer != nil {
			return false, c.insertionMode
		}
		c.formElementPointer = c.insertHTMLElementForToken(t)
		s.Pop()
		return false, c.insertionMode
	case t.TokenType == endOfFileToken:
		return c.inBodyModeHandler(t)
	}

	c.parseError(t, unexpectedToken)
	return c.fosterParent(t)
}

// fosterParent processes t with the in body rules while foster parenting
// is enabled.
func (c *HTMLTreeConstructor) fosterParent(t *Token) (bool, insertionMode) {
	c.fosterParenting = true
	defer func() { c.fosterParenting = false }()
	return c.inBodyModeHandler(t)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intabletext
func (c *HTMLTreeConstructor) inTableTextModeHandler(t *Token) (bool, insertionMode) {
	if t.TokenType == characterToken {
		if t.isNUL() {
			c.parseError(t, unexpectedNullCharacter)
			return false, c.insertionMode
		}
		c.pendingTableCharacterTokens = append(c.pendingTableCharacterTokens, t)
		return false, c.insertionMode
	}

	pending := c.pendingTableCharacterTokens
	c.pendingTableCharacterTokens = nil

	allWhitespace := true
	for _, p := range pending {
		if !p.isWhitespace() {
			allWhitespace = false
			break
		}
	}
	if allWhitespace {
		for _, p := range pending {
			c.insertCharacter(p.Data)
		}
		return true, c.originalInsertionMode
	}

	c.parseError(pending[0], unexpectedToken)
	for _, p := range pending {
		c.fosterParent(p)
	}
	return true, c.originalInsertionMode
}

// closeCaption pops the open caption. It reports false when there is none.
func (c *HTMLTreeConstructor) closeCaption(t *Token) bool {
	s := &c.stackOfOpenElements
	if !s.HasElementInTableScope("caption") {
		c.parseError(t, unexpectedToken)
		return false
	}
	c.generateImpliedEndTags()
	if !c.getCurrentNode().IsHTML("caption") {
		c.parseError(t, unexpectedToken)
	}
	s.PopUntil("caption")
	c.activeFormattingElements.ClearToLastMarker()
	return true
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incaption
func (c *HTMLTreeConstructor) inCaptionModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case t.isEndTag("caption"):
		if c.closeCaption(t) {
			return false, inTable
		}
		return false, c.insertionMode
	case t.isStartTag("caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr"),
		t.isEndTag("table"):
		if c.closeCaption(t) {
			return true, inTable
		}
		return false, c.insertionMode
	case t.isEndTag("body", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr"):
		c.parseError(t, unexpectedEndTag)
		return false, c.insertionMode
	}
	return c.inBodyModeHandler(t)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incolgroup
func (c *HTMLTreeConstructor) inColumnGroupModeHandler(t *Token) (bool, insertionMode) {
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
	case t.isStartTag("col"):
		c.insertVoidElement(t)
		return false, c.insertionMode
	case t.isEndTag("colgroup"):
		if !c.getCurrentNode().IsHTML("colgroup") {
			c.parseError(t, unexpectedEndTag)
			return false, c.insertionMode
		}
		c.stackOfOpenElements.Pop()
		return false, inTable
	case t.isEndTag("col"):
		c.parseError(t, unexpectedEndTag)
		return false, c.insertionMode
	case t.isStartTag("template"), t.isEndTag("template"):
		return c.inHeadModeHandler(t)
	case t.TokenType == endOfFileToken:
		return c.inBodyModeHandler(t)
	}

	if !c.getCurrentNode().IsHTML("colgroup") {
		c.parseError(t, unexpectedToken)
		return false, c.insertionMode
	}
	c.stackOfOpenElements.Pop()
	return true, inTable
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intbody
func (c *HTMLTreeConstructor) inTableBodyModeHandler(t *Token) (bool, insertionMode) {
	s := &c.stackOfOpenElements
	switch {
	case t.isStartTag("tr"):
		s.ClearBackToTableBodyContext()
		c.insertHTMLElementForToken(t)
		return false, inRow
	case t.isStartTag("th", "td"):
		c.parseError(t, unexpectedStartTag)
		s.ClearBackToTableBodyContext()
		c.insertHTMLElementForToken(syntheticStartTag("tr"))
		return true, inRow
	case t.isEndTag(tableSectionTags...):
		if !s.HasElementInTableScope(t.TagName) {
			c.parseError(t, unexpectedEndTag)
			return false, c.insertionMode
		}
		s.ClearBackToTableBodyContext()
		s.Pop()
		return false, inTable
	case t.isStartTag("caption", "col", "colgroup", "tbody", "tfoot", "thead"), t.isEndTag("table"):
		if !s.HasElementInTableScope(tableSectionTags...) {
			c.parseError(t, unexpectedToken)
			return false, c.insertionMode
		}
		s.ClearBackToTableBodyContext()
		s.Pop()
		return true, inTable
	case t.isEndTag("body", "caption", "col", "colgroup", "html", "td", "th", "tr"):
		c.parseError(t, unexpectedEndTag)
		return false, c.insertionMode
	}
	return c.inTableModeHandler(t)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intr
func (c *HTMLTreeConstructor) inRowModeHandler(t *Token) (bool, insertionMode) {
	s := &c.stackOfOpenElements
	switch {
	case t.isStartTag("th", "td"):
		s.ClearBackToTableRowContext()
		c.insertHTMLElementForToken(t)
		c.activeFormattingElements.PushMarker()
		return false, inCell
	case t.isEndTag("tr"):
		if !s.HasElementInTableScope("tr") {
			c.parseError(t, unexpectedEndTag)
			return false, c.insertionMode
		}
		s.ClearBackToTableRowContext()
		s.Pop()
		return false, inTableBody
	case t.isStartTag("caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr"), t.isEndTag("table"):
		if !s.HasElementInTableScope("tr") {
			c.parseError(t, unexpectedToken)
			return false, c.insertionMode
		}
		s.ClearBackToTableRowContext()
		s.Pop()
		return true, inTableBody
	case t.isEndTag(tableSectionTags...):
		if !s.HasElementInTableScope(t.TagName) {
			c.parseError(t, unexpectedEndTag)
			return false, c.insertionMode
		}
		if !s.HasElementInTableScope("tr") {
			return false, c.insertionMode
		}
		s.ClearBackToTableRowContext()
		s.Pop()
		return true, inTableBody
	case t.isEndTag("body", "caption", "col", "colgroup", "html", "td", "th"):
		c.parseError(t, unexpectedEndTag)
		return false, c.insertionMode
	}
	return c.inTableModeHandler(t)
}

// closeCell is https://html.spec.whatwg.org/multipage/parsing.html#close-the-cell
func (c *HTMLTreeConstructor) closeCell(t *Token) insertionMode {
	c.generateImpliedEndTags()
	if !c.getCurrentNode().IsHTML("td", "th") {
		c.parseError(t, unexpectedToken)
	}
	c.stackOfOpenElements.PopUntil("td", "th")
	c.activeFormattingElements.ClearToLastMarker()
	return inRow
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intd
func (c *HTMLTreeConstructor) inCellModeHandler(t *Token) (bool, insertionMode) {
	s := &c.stackOfOpenElements
	switch {
	case t.isEndTag("td", "th"):
		if !s.HasElementInTableScope(t.TagName) {
			c.parseError(t, unexpectedEndTag)
			return false, c.insertionMode
		}
		c.generateImpliedEndTags()
		if !c.getCurrentNode().IsHTML(t.TagName) {
			c.parseError(t, unexpectedEndTag)
		}
		s.PopUntil(t.TagName)
		c.activeFormattingElements.ClearToLastMarker()
		return false, inRow
	case t.isStartTag("caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr"):
		if !s.HasElementInTableScope("td", "th") {
			c.parseError(t, unexpectedStartTag)
			return false, c.insertionMode
		}
		return true, c.closeCell(t)
	case t.isEndTag("body", "caption", "col", "colgroup", "html"):
		c.parseError(t, unexpectedEndTag)
		return false, c.insertionMode
	case t.isEndTag("table", "tbody", "tfoot", "thead", "tr"):
		if !s.HasElementInTableScope(t.TagName) {
			c.parseError(t, unexpectedEndTag)
			return false, c.insertionMode
		}
		return true, c.closeCell(t)
	}
	return c.inBodyModeHandler(t)
}
