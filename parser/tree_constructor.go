package parser

import (
	"github.com/heathj/htmltree/parser/dom"
	"github.com/sirupsen/logrus"
)

type frameset uint

const (
	framesetOK frameset = iota
	framesetNotOK
)

type insertionMode uint

const (
	initial insertionMode = iota
	beforeHTML
	beforeHead
	inHead
	inHeadNoScript
	afterHead
	inBody
	text
	inTable
	inTableText
	inCaption
	inColumnGroup
	inTableBody
	inRow
	inCell
	inSelect
	inSelectInTable
	inTemplate
	afterBody
	inFrameset
	afterFrameset
	afterAfterBody
	afterAfterFrameset
)

var insertionModeNames = [...]string{
	initial:            "initial",
	beforeHTML:         "before html",
	beforeHead:         "before head",
	inHead:             "in head",
	inHeadNoScript:     "in head noscript",
	afterHead:          "after head",
	inBody:             "in body",
	text:               "text",
	inTable:            "in table",
	inTableText:        "in table text",
	inCaption:          "in caption",
	inColumnGroup:      "in column group",
	inTableBody:        "in table body",
	inRow:              "in row",
	inCell:             "in cell",
	inSelect:           "in select",
	inSelectInTable:    "in select in table",
	inTemplate:         "in template",
	afterBody:          "after body",
	inFrameset:         "in frameset",
	afterFrameset:      "after frameset",
	afterAfterBody:     "after after body",
	afterAfterFrameset: "after after frameset",
}

func (m insertionMode) String() string {
	if int(m) < len(insertionModeNames) {
		return insertionModeNames[m]
	}
	return "unknown"
}

// treeConstructionModeHandler processes a token in one insertion mode. It
// returns whether the token must be reprocessed and the insertion mode to
// continue in.
type treeConstructionModeHandler func(t *Token) (bool, insertionMode)

// HTMLTreeConstructor holds the state of the tree construction stage.
type HTMLTreeConstructor struct {
	config                      htmlParserConfig
	log                         *logrus.Entry
	HTMLDocument                *dom.Node
	insertionMode               insertionMode
	originalInsertionMode       insertionMode
	templateInsertionModes      []insertionMode
	stackOfOpenElements         StackOfOpenElements
	activeFormattingElements    ActiveFormattingElements
	headElementPointer          *dom.Node
	formElementPointer          *dom.Node
	context                     *dom.Node
	fosterParenting             bool
	frameset                    frameset
	pendingTableCharacterTokens []*Token
	ignoreNextLineFeed          bool
	requestedState              *tokenizerState
	stopped                     bool
	err                         error
	mappings                    map[insertionMode]treeConstructionModeHandler
}

// NewHTMLTreeConstructor creates an HTMLTreeConstructor building into a fresh document.
func NewHTMLTreeConstructor(cfg htmlParserConfig) *HTMLTreeConstructor {
	tr := HTMLTreeConstructor{
		config:       cfg,
		log:          cfg.log,
		HTMLDocument: dom.NewHTMLDocumentNode(),
		frameset:     framesetOK,
	}
	tr.HTMLDocument.IframeSrcdoc = cfg.iframeSrcdoc
	tr.createMappings()
	return &tr
}

func (c *HTMLTreeConstructor) createMappings() {
	c.mappings = map[insertionMode]treeConstructionModeHandler{
		initial:            c.initialModeHandler,
		beforeHTML:         c.beforeHTMLModeHandler,
		beforeHead:         c.beforeHeadModeHandler,
		inHead:             c.inHeadModeHandler,
		inHeadNoScript:     c.inHeadNoScriptModeHandler,
		afterHead:          c.afterHeadModeHandler,
		inBody:             c.inBodyModeHandler,
		text:               c.textModeHandler,
		inTable:            c.inTableModeHandler,
		inTableText:        c.inTableTextModeHandler,
		inCaption:          c.inCaptionModeHandler,
		inColumnGroup:      c.inColumnGroupModeHandler,
		inTableBody:        c.inTableBodyModeHandler,
		inRow:              c.inRowModeHandler,
		inCell:             c.inCellModeHandler,
		inSelect:           c.inSelectModeHandler,
		inSelectInTable:    c.inSelectInTableModeHandler,
		inTemplate:         c.inTemplateModeHandler,
		afterBody:          c.afterBodyModeHandler,
		inFrameset:         c.inFramesetModeHandler,
		afterFrameset:      c.afterFramesetModeHandler,
		afterAfterBody:     c.afterAfterBodyModeHandler,
		afterAfterFrameset: c.afterAfterFramesetModeHandler,
	}
}

// ProcessToken runs one token through tree construction, including every
// reprocessing step, and reports what the tokenizer should do next.
func (c *HTMLTreeConstructor) ProcessToken(t *Token) *Progress {
	c.requestedState = nil
	if c.stopped || c.err != nil {
		return MakeProgress(c.adjustedCurrentNode(), nil)
	}

	if c.ignoreNextLineFeed {
		c.ignoreNextLineFeed = false
		if t.TokenType == characterToken && t.Data != "" && t.Data[0] == '\n' {
			t.Data = t.Data[1:]
			if t.Data == "" {
				return MakeProgress(c.adjustedCurrentNode(), nil)
			}
		}
	}

	reprocess := true
	for reprocess && !c.stopped && c.err == nil {
		if c.useHTMLRules(t) {
			reprocess = c.useRulesFor(t, c.insertionMode)
		} else {
			reprocess = c.processForeignContent(t)
		}
	}
	if t.TokenType == startTagToken && t.SelfClosing && !t.Acknowledged {
		c.parseError(t, nonVoidSelfClosing)
	}
	return MakeProgress(c.adjustedCurrentNode(), c.requestedState)
}

// useRulesFor processes t with the rules of mode and moves to the mode the
// handler picked.
func (c *HTMLTreeConstructor) useRulesFor(t *Token, mode insertionMode) bool {
	reprocess, next := c.mappings[mode](t)
	if next != c.insertionMode {
		c.log.WithFields(logrus.Fields{"from": c.insertionMode, "to": next}).Trace("switching insertion mode")
		c.insertionMode = next
	}
	return reprocess
}

// useHTMLRules is the tree construction dispatcher.
func (c *HTMLTreeConstructor) useHTMLRules(t *Token) bool {
	acn := c.adjustedCurrentNode()
	switch {
	case acn == nil, acn.NamespaceURI == dom.Htmlns:
		return true
	case isMathMLTextIntegrationPoint(acn) &&
		(t.TokenType == characterToken || t.TokenType == startTagToken && !oneOf(t.TagName, "mglyph", "malignmark")):
		return true
	case acn.Is(dom.Mathmlns, "annotation-xml") && t.isStartTag("svg"):
		return true
	case isHTMLIntegrationPoint(acn) && (t.TokenType == startTagToken || t.TokenType == characterToken):
		return true
	case t.TokenType == endOfFileToken:
		return true
	}
	return false
}

func (c *HTMLTreeConstructor) getCurrentNode() *dom.Node {
	return c.stackOfOpenElements.Top()
}

func (c *HTMLTreeConstructor) isFragmentCase() bool {
	return c.context != nil
}

// adjustedCurrentNode is https://html.spec.whatwg.org/multipage/parsing.html#adjusted-current-node
func (c *HTMLTreeConstructor) adjustedCurrentNode() *dom.Node {
	if c.isFragmentCase() && c.stackOfOpenElements.Len() == 1 {
		return c.context
	}
	return c.getCurrentNode()
}

func (c *HTMLTreeConstructor) switchTokenizer(s tokenizerState) {
	c.requestedState = &s
}

func (c *HTMLTreeConstructor) stopParsing() {
	c.stackOfOpenElements.NodeList = nil
	c.HTMLDocument.ReadyState = dom.Complete
	c.stopped = true
}

func (c *HTMLTreeConstructor) pushTemplateMode(m insertionMode) {
	c.templateInsertionModes = append(c.templateInsertionModes, m)
}

func (c *HTMLTreeConstructor) popTemplateMode() {
	if len(c.templateInsertionModes) > 0 {
		c.templateInsertionModes = c.templateInsertionModes[:len(c.templateInsertionModes)-1]
	}
}

func (c *HTMLTreeConstructor) currentTemplateMode() insertionMode {
	return c.templateInsertionModes[len(c.templateInsertionModes)-1]
}

// resetInsertionMode is https://html.spec.whatwg.org/multipage/parsing.html#reset-the-insertion-mode-appropriately
func (c *HTMLTreeConstructor) resetInsertionMode() insertionMode {
	s := &c.stackOfOpenElements
	for i := s.Len() - 1; i >= 0; i-- {
		node := s.At(i)
		last := i == 0
		if last && c.isFragmentCase() {
			node = c.context
		}
		if node.NamespaceURI != dom.Htmlns {
			if last {
				return inBody
			}
			continue
		}
		switch node.LocalName {
		case "select":
			if !last {
				for j := i - 1; j >= 0; j-- {
					ancestor := s.At(j)
					if ancestor.IsHTML("template") {
						break
					}
					if ancestor.IsHTML("table") {
						return inSelectInTable
					}
				}
			}
			return inSelect
		case "td", "th":
			if !last {
				return inCell
			}
		case "tr":
			return inRow
		case "tbody", "thead", "tfoot":
			return inTableBody
		case "caption":
			return inCaption
		case "colgroup":
			return inColumnGroup
		case "table":
			return inTable
		case "template":
			return c.currentTemplateMode()
		case "head":
			if !last {
				return inHead
			}
		case "body":
			return inBody
		case "frameset":
			return inFrameset
		case "html":
			if c.headElementPointer == nil {
				return beforeHead
			}
			return afterHead
		}
		if last {
			return inBody
		}
	}
	return inBody
}

var impliedEndTags = []string{"dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc"}

var thoroughlyImpliedEndTags = []string{
	"caption", "colgroup", "dd", "dt", "li", "optgroup", "option", "p",
	"rb", "rp", "rt", "rtc", "tbody", "td", "tfoot", "th", "thead", "tr",
}

// generateImpliedEndTags is https://html.spec.whatwg.org/multipage/parsing.html#generate-implied-end-tags
func (c *HTMLTreeConstructor) generateImpliedEndTags(except ...string) {
	for {
		top := c.getCurrentNode()
		if !top.IsHTML(impliedEndTags...) || top.IsHTML(except...) {
			return
		}
		c.stackOfOpenElements.Pop()
	}
}

func (c *HTMLTreeConstructor) generateAllImpliedEndTagsThoroughly() {
	for c.getCurrentNode().IsHTML(thoroughlyImpliedEndTags...) {
		c.stackOfOpenElements.Pop()
	}
}

var specialElements = []string{
	"address", "applet", "area", "article", "aside", "base", "basefont", "bgsound",
	"blockquote", "body", "br", "button", "caption", "center", "col", "colgroup", "dd",
	"details", "dir", "div", "dl", "dt", "embed", "fieldset", "figcaption", "figure",
	"footer", "form", "frame", "frameset", "h1", "h2", "h3", "h4", "h5", "h6", "head",
	"header", "hgroup", "hr", "html", "iframe", "img", "input", "keygen", "li", "link",
	"listing", "main", "marquee", "menu", "meta", "nav", "noembed", "noframes", "noscript",
	"object", "ol", "p", "param", "plaintext", "pre", "script", "search", "section", "select",
	"source", "style", "summary", "table", "tbody", "td", "template", "textarea", "tfoot",
	"th", "thead", "title", "tr", "track", "ul", "wbr", "xmp",
}

// isSpecial is https://html.spec.whatwg.org/multipage/parsing.html#special
func isSpecial(n *dom.Node) bool {
	return n.IsHTML(specialElements...) ||
		n.Is(dom.Mathmlns, "mi", "mo", "mn", "ms", "mtext", "annotation-xml") ||
		n.Is(dom.Svgns, "foreignObject", "desc", "title")
}

func isMathMLTextIntegrationPoint(n *dom.Node) bool {
	return n.Is(dom.Mathmlns, "mi", "mo", "mn", "ms", "mtext")
}

// isHTMLIntegrationPoint is https://html.spec.whatwg.org/multipage/parsing.html#html-integration-point
func isHTMLIntegrationPoint(n *dom.Node) bool {
	if n.Is(dom.Mathmlns, "annotation-xml") {
		enc, _ := n.GetAttribute("encoding")
		return equalFoldASCII(enc, "text/html") || equalFoldASCII(enc, "application/xhtml+xml")
	}
	return n.Is(dom.Svgns, "foreignObject", "desc", "title")
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		x, y := a[i], b[i]
		if 'A' <= x && x <= 'Z' {
			x += 'a' - 'A'
		}
		if 'A' <= y && y <= 'Z' {
			y += 'a' - 'A'
		}
		if x != y {
			return false
		}
	}
	return true
}

// genericRawTextElementParsing is https://html.spec.whatwg.org/multipage/parsing.html#generic-raw-text-element-parsing-algorithm
// and its RCDATA twin, picked by state.
func (c *HTMLTreeConstructor) genericTextElementParsing(t *Token, state tokenizerState) (bool, insertionMode) {
	c.insertHTMLElementForToken(t)
	c.switchTokenizer(state)
	c.originalInsertionMode = c.insertionMode
	return false, text
}

// closePElement is https://html.spec.whatwg.org/multipage/parsing.html#close-a-p-element
func (c *HTMLTreeConstructor) closePElement(t *Token) {
	c.generateImpliedEndTags("p")
	if !c.getCurrentNode().IsHTML("p") {
		c.parseError(t, unexpectedEndTag)
	}
	c.stackOfOpenElements.PopUntil("p")
}

func (c *HTMLTreeConstructor) closePElementInButtonScope(t *Token) {
	if c.stackOfOpenElements.HasElementInButtonScope("p") {
		c.closePElement(t)
	}
}
