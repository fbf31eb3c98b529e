package parser

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ParseError is a recoverable deviation from the HTML grammar. The parser
// always recovers from it; it is only reported.
type ParseError struct {
	Code  string
	Mode  string
	Token string
	Line  int
	Col   int
}

func (e ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Code)
	}
	if e.Token != "" {
		return fmt.Sprintf("%s: %s in %s", e.Code, e.Token, e.Mode)
	}
	return e.Code
}

// ErrorHandler receives every parse error in the order it is found.
type ErrorHandler func(ParseError)

// common parse error codes raised by tree construction.
const (
	unexpectedToken         = "unexpected-token"
	unexpectedStartTag      = "unexpected-start-tag"
	unexpectedEndTag        = "unexpected-end-tag"
	unexpectedDoctype       = "unexpected-doctype"
	unexpectedNullCharacter = "unexpected-null-character"
	unexpectedEOF           = "unexpected-eof"
	nonConformingDoctype    = "non-conforming-doctype"
	missingDoctype          = "missing-doctype"
	misnestedTag            = "misnested-tag"
	nonVoidSelfClosing      = "non-void-html-element-start-tag-with-trailing-solidus"
	foreignBreakout         = "html-start-tag-in-foreign-content"
)

func (c *HTMLTreeConstructor) parseError(t *Token, code string) {
	pe := ParseError{Code: code, Mode: c.insertionMode.String()}
	if t != nil {
		pe.Token = t.String()
	}
	c.reportError(pe)
}

func (c *HTMLTreeConstructor) reportError(pe ParseError) {
	c.log.WithFields(logrus.Fields{
		"code":  pe.Code,
		"mode":  pe.Mode,
		"token": pe.Token,
	}).Debug("parse error")
	if c.config.errorHandler != nil {
		c.config.errorHandler(pe)
	}
}

// inputError reports a parse error found while preprocessing the input stream.
func (c *HTMLTreeConstructor) inputError(code string, line, col int) {
	c.reportError(ParseError{Code: code, Line: line, Col: col})
}
