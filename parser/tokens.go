package parser

import (
	"fmt"
	"strings"

	"github.com/heathj/htmltree/parser/dom"
)

type tokenType uint

const (
	characterToken tokenType = iota
	startTagToken
	endTagToken
	endOfFileToken
	commentToken
	docTypeToken
)

func (t tokenType) String() string {
	switch t {
	case characterToken:
		return "character"
	case startTagToken:
		return "start tag"
	case endTagToken:
		return "end tag"
	case endOfFileToken:
		return "end of file"
	case commentToken:
		return "comment"
	case docTypeToken:
		return "doctype"
	}
	return fmt.Sprintf("tokenType(%d)", uint(t))
}

// Token is a concrete token that is ready to be consumed by the tree
// constructor. A nil identifier is a missing identifier.
type Token struct {
	TokenType        tokenType
	Attributes       []dom.Attr
	TagName          string
	PublicIdentifier *string
	SystemIdentifier *string
	ForceQuirks      bool
	SelfClosing      bool
	Acknowledged     bool
	Data             string
}

// Attr returns the value of the attribute with the given name.
func (t *Token) Attr(name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.LocalName == name && a.Namespace == dom.Nons {
			return a.Value, true
		}
	}
	return "", false
}

// AcknowledgeSelfClosing marks the self-closing flag as handled.
func (t *Token) AcknowledgeSelfClosing() {
	t.Acknowledged = true
}

func (t *Token) String() string {
	switch t.TokenType {
	case startTagToken:
		return "<" + t.TagName + ">"
	case endTagToken:
		return "</" + t.TagName + ">"
	case commentToken:
		return "<!--" + t.Data + "-->"
	case docTypeToken:
		return "<!DOCTYPE " + t.TagName + ">"
	case characterToken:
		return fmt.Sprintf("%q", t.Data)
	}
	return "EOF"
}

// isWhitespace reports whether a character token only carries ASCII whitespace.
func (t *Token) isWhitespace() bool {
	return t.TokenType == characterToken && t.Data != "" && strings.Trim(t.Data, whitespace) == ""
}

// isNUL reports whether a character token only carries U+0000.
func (t *Token) isNUL() bool {
	return t.TokenType == characterToken && t.Data != "" && strings.Trim(t.Data, "\x00") == ""
}

func (t *Token) isStartTag(names ...string) bool {
	return t.TokenType == startTagToken && oneOf(t.TagName, names...)
}

func (t *Token) isEndTag(names ...string) bool {
	return t.TokenType == endTagToken && oneOf(t.TagName, names...)
}

const whitespace = "\t\n\f\r "

func oneOf(s string, list ...string) bool {
	for _, l := range list {
		if s == l {
			return true
		}
	}
	return false
}

// splitCharacterRuns breaks text into runs of whitespace, NUL and other
// characters so each character token has a single class.
func splitCharacterRuns(s string) []string {
	class := func(r rune) int {
		switch {
		case r == 0:
			return 1
		case strings.ContainsRune(whitespace, r):
			return 2
		}
		return 0
	}
	var (
		runs  []string
		start int
		cur   = -1
	)
	for i, r := range s {
		c := class(r)
		if cur != -1 && c != cur {
			runs = append(runs, s[start:i])
			start = i
		}
		cur = c
	}
	if start < len(s) {
		runs = append(runs, s[start:])
	}
	return runs
}

func dedupeAttributes(attrs []dom.Attr) []dom.Attr {
	out := attrs[:0]
	seen := make(map[string]struct{}, len(attrs))
	for _, a := range attrs {
		if _, ok := seen[a.LocalName]; ok {
			continue
		}
		seen[a.LocalName] = struct{}{}
		out = append(out, a)
	}
	return out
}
