package parser

import (
	"io"
	"strings"

	"github.com/heathj/htmltree/parser/dom"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

type tokenizerState uint

const (
	dataState tokenizerState = iota
	rcDataState
	rawTextState
	scriptDataState
	plaintextState
)

func (s tokenizerState) String() string {
	switch s {
	case dataState:
		return "data"
	case rcDataState:
		return "RCDATA"
	case rawTextState:
		return "RAWTEXT"
	case scriptDataState:
		return "script data"
	case plaintextState:
		return "PLAINTEXT"
	}
	return "unknown"
}

// the lexer switches into a text state by itself after these start tags.
var rawTextTags = []string{
	"iframe", "noembed", "noframes", "noscript", "plaintext",
	"script", "style", "textarea", "title", "xmp",
}

// HTMLTokenizer turns the preprocessed input stream into Tokens. The lexing
// itself is done by golang.org/x/net/html; the tree constructor steers it
// through the Progress handed to Token.
type HTMLTokenizer struct {
	z          *html.Tokenizer
	pending    []*Token
	done       bool
	lastRawTag bool
}

func NewHTMLTokenizer(r io.Reader) *HTMLTokenizer {
	return &HTMLTokenizer{z: html.NewTokenizer(r)}
}

// newFragmentTokenizer starts the lexer in the text state implied by
// startState. contextTag names the element whose end tag closes the text.
func newFragmentTokenizer(r io.Reader, contextTag string, startState tokenizerState) *HTMLTokenizer {
	if startState == dataState {
		return NewHTMLTokenizer(r)
	}
	return &HTMLTokenizer{z: html.NewTokenizerFragment(r, contextTag)}
}

// Next reports whether there are tokens left, including the end of file token.
func (p *HTMLTokenizer) Next() bool {
	return !p.done
}

// Token returns the next token after applying the state requested by the tree
// constructor.
func (p *HTMLTokenizer) Token(progress *Progress) (*Token, error) {
	for len(p.pending) == 0 {
		p.applyProgress(progress)
		if err := p.read(); err != nil {
			return nil, err
		}
	}

	t := p.pending[0]
	p.pending = p.pending[1:]
	if t.TokenType == endOfFileToken {
		p.done = true
	}
	return t, nil
}

func (p *HTMLTokenizer) applyProgress(progress *Progress) {
	if progress == nil {
		return
	}
	acn := progress.AdjustedCurrentNode
	p.z.AllowCDATA(acn != nil && acn.NodeType == dom.ElementNode && acn.NamespaceURI != dom.Htmlns)

	if p.lastRawTag && (progress.TokenizerState == nil || *progress.TokenizerState == dataState) {
		p.z.NextIsNotRawText()
	}
	p.lastRawTag = false
}

func (p *HTMLTokenizer) read() error {
	tt := p.z.Next()
	if tt == html.ErrorToken {
		if err := p.z.Err(); err != io.EOF {
			return errors.Wrap(err, "reading token")
		}
		p.pending = append(p.pending, &Token{TokenType: endOfFileToken})
		return nil
	}

	tok := p.z.Token()
	switch tt {
	case html.TextToken:
		for _, run := range splitCharacterRuns(tok.Data) {
			p.pending = append(p.pending, &Token{TokenType: characterToken, Data: run})
		}
	case html.StartTagToken, html.SelfClosingTagToken:
		p.pending = append(p.pending, &Token{
			TokenType:   startTagToken,
			TagName:     replaceNUL(tok.Data),
			Attributes:  convertAttributes(tok.Attr),
			SelfClosing: tt == html.SelfClosingTagToken,
		})
		p.lastRawTag = oneOf(tok.Data, rawTextTags...)
	case html.EndTagToken:
		p.pending = append(p.pending, &Token{
			TokenType:  endTagToken,
			TagName:    replaceNUL(tok.Data),
			Attributes: convertAttributes(tok.Attr),
		})
	case html.CommentToken:
		p.pending = append(p.pending, &Token{TokenType: commentToken, Data: tok.Data})
	case html.DoctypeToken:
		p.pending = append(p.pending, parseDoctype(tok.Data))
	}
	return nil
}

func convertAttributes(attrs []html.Attribute) []dom.Attr {
	out := make([]dom.Attr, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, dom.Attr{LocalName: replaceNUL(a.Key), Value: replaceNUL(a.Val)})
	}
	return dedupeAttributes(out)
}

// replaceNUL swaps U+0000 in tag and attribute names and values for U+FFFD,
// which x/net leaves in place.
func replaceNUL(s string) string {
	return strings.ReplaceAll(s, "\x00", "\uFFFD")
}

// parseDoctype splits the raw DOCTYPE data into a name and the public and
// system identifiers, setting force-quirks where the doctype is malformed.
func parseDoctype(s string) *Token {
	t := &Token{TokenType: docTypeToken}
	s = strings.TrimLeft(s, whitespace)

	space := strings.IndexAny(s, whitespace)
	if space == -1 {
		space = len(s)
	}
	t.TagName = strings.ToLower(s[:space])
	if t.TagName == "" {
		t.ForceQuirks = true
		return t
	}
	s = strings.TrimLeft(s[space:], whitespace)
	if s == "" {
		return t
	}
	if len(s) < 6 {
		t.ForceQuirks = true
		return t
	}

	key := strings.ToLower(s[:6])
	if key != "public" && key != "system" {
		t.ForceQuirks = true
		return t
	}
	s = s[6:]
	for key == "public" || key == "system" {
		s = strings.TrimLeft(s, whitespace)
		if s == "" {
			if key == "public" || t.SystemIdentifier == nil && t.PublicIdentifier == nil {
				t.ForceQuirks = true
			}
			break
		}
		quote := s[0]
		if quote != '"' && quote != '\'' {
			t.ForceQuirks = true
			break
		}
		s = s[1:]
		q := strings.IndexByte(s, quote)
		var id string
		if q == -1 {
			id, s = s, ""
			t.ForceQuirks = true
		} else {
			id, s = s[:q], s[q+1:]
		}
		if key == "public" {
			t.PublicIdentifier = &id
			key = "system"
		} else {
			t.SystemIdentifier = &id
			key = ""
		}
	}
	return t
}
