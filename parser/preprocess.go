package parser

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// preprocessor is https://html.spec.whatwg.org/multipage/parsing.html#preprocessing-the-input-stream
// It normalizes newlines and reports code points that are parse errors
// without dropping them.
type preprocessor struct {
	inputStream *bufio.Reader
	report      func(code string, line, col int)
	line, col   int
	pending     []byte
	err         error
}

func newPreprocessor(r io.Reader, report func(code string, line, col int)) *preprocessor {
	return &preprocessor{
		inputStream: bufio.NewReader(r),
		report:      report,
		line:        1,
	}
}

func (p *preprocessor) Read(b []byte) (int, error) {
	n := copy(b, p.pending)
	p.pending = p.pending[n:]
	for n < len(b) && p.err == nil {
		r, _, err := p.inputStream.ReadRune()
		if err != nil {
			p.err = err
			break
		}
		r = p.normalizeNewlines(r)
		p.check(r)
		var enc [utf8.UTFMax]byte
		size := utf8.EncodeRune(enc[:], r)
		c := copy(b[n:], enc[:size])
		n += c
		p.pending = append(p.pending, enc[c:size]...)
	}
	if n == 0 && p.err != nil {
		return 0, p.err
	}
	return n, nil
}

func (p *preprocessor) normalizeNewlines(r rune) rune {
	if r == '\u000D' {
		b, err := p.inputStream.Peek(1)
		if err != nil {
			return '\u000A'
		}
		if len(b) > 0 && b[0] == '\u000A' {
			_, _ = p.inputStream.Discard(1)
		}
		return '\u000A'
	}
	return r
}

func (p *preprocessor) check(r rune) {
	if r == '\n' {
		p.line++
		p.col = 0
		return
	}
	p.col++
	if p.report == nil {
		return
	}
	code := int(r)
	switch {
	case isSurrogate(code):
		p.report("surrogate-in-input-stream", p.line, p.col)
	case isNonCharacter(code):
		p.report("noncharacter-in-input-stream", p.line, p.col)
	case isControl(code) && !isASCIIWhitespace(code) && code != 0:
		p.report("control-character-in-input-stream", p.line, p.col)
	}
}

func isNonCharacter(code int) bool {
	if code >= 0xFDD0 && code <= 0xFDEF {
		return true
	}
	// U+FFFE and U+FFFF in every plane
	return code&0xFFFE == 0xFFFE && code <= 0x10FFFF
}

func isC0Control(code int) bool {
	return code >= 0x00 && code <= 0x1F
}

func isControl(code int) bool {
	return isC0Control(code) || (code >= 0x7F && code <= 0x9F)
}

func isASCIIWhitespace(code int) bool {
	switch code {
	case 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	default:
		return false
	}
}

func isSurrogate(code int) bool {
	return code >= 0xD800 && code <= 0xDFFF
}
