package parser

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reported struct {
	code      string
	line, col int
}

func preprocess(t *testing.T, r io.Reader) (string, []reported) {
	t.Helper()
	var errs []reported
	p := newPreprocessor(r, func(code string, line, col int) {
		errs = append(errs, reported{code, line, col})
	})
	out, err := io.ReadAll(p)
	require.NoError(t, err)
	return string(out), errs
}

func TestPreprocessorNormalizesNewlines(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a\r\nb", "a\nb"},
		{"a\rb", "a\nb"},
		{"a\r\r\nb", "a\n\nb"},
		{"a\r", "a\n"},
		{"a\n\rb", "a\n\nb"},
		{"no newline", "no newline"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			got, errs := preprocess(t, strings.NewReader(tt.in))
			assert.Equal(t, tt.want, got)
			assert.Empty(t, errs)
		})
	}
}

func TestPreprocessorSplitCRLF(t *testing.T) {
	got, _ := preprocess(t, iotest.OneByteReader(strings.NewReader("x\r\ny\r\n")))
	assert.Equal(t, "x\ny\n", got)
}

func TestPreprocessorReportsCodePoints(t *testing.T) {
	got, errs := preprocess(t, strings.NewReader("ab\x01\ncd\uFDD0\x7F\tok\x00"))
	assert.Equal(t, "ab\x01\ncd\uFDD0\x7F\tok\x00", got, "code points are reported, not dropped")
	assert.Equal(t, []reported{
		{"control-character-in-input-stream", 1, 3},
		{"noncharacter-in-input-stream", 2, 3},
		{"control-character-in-input-stream", 2, 4},
	}, errs)
}

func TestNonCharacters(t *testing.T) {
	for _, code := range []int{0xFDD0, 0xFDEF, 0xFFFE, 0xFFFF, 0x1FFFE, 0x10FFFF} {
		assert.True(t, isNonCharacter(code), "%X", code)
	}
	for _, code := range []int{0xFDCF, 0xFDF0, 0xFFFD, 0x1FFFD, 'a'} {
		assert.False(t, isNonCharacter(code), "%X", code)
	}
}
