package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenizerAttributeAccuracyTestcase struct {
	inHTML string            // snippet of HTML to tokenize (should only be one element)
	attrs  map[string]string // expected attributes to collected from the first token that is produced
}

var tokenizerAttributeAccuracyTests = []tokenizerAttributeAccuracyTestcase{
	{"<head></head>", map[string]string{}},
	{"<script src='123' onload='test'></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<a href='https://google.com' onclick='alert(1)'>Click this</a>", map[string]string{
		"href":    "https://google.com",
		"onclick": "alert(1)",
	}},
	{"<script src='123' src='456'></script>", map[string]string{
		"src": "123",
	}},
	{"<script src=123 onload=test></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<script src='123' onload='test' ></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<script =src='123'onload='test' ></script>", map[string]string{
		"=src":   "123",
		"onload": "test",
	}},
	{"<script src></script>", map[string]string{
		"src": "",
	}},
	{"<script src test></script>", map[string]string{
		"src":  "",
		"test": "",
	}},
	{"<script 'asd></script>", map[string]string{
		"'asd": "",
	}},
	{"<script <asd></script>", map[string]string{
		"<asd": "",
	}},
	{"<script ABC=123></script>", map[string]string{
		"abc": "123",
	}},
	{"<script abc='\u0000123'></script>", map[string]string{
		"abc": "\uFFFD123",
	}},
	{"<script abc=></script>", map[string]string{
		"abc": "",
	}},
	{"<script\tabc=123></script>", map[string]string{
		"abc": "123",
	}},
}

// TestTokenizerAttributeAccuracy makes sure the first token carries the
// right attribute names and values, with duplicates dropped.
func TestTokenizerAttributeAccuracy(t *testing.T) {
	for _, tt := range tokenizerAttributeAccuracyTests {
		tt := tt
		t.Run(tt.inHTML, func(t *testing.T) {
			t.Parallel()
			p := NewHTMLTokenizer(strings.NewReader(tt.inHTML))
			token, err := p.Token(nil)
			require.NoError(t, err)
			assert.Len(t, token.Attributes, len(tt.attrs))
			for k, v := range tt.attrs {
				got, ok := token.Attr(k)
				if assert.True(t, ok, "missing attribute %s", k) {
					assert.Equal(t, v, got)
				}
			}
		})
	}
}

func collectTokens(t *testing.T, p *HTMLTokenizer, progress func(*Token) *Progress) []*Token {
	t.Helper()
	var tokens []*Token
	var prog *Progress
	for p.Next() {
		tok, err := p.Token(prog)
		require.NoError(t, err)
		tokens = append(tokens, tok)
		prog = progress(tok)
	}
	return tokens
}

func tokenStrings(tokens []*Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.String())
	}
	return out
}

func TestTokenizerTextStates(t *testing.T) {
	rcdata := rcDataState
	tests := []struct {
		name     string
		in       string
		progress func(*Token) *Progress
		want     []string
	}{
		{
			name: "title stays RCDATA when requested",
			in:   "<title><b>x</b></title>",
			progress: func(tok *Token) *Progress {
				if tok.isStartTag("title") {
					return MakeProgress(nil, &rcdata)
				}
				return nil
			},
			want: []string{"<title>", `"<b>x</b>"`, "</title>", "EOF"},
		},
		{
			name:     "noscript parsed as markup when no text state is requested",
			in:       "<noscript><b>x</b></noscript>",
			progress: func(*Token) *Progress { return MakeProgress(nil, nil) },
			want:     []string{"<noscript>", "<b>", `"x"`, "</b>", "</noscript>", "EOF"},
		},
		{
			name:     "character runs are split by class",
			in:       "a \x00b",
			progress: func(*Token) *Progress { return nil },
			want:     []string{`"a"`, `" "`, `"\x00"`, `"b"`, "EOF"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := tokenStrings(collectTokens(t, NewHTMLTokenizer(strings.NewReader(tt.in)), tt.progress))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseDoctype(t *testing.T) {
	str := func(s string) *string { return &s }
	tests := []struct {
		in          string
		name        string
		public      *string
		system      *string
		forceQuirks bool
	}{
		{in: "html", name: "html"},
		{in: "HTML", name: "html"},
		{in: "", forceQuirks: true},
		{in: "html junk", name: "html", forceQuirks: true},
		{in: `html PUBLIC "-//W3C//DTD HTML 4.01//EN"`, name: "html", public: str("-//W3C//DTD HTML 4.01//EN")},
		{
			in:     `html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd"`,
			name:   "html",
			public: str("-//W3C//DTD HTML 4.01//EN"),
			system: str("http://www.w3.org/TR/html4/strict.dtd"),
		},
		{in: `html SYSTEM "about:legacy-compat"`, name: "html", system: str("about:legacy-compat")},
		{in: `html SYSTEM 'about:legacy-compat'`, name: "html", system: str("about:legacy-compat")},
		{in: "html PUBLIC", name: "html", forceQuirks: true},
		{in: `html PUBLIC "unterminated`, name: "html", public: str("unterminated"), forceQuirks: true},
		{in: "html PUBLIC noquote", name: "html", forceQuirks: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			tok := parseDoctype(tt.in)
			assert.Equal(t, docTypeToken, tok.TokenType)
			assert.Equal(t, tt.name, tok.TagName)
			assert.Equal(t, tt.public, tok.PublicIdentifier)
			assert.Equal(t, tt.system, tok.SystemIdentifier)
			assert.Equal(t, tt.forceQuirks, tok.ForceQuirks)
		})
	}
}

func TestDedupeAttributesKeepsFirst(t *testing.T) {
	p := NewHTMLTokenizer(strings.NewReader(`<div id=a class=b ID=c>`))
	tok, err := p.Token(nil)
	require.NoError(t, err)
	v, ok := tok.Attr("id")
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Len(t, tok.Attributes, 2)
}
