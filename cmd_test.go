package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/heathj/htmltree/parser/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextElement(t *testing.T) {
	tests := []struct {
		arg     string
		name    string
		ns      dom.Namespace
		wantErr bool
	}{
		{arg: "body", name: "body", ns: dom.Htmlns},
		{arg: "TD", name: "td", ns: dom.Htmlns},
		{arg: "title:html", name: "title", ns: dom.Htmlns},
		{arg: "foreignObject:svg", name: "foreignObject", ns: dom.Svgns},
		{arg: "mi:math", name: "mi", ns: dom.Mathmlns},
		{arg: "x:xul", wantErr: true},
		{arg: ":svg", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.arg, func(t *testing.T) {
			n, err := contextElement(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, n.LocalName)
			assert.Equal(t, tt.ns, n.NamespaceURI)
		})
	}
}

func TestParseCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.html")
	require.NoError(t, os.WriteFile(path, []byte("<table><tr><td>cell</td></tr></table>"), 0o600))

	for format, want := range map[string]string{
		"tree": "|       <tbody>",
		"html": "<table><tbody><tr><td>cell</td></tr></tbody></table>",
		"xml":  `<html xmlns="http://www.w3.org/1999/xhtml">`,
	} {
		var out bytes.Buffer
		cmd := newParseCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--format", format, path})
		require.NoError(t, cmd.Execute(), format)
		assert.Contains(t, out.String(), want, format)
	}
}

func TestFragmentCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newFragmentCmd()
	cmd.SetIn(strings.NewReader("<b>not a tag</b>"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--context", "title", "--format", "tree"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "| \"<b>not a tag</b>\"\n", out.String())
}

func TestUnknownFormat(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, writeTree(&out, dom.NewDocumentFragment(nil), "yaml"))
}
