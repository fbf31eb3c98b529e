package main

import (
	"strings"

	"github.com/heathj/htmltree/parser"
	"github.com/heathj/htmltree/parser/dom"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newFragmentCmd() *cobra.Command {
	var (
		format     string
		context    string
		quirks     bool
		showErrors bool
	)

	cmd := &cobra.Command{
		Use:   "fragment [file]",
		Short: "Parse HTML as the contents of a context element",
		Long: `Parse an HTML fragment as if it were the innerHTML of a context element.

The context is given as name or name:namespace, where namespace is one of
html, svg or math. If no file is provided, reads the fragment from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := contextElement(context)
			if err != nil {
				return err
			}
			in, closeIn, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeIn()

			opts := []parser.Option{parser.WithScripting(scripting)}
			if quirks {
				opts = append(opts, parser.WithQuirksMode(dom.Quirks))
			}
			if showErrors {
				opts = append(opts, parser.WithErrorHandler(printParseError(cmd.ErrOrStderr())))
			}
			nodes, err := parser.ParseHTMLFragment(ctx, in, opts...)
			if err != nil {
				return errors.Wrap(err, "parse fragment")
			}

			frag := dom.NewDocumentFragment(nil)
			for _, n := range nodes {
				if _, err := frag.AppendChild(n); err != nil {
					return errors.Wrap(err, "collect fragment")
				}
			}
			return writeTree(cmd.OutOrStdout(), frag, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "tree", "output format: tree, html or xml")
	cmd.Flags().StringVar(&context, "context", "body", "context element as name[:namespace]")
	cmd.Flags().BoolVar(&quirks, "quirks", false, "parse as if the context document were in quirks mode")
	cmd.Flags().BoolVar(&showErrors, "errors", false, "print parse errors to stderr")

	return cmd
}

func contextElement(arg string) (*dom.Node, error) {
	name, ns := arg, "html"
	if i := strings.IndexByte(arg, ':'); i != -1 {
		name, ns = arg[:i], arg[i+1:]
	}
	if name == "" {
		return nil, errors.New("empty context element name")
	}
	switch ns {
	case "html":
		return dom.NewDOMElement(dom.NewHTMLDocumentNode(), strings.ToLower(name), dom.Htmlns), nil
	case "svg":
		return dom.NewDOMElement(dom.NewHTMLDocumentNode(), name, dom.Svgns), nil
	case "math":
		return dom.NewDOMElement(dom.NewHTMLDocumentNode(), name, dom.Mathmlns), nil
	}
	return nil, errors.Errorf("unknown context namespace %q", ns)
}
