package main

import (
	"fmt"
	"io"
	"os"

	"github.com/heathj/htmltree/parser"
	"github.com/heathj/htmltree/parser/dom"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var (
		format     string
		showErrors bool
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an HTML document and print its tree",
		Long: `Parse an HTML document and print the resulting tree.

If no file is provided, reads the document from stdin.
--format picks the output: tree (html5lib test format), html or xml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeIn()

			opts := []parser.Option{parser.WithScripting(scripting)}
			if showErrors {
				opts = append(opts, parser.WithErrorHandler(printParseError(cmd.ErrOrStderr())))
			}
			doc, err := parser.Parse(in, opts...)
			if err != nil {
				return errors.Wrap(err, "parse")
			}
			return writeTree(cmd.OutOrStdout(), doc, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "tree", "output format: tree, html or xml")
	cmd.Flags().BoolVar(&showErrors, "errors", false, "print parse errors to stderr")

	return cmd
}

func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, errors.Wrap(err, "open input")
	}
	return f, func() { _ = f.Close() }, nil
}

func printParseError(w io.Writer) parser.ErrorHandler {
	return func(pe parser.ParseError) {
		fmt.Fprintln(w, "parse error:", pe.Error())
	}
}

func writeTree(w io.Writer, n *dom.Node, format string) error {
	switch format {
	case "tree":
		_, err := fmt.Fprintln(w, n.String())
		return err
	case "html":
		_, err := fmt.Fprintln(w, parser.SerializeHTMLFragment(n, parser.WithScripting(scripting)))
		return err
	case "xml":
		doc := parser.XMLExport(n)
		doc.Indent(2)
		_, err := doc.WriteTo(w)
		return err
	}
	return errors.Errorf("unknown format %q", format)
}
