package parser

import (
	"io"

	"github.com/heathj/htmltree/parser/dom"
	"github.com/pkg/errors"
)

// Parser drives an HTMLTokenizer and an HTMLTreeConstructor over one input.
type Parser struct {
	Tokenizer       *HTMLTokenizer
	TreeConstructor *HTMLTreeConstructor
	aborted         bool
}

// NewParser returns a Parser that builds a new document from htmlIn.
func NewParser(htmlIn io.Reader, opts ...Option) *Parser {
	treeConstructor := NewHTMLTreeConstructor(buildConfig(opts))
	return &Parser{
		Tokenizer:       NewHTMLTokenizer(newPreprocessor(htmlIn, treeConstructor.inputError)),
		TreeConstructor: treeConstructor,
	}
}

// Progress is what the tree constructor hands back to the tokenizer after a
// token: the adjusted current node, and a text state to switch to, if any.
type Progress struct {
	AdjustedCurrentNode *dom.Node
	TokenizerState      *tokenizerState
}

func MakeProgress(adjCurNode *dom.Node, tokenizerState *tokenizerState) *Progress {
	return &Progress{
		AdjustedCurrentNode: adjCurNode,
		TokenizerState:      tokenizerState,
	}
}

// Parse consumes the whole input and returns the Document node.
func (p *Parser) Parse() (*dom.Node, error) {
	if err := p.run(nil); err != nil {
		return nil, err
	}
	return p.TreeConstructor.HTMLDocument, nil
}

func (p *Parser) run(progress *Progress) error {
	for p.Tokenizer.Next() && !p.aborted && !p.TreeConstructor.stopped {
		t, err := p.Tokenizer.Token(progress)
		if err != nil {
			return errors.Wrap(err, "tokenizing")
		}
		progress = p.TreeConstructor.ProcessToken(t)
		if err := p.TreeConstructor.err; err != nil {
			return err
		}
	}
	if !p.aborted && !p.TreeConstructor.stopped {
		p.TreeConstructor.stopParsing()
	}
	return nil
}

// Abort stops the parser between tokens. The remaining input is discarded and
// the open elements are closed without further tree changes.
func (p *Parser) Abort() {
	p.aborted = true
	p.TreeConstructor.stopped = true
	p.TreeConstructor.stackOfOpenElements.NodeList = nil
	p.TreeConstructor.HTMLDocument.ReadyState = dom.Complete
}

// InsertionMode names the insertion mode the tree constructor is in.
func (p *Parser) InsertionMode() string {
	return p.TreeConstructor.insertionMode.String()
}

// StackOfOpenElements returns a copy of the stack of open elements, bottom first.
func (p *Parser) StackOfOpenElements() []*dom.Node {
	return append([]*dom.Node(nil), p.TreeConstructor.stackOfOpenElements.NodeList...)
}

// Parse parses a whole document read from r.
func Parse(r io.Reader, opts ...Option) (*dom.Node, error) {
	return NewParser(r, opts...).Parse()
}
