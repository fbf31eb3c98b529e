package parser

import (
	"github.com/heathj/htmltree/parser/dom"
	"github.com/sirupsen/logrus"
)

type htmlParserConfig struct {
	scripting    bool
	iframeSrcdoc bool
	quirks       dom.QuirksMode
	errorHandler ErrorHandler
	log          *logrus.Entry
}

func defaultConfig() htmlParserConfig {
	return htmlParserConfig{
		scripting: true,
		quirks:    dom.NoQuirks,
		log:       logrus.WithField("component", "treebuilder"),
	}
}

// Option configures a Parser.
type Option func(*htmlParserConfig)

// WithScripting sets the scripting flag. It changes how noscript is parsed.
func WithScripting(enabled bool) Option {
	return func(c *htmlParserConfig) { c.scripting = enabled }
}

// WithIframeSrcdoc marks the document as an iframe srcdoc document.
func WithIframeSrcdoc(srcdoc bool) Option {
	return func(c *htmlParserConfig) { c.iframeSrcdoc = srcdoc }
}

// WithErrorHandler installs a sink for parse errors.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *htmlParserConfig) { c.errorHandler = h }
}

// WithLogger replaces the default logrus entry.
func WithLogger(l *logrus.Entry) Option {
	return func(c *htmlParserConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// WithQuirksMode sets the document mode a fragment parse starts in.
func WithQuirksMode(m dom.QuirksMode) Option {
	return func(c *htmlParserConfig) { c.quirks = m }
}

func buildConfig(opts []Option) htmlParserConfig {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}
