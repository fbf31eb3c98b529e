package parser

import (
	"strings"

	"github.com/heathj/htmltree/parser/dom"
)

// Public identifiers that put a document in quirks mode when they match exactly.
var quirkyPublicIdentifiers = []string{
	"-//w3o//dtd w3 html strict 3.0//en//",
	"-/w3c/dtd html 4.0 transitional/en",
	"html",
}

// Public identifier prefixes that put a document in quirks mode.
var quirkyPublicIdentifierPrefixes = []string{
	"+//silmaril//dtd html pro v0r11 19970101//",
	"-//as//dtd html 3.0 aswedit + extensions//",
	"-//advasoft ltd//dtd html 3.0 aswedit + extensions//",
	"-//ietf//dtd html 2.0 level 1//",
	"-//ietf//dtd html 2.0 level 2//",
	"-//ietf//dtd html 2.0 strict level 1//",
	"-//ietf//dtd html 2.0 strict level 2//",
	"-//ietf//dtd html 2.0 strict//",
	"-//ietf//dtd html 2.0//",
	"-//ietf//dtd html 2.1e//",
	"-//ietf//dtd html 3.0//",
	"-//ietf//dtd html 3.2 final//",
	"-//ietf//dtd html 3.2//",
	"-//ietf//dtd html 3//",
	"-//ietf//dtd html level 0//",
	"-//ietf//dtd html level 1//",
	"-//ietf//dtd html level 2//",
	"-//ietf//dtd html level 3//",
	"-//ietf//dtd html strict level 0//",
	"-//ietf//dtd html strict level 1//",
	"-//ietf//dtd html strict level 2//",
	"-//ietf//dtd html strict level 3//",
	"-//ietf//dtd html strict//",
	"-//ietf//dtd html//",
	"-//metrius//dtd metrius presentational//",
	"-//microsoft//dtd internet explorer 2.0 html strict//",
	"-//microsoft//dtd internet explorer 2.0 html//",
	"-//microsoft//dtd internet explorer 2.0 tables//",
	"-//microsoft//dtd internet explorer 3.0 html strict//",
	"-//microsoft//dtd internet explorer 3.0 html//",
	"-//microsoft//dtd internet explorer 3.0 tables//",
	"-//netscape comm. corp.//dtd html//",
	"-//netscape comm. corp.//dtd strict html//",
	"-//o'reilly and associates//dtd html 2.0//",
	"-//o'reilly and associates//dtd html extended 1.0//",
	"-//o'reilly and associates//dtd html extended relaxed 1.0//",
	"-//sq//dtd html 2.0 hotmetal + extensions//",
	"-//softquad software//dtd hotmetal pro 6.0::19990601::extensions to html 4.0//",
	"-//softquad//dtd hotmetal pro 4.0::19971010::extensions to html 4.0//",
	"-//spyglass//dtd html 2.0 extended//",
	"-//sun microsystems corp.//dtd hotjava html//",
	"-//sun microsystems corp.//dtd hotjava strict html//",
	"-//w3c//dtd html 3 1995-03-24//",
	"-//w3c//dtd html 3.2 draft//",
	"-//w3c//dtd html 3.2 final//",
	"-//w3c//dtd html 3.2//",
	"-//w3c//dtd html 3.2s draft//",
	"-//w3c//dtd html 4.0 frameset//",
	"-//w3c//dtd html 4.0 transitional//",
	"-//w3c//dtd html experimental 19960712//",
	"-//w3c//dtd html experimental 970421//",
	"-//w3c//dtd w3 html//",
	"-//w3o//dtd w3 html 3.0//",
	"-//webtechs//dtd mozilla html 2.0//",
	"-//webtechs//dtd mozilla html//",
}

const (
	ibmxhtml                  = "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd"
	w3cDTDHTML401Frameset     = "-//w3c//dtd html 4.01 frameset//"
	w3cDTDHTML401Transitional = "-//w3c//dtd html 4.01 transitional//"
	w3cDTDXHTML1Frameset      = "-//w3c//dtd xhtml 1.0 frameset//"
	w3cDTDXHTML1Transitional  = "-//w3c//dtd xhtml 1.0 transitional//"
)

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// quirksModeFor is https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
// applied to a DOCTYPE token. iframe srcdoc documents are never quirky.
func quirksModeFor(t *Token, iframeSrcdoc bool) dom.QuirksMode {
	if iframeSrcdoc {
		return dom.NoQuirks
	}
	if t.ForceQuirks || t.TagName != "html" {
		return dom.Quirks
	}

	var pub, sys string
	if t.PublicIdentifier != nil {
		pub = strings.ToLower(*t.PublicIdentifier)
	}
	if t.SystemIdentifier != nil {
		sys = strings.ToLower(*t.SystemIdentifier)
	}
	missingSys := t.SystemIdentifier == nil

	switch {
	case t.PublicIdentifier != nil && oneOf(pub, quirkyPublicIdentifiers...):
		return dom.Quirks
	case t.SystemIdentifier != nil && sys == ibmxhtml:
		return dom.Quirks
	case hasAnyPrefix(pub, quirkyPublicIdentifierPrefixes...):
		return dom.Quirks
	case missingSys && hasAnyPrefix(pub, w3cDTDHTML401Frameset, w3cDTDHTML401Transitional):
		return dom.Quirks
	case hasAnyPrefix(pub, w3cDTDXHTML1Frameset, w3cDTDXHTML1Transitional):
		return dom.LimitedQuirks
	case !missingSys && hasAnyPrefix(pub, w3cDTDHTML401Frameset, w3cDTDHTML401Transitional):
		return dom.LimitedQuirks
	}
	return dom.NoQuirks
}

// isDoctypeParseError reports whether the DOCTYPE is not one of the
// conforming forms.
func isDoctypeParseError(t *Token) bool {
	if t.TagName != "html" || t.PublicIdentifier != nil {
		return true
	}
	return t.SystemIdentifier != nil && *t.SystemIdentifier != "about:legacy-compat"
}
