package parser

import (
	"strings"

	"github.com/heathj/htmltree/parser/dom"
)

var svgTagNameAdjustments = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"fedropshadow":        "feDropShadow",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

var svgAttributeAdjustments = map[string]string{
	"attributename":       "attributeName",
	"attributetype":       "attributeType",
	"basefrequency":       "baseFrequency",
	"baseprofile":         "baseProfile",
	"calcmode":            "calcMode",
	"clippathunits":       "clipPathUnits",
	"diffuseconstant":     "diffuseConstant",
	"edgemode":            "edgeMode",
	"filterunits":         "filterUnits",
	"glyphref":            "glyphRef",
	"gradienttransform":   "gradientTransform",
	"gradientunits":       "gradientUnits",
	"kernelmatrix":        "kernelMatrix",
	"kernelunitlength":    "kernelUnitLength",
	"keypoints":           "keyPoints",
	"keysplines":          "keySplines",
	"keytimes":            "keyTimes",
	"lengthadjust":        "lengthAdjust",
	"limitingconeangle":   "limitingConeAngle",
	"markerheight":        "markerHeight",
	"markerunits":         "markerUnits",
	"markerwidth":         "markerWidth",
	"maskcontentunits":    "maskContentUnits",
	"maskunits":           "maskUnits",
	"numoctaves":          "numOctaves",
	"pathlength":          "pathLength",
	"patterncontentunits": "patternContentUnits",
	"patterntransform":    "patternTransform",
	"patternunits":        "patternUnits",
	"pointsatx":           "pointsAtX",
	"pointsaty":           "pointsAtY",
	"pointsatz":           "pointsAtZ",
	"preservealpha":       "preserveAlpha",
	"preserveaspectratio": "preserveAspectRatio",
	"primitiveunits":      "primitiveUnits",
	"refx":                "refX",
	"refy":                "refY",
	"repeatcount":         "repeatCount",
	"repeatdur":           "repeatDur",
	"requiredextensions":  "requiredExtensions",
	"requiredfeatures":    "requiredFeatures",
	"specularconstant":    "specularConstant",
	"specularexponent":    "specularExponent",
	"spreadmethod":        "spreadMethod",
	"startoffset":         "startOffset",
	"stddeviation":        "stdDeviation",
	"stitchtiles":         "stitchTiles",
	"surfacescale":        "surfaceScale",
	"systemlanguage":      "systemLanguage",
	"tablevalues":         "tableValues",
	"targetx":             "targetX",
	"targety":             "targetY",
	"textlength":          "textLength",
	"viewbox":             "viewBox",
	"viewtarget":          "viewTarget",
	"xchannelselector":    "xChannelSelector",
	"ychannelselector":    "yChannelSelector",
	"zoomandpan":          "zoomAndPan",
}

var mathMLAttributeAdjustments = map[string]string{
	"definitionurl": "definitionURL",
}

type foreignAttribute struct {
	prefix string
	local  string
	ns     dom.Namespace
}

var foreignAttributeAdjustments = map[string]foreignAttribute{
	"xlink:actuate": {"xlink", "actuate", dom.Xlinkns},
	"xlink:arcrole": {"xlink", "arcrole", dom.Xlinkns},
	"xlink:href":    {"xlink", "href", dom.Xlinkns},
	"xlink:role":    {"xlink", "role", dom.Xlinkns},
	"xlink:show":    {"xlink", "show", dom.Xlinkns},
	"xlink:title":   {"xlink", "title", dom.Xlinkns},
	"xlink:type":    {"xlink", "type", dom.Xlinkns},
	"xml:lang":      {"xml", "lang", dom.Xmlns},
	"xml:space":     {"xml", "space", dom.Xmlns},
	"xmlns":         {"", "xmlns", dom.Xmlnsns},
	"xmlns:xlink":   {"xmlns", "xlink", dom.Xmlnsns},
}

// HTML start tags that break out of foreign content.
var breakoutTags = []string{
	"b", "big", "blockquote", "body", "br", "center", "code", "dd", "div", "dl", "dt",
	"em", "embed", "h1", "h2", "h3", "h4", "h5", "h6", "head", "hr", "i", "img", "li",
	"listing", "menu", "meta", "nobr", "ol", "p", "pre", "ruby", "s", "small", "span",
	"strong", "strike", "sub", "sup", "table", "tt", "u", "ul", "var",
}

func adjustAttributeNames(t *Token, adjustments map[string]string) {
	for i := range t.Attributes {
		if v, ok := adjustments[t.Attributes[i].LocalName]; ok {
			t.Attributes[i].LocalName = v
		}
	}
}

// adjustMathMLAttributes is https://html.spec.whatwg.org/multipage/parsing.html#adjust-mathml-attributes
func adjustMathMLAttributes(t *Token) {
	adjustAttributeNames(t, mathMLAttributeAdjustments)
}

// adjustSVGAttributes is https://html.spec.whatwg.org/multipage/parsing.html#adjust-svg-attributes
func adjustSVGAttributes(t *Token) {
	adjustAttributeNames(t, svgAttributeAdjustments)
}

// adjustForeignAttributes is https://html.spec.whatwg.org/multipage/parsing.html#adjust-foreign-attributes
func adjustForeignAttributes(t *Token) {
	for i := range t.Attributes {
		a := &t.Attributes[i]
		if a.Namespace != dom.Nons {
			continue
		}
		if fa, ok := foreignAttributeAdjustments[a.LocalName]; ok {
			a.Prefix, a.LocalName, a.Namespace = fa.prefix, fa.local, fa.ns
		}
	}
}

func isBreakout(t *Token) bool {
	if t.isStartTag(breakoutTags...) {
		return true
	}
	if t.isStartTag("font") {
		for _, name := range []string{"color", "face", "size"} {
			if _, ok := t.Attr(name); ok {
				return true
			}
		}
	}
	return t.isEndTag("br", "p")
}

// processForeignContent is https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inforeign
func (c *HTMLTreeConstructor) processForeignContent(t *Token) bool {
	switch t.TokenType {
	case characterToken:
		switch {
		case t.isNUL():
			c.parseError(t, unexpectedNullCharacter)
			c.insertCharacter(strings.Repeat("\uFFFD", len(t.Data)))
		case t.isWhitespace():
			c.insertCharacter(t.Data)
		default:
			c.insertCharacter(t.Data)
			c.frameset = framesetNotOK
		}
		return false
	case commentToken:
		c.insertComment(t, nil)
		return false
	case docTypeToken:
		c.parseError(t, unexpectedDoctype)
		return false
	}

	if isBreakout(t) {
		c.parseError(t, foreignBreakout)
		if !c.isFragmentCase() {
			c.stackOfOpenElements.PopUntilConditions(func(n *dom.Node) bool {
				return isMathMLTextIntegrationPoint(n) || isHTMLIntegrationPoint(n) || n.NamespaceURI == dom.Htmlns
			})
			return c.useRulesFor(t, c.insertionMode)
		}
		if t.TokenType == endTagToken {
			return c.foreignEndTag(t)
		}
	}

	if t.TokenType == startTagToken {
		c.foreignStartTag(t)
		return false
	}
	return c.foreignEndTag(t)
}

func (c *HTMLTreeConstructor) foreignStartTag(t *Token) {
	acn := c.adjustedCurrentNode()
	switch acn.NamespaceURI {
	case dom.Mathmlns:
		adjustMathMLAttributes(t)
	case dom.Svgns:
		if v, ok := svgTagNameAdjustments[t.TagName]; ok {
			t.TagName = v
		}
		adjustSVGAttributes(t)
	}
	adjustForeignAttributes(t)
	c.insertForeignElement(t, acn.NamespaceURI, false)
	if t.SelfClosing {
		// an svg script would run here; scripts are not executed
		c.stackOfOpenElements.Pop()
		t.AcknowledgeSelfClosing()
	}
}

func (c *HTMLTreeConstructor) foreignEndTag(t *Token) bool {
	s := &c.stackOfOpenElements
	if t.TagName == "script" && c.getCurrentNode().Is(dom.Svgns, "script") {
		s.Pop()
		return false
	}

	i := s.Len() - 1
	node := s.At(i)
	if strings.ToLower(node.LocalName) != t.TagName {
		c.parseError(t, unexpectedEndTag)
	}
	for {
		if i == 0 {
			return false
		}
		if strings.ToLower(node.LocalName) == t.TagName {
			s.PopUntilNode(node)
			return false
		}
		i--
		node = s.At(i)
		if node.NamespaceURI == dom.Htmlns {
			return c.useRulesFor(t, c.insertionMode)
		}
	}
}
