package model

import "github.com/beevik/etree"

// NamespaceSchematron is the ISO Schematron namespace URI.
const NamespaceSchematron = "http://purl.oclc.org/dsdl/schematron"

// NSPrefix is the prefix used when serializing schematron elements.
const NSPrefix = "sch"

// XML element and attribute names of the modeled subset.
const (
	ElementSchema      = "schema"
	ElementPattern     = "pattern"
	ElementRule        = "rule"
	ElementAssert      = "assert"
	ElementReport      = "report"
	ElementLet         = "let"
	ElementInclude     = "include"
	ElementExtends     = "extends"
	ElementTitle       = "title"
	ElementNS          = "ns"
	ElementDiagnostics = "diagnostics"
	ElementDiagnostic  = "diagnostic"

	AttrAbstract      = "abstract"
	AttrContext       = "context"
	AttrDiagnostics   = "diagnostics"
	AttrFlag          = "flag"
	AttrFPI           = "fpi"
	AttrHref          = "href"
	AttrIcon          = "icon"
	AttrID            = "id"
	AttrName          = "name"
	AttrPrefix        = "prefix"
	AttrRole          = "role"
	AttrRule          = "rule"
	AttrSchemaVersion = "schemaVersion"
	AttrSee           = "see"
	AttrSubject       = "subject"
	AttrTest          = "test"
	AttrURI           = "uri"
	AttrValue         = "value"
)

// Element is implemented by every modeled schematron construct.
type Element interface {
	// IsValid checks the construct's invariants in order, reporting through h
	// and returning false on the first violation. Children are visited in
	// declaration order and the first failing child short-circuits the rest.
	IsValid(h ErrorHandler) bool

	// ValidateCompletely checks every invariant and every child
	// unconditionally so that a single call reports every defect.
	ValidateCompletely(h ErrorHandler)

	// IsMinimal reports whether the construct and all of its children omit
	// content outside the minimal syntax (rich documentation attributes,
	// includes, extension references).
	IsMinimal() bool

	// ToXML serializes the construct into a generic element tree using the
	// fixed child and attribute order required for round-tripping.
	ToXML() *etree.Element
}

// newElement creates a prefixed schematron element.
func newElement(local string) *etree.Element {
	return etree.NewElement(NSPrefix + ":" + local)
}

// setAttrIfNotEmpty mirrors the append-only serialization style: absent
// optional attributes are omitted entirely.
func setAttrIfNotEmpty(e *etree.Element, key, value string) {
	if value != "" {
		e.CreateAttr(key, value)
	}
}
