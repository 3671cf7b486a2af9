package svrl

import "github.com/beevik/etree"

// Builder writes the report grammar into an externally supplied empty
// document. Report children are siblings of the root; containment is purely
// by ordering, so the builder only tracks the root. The engine drives it
// strictly in grammar order; Read is the safety net that rejects anything
// out of order.
type Builder struct {
	root *etree.Element
}

// NewBuilder creates the report root inside doc. The document must be empty;
// the caller owns it.
func NewBuilder(doc *etree.Document, title, phase, schemaVersion string) *Builder {
	root := doc.CreateElement(nsPrefix + ":" + elementSchematronOutput)
	root.CreateAttr("xmlns:"+nsPrefix, NamespaceSVRL)
	if title != "" {
		root.CreateAttr(attrTitle, title)
	}
	if phase != "" {
		root.CreateAttr(attrPhase, phase)
	}
	if schemaVersion != "" {
		root.CreateAttr(attrSchemaVersion, schemaVersion)
	}
	return &Builder{root: root}
}

// AddText appends a free-text notice.
func (b *Builder) AddText(text string) {
	e := b.root.CreateElement(nsPrefix + ":" + elementText)
	e.SetText(text)
}

// AddNSPrefix appends a namespace-prefix notice.
func (b *Builder) AddNSPrefix(prefix, uri string) {
	e := b.root.CreateElement(nsPrefix + ":" + elementNSPrefix)
	e.CreateAttr(attrPrefix, prefix)
	e.CreateAttr(attrURI, uri)
}

// StartActivePattern opens a new active-pattern group.
func (b *Builder) StartActivePattern(id, name, role, document string) {
	e := b.root.CreateElement(nsPrefix + ":" + elementActivePattern)
	setIfNotEmpty(e, attrID, id)
	setIfNotEmpty(e, attrName, name)
	setIfNotEmpty(e, attrRole, role)
	setIfNotEmpty(e, attrDocument, document)
}

// StartFiredRule opens a new fired-rule group under the current pattern.
func (b *Builder) StartFiredRule(id, context, role, flag string) {
	e := b.root.CreateElement(nsPrefix + ":" + elementFiredRule)
	setIfNotEmpty(e, attrID, id)
	e.CreateAttr(attrContext, context)
	setIfNotEmpty(e, attrRole, role)
	setIfNotEmpty(e, attrFlag, flag)
}

// AddResult appends a failed-assert or successful-report entry under the
// current fired-rule.
func (b *Builder) AddResult(res *AssertResult) {
	e := b.root.CreateElement(nsPrefix + ":" + res.Type.String())
	setIfNotEmpty(e, attrID, res.ID)
	e.CreateAttr(attrLocation, res.Location)
	e.CreateAttr(attrTest, res.Test)
	setIfNotEmpty(e, attrRole, res.Role)
	setIfNotEmpty(e, attrFlag, res.Flag)
	for _, d := range res.Diagnostics {
		dr := e.CreateElement(nsPrefix + ":" + elementDiagnosticReference)
		dr.CreateAttr(attrDiagnostic, d.Diagnostic)
		dr.SetText(d.Text)
	}
	t := e.CreateElement(nsPrefix + ":" + elementText)
	t.SetText(res.Text)
}

func setIfNotEmpty(e *etree.Element, key, value string) {
	if value != "" {
		e.CreateAttr(key, value)
	}
}
