package model

import "github.com/beevik/etree"

// Namespace declares a prefix/URI pair usable in rule contexts and tests. The
// declarations are echoed into validation reports as ns-prefix notices.
type Namespace struct {
	Prefix string
	URI    string
}

// Diagnostic binds explanatory text to an id referenced by assertion entries.
type Diagnostic struct {
	ID   string
	Text string
}

func (d *Diagnostic) IsValid(h ErrorHandler) bool {
	if d.ID == "" {
		h.Error(d, CodeDiagnosticNoID, "<diagnostic> has no 'id'")
		return false
	}
	return true
}

func (d *Diagnostic) ValidateCompletely(h ErrorHandler) {
	if d.ID == "" {
		h.Error(d, CodeDiagnosticNoID, "<diagnostic> has no 'id'")
	}
}

func (d *Diagnostic) IsMinimal() bool { return true }

func (d *Diagnostic) ToXML() *etree.Element {
	e := newElement(ElementDiagnostic)
	setAttrIfNotEmpty(e, AttrID, d.ID)
	if d.Text != "" {
		e.SetText(d.Text)
	}
	return e
}

// Pattern groups rules. Only the subset needed to compile and report is
// modeled; abstract patterns and phases stay outside this core.
type Pattern struct {
	ID    string
	Title string
	Rules []*Rule
}

func (p *Pattern) IsValid(h ErrorHandler) bool {
	for _, r := range p.Rules {
		if !r.IsValid(h) {
			return false
		}
	}
	return true
}

func (p *Pattern) ValidateCompletely(h ErrorHandler) {
	for _, r := range p.Rules {
		r.ValidateCompletely(h)
	}
}

func (p *Pattern) IsMinimal() bool {
	for _, r := range p.Rules {
		if !r.IsMinimal() {
			return false
		}
	}
	return true
}

func (p *Pattern) ToXML() *etree.Element {
	e := newElement(ElementPattern)
	setAttrIfNotEmpty(e, AttrID, p.ID)
	if p.Title != "" {
		t := newElement(ElementTitle)
		t.SetText(p.Title)
		e.AddChild(t)
	}
	for _, r := range p.Rules {
		e.AddChild(r.ToXML())
	}
	return e
}

// Schema is the minimal schema container: title, namespace declarations,
// patterns and diagnostics.
type Schema struct {
	Title         string
	SchemaVersion string
	Namespaces    []Namespace
	Patterns      []*Pattern
	Diagnostics   []*Diagnostic
}

func (s *Schema) IsValid(h ErrorHandler) bool {
	for _, d := range s.Diagnostics {
		if !d.IsValid(h) {
			return false
		}
	}
	for _, p := range s.Patterns {
		if !p.IsValid(h) {
			return false
		}
	}
	return true
}

func (s *Schema) ValidateCompletely(h ErrorHandler) {
	for _, d := range s.Diagnostics {
		d.ValidateCompletely(h)
	}
	for _, p := range s.Patterns {
		p.ValidateCompletely(h)
	}
}

func (s *Schema) IsMinimal() bool {
	for _, p := range s.Patterns {
		if !p.IsMinimal() {
			return false
		}
	}
	return true
}

// DiagnosticByID looks a diagnostic up by id.
func (s *Schema) DiagnosticByID(id string) (*Diagnostic, bool) {
	for _, d := range s.Diagnostics {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}

// ToXML serializes the schema into a standalone document declaring the
// schematron namespace on the root element.
func (s *Schema) ToXML() *etree.Element {
	e := newElement(ElementSchema)
	e.CreateAttr("xmlns:"+NSPrefix, NamespaceSchematron)
	setAttrIfNotEmpty(e, AttrSchemaVersion, s.SchemaVersion)
	if s.Title != "" {
		t := newElement(ElementTitle)
		t.SetText(s.Title)
		e.AddChild(t)
	}
	for _, ns := range s.Namespaces {
		n := newElement(ElementNS)
		n.CreateAttr(AttrPrefix, ns.Prefix)
		n.CreateAttr(AttrURI, ns.URI)
		e.AddChild(n)
	}
	for _, p := range s.Patterns {
		e.AddChild(p.ToXML())
	}
	if len(s.Diagnostics) > 0 {
		ds := newElement(ElementDiagnostics)
		for _, d := range s.Diagnostics {
			ds.AddChild(d.ToXML())
		}
		e.AddChild(ds)
	}
	return e
}

// ToDocument wraps ToXML in a document.
func (s *Schema) ToDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.AddChild(s.ToXML())
	return doc
}
