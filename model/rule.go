package model

import (
	"github.com/beevik/etree"

	"github.com/reoring/goschematron/internal/omap"
)

// DefaultAbstract is the value of the abstract attribute when absent.
const DefaultAbstract = false

// Rule binds a context expression to an ordered list of assertions and
// extension references. An abstract rule has no context, carries a mandatory
// id and is only usable through <extends>.
type Rule struct {
	foreignContent

	Flag     string
	Rich     *RichGroup
	Linkable *LinkableGroup
	Abstract bool
	Context  string
	ID       string

	includes []*Include
	lets     []*Let
	content  []Element // *AssertReport or *Extends, in declaration order
}

// IsValid checks the rule invariants in order and stops at the first
// violation of the rule itself, then recurses into includes, lets and content
// in declaration order, short-circuiting on the first failing child.
func (r *Rule) IsValid(h ErrorHandler) bool {
	// abstract rules need an id
	if r.Abstract && r.ID == "" {
		h.Error(r, CodeAbstractRuleNoID, "abstract <rule> has no 'id'")
		return false
	}
	// abstract rules may not have a context
	if r.Abstract && r.Context != "" {
		h.Error(r, CodeAbstractRuleHasContext, "abstract <rule> may not have a 'context'")
		return false
	}
	// non-abstract rules need a context
	if !r.Abstract && r.Context == "" {
		h.Error(r, CodeRuleNoContext, "<rule> must have a 'context'")
		return false
	}
	// at least one assert, report or extends must be present
	if len(r.content) == 0 {
		h.Error(r, CodeRuleNoContent, "<rule> has no content")
		return false
	}
	for _, in := range r.includes {
		if !in.IsValid(h) {
			return false
		}
	}
	for _, l := range r.lets {
		if !l.IsValid(h) {
			return false
		}
	}
	for _, c := range r.content {
		if !c.IsValid(h) {
			return false
		}
	}
	return true
}

// ValidateCompletely checks every invariant and every child unconditionally.
func (r *Rule) ValidateCompletely(h ErrorHandler) {
	if r.Abstract && r.ID == "" {
		h.Error(r, CodeAbstractRuleNoID, "abstract <rule> has no 'id'")
	}
	if r.Abstract && r.Context != "" {
		h.Error(r, CodeAbstractRuleHasContext, "abstract <rule> may not have a 'context'")
	}
	if !r.Abstract && r.Context == "" {
		h.Error(r, CodeRuleNoContext, "<rule> must have a 'context'")
	}
	if len(r.content) == 0 {
		h.Error(r, CodeRuleNoContent, "<rule> has no content")
	}
	for _, in := range r.includes {
		in.ValidateCompletely(h)
	}
	for _, l := range r.lets {
		l.ValidateCompletely(h)
	}
	for _, c := range r.content {
		c.ValidateCompletely(h)
	}
}

// IsMinimal reports whether the rule and all of its children omit
// non-essential documentation content.
func (r *Rule) IsMinimal() bool {
	if r.Rich != nil && !r.Rich.isEmpty() {
		return false
	}
	for _, in := range r.includes {
		if !in.IsMinimal() {
			return false
		}
	}
	for _, l := range r.lets {
		if !l.IsMinimal() {
			return false
		}
	}
	for _, c := range r.content {
		if !c.IsMinimal() {
			return false
		}
	}
	return true
}

// AddInclude appends an included fragment reference.
func (r *Rule) AddInclude(in *Include) { r.includes = append(r.includes, in) }

// HasAnyInclude reports whether at least one include is attached.
func (r *Rule) HasAnyInclude() bool { return len(r.includes) > 0 }

// Includes returns the includes in declaration order. The slice is a copy.
func (r *Rule) Includes() []*Include {
	out := make([]*Include, len(r.includes))
	copy(out, r.includes)
	return out
}

// AddLet appends a bound-variable declaration.
func (r *Rule) AddLet(l *Let) { r.lets = append(r.lets, l) }

// HasAnyLet reports whether at least one let is attached.
func (r *Rule) HasAnyLet() bool { return len(r.lets) > 0 }

// Lets returns the bound variables in declaration order. The slice is a copy.
func (r *Rule) Lets() []*Let {
	out := make([]*Let, len(r.lets))
	copy(out, r.lets)
	return out
}

// LetsAsMap returns name-to-value bindings preserving declaration order.
func (r *Rule) LetsAsMap() *omap.Map[string] {
	out := omap.New[string]()
	for _, l := range r.lets {
		out.Set(l.Name, l.Value)
	}
	return out
}

// AddAssertReport appends an assertion entry to the content sequence.
func (r *Rule) AddAssertReport(a *AssertReport) { r.content = append(r.content, a) }

// AddExtends appends an extension reference to the content sequence.
func (r *Rule) AddExtends(x *Extends) { r.content = append(r.content, x) }

// AssertReports returns the assertion entries in declaration order.
func (r *Rule) AssertReports() []*AssertReport {
	var out []*AssertReport
	for _, c := range r.content {
		if a, ok := c.(*AssertReport); ok {
			out = append(out, a)
		}
	}
	return out
}

// ExtendsRefs returns the extension references in declaration order.
func (r *Rule) ExtendsRefs() []*Extends {
	var out []*Extends
	for _, c := range r.content {
		if x, ok := c.(*Extends); ok {
			out = append(out, x)
		}
	}
	return out
}

// HasAnyExtends reports whether the content sequence holds extension
// references.
func (r *Rule) HasAnyExtends() bool { return len(r.ExtendsRefs()) > 0 }

// Content returns the mixed assert/report/extends sequence in declaration
// order. The slice is a copy.
func (r *Rule) Content() []Element {
	out := make([]Element, len(r.content))
	copy(out, r.content)
	return out
}

// ToXML serializes the rule with the fixed child and attribute order: flag,
// abstract, context, id, rich attributes, linkable attributes, foreign
// elements, includes, lets, content, foreign attributes.
func (r *Rule) ToXML() *etree.Element {
	e := newElement(ElementRule)
	setAttrIfNotEmpty(e, AttrFlag, r.Flag)
	if r.Abstract {
		e.CreateAttr(AttrAbstract, "true")
	}
	setAttrIfNotEmpty(e, AttrContext, r.Context)
	setAttrIfNotEmpty(e, AttrID, r.ID)
	if r.Rich != nil {
		r.Rich.fillXML(e)
	}
	if r.Linkable != nil {
		r.Linkable.fillXML(e)
	}
	r.fillElements(e)
	for _, in := range r.includes {
		e.AddChild(in.ToXML())
	}
	for _, l := range r.lets {
		e.AddChild(l.ToXML())
	}
	for _, c := range r.content {
		e.AddChild(c.ToXML())
	}
	r.fillAttributes(e)
	return e
}
