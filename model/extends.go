package model

import "github.com/beevik/etree"

// Extends pulls the content of an abstract rule into the enclosing rule.
type Extends struct {
	// RuleID is the id of the referenced abstract rule.
	RuleID string
}

func (x *Extends) IsValid(h ErrorHandler) bool {
	if x.RuleID == "" {
		h.Error(x, CodeExtendsNoRule, "<extends> has no 'rule'")
		return false
	}
	return true
}

func (x *Extends) ValidateCompletely(h ErrorHandler) {
	if x.RuleID == "" {
		h.Error(x, CodeExtendsNoRule, "<extends> has no 'rule'")
	}
}

// IsMinimal is always false; extension references are inlined before the
// minimal syntax is reached.
func (x *Extends) IsMinimal() bool { return false }

func (x *Extends) ToXML() *etree.Element {
	e := newElement(ElementExtends)
	setAttrIfNotEmpty(e, AttrRule, x.RuleID)
	return e
}
