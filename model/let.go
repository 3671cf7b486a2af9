package model

import "github.com/beevik/etree"

// Let binds a named variable to a value expression for the enclosing rule.
type Let struct {
	Name  string
	Value string
}

func (l *Let) IsValid(h ErrorHandler) bool {
	if l.Name == "" {
		h.Error(l, CodeLetNoName, "<let> has no 'name'")
		return false
	}
	if l.Value == "" {
		h.Error(l, CodeLetNoValue, "<let> has no 'value'")
		return false
	}
	return true
}

func (l *Let) ValidateCompletely(h ErrorHandler) {
	if l.Name == "" {
		h.Error(l, CodeLetNoName, "<let> has no 'name'")
	}
	if l.Value == "" {
		h.Error(l, CodeLetNoValue, "<let> has no 'value'")
	}
}

// IsMinimal is always true; variable bindings survive into the minimal syntax.
func (l *Let) IsMinimal() bool { return true }

func (l *Let) ToXML() *etree.Element {
	e := newElement(ElementLet)
	setAttrIfNotEmpty(e, AttrName, l.Name)
	setAttrIfNotEmpty(e, AttrValue, l.Value)
	return e
}
