package model

import "github.com/beevik/etree"

// Include references an external fragment pulled into the enclosing construct.
type Include struct {
	Href string
}

func (i *Include) IsValid(h ErrorHandler) bool {
	if i.Href == "" {
		h.Error(i, CodeIncludeNoHref, "<include> has no 'href'")
		return false
	}
	return true
}

func (i *Include) ValidateCompletely(h ErrorHandler) {
	if i.Href == "" {
		h.Error(i, CodeIncludeNoHref, "<include> has no 'href'")
	}
}

// IsMinimal is always false; includes are resolved away before the minimal
// syntax is reached.
func (i *Include) IsMinimal() bool { return false }

func (i *Include) ToXML() *etree.Element {
	e := newElement(ElementInclude)
	setAttrIfNotEmpty(e, AttrHref, i.Href)
	return e
}
