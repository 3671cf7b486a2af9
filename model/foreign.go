package model

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/reoring/goschematron/internal/omap"
)

// HasForeignContent is implemented by constructs that preserve extension
// elements and attributes outside the schematron vocabulary verbatim.
type HasForeignContent interface {
	AddForeignElement(el *etree.Element) error
	AddForeignAttribute(name, value string)
	HasForeignElements() bool
	HasForeignAttributes() bool
	ForeignElements() []*etree.Element
	ForeignAttributes() *omap.Map[string]
}

// foreignContent is the shared implementation embedded by Rule and
// AssertReport. A foreign element is owned by exactly one construct at a time;
// ownership is tracked through the element's parent pointer via an internal
// holder element that is never serialized.
type foreignContent struct {
	holder *etree.Element
	elems  []*etree.Element
	attrs  *omap.Map[string]
}

// AddForeignElement attaches el to the receiver. Attaching an element that is
// already owned elsewhere fails without mutating either side.
func (f *foreignContent) AddForeignElement(el *etree.Element) error {
	if el == nil {
		return fmt.Errorf("foreign element is nil")
	}
	if el.Parent() != nil {
		return fmt.Errorf("foreign element <%s> already has an owner", el.Tag)
	}
	if f.holder == nil {
		f.holder = etree.NewElement("foreign-content")
	}
	f.holder.AddChild(el)
	f.elems = append(f.elems, el)
	return nil
}

// AddForeignAttribute records a namespaced attribute, keeping insertion order.
func (f *foreignContent) AddForeignAttribute(name, value string) {
	if f.attrs == nil {
		f.attrs = omap.New[string]()
	}
	f.attrs.Set(name, value)
}

func (f *foreignContent) HasForeignElements() bool   { return len(f.elems) > 0 }
func (f *foreignContent) HasForeignAttributes() bool { return f.attrs != nil && f.attrs.Len() > 0 }

// ForeignElements returns the attached elements in attachment order. The
// slice is a copy; the elements are the owned originals.
func (f *foreignContent) ForeignElements() []*etree.Element {
	out := make([]*etree.Element, len(f.elems))
	copy(out, f.elems)
	return out
}

// ForeignAttributes returns an independent copy of the ordered attributes.
func (f *foreignContent) ForeignAttributes() *omap.Map[string] {
	if f.attrs == nil {
		return omap.New[string]()
	}
	return f.attrs.Clone()
}

// fillXML appends copies of the foreign elements as children of e and the
// foreign attributes onto e. Elements come first or last depending on the
// construct's fixed order, so the two halves are exposed separately.
func (f *foreignContent) fillElements(e *etree.Element) {
	for _, fe := range f.elems {
		e.AddChild(fe.Copy())
	}
}

func (f *foreignContent) fillAttributes(e *etree.Element) {
	if f.attrs == nil {
		return
	}
	f.attrs.Each(func(k, v string) {
		e.CreateAttr(k, v)
	})
}
