package model

import (
	"strings"

	"github.com/beevik/etree"
)

// AssertReport is one assertion entry of a rule: an assert fires when its test
// evaluates to false, a report fires when its test evaluates to true.
type AssertReport struct {
	foreignContent

	// IsAssert selects assert semantics; false means report semantics.
	IsAssert bool
	Test     string
	Flag     string
	ID       string
	// DiagnosticIDs references diagnostics by id, in document order.
	DiagnosticIDs []string
	Rich          *RichGroup
	Linkable      *LinkableGroup
	// Text is the human-readable message emitted when the entry fires.
	Text string
}

func (a *AssertReport) elementName() string {
	if a.IsAssert {
		return ElementAssert
	}
	return ElementReport
}

func (a *AssertReport) IsValid(h ErrorHandler) bool {
	if a.Test == "" {
		h.Error(a, CodeAssertNoTest, "<"+a.elementName()+"> has no 'test'")
		return false
	}
	return true
}

func (a *AssertReport) ValidateCompletely(h ErrorHandler) {
	if a.Test == "" {
		h.Error(a, CodeAssertNoTest, "<"+a.elementName()+"> has no 'test'")
	}
}

// IsMinimal is false when rich documentation attributes are present.
func (a *AssertReport) IsMinimal() bool {
	return a.Rich == nil || a.Rich.isEmpty()
}

func (a *AssertReport) ToXML() *etree.Element {
	e := newElement(a.elementName())
	setAttrIfNotEmpty(e, AttrTest, a.Test)
	setAttrIfNotEmpty(e, AttrFlag, a.Flag)
	setAttrIfNotEmpty(e, AttrID, a.ID)
	if len(a.DiagnosticIDs) > 0 {
		e.CreateAttr(AttrDiagnostics, strings.Join(a.DiagnosticIDs, " "))
	}
	if a.Rich != nil {
		a.Rich.fillXML(e)
	}
	if a.Linkable != nil {
		a.Linkable.fillXML(e)
	}
	a.fillElements(e)
	if a.Text != "" {
		e.SetText(a.Text)
	}
	a.fillAttributes(e)
	return e
}
