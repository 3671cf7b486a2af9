package model_test

import (
	"testing"

	"github.com/beevik/etree"

	"github.com/reoring/goschematron/model"
)

func newAssert(test string) *model.AssertReport {
	return &model.AssertReport{IsAssert: true, Test: test, Text: "must hold"}
}

func violationCodes(h *model.CollectingErrorHandler) []string {
	var out []string
	for _, v := range h.Violations() {
		out = append(out, v.Code)
	}
	return out
}

func TestRule_AbstractNeedsID(t *testing.T) {
	r := &model.Rule{Abstract: true}
	r.AddAssertReport(newAssert("true()"))

	h := &model.CollectingErrorHandler{}
	if r.IsValid(h) {
		t.Fatalf("abstract rule without id must be invalid")
	}
	codes := violationCodes(h)
	if len(codes) != 1 || codes[0] != model.CodeAbstractRuleNoID {
		t.Fatalf("expected single %s violation, got %v", model.CodeAbstractRuleNoID, codes)
	}
	// never silently corrected
	if r.ID != "" || !r.Abstract {
		t.Fatalf("validation must not mutate the rule")
	}
}

func TestRule_AbstractMayNotHaveContext(t *testing.T) {
	r := &model.Rule{Abstract: true, ID: "base", Context: "//Order"}
	r.AddAssertReport(newAssert("true()"))

	h := &model.CollectingErrorHandler{}
	if r.IsValid(h) {
		t.Fatalf("abstract rule with context must be invalid")
	}
	if codes := violationCodes(h); len(codes) != 1 || codes[0] != model.CodeAbstractRuleHasContext {
		t.Fatalf("expected %s, got %v", model.CodeAbstractRuleHasContext, codes)
	}
}

func TestRule_ConcreteNeedsContext(t *testing.T) {
	r := &model.Rule{}
	r.AddAssertReport(newAssert("true()"))

	h := &model.CollectingErrorHandler{}
	if r.IsValid(h) {
		t.Fatalf("rule without context must be invalid")
	}
	if codes := violationCodes(h); len(codes) != 1 || codes[0] != model.CodeRuleNoContext {
		t.Fatalf("expected %s, got %v", model.CodeRuleNoContext, codes)
	}
}

func TestRule_EmptyContent(t *testing.T) {
	r := &model.Rule{Context: "//Order"}

	h := &model.CollectingErrorHandler{}
	if r.IsValid(h) {
		t.Fatalf("rule without content must be invalid")
	}
	if codes := violationCodes(h); len(codes) != 1 || codes[0] != model.CodeRuleNoContent {
		t.Fatalf("expected %s, got %v", model.CodeRuleNoContent, codes)
	}
}

func TestRule_ValidateCompletelyReportsEverything(t *testing.T) {
	// empty content plus a defective let: one call yields every defect
	r := &model.Rule{Context: "//Order"}
	r.AddLet(&model.Let{Name: "", Value: "1"})

	h := &model.CollectingErrorHandler{}
	r.ValidateCompletely(h)

	codes := violationCodes(h)
	if len(codes) != 2 {
		t.Fatalf("expected 2 violations, got %v", codes)
	}
	noContent := 0
	for _, c := range codes {
		if c == model.CodeRuleNoContent {
			noContent++
		}
	}
	if noContent != 1 {
		t.Fatalf("expected exactly one %s violation, got %v", model.CodeRuleNoContent, codes)
	}
}

func TestRule_IsValidShortCircuitsOnFirstChildFailure(t *testing.T) {
	r := &model.Rule{Context: "//Order"}
	r.AddLet(&model.Let{Name: "", Value: "1"}) // first defect
	r.AddAssertReport(&model.AssertReport{IsAssert: true}) // second defect, never reached

	h := &model.CollectingErrorHandler{}
	if r.IsValid(h) {
		t.Fatalf("expected invalid rule")
	}
	if codes := violationCodes(h); len(codes) != 1 || codes[0] != model.CodeLetNoName {
		t.Fatalf("fail-fast must stop after the first child violation, got %v", codes)
	}

	// collect-all sees both
	h2 := &model.CollectingErrorHandler{}
	r.ValidateCompletely(h2)
	if codes := violationCodes(h2); len(codes) != 2 {
		t.Fatalf("collect-all must report both violations, got %v", codes)
	}
}

func TestRule_IsMinimal(t *testing.T) {
	r := &model.Rule{Context: "//Order"}
	r.AddAssertReport(newAssert("true()"))
	if !r.IsMinimal() {
		t.Fatalf("plain rule should be minimal")
	}

	r.Rich = &model.RichGroup{See: "http://example.org/doc"}
	if r.IsMinimal() {
		t.Fatalf("rich documentation makes a rule non-minimal")
	}

	r2 := &model.Rule{Context: "//Order"}
	r2.AddAssertReport(newAssert("true()"))
	r2.AddExtends(&model.Extends{RuleID: "base"})
	if r2.IsMinimal() {
		t.Fatalf("extension references make a rule non-minimal")
	}

	r3 := &model.Rule{Context: "//Order"}
	r3.AddAssertReport(newAssert("true()"))
	r3.AddInclude(&model.Include{Href: "part.sch"})
	if r3.IsMinimal() {
		t.Fatalf("includes make a rule non-minimal")
	}
}

func TestRule_ForeignElementSingleOwner(t *testing.T) {
	fe := etree.NewElement("ext:note")
	fe.CreateAttr("xmlns:ext", "urn:example:ext")

	r1 := &model.Rule{Context: "//Order"}
	r1.AddAssertReport(newAssert("true()"))
	if err := r1.AddForeignElement(fe); err != nil {
		t.Fatalf("first attach: %v", err)
	}

	r2 := &model.Rule{Context: "//Order"}
	r2.AddAssertReport(newAssert("true()"))
	if err := r2.AddForeignElement(fe); err == nil {
		t.Fatalf("attaching an owned element must fail")
	}

	// both rules unchanged
	if got := len(r1.ForeignElements()); got != 1 {
		t.Fatalf("owner lost its element, have %d", got)
	}
	if r2.HasForeignElements() {
		t.Fatalf("rejected attach must not mutate the second rule")
	}
}

func TestRule_ForeignAttributesOrderedAndCopied(t *testing.T) {
	r := &model.Rule{Context: "//Order"}
	r.AddForeignAttribute("ext:b", "2")
	r.AddForeignAttribute("ext:a", "1")

	attrs := r.ForeignAttributes()
	if got := attrs.Keys(); len(got) != 2 || got[0] != "ext:b" || got[1] != "ext:a" {
		t.Fatalf("insertion order lost: %v", got)
	}

	// the copy is independent of internal storage
	attrs.Set("ext:c", "3")
	if r.ForeignAttributes().Len() != 2 {
		t.Fatalf("mutating the copy leaked into the rule")
	}
}

func TestRule_SerializationOrder(t *testing.T) {
	r := &model.Rule{Flag: "fatal", Context: "//Order", ID: "r1"}
	fe := etree.NewElement("ext:note")
	fe.CreateAttr("xmlns:ext", "urn:example:ext")
	if err := r.AddForeignElement(fe); err != nil {
		t.Fatalf("attach: %v", err)
	}
	r.AddInclude(&model.Include{Href: "part.sch"})
	r.AddLet(&model.Let{Name: "max", Value: "10"})
	r.AddAssertReport(newAssert("true()"))
	r.AddForeignAttribute("ext:origin", "generated")

	e := r.ToXML()
	if e.SelectAttrValue("flag", "") != "fatal" {
		t.Fatalf("missing flag attribute")
	}
	if e.SelectAttrValue("abstract", "") != "" {
		t.Fatalf("non-abstract rules must omit the abstract attribute")
	}
	if e.SelectAttrValue("ext:origin", "") != "generated" {
		t.Fatalf("missing foreign attribute")
	}

	var tags []string
	for _, ch := range e.ChildElements() {
		tags = append(tags, ch.Tag)
	}
	want := []string{"note", "include", "let", "assert"}
	if len(tags) != len(want) {
		t.Fatalf("child count: got %v want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("child order: got %v want %v", tags, want)
		}
	}
}

func TestRule_AbstractSerializesLiteralTrue(t *testing.T) {
	r := &model.Rule{Abstract: true, ID: "base"}
	r.AddAssertReport(newAssert("true()"))
	e := r.ToXML()
	if e.SelectAttrValue("abstract", "") != "true" {
		t.Fatalf("abstract rules serialize abstract=\"true\"")
	}
	if e.SelectAttr("context") != nil {
		t.Fatalf("abstract rules must not serialize a context")
	}
}

func TestRule_LetsAsMapPreservesOrderAndIsIndependent(t *testing.T) {
	r := &model.Rule{Context: "//Order"}
	r.AddLet(&model.Let{Name: "z", Value: "1"})
	r.AddLet(&model.Let{Name: "a", Value: "2"})
	r.AddAssertReport(newAssert("true()"))

	m := r.LetsAsMap()
	if keys := m.Keys(); len(keys) != 2 || keys[0] != "z" || keys[1] != "a" {
		t.Fatalf("declaration order lost: %v", keys)
	}
	m.Set("q", "3")
	if r.LetsAsMap().Len() != 2 {
		t.Fatalf("returned map must be independent")
	}
}
