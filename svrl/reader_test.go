package svrl_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/beevik/etree"

	"github.com/reoring/goschematron/svrl"
)

func parse(t *testing.T, s string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestRead_FullReport(t *testing.T) {
	doc := parse(t, `
<svrl:schematron-output xmlns:svrl="http://purl.oclc.org/dsdl/svrl"
    title="Invoice rules" schemaVersion="1.0">
  <svrl:text>generated report</svrl:text>
  <svrl:ns-prefix-in-attribute-values prefix="inv" uri="urn:example:invoice"/>
  <svrl:active-pattern id="invoice" name="Invoice checks"/>
  <svrl:fired-rule context="//Invoice/Amount"/>
  <svrl:failed-assert location="/Order[1]/Invoice[1]/Amount[1]" test="number(.) &lt;= 1000">
    <svrl:diagnostic-reference diagnostic="d1">Check the invoice amount.</svrl:diagnostic-reference>
    <svrl:text>amount out of range</svrl:text>
  </svrl:failed-assert>
  <svrl:successful-report location="/Order[1]/Invoice[1]/Amount[1]" test="number(.) &gt; 500">
    <svrl:text>large invoice</svrl:text>
  </svrl:successful-report>
  <svrl:active-pattern id="totals"/>
</svrl:schematron-output>`)

	out, err := svrl.Read(doc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.Title != "Invoice rules" || out.SchemaVersion != "1.0" {
		t.Fatalf("root attributes lost: %+v", out)
	}
	if len(out.Texts) != 1 || out.Texts[0] != "generated report" {
		t.Fatalf("text notices lost: %v", out.Texts)
	}
	if len(out.NSPrefixes) != 1 || out.NSPrefixes[0].Prefix != "inv" {
		t.Fatalf("ns-prefix notices lost: %v", out.NSPrefixes)
	}
	if len(out.Patterns) != 2 {
		t.Fatalf("expected 2 active patterns, got %d", len(out.Patterns))
	}
	p := out.Patterns[0]
	if p.ID != "invoice" || p.Name != "Invoice checks" || len(p.FiredRules) != 1 {
		t.Fatalf("pattern grouping wrong: %+v", p)
	}
	fr := p.FiredRules[0]
	if fr.Context != "//Invoice/Amount" || len(fr.Results) != 2 {
		t.Fatalf("fired-rule grouping wrong: %+v", fr)
	}
	fa := fr.Results[0]
	if fa.Type != svrl.FailedAssert || fa.Location != "/Order[1]/Invoice[1]/Amount[1]" {
		t.Fatalf("failed-assert wrong: %+v", fa)
	}
	if len(fa.Diagnostics) != 1 || fa.Diagnostics[0].Diagnostic != "d1" ||
		fa.Diagnostics[0].Text != "Check the invoice amount." {
		t.Fatalf("diagnostic reference wrong: %+v", fa.Diagnostics)
	}
	if fa.Text != "amount out of range" {
		t.Fatalf("message text wrong: %q", fa.Text)
	}
	if fr.Results[1].Type != svrl.SuccessfulReport {
		t.Fatalf("successful-report wrong: %+v", fr.Results[1])
	}
	// the trailing empty pattern stays, with no fired rules
	if len(out.Patterns[1].FiredRules) != 0 {
		t.Fatalf("empty pattern gained rules: %+v", out.Patterns[1])
	}

	if out.FailedAssertCount() != 1 {
		t.Fatalf("failed-assert count: %d", out.FailedAssertCount())
	}
	if got := out.AllSuccessfulReports(); len(got) != 1 || got[0].Text != "large invoice" {
		t.Fatalf("successful reports: %+v", got)
	}
}

func TestRead_GrammarViolations(t *testing.T) {
	const header = `<svrl:schematron-output xmlns:svrl="http://purl.oclc.org/dsdl/svrl">`
	const footer = `</svrl:schematron-output>`

	cases := []struct {
		name string
		body string
	}{
		{"assertion outside fired-rule", `
  <svrl:active-pattern id="p"/>
  <svrl:failed-assert location="/a" test="t"><svrl:text>m</svrl:text></svrl:failed-assert>`},
		{"fired-rule outside active-pattern", `
  <svrl:fired-rule context="//a"/>`},
		{"diagnostic-reference at root level", `
  <svrl:diagnostic-reference diagnostic="d1">x</svrl:diagnostic-reference>`},
		{"text notice after patterns", `
  <svrl:active-pattern id="p"/>
  <svrl:text>late</svrl:text>`},
		{"ns-prefix notice after patterns", `
  <svrl:active-pattern id="p"/>
  <svrl:ns-prefix-in-attribute-values prefix="a" uri="urn:a"/>`},
		{"fired-rule without context", `
  <svrl:active-pattern id="p"/>
  <svrl:fired-rule/>`},
		{"result without location", `
  <svrl:active-pattern id="p"/>
  <svrl:fired-rule context="//a"/>
  <svrl:failed-assert test="t"><svrl:text>m</svrl:text></svrl:failed-assert>`},
		{"result without test", `
  <svrl:active-pattern id="p"/>
  <svrl:fired-rule context="//a"/>
  <svrl:failed-assert location="/a"><svrl:text>m</svrl:text></svrl:failed-assert>`},
		{"result without message text", `
  <svrl:active-pattern id="p"/>
  <svrl:fired-rule context="//a"/>
  <svrl:failed-assert location="/a" test="t"/>`},
		{"diagnostic-reference after message text", `
  <svrl:active-pattern id="p"/>
  <svrl:fired-rule context="//a"/>
  <svrl:failed-assert location="/a" test="t">
    <svrl:text>m</svrl:text>
    <svrl:diagnostic-reference diagnostic="d1">x</svrl:diagnostic-reference>
  </svrl:failed-assert>`},
		{"diagnostic-reference without diagnostic", `
  <svrl:active-pattern id="p"/>
  <svrl:fired-rule context="//a"/>
  <svrl:failed-assert location="/a" test="t">
    <svrl:diagnostic-reference>x</svrl:diagnostic-reference>
    <svrl:text>m</svrl:text>
  </svrl:failed-assert>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := parse(t, header+tc.body+footer)
			_, err := svrl.Read(doc)
			if err == nil {
				t.Fatalf("expected a grammar violation")
			}
			var merr *svrl.MalformedOutputError
			if !errors.As(err, &merr) {
				t.Fatalf("expected MalformedOutputError, got %T: %v", err, err)
			}
		})
	}
}

func TestRead_RejectsForeignRoot(t *testing.T) {
	doc := parse(t, `<report/>`)
	if _, err := svrl.Read(doc); err == nil {
		t.Fatalf("expected an error for a non-report root")
	}
}

func TestBuilder_RoundTrip(t *testing.T) {
	doc := etree.NewDocument()
	b := svrl.NewBuilder(doc, "Invoice rules", "", "1.0")
	b.AddText("generated report")
	b.AddNSPrefix("inv", "urn:example:invoice")
	b.StartActivePattern("invoice", "Invoice checks", "", "")
	b.StartFiredRule("", "//Invoice/Amount", "", "")
	b.AddResult(&svrl.AssertResult{
		Type:     svrl.FailedAssert,
		Location: "/Order[1]/Invoice[1]/Amount[1]",
		Test:     "number(.) <= 1000",
		Diagnostics: []svrl.DiagnosticReference{
			{Diagnostic: "d1", Text: "Check the invoice amount."},
		},
		Text: "amount out of range",
	})

	out, err := svrl.Read(doc)
	if err != nil {
		t.Fatalf("built report must satisfy its own grammar: %v", err)
	}
	if out.Title != "Invoice rules" || len(out.Patterns) != 1 {
		t.Fatalf("round-trip lost structure: %+v", out)
	}
	fa := out.AllFailedAsserts()
	if len(fa) != 1 || fa[0].Test != "number(.) <= 1000" || len(fa[0].Diagnostics) != 1 {
		t.Fatalf("round-trip lost the failed-assert: %+v", fa)
	}

	// the raw serialization carries the report namespace
	s, err := doc.WriteToString()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !strings.Contains(s, svrl.NamespaceSVRL) {
		t.Fatalf("missing report namespace declaration in %q", s)
	}
}
