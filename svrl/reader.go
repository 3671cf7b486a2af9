package svrl

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// MalformedOutputError indicates that a raw result document violates the
// report grammar. This is an internal-consistency failure: the compiled
// validation program produced nonconforming output.
type MalformedOutputError struct {
	Element string
	Reason  string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("svrl: malformed report output at <%s>: %s", e.Element, e.Reason)
}

func malformed(element, format string, args ...any) error {
	return &MalformedOutputError{Element: element, Reason: fmt.Sprintf(format, args...)}
}

// reader stages enforce the child ordering of the root element:
// text*, ns-prefix*, then (active-pattern, (fired-rule, result*)*)*.
const (
	stageTexts = iota
	stageNSPrefixes
	stagePatterns
)

func isSVRL(el *etree.Element) bool {
	ns := el.NamespaceURI()
	return ns == NamespaceSVRL || ns == ""
}

// Read parses a raw result document into the typed report, enforcing element
// ordering and cardinality.
func Read(doc *etree.Document) (*SchematronOutput, error) {
	root := doc.Root()
	if root == nil {
		return nil, malformed("(document)", "no root element")
	}
	if root.Tag != elementSchematronOutput || !isSVRL(root) {
		return nil, malformed(root.Tag, "expected <%s> root", elementSchematronOutput)
	}
	out := &SchematronOutput{
		Title:         root.SelectAttrValue(attrTitle, ""),
		Phase:         root.SelectAttrValue(attrPhase, ""),
		SchemaVersion: root.SelectAttrValue(attrSchemaVersion, ""),
	}

	stage := stageTexts
	var pattern *ActivePattern
	var rule *FiredRule

	for _, ch := range root.ChildElements() {
		if !isSVRL(ch) {
			return nil, malformed(ch.Tag, "element outside the report vocabulary")
		}
		switch ch.Tag {
		case elementText:
			if stage != stageTexts {
				return nil, malformed(ch.Tag, "free-text notice after %s content", stageName(stage))
			}
			out.Texts = append(out.Texts, strings.TrimSpace(ch.Text()))

		case elementNSPrefix:
			if stage > stageNSPrefixes {
				return nil, malformed(ch.Tag, "ns-prefix notice after pattern content")
			}
			stage = stageNSPrefixes
			out.NSPrefixes = append(out.NSPrefixes, NSPrefix{
				Prefix: ch.SelectAttrValue(attrPrefix, ""),
				URI:    ch.SelectAttrValue(attrURI, ""),
			})

		case elementActivePattern:
			stage = stagePatterns
			pattern = &ActivePattern{
				ID:       ch.SelectAttrValue(attrID, ""),
				Name:     ch.SelectAttrValue(attrName, ""),
				Role:     ch.SelectAttrValue(attrRole, ""),
				Document: ch.SelectAttrValue(attrDocument, ""),
			}
			rule = nil
			out.Patterns = append(out.Patterns, pattern)

		case elementFiredRule:
			if pattern == nil {
				return nil, malformed(ch.Tag, "fired-rule outside any active-pattern")
			}
			ctx := ch.SelectAttrValue(attrContext, "")
			if ctx == "" {
				return nil, malformed(ch.Tag, "missing required 'context'")
			}
			rule = &FiredRule{
				ID:      ch.SelectAttrValue(attrID, ""),
				Context: ctx,
				Role:    ch.SelectAttrValue(attrRole, ""),
				Flag:    ch.SelectAttrValue(attrFlag, ""),
			}
			pattern.FiredRules = append(pattern.FiredRules, rule)

		case elementFailedAssert, elementSuccessfulReport:
			if rule == nil {
				return nil, malformed(ch.Tag, "assertion entry outside any fired-rule")
			}
			res, err := readResult(ch)
			if err != nil {
				return nil, err
			}
			rule.Results = append(rule.Results, res)

		case elementDiagnosticReference:
			return nil, malformed(ch.Tag, "diagnostic-reference outside any assertion entry")

		default:
			return nil, malformed(ch.Tag, "unexpected element")
		}
	}
	return out, nil
}

func readResult(el *etree.Element) (*AssertResult, error) {
	t := FailedAssert
	if el.Tag == elementSuccessfulReport {
		t = SuccessfulReport
	}
	res := &AssertResult{
		Type:     t,
		ID:       el.SelectAttrValue(attrID, ""),
		Location: el.SelectAttrValue(attrLocation, ""),
		Test:     el.SelectAttrValue(attrTest, ""),
		Role:     el.SelectAttrValue(attrRole, ""),
		Flag:     el.SelectAttrValue(attrFlag, ""),
	}
	if res.Location == "" {
		return nil, malformed(el.Tag, "missing required 'location'")
	}
	if res.Test == "" {
		return nil, malformed(el.Tag, "missing required 'test'")
	}

	// children: diagnostic-reference*, then exactly one text
	sawText := false
	for _, ch := range el.ChildElements() {
		if !isSVRL(ch) {
			return nil, malformed(ch.Tag, "element outside the report vocabulary")
		}
		switch ch.Tag {
		case elementDiagnosticReference:
			if sawText {
				return nil, malformed(ch.Tag, "diagnostic-reference after message text")
			}
			d := ch.SelectAttrValue(attrDiagnostic, "")
			if d == "" {
				return nil, malformed(ch.Tag, "missing required 'diagnostic'")
			}
			res.Diagnostics = append(res.Diagnostics, DiagnosticReference{
				Diagnostic: d,
				Text:       strings.TrimSpace(ch.Text()),
			})
		case elementText:
			if sawText {
				return nil, malformed(ch.Tag, "duplicate message text")
			}
			sawText = true
			res.Text = strings.TrimSpace(ch.Text())
		default:
			return nil, malformed(ch.Tag, "unexpected element inside <%s>", el.Tag)
		}
	}
	if !sawText {
		return nil, malformed(el.Tag, "missing required message text")
	}
	return res, nil
}

func stageName(stage int) string {
	switch stage {
	case stageNSPrefixes:
		return "ns-prefix"
	default:
		return "pattern"
	}
}
