package model

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// The reader covers the modeled subset of the schema grammar: schema, ns,
// pattern, rule, assert, report, let, include, extends, diagnostics. Elements
// in other namespaces are preserved verbatim as foreign content.

// isSchematron reports whether el belongs to the schematron vocabulary.
// Documents without namespace declarations are accepted leniently.
func isSchematron(el *etree.Element) bool {
	ns := el.NamespaceURI()
	return ns == NamespaceSchematron || ns == ""
}

// ReadSchema parses a schema document into the model.
func ReadSchema(doc *etree.Document) (*Schema, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("schematron: empty schema document")
	}
	if root.Tag != ElementSchema || !isSchematron(root) {
		return nil, fmt.Errorf("schematron: unexpected root element <%s>", root.Tag)
	}
	s := &Schema{SchemaVersion: root.SelectAttrValue(AttrSchemaVersion, "")}
	for _, ch := range root.ChildElements() {
		if !isSchematron(ch) {
			continue // foreign content at schema level is out of the modeled subset
		}
		switch ch.Tag {
		case ElementTitle:
			s.Title = strings.TrimSpace(ch.Text())
		case ElementNS:
			s.Namespaces = append(s.Namespaces, Namespace{
				Prefix: ch.SelectAttrValue(AttrPrefix, ""),
				URI:    ch.SelectAttrValue(AttrURI, ""),
			})
		case ElementPattern:
			p, err := readPattern(ch)
			if err != nil {
				return nil, err
			}
			s.Patterns = append(s.Patterns, p)
		case ElementDiagnostics:
			for _, d := range ch.ChildElements() {
				if d.Tag == ElementDiagnostic && isSchematron(d) {
					s.Diagnostics = append(s.Diagnostics, &Diagnostic{
						ID:   d.SelectAttrValue(AttrID, ""),
						Text: strings.TrimSpace(d.Text()),
					})
				}
			}
		}
	}
	return s, nil
}

func readPattern(el *etree.Element) (*Pattern, error) {
	p := &Pattern{ID: el.SelectAttrValue(AttrID, "")}
	for _, ch := range el.ChildElements() {
		if !isSchematron(ch) {
			continue
		}
		switch ch.Tag {
		case ElementTitle:
			p.Title = strings.TrimSpace(ch.Text())
		case ElementRule:
			r, err := ReadRule(ch)
			if err != nil {
				return nil, err
			}
			p.Rules = append(p.Rules, r)
		}
	}
	return p, nil
}

// ReadRule parses one rule element, preserving foreign elements and
// attributes verbatim.
func ReadRule(el *etree.Element) (*Rule, error) {
	r := &Rule{
		Flag:     el.SelectAttrValue(AttrFlag, ""),
		Abstract: el.SelectAttrValue(AttrAbstract, "") == "true",
		Context:  el.SelectAttrValue(AttrContext, ""),
		ID:       el.SelectAttrValue(AttrID, ""),
		Rich:     readRich(el),
		Linkable: readLinkable(el),
	}
	readForeignAttributes(el, &r.foreignContent, map[string]bool{
		AttrFlag: true, AttrAbstract: true, AttrContext: true, AttrID: true,
		AttrRole: true, AttrSubject: true,
	})
	for _, ch := range el.ChildElements() {
		if !isSchematron(ch) {
			if err := r.AddForeignElement(ch.Copy()); err != nil {
				return nil, err
			}
			continue
		}
		switch ch.Tag {
		case ElementInclude:
			r.AddInclude(&Include{Href: ch.SelectAttrValue(AttrHref, "")})
		case ElementLet:
			r.AddLet(&Let{
				Name:  ch.SelectAttrValue(AttrName, ""),
				Value: ch.SelectAttrValue(AttrValue, ""),
			})
		case ElementAssert, ElementReport:
			a, err := readAssertReport(ch)
			if err != nil {
				return nil, err
			}
			r.AddAssertReport(a)
		case ElementExtends:
			r.AddExtends(&Extends{RuleID: ch.SelectAttrValue(AttrRule, "")})
		default:
			return nil, fmt.Errorf("schematron: unexpected <%s> inside <rule>", ch.Tag)
		}
	}
	return r, nil
}

func readAssertReport(el *etree.Element) (*AssertReport, error) {
	a := &AssertReport{
		IsAssert: el.Tag == ElementAssert,
		Test:     el.SelectAttrValue(AttrTest, ""),
		Flag:     el.SelectAttrValue(AttrFlag, ""),
		ID:       el.SelectAttrValue(AttrID, ""),
		Rich:     readRich(el),
		Linkable: readLinkable(el),
		Text:     strings.TrimSpace(el.Text()),
	}
	if ds := el.SelectAttrValue(AttrDiagnostics, ""); ds != "" {
		a.DiagnosticIDs = strings.Fields(ds)
	}
	readForeignAttributes(el, &a.foreignContent, map[string]bool{
		AttrTest: true, AttrFlag: true, AttrID: true, AttrDiagnostics: true,
		AttrRole: true, AttrSubject: true,
	})
	for _, ch := range el.ChildElements() {
		if !isSchematron(ch) {
			if err := a.AddForeignElement(ch.Copy()); err != nil {
				return nil, err
			}
		}
		// name/value-of children are outside the modeled subset; their text is
		// already captured by Text.
	}
	return a, nil
}

func readRich(el *etree.Element) *RichGroup {
	g := &RichGroup{
		Icon: el.SelectAttrValue(AttrIcon, ""),
		See:  el.SelectAttrValue(AttrSee, ""),
		FPI:  el.SelectAttrValue(AttrFPI, ""),
	}
	for _, a := range el.Attr {
		if a.Space == "xml" && a.Key == "lang" {
			g.XMLLang = a.Value
		}
		if a.Space == "xml" && a.Key == "space" {
			g.XMLSpace = a.Value
		}
	}
	if g.isEmpty() {
		return nil
	}
	return g
}

func readLinkable(el *etree.Element) *LinkableGroup {
	g := &LinkableGroup{
		Role:    el.SelectAttrValue(AttrRole, ""),
		Subject: el.SelectAttrValue(AttrSubject, ""),
	}
	if g.isEmpty() {
		return nil
	}
	return g
}

// readForeignAttributes records prefixed attributes outside the schematron
// and xml vocabularies, skipping namespace declarations and the construct's
// own attributes.
func readForeignAttributes(el *etree.Element, fc *foreignContent, own map[string]bool) {
	riches := map[string]bool{AttrIcon: true, AttrSee: true, AttrFPI: true}
	for _, a := range el.Attr {
		switch {
		case a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns"):
			continue
		case a.Space == "xml":
			continue
		case a.Space == "":
			if own[a.Key] || riches[a.Key] {
				continue
			}
			// unprefixed unknown attributes are not foreign; ignore them
			continue
		default:
			fc.AddForeignAttribute(a.Space+":"+a.Key, a.Value)
		}
	}
}
