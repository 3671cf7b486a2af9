// Package engine compiles the rule model into an executable validation
// program and runs it against XML instances, producing the raw report
// document. The XPath evaluator is the external capability; everything here
// is orchestration around it.
package engine

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/antchfx/xpath"

	"github.com/reoring/goschematron/model"
)

// Program is a compiled validation program: patterns and rules with their
// context and test expressions precompiled where possible. A Program is
// immutable after Compile and safe for concurrent Execute calls; per-call
// state lives in Config.
type Program struct {
	title         string
	schemaVersion string
	nsMap         map[string]string
	nsPrefixes    []model.Namespace
	patterns      []*pattern
}

type pattern struct {
	id    string
	name  string
	rules []*rule
}

type rule struct {
	id      string
	context string
	role    string
	flag    string
	ctx     *compiledExpr
	tests   []*test
}

type test struct {
	isAssert bool
	raw      string // the author's test, echoed into reports
	expr     string // after let inlining; parameters still as $name
	compiled *xpath.Expr
	id       string
	role     string
	flag     string
	text     string
	diags    []diagnosticRef
}

type diagnosticRef struct {
	id   string
	text string
}

// compiledExpr is a context expression, optionally split into a secondary
// document reference and a remainder evaluated inside that document.
type compiledExpr struct {
	raw      string
	document string
	rest     string
	compiled *xpath.Expr // nil while the expression still references $params
}

var documentHeadRe = regexp.MustCompile(`^\s*document\(\s*'([^']+)'\s*\)\s*(.*)$`)

// Compile turns a structurally valid schema into a Program. Extension
// references are inlined from abstract rules of the same pattern; bound
// variables are inlined textually into test expressions.
func Compile(s *model.Schema) (*Program, error) {
	p := &Program{
		title:         s.Title,
		schemaVersion: s.SchemaVersion,
		nsMap:         map[string]string{},
		nsPrefixes:    append([]model.Namespace(nil), s.Namespaces...),
	}
	for _, ns := range s.Namespaces {
		p.nsMap[ns.Prefix] = ns.URI
	}
	for _, mp := range s.Patterns {
		cp := &pattern{id: mp.ID, name: mp.Title}
		abstract := map[string]*model.Rule{}
		for _, mr := range mp.Rules {
			if mr.Abstract {
				abstract[mr.ID] = mr
			}
		}
		for _, mr := range mp.Rules {
			if mr.Abstract {
				continue
			}
			cr, err := p.compileRule(s, mr, abstract)
			if err != nil {
				return nil, err
			}
			cp.rules = append(cp.rules, cr)
		}
		p.patterns = append(p.patterns, cp)
	}
	return p, nil
}

func (p *Program) compileRule(s *model.Schema, mr *model.Rule, abstract map[string]*model.Rule) (*rule, error) {
	cr := &rule{id: mr.ID, context: mr.Context, flag: mr.Flag}
	if mr.Linkable != nil {
		cr.role = mr.Linkable.Role
	}

	ctx, err := p.compileContext(mr.Context)
	if err != nil {
		return nil, fmt.Errorf("engine: rule %q: %w", mr.Context, err)
	}
	cr.ctx = ctx

	entries, err := expandContent(mr, abstract, nil)
	if err != nil {
		return nil, err
	}
	extenderLets := letBindings(mr)
	for _, e := range entries {
		expr := inlineLets(e.test, extenderLets)
		t := &test{
			isAssert: e.entry.IsAssert,
			raw:      e.entry.Test,
			expr:     expr,
			id:       e.entry.ID,
			flag:     e.entry.Flag,
			text:     e.entry.Text,
		}
		if e.entry.Linkable != nil {
			t.role = e.entry.Linkable.Role
		}
		for _, id := range e.entry.DiagnosticIDs {
			d, ok := s.DiagnosticByID(id)
			if !ok {
				return nil, fmt.Errorf("engine: assertion references unknown diagnostic %q", id)
			}
			t.diags = append(t.diags, diagnosticRef{id: d.ID, text: d.Text})
		}
		if !strings.Contains(expr, "$") {
			compiled, err := p.compileXPath(expr)
			if err != nil {
				return nil, fmt.Errorf("engine: compiling test %q: %w", e.entry.Test, err)
			}
			t.compiled = compiled
		}
		cr.tests = append(cr.tests, t)
	}
	return cr, nil
}

// expandedEntry pairs an assertion with its test after the declaring rule's
// bound variables have been inlined.
type expandedEntry struct {
	entry *model.AssertReport
	test  string
}

// expandContent flattens a rule's content sequence, pulling in abstract rule
// content referenced through <extends>. Targets must be abstract rules of the
// same pattern; cycles are rejected.
func expandContent(mr *model.Rule, abstract map[string]*model.Rule, visiting []string) ([]expandedEntry, error) {
	lets := letBindings(mr)
	var out []expandedEntry
	for _, c := range mr.Content() {
		switch e := c.(type) {
		case *model.AssertReport:
			out = append(out, expandedEntry{entry: e, test: inlineLets(e.Test, lets)})
		case *model.Extends:
			target, ok := abstract[e.RuleID]
			if !ok {
				return nil, fmt.Errorf("engine: <extends> references %q which is not an abstract rule in the same pattern", e.RuleID)
			}
			for _, seen := range visiting {
				if seen == e.RuleID {
					return nil, fmt.Errorf("engine: <extends> cycle through %q", e.RuleID)
				}
			}
			nested, err := expandContent(target, abstract, append(visiting, e.RuleID))
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
		}
	}
	return out, nil
}

type binding struct {
	name  string
	value string
}

func letBindings(mr *model.Rule) []binding {
	var out []binding
	for _, l := range mr.Lets() {
		out = append(out, binding{name: l.Name, value: l.Value})
	}
	// longest names first so $amountMax never partially matches $amount
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].name) > len(out[j].name) })
	return out
}

// inlineLets substitutes $name references with the parenthesized value
// expression. The evaluator has no variable binding facility, so bindings are
// expanded textually, which matches the inclusion semantics of let.
func inlineLets(expr string, lets []binding) string {
	for _, b := range lets {
		expr = strings.ReplaceAll(expr, "$"+b.name, "("+b.value+")")
	}
	return expr
}

func (p *Program) compileContext(raw string) (*compiledExpr, error) {
	ce := &compiledExpr{raw: raw}
	if m := documentHeadRe.FindStringSubmatch(raw); m != nil {
		ce.document = m[1]
		ce.rest = m[2]
		if ce.rest != "" && !strings.Contains(ce.rest, "$") {
			compiled, err := p.compileXPath(ce.rest)
			if err != nil {
				return nil, fmt.Errorf("compiling context %q: %w", raw, err)
			}
			ce.compiled = compiled
		}
		return ce, nil
	}
	if !strings.Contains(raw, "$") {
		compiled, err := p.compileXPath(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling context %q: %w", raw, err)
		}
		ce.compiled = compiled
	}
	return ce, nil
}

func (p *Program) compileXPath(expr string) (*xpath.Expr, error) {
	if len(p.nsMap) > 0 {
		return xpath.CompileWithNS(expr, p.nsMap)
	}
	return xpath.Compile(expr)
}
