package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/beevik/etree"

	"github.com/reoring/goschematron/svrl"
)

// Param is one named invocation parameter, substituted into expressions that
// reference it for the duration of a single Execute call.
type Param struct {
	Name  string
	Value any
}

// Listener receives engine diagnostics. Both hooks may be nil.
type Listener struct {
	Warning func(msg string, err error)
	Error   func(msg string, err error)
}

func (l Listener) warn(msg string, err error) {
	if l.Warning != nil {
		l.Warning(msg, err)
	}
}

func (l Listener) fail(msg string, err error) {
	if l.Error != nil {
		l.Error(msg, err)
	}
}

// Config carries the per-invocation configuration: diagnostics sink, secondary
// document resolver and named parameters.
type Config struct {
	Listener Listener
	Resolve  func(href string) (*xmlquery.Node, error)
	Params   []Param
}

// Execute runs the program against doc and populates out, a fresh empty
// document supplied by the caller. Evaluation faults abort with an error and
// no partial result contract: the caller discards out on error.
func (p *Program) Execute(doc *xmlquery.Node, out *etree.Document, cfg Config) error {
	b := svrl.NewBuilder(out, p.title, "", p.schemaVersion)
	for _, ns := range p.nsPrefixes {
		b.AddNSPrefix(ns.Prefix, ns.URI)
	}
	for _, pat := range p.patterns {
		b.StartActivePattern(pat.id, pat.name, "", "")
		// within one pattern the first rule matching a node wins
		fired := map[*xmlquery.Node]bool{}
		for _, r := range pat.rules {
			nodes, err := p.selectContext(doc, r, cfg)
			if err != nil {
				cfg.Listener.fail("selecting rule context", err)
				return err
			}
			for _, node := range nodes {
				if fired[node] {
					continue
				}
				fired[node] = true
				b.StartFiredRule(r.id, r.context, r.role, r.flag)
				if err := p.evaluateTests(r, node, b, cfg); err != nil {
					cfg.Listener.fail("evaluating assertions", err)
					return err
				}
			}
		}
	}
	return nil
}

func (p *Program) evaluateTests(r *rule, node *xmlquery.Node, b *svrl.Builder, cfg Config) error {
	for _, t := range r.tests {
		expr, err := p.exprFor(t, cfg.Params)
		if err != nil {
			return err
		}
		ok := evalBool(expr, node)
		fires := (t.isAssert && !ok) || (!t.isAssert && ok)
		if !fires {
			continue
		}
		res := &svrl.AssertResult{
			Type:     svrl.FailedAssert,
			ID:       t.id,
			Location: locationPath(node),
			Test:     t.raw,
			Role:     t.role,
			Flag:     t.flag,
			Text:     t.text,
		}
		if !t.isAssert {
			res.Type = svrl.SuccessfulReport
		}
		for _, d := range t.diags {
			res.Diagnostics = append(res.Diagnostics, svrl.DiagnosticReference{
				Diagnostic: d.id,
				Text:       d.text,
			})
		}
		b.AddResult(res)
	}
	return nil
}

// exprFor returns the precompiled expression, or compiles the test after
// substituting this invocation's parameters when the expression still
// references variables.
func (p *Program) exprFor(t *test, params []Param) (*xpath.Expr, error) {
	if t.compiled != nil {
		return t.compiled, nil
	}
	expr := substituteParams(t.expr, params)
	compiled, err := p.compileXPath(expr)
	if err != nil {
		return nil, fmt.Errorf("engine: compiling test %q: %w", t.raw, err)
	}
	return compiled, nil
}

func (p *Program) selectContext(doc *xmlquery.Node, r *rule, cfg Config) ([]*xmlquery.Node, error) {
	ce := r.ctx
	top := doc

	if ce.document != "" {
		if cfg.Resolve == nil {
			cfg.Listener.warn("no resolver for secondary document "+ce.document, nil)
			return nil, nil
		}
		resolved, err := cfg.Resolve(ce.document)
		if err != nil {
			return nil, fmt.Errorf("engine: resolving document %q: %w", ce.document, err)
		}
		top = resolved
		if strings.TrimSpace(ce.rest) == "" {
			return []*xmlquery.Node{top}, nil
		}
	}

	compiled := ce.compiled
	if compiled == nil {
		raw := ce.raw
		if ce.document != "" {
			raw = ce.rest
		}
		var err error
		compiled, err = p.compileXPath(substituteParams(raw, cfg.Params))
		if err != nil {
			return nil, fmt.Errorf("engine: compiling context %q: %w", ce.raw, err)
		}
	}
	return xmlquery.QuerySelectorAll(top, compiled), nil
}

// substituteParams replaces $name references with XPath literals for this
// invocation only; nothing is retained on the program.
func substituteParams(expr string, params []Param) string {
	if !strings.Contains(expr, "$") {
		return expr
	}
	ordered := make([]Param, len(params))
	copy(ordered, params)
	// longest names first to avoid partial matches
	sort.SliceStable(ordered, func(i, j int) bool { return len(ordered[i].Name) > len(ordered[j].Name) })
	for _, par := range ordered {
		expr = strings.ReplaceAll(expr, "$"+par.Name, xpathLiteral(par.Value))
	}
	return expr
}

func xpathLiteral(v any) string {
	switch t := v.(type) {
	case nil:
		return "''"
	case bool:
		if t {
			return "true()"
		}
		return "false()"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return "'" + t + "'"
	default:
		return fmt.Sprintf("'%v'", t)
	}
}

// evalBool reduces an XPath evaluation result to the boolean the assertion
// semantics need, following XPath 1.0 truthiness.
func evalBool(expr *xpath.Expr, node *xmlquery.Node) bool {
	v := expr.Evaluate(xmlquery.CreateXPathNavigator(node))
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	case *xpath.NodeIterator:
		return t.MoveNext()
	default:
		return false
	}
}
