package goschematron

import (
	"github.com/antchfx/xmlquery"
	"github.com/beevik/etree"

	eng "github.com/reoring/goschematron/internal/engine"
)

// ExecuteConfig is the per-invocation configuration handed to a Program.
type ExecuteConfig struct {
	Listener ErrorListener
	Resolver DocumentResolver
	Params   *Params
}

// Program is a compiled validation program. Execute runs it against the
// parsed input document and populates out, a fresh empty result document; it
// never produces a partial result on error.
type Program interface {
	Execute(doc *xmlquery.Node, out *etree.Document, cfg ExecuteConfig) error
}

// ProgramProvider supplies the compiled program, its validity flag and a
// debug-serializable form of the schema it was compiled from.
type ProgramProvider interface {
	IsValidSchematron() bool
	Program() Program
	SchemaDocument() *etree.Document
}

// engineProgram adapts the internal program to the public interface,
// projecting public configuration onto engine options.
type engineProgram struct {
	inner *eng.Program
}

func (p *engineProgram) Execute(doc *xmlquery.Node, out *etree.Document, cfg ExecuteConfig) error {
	ec := eng.Config{}
	if cfg.Listener != nil {
		ec.Listener = eng.Listener{
			Warning: cfg.Listener.Warning,
			Error:   cfg.Listener.Error,
		}
	}
	if cfg.Resolver != nil {
		ec.Resolve = cfg.Resolver.Resolve
	}
	if cfg.Params != nil {
		cfg.Params.Each(func(name string, value any) {
			ec.Params = append(ec.Params, eng.Param{Name: name, Value: value})
		})
	}
	return p.inner.Execute(doc, out, ec)
}
