package goschematron

import (
	"log/slog"

	"github.com/beevik/etree"

	eng "github.com/reoring/goschematron/internal/engine"
	"github.com/reoring/goschematron/model"
)

// schemaProvider compiles a schema model into a program once and caches the
// outcome. Structural validation gates compilation: an invalid schema yields
// a provider that reports IsValidSchematron false and supplies no program.
type schemaProvider struct {
	valid bool
	prog  Program
	doc   *etree.Document
}

// NewSchemaProvider validates s through h (fail-fast mode) and, when the
// gate passes, compiles it into an executable program. Violations reach h;
// compile faults are logged and leave the provider invalid.
func NewSchemaProvider(s *model.Schema, h model.ErrorHandler, log *slog.Logger) ProgramProvider {
	if log == nil {
		log = slog.Default()
	}
	if h == nil {
		h = model.LoggingErrorHandler{Log: log}
	}
	p := &schemaProvider{doc: s.ToDocument()}
	if !s.IsValid(h) {
		return p
	}
	inner, err := eng.Compile(s)
	if err != nil {
		log.Error("schematron compile failed", "err", err)
		return p
	}
	p.valid = true
	p.prog = &engineProgram{inner: inner}
	return p
}

func (p *schemaProvider) IsValidSchematron() bool { return p.valid }

func (p *schemaProvider) Program() Program { return p.prog }

func (p *schemaProvider) SchemaDocument() *etree.Document { return p.doc }
