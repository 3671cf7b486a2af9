package goschematron

import (
	"fmt"
	"log/slog"

	"github.com/antchfx/xmlquery"
	"github.com/beevik/etree"

	"github.com/reoring/goschematron/model"
	"github.com/reoring/goschematron/svrl"
)

// DocumentFactory produces the empty mutable result document an execution
// populates. Injectable so callers can pre-configure the sink.
type DocumentFactory func() *etree.Document

// Schematron validates XML documents against one compiled schema. The
// configuration (error listener, document resolver, parameters, validity
// policy) is instance-scoped mutable state: one instance must not be invoked
// concurrently, while separate instances are independent.
type Schematron struct {
	provider     ProgramProvider
	listener     ErrorListener
	resolver     DocumentResolver
	params       *Params
	determinator ValidityDeterminator
	factory      DocumentFactory
	log          *slog.Logger
}

// New wraps an externally supplied program provider.
func New(provider ProgramProvider) *Schematron {
	return &Schematron{
		provider:     provider,
		determinator: DefaultValidityDeterminator(),
		factory:      etree.NewDocument,
		log:          slog.Default(),
	}
}

// FromSchema validates and compiles an in-memory schema model.
func FromSchema(s *model.Schema) *Schematron {
	log := slog.Default()
	return New(NewSchemaProvider(s, nil, log))
}

// FromSource reads, validates and compiles a schema resource. Failures are
// logged, never raised: the returned instance simply reports an invalid
// schematron, so downstream validity queries fail closed.
func FromSource(schema Source) *Schematron {
	log := slog.Default()
	doc, ok := readSchemaDocument(schema, log)
	if !ok {
		return New(nil)
	}
	s, err := model.ReadSchema(doc)
	if err != nil {
		log.Warn("schematron schema unreadable", "resource", schema.Name(), "err", err)
		return New(nil)
	}
	return FromSchema(s)
}

// SetErrorListener installs a custom engine diagnostics sink; nil restores
// the default logging listener.
func (s *Schematron) SetErrorListener(l ErrorListener) { s.listener = l }

// SetDocumentResolver installs a resolver for secondary document references.
func (s *Schematron) SetDocumentResolver(r DocumentResolver) { s.resolver = r }

// SetParameters installs named parameters for subsequent invocations. The
// set is copied; later mutation of the argument does not leak in.
func (s *Schematron) SetParameters(p *Params) {
	if p == nil {
		s.params = nil
		return
	}
	s.params = p.Clone()
}

// Parameters returns a mutable copy of the configured parameters.
func (s *Schematron) Parameters() *Params {
	if s.params == nil {
		return NewParams()
	}
	return s.params.Clone()
}

// SetValidityDeterminator replaces the verdict policy; nil restores the
// default any-failed-assert policy.
func (s *Schematron) SetValidityDeterminator(d ValidityDeterminator) {
	if d == nil {
		d = DefaultValidityDeterminator()
	}
	s.determinator = d
}

// SetDocumentFactory replaces the result-document factory; nil restores the
// default.
func (s *Schematron) SetDocumentFactory(f DocumentFactory) {
	if f == nil {
		f = etree.NewDocument
	}
	s.factory = f
}

// SetLogger replaces the logger used for resource warnings and default
// sinks; nil restores slog.Default().
func (s *Schematron) SetLogger(log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	s.log = log
}

// IsValidSchematron reports whether a valid compiled program is available.
func (s *Schematron) IsValidSchematron() bool {
	return s.provider != nil && s.provider.IsValidSchematron()
}

// IsValid is the boolean validity query. Missing resources and execution
// faults are logged and fail closed.
func (s *Schematron) IsValid(src Source) bool {
	v, err := s.SchematronValidity(src)
	if err != nil {
		s.log.Error("schematron validation failed", "resource", src.Name(), "err", err)
		return false
	}
	return v.IsValid()
}

// SchematronValidity validates src and reduces the report under the
// configured policy. An absent report (missing resource, invalid program)
// yields Invalid without an error; engine faults propagate.
func (s *Schematron) SchematronValidity(src Source) (Validity, error) {
	out, err := s.ApplyValidationToReport(src)
	if err != nil {
		return Invalid, err
	}
	if out == nil {
		return Invalid, nil
	}
	return s.determinator.Validity(out), nil
}

// ApplyValidation executes the program against src and returns the raw
// result document. A nil document with a nil error means no result was
// produced because the program is absent/invalid or the resource is missing,
// which is distinct from a present-but-empty result.
func (s *Schematron) ApplyValidation(src Source) (*etree.Document, error) {
	if !s.IsValidSchematron() {
		return nil, nil
	}
	doc, err := s.readInputDocument(src)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	out := s.factory()
	listener := s.listener
	if listener == nil {
		listener = LoggingErrorListener(s.log)
	}
	cfg := ExecuteConfig{
		Listener: listener,
		Resolver: s.resolver,
		Params:   s.params,
	}
	if err := s.provider.Program().Execute(doc, out, cfg); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyValidationToReport executes the program and parses the raw result into
// the typed report. Grammar violations in the raw result surface as
// svrl.MalformedOutputError.
func (s *Schematron) ApplyValidationToReport(src Source) (*svrl.SchematronOutput, error) {
	doc, err := s.ApplyValidation(src)
	if err != nil || doc == nil {
		return nil, err
	}
	return svrl.Read(doc)
}

// readInputDocument opens src for its single read pass and parses it. The
// stream is closed on success, parse failure and panic alike. A missing
// resource yields (nil, nil), absent rather than an error; a parse failure is
// a request-scoped fault and propagates.
func (s *Schematron) readInputDocument(src Source) (*xmlquery.Node, error) {
	rc, err := src.Open()
	if err != nil {
		s.log.Warn("XML resource does not exist", "resource", src.Name(), "err", err)
		return nil, nil
	}
	defer rc.Close()
	doc, err := xmlquery.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("goschematron: parsing %s: %w", src.Name(), err)
	}
	return doc, nil
}

func readSchemaDocument(src Source, log *slog.Logger) (*etree.Document, bool) {
	rc, err := src.Open()
	if err != nil {
		log.Warn("schematron resource does not exist", "resource", src.Name(), "err", err)
		return nil, false
	}
	defer rc.Close()
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(rc); err != nil {
		log.Warn("schematron resource unparsable", "resource", src.Name(), "err", err)
		return nil, false
	}
	return doc, true
}
