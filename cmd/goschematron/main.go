package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/beevik/etree"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	goschematron "github.com/reoring/goschematron"
	"github.com/reoring/goschematron/i18n"
	"github.com/reoring/goschematron/model"
	"github.com/reoring/goschematron/svrl"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "validate":
		validateCmd(os.Args[2:])
	case "check":
		checkCmd(os.Args[2:])
	case "batch":
		batchCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "goschematron CLI\n\nUsage:\n  goschematron validate -schema schema.sch [-format text|json] doc.xml [doc2.xml ...]\n  goschematron check -schema schema.sch [-lang en|ja]\n  goschematron batch -manifest manifest.yaml [-format text|json]")
}

func initLogger(format, level string) *slog.Logger {
	var h slog.Handler
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	if strings.ToLower(format) == "json" {
		h = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	} else {
		h = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var schema string
	var format string
	var logLevel string
	fs.StringVar(&schema, "schema", "", "schematron schema file")
	fs.StringVar(&format, "format", "text", "output format: text or json")
	fs.StringVar(&logLevel, "log-level", "warn", "log level")
	_ = fs.Parse(args)
	if schema == "" || fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}
	logger := initLogger("text", logLevel)

	sch, violations := loadSchematron(schema, logger)
	if !sch.IsValidSchematron() {
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "schema violation: %s\n", i18n.T(v.Code, nil))
		}
		fatalf("schema %s is not a valid schematron", schema)
	}

	anyInvalid := false
	for _, doc := range fs.Args() {
		invalid, err := validateOne(sch, doc, format)
		if err != nil {
			fatalf("validating %s: %v", doc, err)
		}
		if invalid {
			anyInvalid = true
		}
	}
	if anyInvalid {
		os.Exit(1)
	}
}

func validateOne(sch *goschematron.Schematron, doc, format string) (invalid bool, err error) {
	report, err := sch.ApplyValidationToReport(goschematron.XMLFile(doc))
	if err != nil {
		return false, err
	}
	if report == nil {
		fmt.Printf("%s: INVALID (no result)\n", doc)
		return true, nil
	}
	verdict := goschematron.DefaultValidityDeterminator().Validity(report)
	if format == "json" {
		if err := svrl.WriteJSON(os.Stdout, report); err != nil {
			return false, err
		}
	} else {
		fmt.Printf("%s: %s (%d failed assertion(s))\n", doc, verdict, report.FailedAssertCount())
		for _, fa := range report.AllFailedAsserts() {
			fmt.Printf("  %s: %s\n", fa.Location, fa.Text)
		}
	}
	return verdict == goschematron.Invalid, nil
}

// checkCmd validates the schema structure itself in collect-all mode and
// reports every defect.
func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var schema string
	var lang string
	fs.StringVar(&schema, "schema", "", "schematron schema file")
	fs.StringVar(&lang, "lang", "en", "message language: en or ja")
	_ = fs.Parse(args)
	if schema == "" {
		fs.Usage()
		os.Exit(2)
	}
	initLogger("text", "warn")
	i18n.SetLanguage(lang)

	s, err := readSchemaModel(schema)
	if err != nil {
		fatalf("%v", err)
	}
	h := &model.CollectingErrorHandler{}
	s.ValidateCompletely(h)
	if !h.HasViolations() {
		fmt.Printf("%s: ok\n", schema)
		return
	}
	for _, v := range h.Violations() {
		fmt.Printf("%s: %s\n", schema, i18n.T(v.Code, nil))
	}
	os.Exit(1)
}

// manifest is the YAML batch configuration.
type manifest struct {
	Entries []manifestEntry `yaml:"entries"`
}

type manifestEntry struct {
	Schema      string   `yaml:"schema"`
	Documents   []string `yaml:"documents"`
	IgnoreRoles []string `yaml:"ignoreRoles"`
}

func batchCmd(args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	var path string
	var format string
	fs.StringVar(&path, "manifest", "", "YAML manifest of schema/document pairs")
	fs.StringVar(&format, "format", "text", "output format: text or json")
	_ = fs.Parse(args)
	if path == "" {
		fs.Usage()
		os.Exit(2)
	}
	logger := initLogger("text", "warn")

	raw, err := os.ReadFile(path)
	if err != nil {
		fatalf("reading manifest: %v", err)
	}
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		fatalf("parsing manifest: %v", err)
	}

	type result struct {
		Schema   string `json:"schema"`
		Document string `json:"document"`
		Verdict  string `json:"verdict"`
		Failed   int    `json:"failedAsserts"`
	}
	var results []result
	anyInvalid := false
	for _, e := range m.Entries {
		sch, _ := loadSchematron(e.Schema, logger)
		det := goschematron.DefaultValidityDeterminator()
		if len(e.IgnoreRoles) > 0 {
			det = goschematron.IgnoreRolesValidity(e.IgnoreRoles...)
		}
		for _, doc := range e.Documents {
			report, err := sch.ApplyValidationToReport(goschematron.XMLFile(doc))
			if err != nil {
				fatalf("validating %s: %v", doc, err)
			}
			r := result{Schema: e.Schema, Document: doc, Verdict: goschematron.Invalid.String()}
			if report != nil {
				r.Verdict = det.Validity(report).String()
				r.Failed = report.FailedAssertCount()
			}
			if r.Verdict != goschematron.Valid.String() {
				anyInvalid = true
			}
			results = append(results, r)
		}
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			fatalf("encoding results: %v", err)
		}
	} else {
		for _, r := range results {
			fmt.Printf("%s  %s  %s (%d)\n", r.Schema, r.Document, r.Verdict, r.Failed)
		}
	}
	if anyInvalid {
		os.Exit(1)
	}
}

func readSchemaModel(path string) (*model.Schema, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", path, err)
	}
	return model.ReadSchema(doc)
}

// loadSchematron builds a validator, collecting structural violations so they
// can be shown to the user instead of only logged.
func loadSchematron(path string, logger *slog.Logger) (*goschematron.Schematron, []model.Violation) {
	s, err := readSchemaModel(path)
	if err != nil {
		logger.Warn("schema unreadable", "schema", path, "err", err)
		return goschematron.New(nil), nil
	}
	h := &model.CollectingErrorHandler{}
	prov := goschematron.NewSchemaProvider(s, h, logger)
	return goschematron.New(prov), h.Violations()
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
