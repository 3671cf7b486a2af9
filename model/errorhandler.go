package model

import "log/slog"

// Violation codes reported by the structural validators. Exported consts keep
// handling type-safe by convention and feed the i18n message dictionary.
const (
	CodeAbstractRuleNoID       = "abstract_rule_no_id"
	CodeAbstractRuleHasContext = "abstract_rule_has_context"
	CodeRuleNoContext          = "rule_no_context"
	CodeRuleNoContent          = "rule_no_content"
	CodeAssertNoTest           = "assert_no_test"
	CodeLetNoName              = "let_no_name"
	CodeLetNoValue             = "let_no_value"
	CodeIncludeNoHref          = "include_no_href"
	CodeExtendsNoRule          = "extends_no_rule"
	CodeDiagnosticNoID         = "diagnostic_no_id"
)

// ErrorHandler receives structural violations. Whether a violation aborts the
// surrounding process or is merely recorded is the handler's policy, not the
// validator's.
type ErrorHandler interface {
	Error(el Element, code string, msg string)
}

// Violation is one recorded structural defect.
type Violation struct {
	Element Element
	Code    string
	Message string
}

// CollectingErrorHandler records every violation for later inspection.
type CollectingErrorHandler struct {
	violations []Violation
}

func (h *CollectingErrorHandler) Error(el Element, code string, msg string) {
	h.violations = append(h.violations, Violation{Element: el, Code: code, Message: msg})
}

// Violations returns the recorded defects in report order. The slice is a copy.
func (h *CollectingErrorHandler) Violations() []Violation {
	out := make([]Violation, len(h.violations))
	copy(out, h.violations)
	return out
}

// HasViolations reports whether anything was recorded.
func (h *CollectingErrorHandler) HasViolations() bool { return len(h.violations) > 0 }

// LoggingErrorHandler writes violations to a structured logger.
type LoggingErrorHandler struct {
	Log *slog.Logger
}

func (h LoggingErrorHandler) Error(el Element, code string, msg string) {
	log := h.Log
	if log == nil {
		log = slog.Default()
	}
	log.Error("schematron structural violation", "code", code, "msg", msg)
}
