package goschematron

import "github.com/reoring/goschematron/svrl"

// Validity is the binary verdict of a validation run. The zero value is
// Invalid: absence of evidence never yields VALID.
type Validity int

const (
	// Invalid is the fail-closed verdict.
	Invalid Validity = iota
	// Valid means the report satisfied the configured policy.
	Valid
)

// IsValid reports whether the verdict is Valid.
func (v Validity) IsValid() bool { return v == Valid }

func (v Validity) String() string {
	if v == Valid {
		return "VALID"
	}
	return "INVALID"
}

// ValidityDeterminator reduces a structured report to a verdict. It is a
// strategy, not hardwired logic, because consumers need alternate criteria
// such as ignoring warning-role assertions.
type ValidityDeterminator interface {
	Validity(out *svrl.SchematronOutput) Validity
}

// ValidityDeterminatorFunc adapts a function to the interface.
type ValidityDeterminatorFunc func(out *svrl.SchematronOutput) Validity

func (f ValidityDeterminatorFunc) Validity(out *svrl.SchematronOutput) Validity { return f(out) }

// DefaultValidityDeterminator is the standard policy: any failed-assert
// anywhere in the report makes the document invalid.
func DefaultValidityDeterminator() ValidityDeterminator {
	return ValidityDeterminatorFunc(func(out *svrl.SchematronOutput) Validity {
		if out == nil || out.FailedAssertCount() > 0 {
			return Invalid
		}
		return Valid
	})
}

// IgnoreRolesValidity builds a policy that skips failed-asserts whose role is
// listed, so that e.g. role="warning" entries do not fail the document.
func IgnoreRolesValidity(roles ...string) ValidityDeterminator {
	ignored := map[string]bool{}
	for _, r := range roles {
		ignored[r] = true
	}
	return ValidityDeterminatorFunc(func(out *svrl.SchematronOutput) Validity {
		if out == nil {
			return Invalid
		}
		for _, fa := range out.AllFailedAsserts() {
			if !ignored[fa.Role] {
				return Invalid
			}
		}
		return Valid
	})
}
