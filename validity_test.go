package goschematron_test

import (
	"testing"

	goschematron "github.com/reoring/goschematron"
	"github.com/reoring/goschematron/svrl"
)

func reportWith(results ...*svrl.AssertResult) *svrl.SchematronOutput {
	return &svrl.SchematronOutput{
		Patterns: []*svrl.ActivePattern{{
			FiredRules: []*svrl.FiredRule{{Context: "//a", Results: results}},
		}},
	}
}

func TestValidity_ZeroValueIsInvalid(t *testing.T) {
	var v goschematron.Validity
	if v.IsValid() {
		t.Fatalf("zero value must be the fail-closed verdict")
	}
	if v.String() != "INVALID" || goschematron.Valid.String() != "VALID" {
		t.Fatalf("verdict names wrong: %s / %s", v, goschematron.Valid)
	}
}

func TestDefaultValidityDeterminator(t *testing.T) {
	det := goschematron.DefaultValidityDeterminator()

	if det.Validity(nil) != goschematron.Invalid {
		t.Fatalf("absent report must be invalid")
	}
	empty := reportWith()
	if det.Validity(empty) != goschematron.Valid {
		t.Fatalf("no failed asserts must be valid")
	}
	onlyReports := reportWith(
		&svrl.AssertResult{Type: svrl.SuccessfulReport, Location: "/a", Test: "t", Text: "m"},
	)
	if det.Validity(onlyReports) != goschematron.Valid {
		t.Fatalf("successful reports alone must not invalidate")
	}
	failed := reportWith(
		&svrl.AssertResult{Type: svrl.FailedAssert, Location: "/a", Test: "t", Text: "m"},
	)
	if det.Validity(failed) != goschematron.Invalid {
		t.Fatalf("a failed assert must invalidate")
	}
}

func TestIgnoreRolesValidity(t *testing.T) {
	det := goschematron.IgnoreRolesValidity("warning")

	warnOnly := reportWith(
		&svrl.AssertResult{Type: svrl.FailedAssert, Location: "/a", Test: "t", Role: "warning", Text: "m"},
	)
	if det.Validity(warnOnly) != goschematron.Valid {
		t.Fatalf("ignored roles must not invalidate")
	}

	mixed := reportWith(
		&svrl.AssertResult{Type: svrl.FailedAssert, Location: "/a", Test: "t", Role: "warning", Text: "m"},
		&svrl.AssertResult{Type: svrl.FailedAssert, Location: "/b", Test: "t", Text: "m"},
	)
	if det.Validity(mixed) != goschematron.Invalid {
		t.Fatalf("non-ignored failed asserts must still invalidate")
	}

	if det.Validity(nil) != goschematron.Invalid {
		t.Fatalf("absent report must be invalid under any policy")
	}
}
