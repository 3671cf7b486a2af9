package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("rule_no_content", nil); msg == "rule_no_content" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("rule_no_content", nil); msg == "rule has no content" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodePassesThrough(t *testing.T) {
	if msg := T("something_else", nil); msg != "something_else" {
		t.Fatalf("unknown codes pass through, got %q", msg)
	}
}
