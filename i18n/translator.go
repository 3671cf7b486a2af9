package i18n

// Translator retrieves localized messages for structural violation codes.
// data provides optional metadata to embed in the message (for example,
// "id" or "element").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "abstract_rule_no_id":
			return "抽象ルールに 'id' がありません"
		case "abstract_rule_has_context":
			return "抽象ルールに 'context' を指定できません"
		case "rule_no_context":
			return "ルールに 'context' が必要です"
		case "rule_no_content":
			return "ルールに内容がありません"
		case "assert_no_test":
			return "アサーションに 'test' がありません"
		case "let_no_name":
			return "変数束縛に 'name' がありません"
		case "let_no_value":
			return "変数束縛に 'value' がありません"
		case "include_no_href":
			return "インクルードに 'href' がありません"
		case "extends_no_rule":
			return "拡張参照に 'rule' がありません"
		case "diagnostic_no_id":
			return "診断に 'id' がありません"
		}
	default: // "en"
		switch code {
		case "abstract_rule_no_id":
			return "abstract rule has no 'id'"
		case "abstract_rule_has_context":
			return "abstract rule may not have a 'context'"
		case "rule_no_context":
			return "rule must have a 'context'"
		case "rule_no_content":
			return "rule has no content"
		case "assert_no_test":
			return "assertion has no 'test'"
		case "let_no_name":
			return "variable binding has no 'name'"
		case "let_no_value":
			return "variable binding has no 'value'"
		case "include_no_href":
			return "include has no 'href'"
		case "extends_no_rule":
			return "extension reference has no 'rule'"
		case "diagnostic_no_id":
			return "diagnostic has no 'id'"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
