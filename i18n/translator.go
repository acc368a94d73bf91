// Package i18n resolves human-readable messages for issue codes.
package i18n

// Translator retrieves localized messages for issue codes. data provides
// optional metadata to embed in the message (for example, "min" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	if msg, ok := lookupCatalog(t.lang, code); ok {
		return msg
	}
	switch t.lang {
	case "ja":
		switch code {
		case "null_value":
			return "null は許可されていません"
		case "required":
			return "必須プロパティが不足しています"
		case "type_mismatch":
			return "型が一致しません"
		case "min_length":
			return "短すぎます"
		case "max_length":
			return "長すぎます"
		case "min_value":
			return "小さすぎます"
		case "max_value":
			return "大きすぎます"
		case "min_items":
			return "要素数が不足しています"
		case "max_items":
			return "要素数が多すぎます"
		case "pattern":
			return "形式が一致しません"
		case "invalid_enum":
			return "許可されていない値です"
		case "invalid_format":
			return "形式が不正です"
		case "business_rule":
			return "業務ルールに違反しています"
		case "dependency_unavailable":
			return "依存先サービスが利用できません"
		}
	default: // "en"
		switch code {
		case "null_value":
			return "value must not be null"
		case "required":
			return "required property missing"
		case "type_mismatch":
			return "type mismatch"
		case "min_length":
			return "too short"
		case "max_length":
			return "too long"
		case "min_value":
			return "too small"
		case "max_value":
			return "too big"
		case "min_items":
			return "too few items"
		case "max_items":
			return "too many items"
		case "pattern":
			return "does not match pattern"
		case "invalid_enum":
			return "value not allowed"
		case "invalid_format":
			return "invalid format"
		case "business_rule":
			return "business rule violated"
		case "dependency_unavailable":
			return "dependency unavailable"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}
var currentLang = "en"

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentLang = lang
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator wholesale. Passing nil restores the
// built-in dictionary.
func SetTranslator(t Translator) {
	if t == nil {
		currentTranslator = dictTranslator{lang: currentLang}
		return
	}
	currentTranslator = t
}

// T resolves a message through the current Translator.
func T(code string, data map[string]string) string {
	return currentTranslator.Message(code, data)
}
