package i18n

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "min").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			msg = "型が不正です"
		case "required":
			msg = "必須フィールドがありません"
		case "unknown_key":
			msg = "未知のキーです"
		case "validator":
			msg = "検証に失敗しました"
		case "too_small":
			msg = "小さすぎます"
		case "too_big":
			msg = "大きすぎます"
		case "too_short":
			msg = "短すぎます"
		case "too_long":
			msg = "長すぎます"
		case "pattern":
			msg = "パターンに一致しません"
		case "not_comparable":
			msg = "比較できない値です"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			msg = "invalid type"
		case "required":
			msg = "field is required"
		case "unknown_key":
			msg = "unknown key"
		case "validator":
			msg = "validator failed"
		case "too_small":
			msg = "value is lower than minimum"
		case "too_big":
			msg = "value is bigger than maximum"
		case "too_short":
			msg = "value is too short"
		case "too_long":
			msg = "value is too long"
		case "pattern":
			msg = "value did not match pattern"
		case "not_comparable":
			msg = "value is not comparable"
		}
	}
	if msg == "" {
		return code
	}
	return withDetails(msg, data)
}

// withDetails appends key=value details in a stable order.
func withDetails(msg string, data map[string]string) string {
	if len(data) == 0 {
		return msg
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b := &strings.Builder{}
	b.WriteString(msg)
	b.WriteString(" (")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(data[k])
	}
	b.WriteString(")")
	return b.String()
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

var matcher = language.NewMatcher([]language.Tag{language.English, language.Japanese})

// SetLanguage switches the built-in Translator language. Any BCP 47 tag is
// accepted ("ja-JP", "en-GB"); tags matching neither English nor Japanese
// fall back to English.
func SetLanguage(lang string) {
	tag, err := language.Parse(lang)
	code := "en"
	if err == nil {
		_, idx, conf := matcher.Match(tag)
		if idx == 1 && conf != language.No {
			code = "ja"
		}
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: code}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
