package transcribe

import "strings"

type languageEntry struct {
	code2   string   // ISO 639-1 (2-letter)
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
}

var languages = []languageEntry{
	{"en", "English", []string{"english"}},
	{"es", "Spanish", []string{"spanish"}},
	{"fr", "French", []string{"french"}},
	{"de", "German", []string{"german"}},
	{"it", "Italian", []string{"italian"}},
	{"pt", "Portuguese", []string{"portuguese"}},
	{"ja", "Japanese", []string{"japanese"}},
	{"ko", "Korean", []string{"korean"}},
	{"zh", "Chinese", []string{"chinese"}},
	{"ru", "Russian", []string{"russian"}},
	{"ar", "Arabic", []string{"arabic"}},
	{"hi", "Hindi", []string{"hindi"}},
	{"nl", "Dutch", []string{"dutch"}},
	{"pl", "Polish", []string{"polish"}},
	{"sv", "Swedish", []string{"swedish"}},
}

var (
	languageByCode map[string]*languageEntry
	languageByWord map[string]*languageEntry
)

func init() {
	languageByCode = make(map[string]*languageEntry, len(languages))
	languageByWord = make(map[string]*languageEntry, len(languages))
	for i := range languages {
		e := &languages[i]
		languageByCode[e.code2] = e
		for _, w := range e.words {
			languageByWord[w] = e
		}
	}
}

// NormalizeLanguage converts a language code or full word to the ISO 639-1
// code whisper expects. Unrecognized two-letter input passes through;
// anything else falls back to English.
func NormalizeLanguage(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "en"
	}
	if _, ok := languageByCode[value]; ok {
		return value
	}
	if e, ok := languageByWord[value]; ok {
		return e.code2
	}
	if len(value) == 2 {
		return value
	}
	return "en"
}

// LanguageDisplayName returns the human-readable name for a recognized
// code, or the input unchanged.
func LanguageDisplayName(code string) string {
	if e, ok := languageByCode[strings.ToLower(strings.TrimSpace(code))]; ok {
		return e.display
	}
	return code
}
