package agent

// DefaultLanguage is the language code assumed when none is stored.
const DefaultLanguage = "en-US"

// languageNames maps language codes to the human-readable names embedded in
// model prompts. Prompts always carry the resolved name, never the raw code.
var languageNames = map[string]string{
	"en-US": "English",
	"pt-BR": "Brazilian Portuguese",
}

// LanguageName resolves a language code to its display name.
// Unknown codes fall back to English.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return languageNames[DefaultLanguage]
}

// KnownLanguage reports whether a code is one the settings UI offers.
func KnownLanguage(code string) bool {
	_, ok := languageNames[code]
	return ok
}

// LanguageCodes returns the supported codes in a stable order.
func LanguageCodes() []string {
	return []string{"en-US", "pt-BR"}
}
