package content

import (
	"github.com/tidwall/gjson"
)

type mode int

const (
	// lenient fills gaps silently; used on the read path.
	lenient mode = iota
	// strict additionally trims and filters user-entered lists and titles;
	// used before anything is written to disk.
	strict
)

// ForDisplay converts a raw document of any shape into a valid Document for
// rendering and for bootstrapping the admin editor.
func ForDisplay(raw gjson.Result) Document {
	return normalize(raw, lenient)
}

// ForPersistence converts a raw document of any shape into the canonical
// Document that is written to disk.
func ForPersistence(raw gjson.Result) Document {
	return normalize(raw, strict)
}

func normalize(raw gjson.Result, m mode) Document {
	if !raw.IsObject() {
		raw = emptyObject
	}

	var languages []string
	seen := make(map[string]bool)
	addLanguage := func(code string) {
		if !seen[code] {
			seen[code] = true
			languages = append(languages, code)
		}
	}

	for _, v := range items(field(raw, "languages")) {
		if code := NormalizeLanguageCode(str(v)); code != "" {
			addLanguage(code)
		}
	}

	translations := make(map[string]Translation)
	if envelope := field(raw, "translations"); envelope.IsObject() {
		envelope.ForEach(func(key, value gjson.Result) bool {
			code := NormalizeLanguageCode(key.String())
			if code == "" {
				return true
			}
			addLanguage(code)
			translations[code] = coerceTranslation(value, m)
			return true
		})
	}

	if len(translations) == 0 {
		// No envelope: the record itself is a single-language document.
		code := FallbackLanguage
		if explicit := NormalizeLanguageCode(str(field(raw, "defaultLanguage"))); explicit != "" {
			code = explicit
		}
		languages = []string{code}
		translations[code] = coerceTranslation(raw, m)
	}

	if len(languages) == 0 {
		languages = []string{FallbackLanguage}
	}

	defaultLanguage := NormalizeLanguageCode(str(field(raw, "defaultLanguage")))
	if defaultLanguage == "" || !contains(languages, defaultLanguage) {
		defaultLanguage = languages[0]
	}

	for _, code := range languages {
		if _, ok := translations[code]; !ok {
			translations[code] = coerceTranslation(gjson.Result{}, m)
		}
	}

	return Document{
		Languages:       languages,
		DefaultLanguage: defaultLanguage,
		Translations:    translations,
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
