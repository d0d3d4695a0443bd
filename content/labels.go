package content

import (
	"os"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)

// LanguageMeta decorates a language code for selectors.
type LanguageMeta struct {
	Label         string `json:"label"`
	CountryCode   string `json:"countryCode"`
	FlagEmoji     string `json:"flagEmoji"`
	FlagIconClass string `json:"flagIconClass"`
}

// Labels maps language codes to their decorations.
type Labels map[string]LanguageMeta

// LoadLabels reads a languages.json file. A missing or malformed file yields
// an empty set: codes still work, just undecorated.
func LoadLabels(path string) Labels {
	data, err := os.ReadFile(path)
	if err != nil {
		return Labels{}
	}
	return ParseLabels(data)
}

// ParseLabels decodes the language-labels format: each code maps to either a
// plain label string or an object with label (or name), countryCode and
// optional flagEmoji/flagIconClass overrides.
func ParseLabels(data []byte) Labels {
	labels := Labels{}
	root := Parse(data)
	root.ForEach(func(key, value gjson.Result) bool {
		code := NormalizeLanguageCode(key.String())
		if code == "" {
			return true
		}
		var meta LanguageMeta
		if value.IsObject() {
			meta.Label = strings.TrimSpace(str(present(value, "label", "name")))
			meta.CountryCode = normalizeCountryCode(str(field(value, "countryCode")))
			meta.FlagEmoji = strings.TrimSpace(str(field(value, "flagEmoji")))
			meta.FlagIconClass = strings.TrimSpace(str(field(value, "flagIconClass")))
		} else {
			meta.Label = strings.TrimSpace(str(value))
		}
		if meta.CountryCode != "" {
			if meta.FlagEmoji == "" {
				meta.FlagEmoji = FlagEmoji(meta.CountryCode)
			}
			if meta.FlagIconClass == "" {
				meta.FlagIconClass = "fi fi-" + strings.ToLower(meta.CountryCode)
			}
		}
		labels[code] = meta
		return true
	})
	return labels
}

// Meta returns the decoration for code, or an empty one.
func (l Labels) Meta(code string) LanguageMeta {
	return l[NormalizeLanguageCode(code)]
}

// Display renders "Label (CODE)". The label defaults to the upper-cased code.
func (l Labels) Display(code string) string {
	languageCode := strings.ToUpper(NormalizeLanguageCode(code))
	if languageCode == "" {
		languageCode = strings.ToUpper(strings.TrimSpace(code))
	}
	if languageCode == "" {
		languageCode = "??"
	}
	label := l.Meta(code).Label
	if label == "" {
		label = languageCode
	}
	return label + " (" + languageCode + ")"
}

// FlagEmoji converts a two-letter country code into its regional-indicator
// flag. Anything else returns "".
func FlagEmoji(countryCode string) string {
	code := normalizeCountryCode(countryCode)
	if code == "" {
		return ""
	}
	const regionalIndicatorA = 0x1F1E6
	var b strings.Builder
	for _, c := range code {
		b.WriteRune(regionalIndicatorA + (c - 'A'))
	}
	return b.String()
}

func normalizeCountryCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !countryCodePattern.MatchString(code) {
		return ""
	}
	return code
}
