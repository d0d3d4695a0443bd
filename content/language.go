package content

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// FallbackLanguage is used when a document names no usable language.
const FallbackLanguage = "ro"

var languageCodePattern = regexp.MustCompile(`^[a-z0-9_-]{2,10}$`)

// NormalizeLanguageCode lower-cases and trims code. It returns "" when the
// result is not a valid language code.
func NormalizeLanguageCode(code string) string {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if !languageCodePattern.MatchString(normalized) {
		return ""
	}
	return normalized
}

// Match picks the document language that best satisfies an Accept-Language
// header, falling back to the default language.
func (d Document) Match(acceptLanguage string) string {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return d.DefaultLanguage
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return d.DefaultLanguage
	}

	// The matcher treats the first supported tag as its fallback.
	ordered := make([]string, 0, len(d.Languages))
	ordered = append(ordered, d.DefaultLanguage)
	for _, code := range d.Languages {
		if code != d.DefaultLanguage {
			ordered = append(ordered, code)
		}
	}

	tags := make([]language.Tag, 0, len(ordered))
	codes := make([]string, 0, len(ordered))
	for _, code := range ordered {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		codes = append(codes, code)
	}
	if len(tags) == 0 {
		return d.DefaultLanguage
	}

	_, index, confidence := language.NewMatcher(tags).Match(desired...)
	if confidence == language.No || index < 0 || index >= len(codes) {
		return d.DefaultLanguage
	}
	return codes[index]
}
