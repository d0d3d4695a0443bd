package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabels(t *testing.T) {
	t.Parallel()

	labels := ParseLabels([]byte(`{
		"ro": {"label": " Romana ", "countryCode": "ro"},
		"EN": {"name": "English", "countryCode": "GB", "flagIconClass": "fi fi-us"},
		"de": "Deutsch",
		"xx": {"label": "Bad country", "countryCode": "XYZ"},
		"!!": "ignored"
	}`))

	require.Len(t, labels, 4)
	assert.Equal(t, LanguageMeta{
		Label:         "Romana",
		CountryCode:   "RO",
		FlagEmoji:     "\U0001F1F7\U0001F1F4",
		FlagIconClass: "fi fi-ro",
	}, labels["ro"])
	assert.Equal(t, "fi fi-us", labels["en"].FlagIconClass)
	assert.Equal(t, "\U0001F1EC\U0001F1E7", labels["en"].FlagEmoji)
	assert.Equal(t, LanguageMeta{Label: "Deutsch"}, labels["de"])
	assert.Equal(t, "", labels["xx"].CountryCode)
	assert.Equal(t, "", labels["xx"].FlagEmoji)
}

func TestLoadLabelsMissingFile(t *testing.T) {
	t.Parallel()

	labels := LoadLabels(filepath.Join(t.TempDir(), "missing.json"))
	require.Empty(t, labels)
	require.Equal(t, "FR (FR)", labels.Display("fr"))
}

func TestLoadLabelsFromDisk(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "languages.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"en": {"label": "English"}}`), 0o644))

	labels := LoadLabels(path)
	require.Equal(t, "English (EN)", labels.Display(" EN "))
}

func TestFlagEmoji(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "\U0001F1E9\U0001F1EA", FlagEmoji("de"))
	assert.Equal(t, "", FlagEmoji("deu"))
	assert.Equal(t, "", FlagEmoji("1a"))
}
