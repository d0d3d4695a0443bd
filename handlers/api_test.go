package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/ZacxDev/commands-site/config"
)

func TestSaveRequiresSessionAndToken(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, twoLanguageDocument)
	before := s.stored()

	rec := s.api(http.MethodPost, "/admin/api/save", "", `{"languages": ["de"]}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success": false, "message": "Neautorizat"}`, rec.Body.String())

	token := s.loginAsAdmin()

	rec = s.api(http.MethodPost, "/admin/api/save", "", `{"languages": ["de"]}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.api(http.MethodPost, "/admin/api/save", token+"x", `{"languages": ["de"]}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, gjson.Get(rec.Body.String(), "success").Bool())

	require.Equal(t, before, s.stored())
}

func TestSaveRejectsBadBodies(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, twoLanguageDocument)
	token := s.loginAsAdmin()
	before := s.stored()

	for name, body := range map[string]string{
		"empty":     "",
		"blank":     "   \n",
		"array":     `[1, 2, 3]`,
		"string":    `"hello"`,
		"malformed": `{"languages": [`,
		"bad utf-8": "{\"hero\": {\"title\": \"a\xffb\"}}",
	} {
		rec := s.api(http.MethodPost, "/admin/api/save", token, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
		assert.False(t, gjson.Get(rec.Body.String(), "success").Bool(), name)
	}

	huge := `{"tips": {"items": ["` + strings.Repeat("a", MaxRequestBytes) + `"]}}`
	rec := s.api(http.MethodPost, "/admin/api/save", token, huge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	require.Equal(t, before, s.stored())
}

func TestSaveNormalizesAndPersists(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, twoLanguageDocument)
	token := s.loginAsAdmin()

	rec := s.api(http.MethodPost, "/admin/api/save", token, `{
		"languages": ["ro", "EN", "x"],
		"defaultLanguage": "en",
		"translations": {
			"ro": {"guide": {"steps": [{"title": "Start", "commands": "/claim, /trust ,  "}]}},
			"en": {"hero": {"title": "Hi again", "onclick": "alert(1)"}}
		}
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true}`, rec.Body.String())

	stored := s.stored()
	assert.True(t, strings.HasPrefix(stored, "{\n    \"languages\""))
	assert.True(t, strings.HasSuffix(stored, "}\n"))

	saved := gjson.Parse(stored)
	assert.Equal(t, `["ro","en"]`, saved.Get("languages|@ugly").Raw)
	assert.Equal(t, "en", saved.Get("defaultLanguage").String())
	assert.Equal(t, `["/claim","/trust"]`, saved.Get("translations.ro.guide.steps.0.commands|@ugly").Raw)
	assert.Equal(t, "Hi again", saved.Get("translations.en.hero.title").String())
	assert.False(t, saved.Get("translations.en.hero.onclick").Exists())

	rec = s.api(http.MethodPost, "/admin/save", token, `{"hero": {"title": "Legacy route"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Legacy route", gjson.Get(s.stored(), "translations.ro.hero.title").String())
}

func TestSaveReportsWriteFailure(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))

	s := newTestSite(t, twoLanguageDocument, func(cfg *config.Site) {
		cfg.Paths.Data = filepath.Join(blocker, "commands-data.json")
	})
	token := s.loginAsAdmin()

	rec := s.api(http.MethodPost, "/admin/api/save", token, `{"hero": {"title": "x"}}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success": false, "message": "Nu am putut salva fisierul"}`, rec.Body.String())

	data, err := os.ReadFile(blocker)
	require.NoError(t, err)
	assert.Equal(t, "not a directory", string(data))
}

func TestDocumentEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, twoLanguageDocument)
	token := s.loginAsAdmin()

	rec := s.api(http.MethodGet, "/admin/api/document", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := gjson.Parse(rec.Body.String())
	assert.True(t, body.Get("success").Bool())
	assert.Equal(t, "Hi", body.Get("document.translations.en.hero.title").String())
	assert.Equal(t, "English", body.Get("labels.en.label").String())
}

func TestLanguageEndpoints(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, twoLanguageDocument)
	token := s.loginAsAdmin()

	rec := s.api(http.MethodPost, "/admin/api/languages", token, `{"code": " DE ", "from": "en"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `["ro","en","de"]`, gjson.Get(rec.Body.String(), "document.languages|@ugly").Raw)
	assert.Equal(t, "Hi", gjson.Get(s.stored(), "translations.de.hero.title").String())

	assert.Equal(t, http.StatusConflict, s.api(http.MethodPost, "/admin/api/languages", token, `{"code": "de"}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.api(http.MethodPost, "/admin/api/languages", token, `{"code": "english-long"}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.api(http.MethodPost, "/admin/api/languages", token, `[]`).Code)
	assert.Equal(t, http.StatusNotFound, s.api(http.MethodPost, "/admin/api/languages", token, `{"code": "fr", "from": "it"}`).Code)

	rec = s.api(http.MethodPut, "/admin/api/languages/de/default", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "de", gjson.Get(s.stored(), "defaultLanguage").String())
	assert.Equal(t, http.StatusNotFound, s.api(http.MethodPut, "/admin/api/languages/fr/default", token, "").Code)

	rec = s.api(http.MethodDelete, "/admin/api/languages/de", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ro", gjson.Get(s.stored(), "defaultLanguage").String())
	assert.False(t, gjson.Get(s.stored(), "translations.de").Exists())

	require.Equal(t, http.StatusOK, s.api(http.MethodDelete, "/admin/api/languages/en", token, "").Code)
	rec = s.api(http.MethodDelete, "/admin/api/languages/ro", token, "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, msgLastLanguage, gjson.Get(rec.Body.String(), "message").String())
	assert.Equal(t, http.StatusNotFound, s.api(http.MethodDelete, "/admin/api/languages/en", token, "").Code)

	assert.Equal(t, http.StatusNotFound, s.api(http.MethodGet, "/admin/api/unknown", token, "").Code)
}
