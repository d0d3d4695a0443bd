package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ZacxDev/commands-site/config"
)

func TestAdminShowsLoginForm(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, twoLanguageDocument)
	rec := s.get("/admin/")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := s.document(rec)
	assert.Equal(t, 1, doc.Find(`form[action="/admin/login"]`).Length())
	assert.Equal(t, 0, doc.Find("#editor-root").Length())
	assert.Equal(t, 0, doc.Find(".alert").Length())
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, twoLanguageDocument)
	rec := s.login("admin", "wrong")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, invalidLoginText, strings.TrimSpace(s.document(rec).Find(".alert").Text()))

	rec = s.login("root", "change-me")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	require.Equal(t, 0, s.document(s.get("/admin/")).Find("#editor-root").Length())
}

func TestAdminEditorAfterLogin(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, twoLanguageDocument)
	rec := s.login(" admin ", "change-me")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin/", rec.Header().Get("Location"))

	doc := s.document(s.get("/admin/"))
	require.Equal(t, 1, doc.Find("#editor-root").Length())
	assert.Equal(t, 1, doc.Find(".password-warning").Length())
	assert.Equal(t, "/static/js/editor_test.js", doc.Find(`script[src="/static/js/editor_test.js"]`).AttrOr("src", ""))

	options := doc.Find("#language-select option")
	require.Equal(t, 2, options.Length())
	assert.Equal(t, "Romana (RO) (implicit)", strings.TrimSpace(options.Eq(0).Text()))
	assert.Equal(t, "en", options.Eq(1).AttrOr("value", ""))

	state := doc.Find("#editor-state").Text()
	assert.Contains(t, state, `"defaultLanguage":"ro"`)
	assert.Contains(t, state, `"title":"Hi"`)
	assert.Contains(t, doc.Find("#editor-labels").Text(), `"flagIconClass":"fi fi-gb"`)
}

func TestAdminLoginRotatesCSRFToken(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, twoLanguageDocument)
	first := s.loginAsAdmin()
	second := s.loginAsAdmin()
	require.NotEqual(t, first, second)

	require.Equal(t, http.StatusForbidden, s.api(http.MethodGet, "/admin/api/document", first, "").Code)
	require.Equal(t, http.StatusOK, s.api(http.MethodGet, "/admin/api/document", second, "").Code)
}

func TestAdminAcceptsBcryptPassword(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	s := newTestSite(t, twoLanguageDocument, func(cfg *config.Site) {
		cfg.Admin.Password = string(hash)
	})
	require.Equal(t, http.StatusUnauthorized, s.login("admin", string(hash)).Code)
	require.Equal(t, http.StatusSeeOther, s.login("admin", "s3cret").Code)

	doc := s.document(s.get("/admin/"))
	require.Equal(t, 1, doc.Find("#editor-root").Length())
	assert.Equal(t, 0, doc.Find(".password-warning").Length())
}

func TestAdminLogout(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, twoLanguageDocument)
	token := s.loginAsAdmin()

	rec := s.get("/admin/logout")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Empty(t, s.cookies)

	require.Equal(t, 0, s.document(s.get("/admin/")).Find("#editor-root").Length())
	require.Equal(t, http.StatusUnauthorized, s.api(http.MethodGet, "/admin/api/document", token, "").Code)
}

func TestCheckCredentials(t *testing.T) {
	t.Parallel()

	admin := config.Admin{Username: "admin", Password: "change-me"}
	assert.True(t, checkCredentials(admin, "admin", "change-me"))
	assert.False(t, checkCredentials(admin, "admin", "change-me "))
	assert.False(t, checkCredentials(admin, "", "change-me"))
	assert.False(t, checkCredentials(config.Admin{}, "", ""))
}
