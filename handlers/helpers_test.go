package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/ZacxDev/commands-site/config"
	"github.com/ZacxDev/commands-site/session"
)

const twoLanguageDocument = `{
	"languages": ["ro", "en"],
	"defaultLanguage": "ro",
	"translations": {
		"ro": {"hero": {"title": "Salut"}},
		"en": {"hero": {"title": "Hi"}}
	}
}`

const testLabels = `{
	"ro": {"label": "Romana", "countryCode": "RO"},
	"en": {"name": "English", "countryCode": "GB"}
}`

type testSite struct {
	t       *testing.T
	cfg     *config.Site
	router  *mux.Router
	cookies map[string]*http.Cookie
}

func newTestSite(t *testing.T, document string, opts ...func(*config.Site)) *testSite {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Server.Origin = "https://commands.example.org"
	cfg.Paths.Data = filepath.Join(dir, "config", "commands-data.json")
	cfg.Paths.LanguageLabels = filepath.Join(dir, "config", "languages.json")
	cfg.Paths.Static = filepath.Join(dir, "static")

	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.Paths.Data), 0o755))
	require.NoError(t, os.WriteFile(cfg.Paths.LanguageLabels, []byte(testLabels), 0o644))
	if document != "" {
		require.NoError(t, os.WriteFile(cfg.Paths.Data, []byte(document), 0o644))
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	sessions, err := session.NewManager(session.Config{
		CookieName: cfg.Admin.SessionKey,
		HashKey:    []byte("12345678901234567890123456789012"),
	})
	require.NoError(t, err)

	router, err := SetupRouter(Dependencies{
		Config:   &cfg,
		Sessions: sessions,
		Assets:   map[string]string{config.AdminJSTarget: "/static/js/editor_test.js"},
	})
	require.NoError(t, err)

	return &testSite{t: t, cfg: &cfg, router: router, cookies: map[string]*http.Cookie{}}
}

// do sends req through the router, carrying cookies between calls.
func (s *testSite) do(req *http.Request) *httptest.ResponseRecorder {
	s.t.Helper()
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(s.cookies, c.Name)
			continue
		}
		s.cookies[c.Name] = c
	}
	return rec
}

func (s *testSite) get(target string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (s *testSite) login(user, pass string) *httptest.ResponseRecorder {
	form := url.Values{"user": {user}, "pass": {pass}, "login": {"1"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

// loginAsAdmin signs in with the configured credentials and returns the
// CSRF token printed on the editor page.
func (s *testSite) loginAsAdmin() string {
	s.t.Helper()
	rec := s.login(s.cfg.Admin.Username, s.cfg.Admin.Password)
	require.Equal(s.t, http.StatusSeeOther, rec.Code)

	doc := s.document(s.get("/admin/"))
	token, ok := doc.Find(`meta[name="csrf-token"]`).Attr("content")
	require.True(s.t, ok)
	require.NotEmpty(s.t, token)
	return token
}

func (s *testSite) api(method, target, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(CSRFHeader, token)
	}
	return s.do(req)
}

func (s *testSite) document(rec *httptest.ResponseRecorder) *goquery.Document {
	s.t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(s.t, err)
	return doc
}

func (s *testSite) stored() string {
	s.t.Helper()
	data, err := os.ReadFile(s.cfg.Paths.Data)
	require.NoError(s.t, err)
	return string(data)
}
