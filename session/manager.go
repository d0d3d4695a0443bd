// Package session keeps the admin login state in a signed cookie.
package session

import (
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/pkg/errors"
)

const (
	defaultCookieName = "moonland_commands_admin"
	defaultCookiePath = "/"
	defaultLifetime   = 12 * time.Hour
	csrfTokenBytes    = 16
)

var ErrInvalidConfig = errors.New("session: invalid config")

// Data is the payload persisted in the cookie.
type Data struct {
	Authenticated bool      `json:"authenticated"`
	CSRFToken     string    `json:"csrfToken,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Session is the state of one request. Changes are only persisted by
// Manager.Save.
type Session struct {
	data      Data
	destroyed bool
	now       func() time.Time
}

type Config struct {
	CookieName string
	HashKey    []byte
	BlockKey   []byte
	CookiePath string
	Secure     bool
	Lifetime   time.Duration
	Now        func() time.Time
}

// Manager encodes sessions into signed, optionally encrypted cookies.
type Manager struct {
	cfg   Config
	codec *securecookie.SecureCookie
}

func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.HashKey) == 0 {
		return nil, errors.Wrap(ErrInvalidConfig, "hash key is required")
	}
	switch len(cfg.BlockKey) {
	case 0, 16, 24, 32:
	default:
		return nil, errors.Wrap(ErrInvalidConfig, "block key must be 16, 24 or 32 bytes")
	}
	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = defaultCookiePath
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = defaultLifetime
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	// securecookie only skips encryption for a nil block key.
	var blockKey []byte
	if len(cfg.BlockKey) > 0 {
		blockKey = cfg.BlockKey
	}
	codec := securecookie.New(cfg.HashKey, blockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(cfg.Lifetime.Seconds()))

	return &Manager{cfg: cfg, codec: codec}, nil
}

// Load decodes the session cookie. A missing, tampered or expired cookie
// yields a fresh anonymous session.
func (m *Manager) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil {
		return m.newSession()
	}

	var stored Data
	if err := m.codec.Decode(m.cfg.CookieName, cookie.Value, &stored); err != nil {
		return m.newSession()
	}
	if !stored.CreatedAt.IsZero() && m.cfg.Now().After(stored.CreatedAt.Add(m.cfg.Lifetime)) {
		return m.newSession()
	}
	return &Session{data: stored, now: m.cfg.Now}
}

// Save writes the session cookie. Destroyed sessions clear it.
func (m *Manager) Save(w http.ResponseWriter, sess *Session) error {
	if sess == nil {
		return errors.New("session: nil session")
	}
	if sess.destroyed {
		m.Destroy(w)
		return nil
	}

	encoded, err := m.codec.Encode(m.cfg.CookieName, sess.data)
	if err != nil {
		return errors.Wrap(err, "encode session")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    encoded,
		Path:     m.cfg.CookiePath,
		MaxAge:   int(m.cfg.Lifetime.Seconds()),
		Secure:   m.cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Destroy expires the session cookie immediately.
func (m *Manager) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     m.cfg.CookiePath,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) newSession() *Session {
	return &Session{data: Data{CreatedAt: m.cfg.Now().UTC()}, now: m.cfg.Now}
}

func (s *Session) Authenticated() bool {
	return s.data.Authenticated && !s.destroyed
}

// Login marks the session authenticated, rotates its CSRF token and restarts
// its lifetime.
func (s *Session) Login() error {
	token, err := generateToken()
	if err != nil {
		return err
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	s.data.Authenticated = true
	s.data.CSRFToken = token
	s.data.CreatedAt = now().UTC()
	s.destroyed = false
	return nil
}

// Logout drops authentication and the CSRF token.
func (s *Session) Logout() {
	s.data = Data{}
	s.destroyed = true
}

// EnsureCSRFToken returns the session token, generating one when missing.
func (s *Session) EnsureCSRFToken() (string, error) {
	if s.data.CSRFToken != "" {
		return s.data.CSRFToken, nil
	}
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	s.data.CSRFToken = token
	return token, nil
}

// ValidCSRF compares token with the session token in constant time.
func (s *Session) ValidCSRF(token string) bool {
	if s.data.CSRFToken == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.data.CSRFToken), []byte(token)) == 1
}

func generateToken() (string, error) {
	key := securecookie.GenerateRandomKey(csrfTokenBytes)
	if key == nil {
		return "", errors.New("session: generate csrf token")
	}
	return hex.EncodeToString(key), nil
}
