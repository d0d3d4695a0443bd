package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ZacxDev/commands-site/config"
	"github.com/ZacxDev/commands-site/content"
	"github.com/ZacxDev/commands-site/templates"
)

const (
	maxFormBytes     = 64 << 10
	invalidLoginText = "Credentiale invalide."
)

func (s *site) adminHandler(w http.ResponseWriter, r *http.Request) {
	rc := FromRequest(r)
	if !rc.Session.Authenticated() {
		servePage(w, r, loginPage(""), http.StatusOK)
		return
	}

	token, err := rc.Session.EnsureCSRFToken()
	if err != nil {
		rc.Logger.Error("generate csrf token", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := s.sessions.Save(w, rc.Session); err != nil {
		rc.Logger.Error("save session", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	servePage(w, r, PageFunc(func(rc *RequestContext, r *http.Request) (string, error) {
		doc := content.ForDisplay(s.store.Read())
		labels := content.LoadLabels(rc.Config.Paths.LanguageLabels)

		state, err := json.Marshal(doc)
		if err != nil {
			return "", err
		}
		labelsJSON, err := json.Marshal(labels)
		if err != nil {
			return "", err
		}

		options := make([]languageOption, 0, len(doc.Languages))
		for _, code := range doc.Languages {
			label := labels.Display(code)
			if code == doc.DefaultLanguage {
				label += " (implicit)"
			}
			options = append(options, languageOption{Code: code, Label: label, Active: code == doc.DefaultLanguage})
		}

		ctx := newPlushContext("Editor continut comenzi")
		ctx.Set("bodyClass", "editor")
		ctx.Set("script", s.assets[config.AdminJSTarget])
		ctx.Set("csrfToken", token)
		ctx.Set("languages", options)
		ctx.Set("activeLabel", labels.Display(doc.DefaultLanguage))
		ctx.Set("passwordWarning", rc.Config.UsesDefaultPassword())
		// json.Marshal escapes <, > and &, so the payload cannot close the script element.
		ctx.Set("state", template.HTML(state))
		ctx.Set("labels", template.HTML(labelsJSON))
		return templates.RenderInLayout(templates.AdminLayout, "admin/editor.plush.html", ctx)
	}), http.StatusOK)
}

func loginPage(loginError string) Page {
	return PageFunc(func(rc *RequestContext, r *http.Request) (string, error) {
		ctx := newPlushContext("Panou admin MoonLand")
		ctx.Set("bodyClass", "auth")
		ctx.Set("loginError", loginError)
		return templates.RenderInLayout(templates.AdminLayout, "admin/login.plush.html", ctx)
	})
}

func (s *site) loginHandler(w http.ResponseWriter, r *http.Request) {
	rc := FromRequest(r)
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		servePage(w, r, loginPage(invalidLoginText), http.StatusBadRequest)
		return
	}

	user := strings.TrimSpace(r.PostForm.Get("user"))
	if !checkCredentials(rc.Config.Admin, user, r.PostForm.Get("pass")) {
		rc.Logger.Warn("admin login failed", zap.String("user", user))
		servePage(w, r, loginPage(invalidLoginText), http.StatusUnauthorized)
		return
	}

	if err := rc.Session.Login(); err != nil {
		rc.Logger.Error("start admin session", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := s.sessions.Save(w, rc.Session); err != nil {
		rc.Logger.Error("save session", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	rc.Logger.Info("admin login", zap.String("user", user))
	http.Redirect(w, r, "/admin/", http.StatusSeeOther)
}

func (s *site) logoutHandler(w http.ResponseWriter, r *http.Request) {
	rc := FromRequest(r)
	rc.Session.Logout()
	if err := s.sessions.Save(w, rc.Session); err != nil {
		rc.Logger.Error("clear session", zap.Error(err))
	}
	http.Redirect(w, r, "/admin/", http.StatusSeeOther)
}

// checkCredentials compares the submitted login with the configured one in
// constant time. The configured password may be a bcrypt hash.
func checkCredentials(admin config.Admin, user, pass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(admin.Username), []byte(user)) == 1

	var passOK bool
	if isBcryptHash(admin.Password) {
		passOK = bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(pass)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(admin.Password), []byte(pass)) == 1
	}
	return userOK && passOK && admin.Username != ""
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
