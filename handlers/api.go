package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/ZacxDev/commands-site/content"
	"github.com/ZacxDev/commands-site/editor"
)

// MaxRequestBytes caps admin API request bodies.
const MaxRequestBytes = 2 << 20

// CSRFHeader carries the session CSRF token on admin API calls.
const CSRFHeader = "X-CSRF-Token"

const (
	msgUnauthorized    = "Neautorizat"
	msgInvalidCSRF     = "Token CSRF invalid"
	msgEmptyBody       = "Cerere fara continut"
	msgInvalidJSON     = "Structura JSON invalida"
	msgTooLarge        = "Cererea depaseste limita de 2 MiB"
	msgWriteFailed     = "Nu am putut salva fisierul"
	msgInvalidLanguage = "Cod de limba invalid"
	msgUnknownLanguage = "Limba necunoscuta"
	msgLastLanguage    = "Ultima limba nu poate fi stearsa"
	msgLanguageExists  = "Limba exista deja"
	msgNotFound        = "Ruta necunoscuta"
	msgMethod          = "Metoda nepermisa"
)

type apiResponse struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message,omitempty"`
	Document *content.Document `json:"document,omitempty"`
	Labels   content.Labels    `json:"labels,omitempty"`
}

func failure(message string) apiResponse {
	return apiResponse{Success: false, Message: message}
}

// apiHandler answers an authenticated admin API call.
type apiHandler func(rc *RequestContext, r *http.Request, ps httprouter.Params) (int, apiResponse)

func (s *site) apiRouter() *httprouter.Router {
	router := httprouter.New()
	router.POST("/admin/api/save", s.authorized(s.saveDocument))
	router.POST("/admin/save", s.authorized(s.saveDocument))
	router.GET("/admin/api/document", s.authorized(s.getDocument))
	router.POST("/admin/api/languages", s.authorized(s.addLanguage))
	router.PUT("/admin/api/languages/:code/default", s.authorized(s.setDefaultLanguage))
	router.DELETE("/admin/api/languages/:code", s.authorized(s.removeLanguage))

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusNotFound, failure(msgNotFound))
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusMethodNotAllowed, failure(msgMethod))
	})
	return router
}

// authorized rejects calls without an authenticated session (401) or a
// matching CSRF header (403) before h runs.
func (s *site) authorized(h apiHandler) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		rc := FromRequest(r)
		if !rc.Session.Authenticated() {
			writeJSON(w, r, http.StatusUnauthorized, failure(msgUnauthorized))
			return
		}
		if !rc.Session.ValidCSRF(r.Header.Get(CSRFHeader)) {
			rc.Logger.Warn("csrf token mismatch")
			writeJSON(w, r, http.StatusForbidden, failure(msgInvalidCSRF))
			return
		}
		status, body := h(rc, r, ps)
		writeJSON(w, r, status, body)
	}
}

// saveDocument replaces the stored document with the strictly normalized
// request body.
func (s *site) saveDocument(rc *RequestContext, r *http.Request, _ httprouter.Params) (int, apiResponse) {
	raw, status, msg := readObject(r)
	if status != 0 {
		return status, failure(msg)
	}

	doc := content.ForPersistence(raw)
	if err := s.store.Write(doc); err != nil {
		rc.Logger.Error("save document", zap.Error(err), zap.String("path", s.store.Path()))
		return http.StatusInternalServerError, failure(msgWriteFailed)
	}
	rc.Logger.Info("document saved", zap.Strings("languages", doc.Languages))
	return http.StatusOK, apiResponse{Success: true}
}

func (s *site) getDocument(rc *RequestContext, _ *http.Request, _ httprouter.Params) (int, apiResponse) {
	return http.StatusOK, s.documentResponse(rc, content.ForDisplay(s.store.Read()))
}

func (s *site) addLanguage(rc *RequestContext, r *http.Request, _ httprouter.Params) (int, apiResponse) {
	raw, status, msg := readObject(r)
	if status != 0 {
		return status, failure(msg)
	}

	code := content.NormalizeLanguageCode(raw.Get("code").String())
	if code == "" {
		return http.StatusBadRequest, failure(msgInvalidLanguage)
	}

	ws := editor.Load(s.store)
	for _, existing := range ws.Languages() {
		if existing == code {
			return http.StatusConflict, failure(msgLanguageExists)
		}
	}
	if from := raw.Get("from").String(); from != "" {
		if err := ws.SetLanguage(from); err != nil {
			return languageError(rc, err)
		}
	}
	if err := ws.AddLanguage(code); err != nil {
		return languageError(rc, err)
	}
	return s.saveWorkspace(rc, ws, http.StatusCreated)
}

func (s *site) setDefaultLanguage(rc *RequestContext, _ *http.Request, ps httprouter.Params) (int, apiResponse) {
	ws := editor.Load(s.store)
	if err := ws.SetLanguage(ps.ByName("code")); err != nil {
		return languageError(rc, err)
	}
	ws.SetDefault()
	return s.saveWorkspace(rc, ws, http.StatusOK)
}

func (s *site) removeLanguage(rc *RequestContext, _ *http.Request, ps httprouter.Params) (int, apiResponse) {
	ws := editor.Load(s.store)
	if err := ws.RemoveLanguage(ps.ByName("code")); err != nil {
		return languageError(rc, err)
	}
	return s.saveWorkspace(rc, ws, http.StatusOK)
}

func (s *site) saveWorkspace(rc *RequestContext, ws *editor.Workspace, status int) (int, apiResponse) {
	if err := ws.Save(s.store); err != nil {
		return languageError(rc, err)
	}
	return status, s.documentResponse(rc, content.ForDisplay(s.store.Read()))
}

func (s *site) documentResponse(rc *RequestContext, doc content.Document) apiResponse {
	return apiResponse{
		Success:  true,
		Document: &doc,
		Labels:   content.LoadLabels(rc.Config.Paths.LanguageLabels),
	}
}

func languageError(rc *RequestContext, err error) (int, apiResponse) {
	switch {
	case errors.Is(err, editor.ErrInvalidLanguage):
		return http.StatusBadRequest, failure(msgInvalidLanguage)
	case errors.Is(err, editor.ErrUnknownLanguage):
		return http.StatusNotFound, failure(msgUnknownLanguage)
	case errors.Is(err, editor.ErrLastLanguage):
		return http.StatusConflict, failure(msgLastLanguage)
	}
	rc.Logger.Error("update languages", zap.Error(err))
	return http.StatusInternalServerError, failure(msgWriteFailed)
}

// readObject reads a capped request body that must hold a JSON object. A
// non-zero status reports why it was rejected.
func readObject(r *http.Request) (gjson.Result, int, string) {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBytes+1))
	if err != nil {
		return gjson.Result{}, http.StatusBadRequest, msgEmptyBody
	}
	if len(body) > MaxRequestBytes {
		return gjson.Result{}, http.StatusRequestEntityTooLarge, msgTooLarge
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return gjson.Result{}, http.StatusBadRequest, msgEmptyBody
	}
	if !utf8.Valid(body) || !gjson.ValidBytes(body) {
		return gjson.Result{}, http.StatusBadRequest, msgInvalidJSON
	}
	raw := gjson.ParseBytes(body)
	if !raw.IsObject() {
		return gjson.Result{}, http.StatusBadRequest, msgInvalidJSON
	}
	return raw, 0, ""
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body apiResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		FromRequest(r).Logger.Warn("write response", zap.Error(err))
	}
}
