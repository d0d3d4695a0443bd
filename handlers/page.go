package handlers

import (
	"net/http"

	"github.com/gobuffalo/plush"
	"go.uber.org/zap"
)

// Page renders a full HTML document for a request.
type Page interface {
	Render(rc *RequestContext, r *http.Request) (string, error)
}

// PageFunc adapts a function to Page.
type PageFunc func(rc *RequestContext, r *http.Request) (string, error)

func (f PageFunc) Render(rc *RequestContext, r *http.Request) (string, error) {
	return f(rc, r)
}

// newPlushContext seeds the variables every layout reads.
func newPlushContext(title string) *plush.Context {
	ctx := plush.NewContext()
	ctx.Set("title", title)
	ctx.Set("lang", "ro")
	ctx.Set("description", "")
	ctx.Set("canonical", "")
	ctx.Set("bodyClass", "")
	ctx.Set("script", "")
	return ctx
}

func servePage(w http.ResponseWriter, r *http.Request, page Page, status int) {
	rc := FromRequest(r)
	html, err := page.Render(rc, r)
	if err != nil {
		rc.Logger.Error("render page", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(html)); err != nil {
		rc.Logger.Warn("write response", zap.Error(err))
	}
}
