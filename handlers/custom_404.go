package handlers

import (
	"net/http"

	"github.com/ZacxDev/commands-site/templates"
)

var notFoundPage = PageFunc(func(rc *RequestContext, r *http.Request) (string, error) {
	ctx := newPlushContext("Pagina negasita")
	return templates.RenderInLayout(templates.BaseLayout, "404.plush.html", ctx)
})

func Custom404Handler(w http.ResponseWriter, r *http.Request) {
	servePage(w, r, notFoundPage, http.StatusNotFound)
}
