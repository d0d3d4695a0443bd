// Package templates embeds the plush templates rendered by the handlers.
package templates

import (
	"embed"
	"html/template"
	"path"

	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"
)

const (
	BaseLayout  = "layouts/base.plush.html"
	AdminLayout = "layouts/admin.plush.html"
)

//go:embed *.plush.html layouts/*.plush.html admin/*.plush.html
var files embed.FS

// Render executes the named template against ctx.
func Render(name string, ctx *plush.Context) (string, error) {
	source, err := files.ReadFile(path.Clean(name))
	if err != nil {
		return "", errors.Wrapf(err, "read template %s", name)
	}
	tmpl, err := plush.Parse(string(source))
	if err != nil {
		return "", errors.Wrapf(err, "parse template %s", name)
	}
	out, err := tmpl.Exec(ctx)
	return out, errors.Wrapf(err, "execute template %s", name)
}

// RenderInLayout renders name and places the result in layout as yield.
func RenderInLayout(layout, name string, ctx *plush.Context) (string, error) {
	body, err := Render(name, ctx)
	if err != nil {
		return "", err
	}
	ctx.Set("yield", template.HTML(body))
	return Render(layout, ctx)
}
