package server

import (
	"embed"
	"html/template"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

var templateFuncs = template.FuncMap{
	"raw":  func(s string) template.HTML { return template.HTML(s) },
	"join": strings.Join,
	"inc":  func(n int) int { return n + 1 },
	"dec":  func(n int) int { return n - 1 },
}

// templateRenderer adapts the embedded html/template set to echo.Renderer.
type templateRenderer struct {
	templates *template.Template
}

func newTemplateRenderer() (*templateRenderer, error) {
	t, err := template.New("blog").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &templateRenderer{templates: t}, nil
}

// Render implements echo.Renderer.
func (r *templateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
