package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templates embed.FS

// pages are the named views the controller can render. Each is parsed
// together with the shared layout.
var pages = []string{
	"genre_list",
	"genre_detail",
	"genre_form",
	"genre_delete",
	"error",
}

// Renderer turns a named view plus a view model into an HTML response body.
// Handlers never touch markup directly.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// NewRenderer parses the embedded templates. Each page is parsed with the
// layout so pages can override the content block independently.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	parsed := make(map[string]*template.Template, len(pages))

	for _, name := range pages {
		tmpl, err := template.ParseFS(templates,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		parsed[name] = tmpl
	}

	return &Renderer{pages: parsed, logger: logger}, nil
}

// Render writes the named view with the given status code. The body is
// buffered first so a template failure never produces a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := r.pages[name]
	if !ok {
		r.logger.Error("Unknown template requested", "template", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.logger.Error("Failed to execute template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
