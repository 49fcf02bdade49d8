// Package web holds the HTML templates and the gin renderer that serves them.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var files embed.FS

// layout is parsed into every page.
var layout = []string{"templates/base.html", "templates/includes/*.html"}

// Renderer is a gin render.HTMLRender with one template set per page.
// Each page overrides the "title" and "content" blocks of the base layout.
type Renderer struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

// DefaultFuncs are available in every template. mediaURL returns its input
// unless overridden.
func DefaultFuncs() template.FuncMap {
	return template.FuncMap{
		"date":     formatDate,
		"excerpt":  excerpt,
		"mediaURL": func(ref string) string { return ref },
	}
}

// NewRenderer parses every page. funcs are merged over DefaultFuncs.
func NewRenderer(funcs template.FuncMap) (*Renderer, error) {
	all := DefaultFuncs()
	for name, fn := range funcs {
		all[name] = fn
	}

	base, err := template.New("").Funcs(all).ParseFS(files, layout...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	err = fs.WalkDir(files, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".html" {
			return nil
		}

		name := strings.TrimPrefix(p, "templates/")
		if name == "base.html" || strings.HasPrefix(name, "includes/") {
			return nil
		}

		page, err := base.Clone()
		if err != nil {
			return err
		}
		if _, err := page.ParseFS(files, p); err != nil {
			return fmt.Errorf("failed to parse %s: %w", name, err)
		}
		r.pages[name] = page
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Pages lists the page names the renderer knows, e.g. "posts/index.html".
func (r *Renderer) Pages() []string {
	names := make([]string, 0, len(r.pages))
	for name := range r.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instance implements render.HTMLRender.
func (r *Renderer) Instance(name string, data any) render.Render {
	page, ok := r.pages[name]
	if !ok {
		return missingPage(name)
	}
	return render.HTML{Template: page, Name: "base", Data: data}
}

type missingPage string

func (m missingPage) Render(http.ResponseWriter) error {
	return fmt.Errorf("template %q not found", string(m))
}

func (m missingPage) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

func formatDate(t time.Time) string {
	return t.Format("2 January 2006")
}

// excerpt cuts s to n characters, adding an ellipsis when shortened.
func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
