package handlers

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
)

// Renderer turns a view name and a context mapping into markup. Page
// structure is owned entirely by the templates; handlers only supply data.
type Renderer interface {
	Render(w io.Writer, view string, data map[string]any) error
}

type templateRenderer struct {
	tpls *template.Template
}

// NewTemplateRenderer parses every *.html under dir, as the views are all
// defined up front.
func NewTemplateRenderer(dir string) (Renderer, error) {
	tpls, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("render: parse templates: %w", err)
	}
	return &templateRenderer{tpls: tpls}, nil
}

func (t *templateRenderer) Render(w io.Writer, view string, data map[string]any) error {
	return t.tpls.ExecuteTemplate(w, view, data)
}
