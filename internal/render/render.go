// Package render regenerates the self-contained static viewer from the
// current knowledge base.
package render

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"

	"KnowledgeBase/internal/domain"
	"KnowledgeBase/internal/ports"
)

//go:embed viewer.gohtml
var viewerTemplate string

// Renderer writes one dependency-free HTML document embedding a serialized
// copy of the knowledge base. Output is a pure function of the document: no
// timestamps, no environment.
type Renderer struct {
	htmlPath string
	tmpl     *template.Template
}

var _ ports.Renderer = (*Renderer)(nil)

// New parses the embedded template and points the renderer at the output
// path.
func New(htmlPath string) (*Renderer, error) {
	tmpl, err := template.New("viewer").Parse(viewerTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse viewer template: %w", err)
	}
	return &Renderer{htmlPath: htmlPath, tmpl: tmpl}, nil
}

// Path returns where the viewer is written.
func (r *Renderer) Path() string {
	return r.htmlPath
}

// Render produces the viewer document bytes.
func (r *Renderer) Render(kb *domain.KnowledgeBase) ([]byte, error) {
	// Default marshalling escapes <, > and & so the payload is safe inside
	// the script element.
	raw, err := json.Marshal(kb)
	if err != nil {
		return nil, fmt.Errorf("serialize knowledge base: %w", err)
	}

	title := kb.Metadata.Title
	if title == "" {
		title = "Knowledge Base"
	}

	data := struct {
		Title string
		Data  template.JS
	}{
		Title: title,
		Data:  template.JS(raw),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render viewer: %w", err)
	}
	return buf.Bytes(), nil
}

// Regenerate renders and rewrites the viewer file wholesale.
func (r *Renderer) Regenerate(kb *domain.KnowledgeBase) error {
	page, err := r.Render(kb)
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.htmlPath, page, 0o644); err != nil {
		return fmt.Errorf("write viewer: %w", err)
	}
	return nil
}
