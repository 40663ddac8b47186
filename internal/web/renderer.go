// Package web serves the server-rendered pages of the public site.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"sweatshares/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer interface {
	RenderListing(w io.Writer, l *model.Listing) error
	RenderNotFound(w io.Writer) error
}

type templateRenderer struct {
	listing  *template.Template
	notFound *template.Template
}

// NewTemplateRenderer parses the embedded page templates.
func NewTemplateRenderer() (Renderer, error) {
	listing, err := template.ParseFS(templateFS, "templates/listing.html")
	if err != nil {
		return nil, fmt.Errorf("parse listing template: %w", err)
	}
	notFound, err := template.ParseFS(templateFS, "templates/not_found.html")
	if err != nil {
		return nil, fmt.Errorf("parse not found template: %w", err)
	}
	return &templateRenderer{listing: listing, notFound: notFound}, nil
}

func (t *templateRenderer) RenderListing(w io.Writer, l *model.Listing) error {
	return t.listing.Execute(w, l)
}

func (t *templateRenderer) RenderNotFound(w io.Writer) error {
	return t.notFound.Execute(w, nil)
}
