// Package page wraps rendered rich-text fragments into standalone HTML5
// documents.
package page

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrPageRender indicates the page template failed to execute.
var ErrPageRender = errors.New("page template rendering failed")

// DefaultLang is used when Data.Lang is empty.
const DefaultLang = "en"

// Data is the input to a page template.
type Data struct {
	Title string
	Lang  string
	CSS   string
	// Body is renderer output. It is inserted without escaping.
	Body string
}

// templateData is what the template sees: CSS and Body already typed as
// trusted content so html/template does not escape them.
type templateData struct {
	Title string
	Lang  string
	CSS   template.CSS
	Body  template.HTML
}

// Wrapper executes a page template.
type Wrapper struct {
	tmpl *template.Template
}

// New parses tmplContent as an html/template.
// The template receives .Title, .Lang, .CSS and .Body.
func New(tmplContent string) (*Wrapper, error) {
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Wrapper{tmpl: tmpl}, nil
}

// Wrap renders a complete document around data.Body.
func (w *Wrapper) Wrap(ctx context.Context, data Data) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lang := data.Lang
	if lang == "" {
		lang = DefaultLang
	}

	var buf bytes.Buffer
	err := w.tmpl.Execute(&buf, templateData{
		Title: data.Title,
		Lang:  lang,
		// #nosec G203 -- stylesheet comes from embedded assets or the user's own file
		CSS: template.CSS(sanitizeCSS(data.CSS)),
		// #nosec G203 -- body is escaped by the rich-text renderer
		Body: template.HTML(data.Body),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
