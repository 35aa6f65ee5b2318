package assets

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed styles/*.css
var styles embed.FS

//go:embed templates/*.html
var templates embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readEmbedded(styles, "style", name, ".css", ErrStyleNotFound)
}

func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readEmbedded(templates, "template", name, ".html", ErrTemplateNotFound)
}

func readEmbedded(fsys embed.FS, kind, name, ext string, notFound error) (string, error) {
	if err := validateAssetName(kind, name); err != nil {
		return "", err
	}
	content, err := fsys.ReadFile(kind + "s/" + name + ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	return string(content), nil
}

var _ Loader = (*EmbeddedLoader)(nil)

// StyleNames returns the names of the embedded stylesheets, sorted.
func StyleNames() []string {
	entries, err := styles.ReadDir("styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".css"))
	}
	return names
}
