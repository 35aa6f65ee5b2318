// Package assets provides the stylesheets and page templates used to wrap
// rendered rich text into standalone HTML documents.
//
// Assets are looked up by name. The Resolver tries a user directory first
// and falls back to the embedded defaults when the name is not found there:
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}.html
//
// Names are validated so they cannot address files outside those folders.
package assets

// Built-in asset names.
const (
	DefaultStyleName    = "default"
	DefaultTemplateName = "page"
)

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads an embedded stylesheet by name, without the .css extension.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads an embedded page template by name, without the .html extension.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}
