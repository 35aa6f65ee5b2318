package assets

import "errors"

// Resolver loads from a custom directory first and falls back to the
// embedded assets when the name is not found there. Validation and I/O
// errors from the custom directory are returned as is.
type Resolver struct {
	custom   Loader // nil when no directory is configured
	embedded Loader
}

// NewResolver creates a Resolver. An empty customBasePath uses embedded
// assets only.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

func (r *Resolver) LoadStyle(name string) (string, error) {
	return r.load(func(l Loader) (string, error) { return l.LoadStyle(name) })
}

func (r *Resolver) LoadTemplate(name string) (string, error) {
	return r.load(func(l Loader) (string, error) { return l.LoadTemplate(name) })
}

func (r *Resolver) load(fn func(Loader) (string, error)) (string, error) {
	if r.custom == nil {
		return fn(r.embedded)
	}
	content, err := fn(r.custom)
	if err == nil {
		return content, nil
	}
	if !isNotFound(err) {
		return "", err
	}
	return fn(r.embedded)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ Loader = (*Resolver)(nil)
