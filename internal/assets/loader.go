package assets

import "fmt"

// Loader loads stylesheets and page templates by name.
type Loader interface {
	// LoadStyle returns ErrStyleNotFound if the style does not exist and
	// ErrInvalidAssetName if the name is unsafe.
	LoadStyle(name string) (string, error)

	// LoadTemplate returns ErrTemplateNotFound if the template does not exist
	// and ErrInvalidAssetName if the name is unsafe.
	LoadTemplate(name string) (string, error)
}

// maxAssetNameLen bounds style and template names taken from flags,
// config and RICHTEXT_ environment variables.
const maxAssetNameLen = 64

// validateAssetName accepts names made of ASCII letters, digits, '-' and
// '_'. kind ("style" or "template") is named in the error. Anything else,
// including extensions and path separators, is rejected before a file is
// touched.
func validateAssetName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty %s name", ErrInvalidAssetName, kind)
	}
	if len(name) > maxAssetNameLen {
		return fmt.Errorf("%w: %s name longer than %d bytes", ErrInvalidAssetName, kind, maxAssetNameLen)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %s name %q (use letters, digits, '-' or '_')", ErrInvalidAssetName, kind, name)
		}
	}
	return nil
}
