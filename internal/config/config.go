// Package config loads the YAML configuration file of the richtext CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-richtext/internal/fileutil"
	"github.com/alnah/go-richtext/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxURLLength   = 2048 // Browser limit
	MaxTitleLength = 200
	MaxLangLength  = 35 // BCP 47 tags stay well below
	MaxNameLength  = 100
	MaxPathLength  = 4096
	MaxClassLength = 500 // Utility-class lists get long
	MaxWorkers     = 32
)

// configDirName is the folder searched under os.UserConfigDir.
const configDirName = "go-richtext"

// classTags are the element names the renderer can emit.
var classTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "a": true, "strong": true, "em": true, "hr": true,
}

// Config holds all CLI configuration.
type Config struct {
	Render  RenderConfig `yaml:"render"`
	Input   InputConfig  `yaml:"input"`
	Output  OutputConfig `yaml:"output"`
	Page    PageConfig   `yaml:"page"`
	Assets  AssetsConfig `yaml:"assets"`
	Workers int          `yaml:"workers"` // 0 = auto
}

// RenderConfig maps to renderer options.
type RenderConfig struct {
	BaseURL string `yaml:"baseURL"`
	// HeadingInference renders bold-led paragraphs as headings.
	// nil keeps the renderer default (on).
	HeadingInference *bool            `yaml:"headingInference"`
	Classes          map[string]string `yaml:"classes"` // tag name -> class attribute
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Used when no input argument is given
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source file
	Standalone bool   `yaml:"standalone"` // Wrap fragments in a full HTML page
}

// PageConfig applies to standalone output.
type PageConfig struct {
	Title    string `yaml:"title"`    // Empty = input file name
	Lang     string `yaml:"lang"`     // Empty = "en"
	Style    string `yaml:"style"`    // Style name or path to a .css file
	Template string `yaml:"template"` // Template name (default "page")
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = embedded assets only
}

// HeadingInferenceEnabled reports the effective heading-inference setting.
func (r RenderConfig) HeadingInferenceEnabled() bool {
	return r.HeadingInference == nil || *r.HeadingInference
}

// Validate checks field lengths and value ranges. LoadConfig calls it; call
// it yourself on a Config built in code.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"render.baseURL", c.Render.BaseURL, MaxURLLength},
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"page.title", c.Page.Title, MaxTitleLength},
		{"page.lang", c.Page.Lang, MaxLangLength},
		{"page.style", c.Page.Style, MaxPathLength},
		{"page.template", c.Page.Template, MaxNameLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	tags := make([]string, 0, len(c.Render.Classes))
	for tag := range c.Render.Classes {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		if !classTags[tag] {
			return fmt.Errorf("%w: render.classes: unknown tag %q", ErrInvalidValue, tag)
		}
		if err := validateFieldLength("render.classes."+tag, c.Render.Classes[tag], MaxClassLength); err != nil {
			return err
		}
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}
	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a path; anything else is
// searched as {name}.yaml or {name}.yml in the current directory, then in
// the go-richtext folder of the user config directory.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	dirs := []string{"."}
	if userDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userDir, configDirName))
	}

	tried := make([]string, 0, len(dirs)*len(extensions))
	for _, dir := range dirs {
		for _, ext := range extensions {
			p := filepath.Join(dir, name+ext)
			if fileutil.FileExists(p) {
				return p, nil
			}
			tried = append(tried, p)
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
