package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeAsset creates {dir}/{sub}/{file} with content.
func writeAsset(t *testing.T, dir, sub, file, content string) {
	t.Helper()

	path := filepath.Join(dir, sub)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	if err := os.WriteFile(filepath.Join(path, file), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", file, err)
	}
}

// ---------------------------------------------------------------------------
// TestValidateAssetName
// ---------------------------------------------------------------------------

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"simple", "default", ""},
		{"dash and underscore", "dark-mode_2", ""},
		{"longest allowed", strings.Repeat("a", maxAssetNameLen), ""},
		{"empty", "", "empty style name"},
		{"too long", strings.Repeat("a", maxAssetNameLen+1), "longer than 64 bytes"},
		{"slash", "a/b", `style name "a/b"`},
		{"backslash", `a\b`, "style name"},
		{"traversal", "..", "style name"},
		{"extension", "default.css", "style name"},
		{"space", "dark mode", "style name"},
		{"non-ascii", "défaut", "style name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateAssetName("style", tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validateAssetName(%q) = %v, want nil", tt.input, err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidAssetName) {
				t.Fatalf("validateAssetName(%q) = %v, want ErrInvalidAssetName", tt.input, err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validateAssetName(%q) = %q, want it to contain %q", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestLoaders_NameTheAssetKind(t *testing.T) {
	t.Parallel()

	fsLoader, err := NewFilesystemLoader(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}
	loaders := map[string]Loader{
		"embedded":   NewEmbeddedLoader(),
		"filesystem": fsLoader,
	}
	for name, l := range loaders {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := l.LoadTemplate("../page"); !errors.Is(err, ErrInvalidAssetName) || !strings.Contains(err.Error(), "template name") {
				t.Errorf("LoadTemplate() error = %v, want invalid template name", err)
			}
			if _, err := l.LoadStyle("print.css"); !errors.Is(err, ErrInvalidAssetName) || !strings.Contains(err.Error(), "style name") {
				t.Errorf("LoadStyle() error = %v, want invalid style name", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEmbeddedLoader
// ---------------------------------------------------------------------------

func TestEmbeddedLoader(t *testing.T) {
	t.Parallel()

	t.Run("default style", func(t *testing.T) {
		t.Parallel()

		css, err := LoadStyle(DefaultStyleName)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if !strings.Contains(css, ".richtext") {
			t.Error("default style does not target .richtext")
		}
	})

	t.Run("print style", func(t *testing.T) {
		t.Parallel()

		if _, err := NewEmbeddedLoader().LoadStyle("print"); err != nil {
			t.Errorf("LoadStyle(print) error = %v", err)
		}
	})

	t.Run("page template", func(t *testing.T) {
		t.Parallel()

		tmpl, err := LoadTemplate(DefaultTemplateName)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		for _, field := range []string{"{{.Title}}", "{{.Lang}}", "{{.CSS}}", "{{.Body}}"} {
			if !strings.Contains(tmpl, field) {
				t.Errorf("page template missing %s", field)
			}
		}
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadStyle("nonexistent-xyz"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
		if _, err := LoadTemplate("nonexistent-xyz"); !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate() error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadStyle("../default"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle() error = %v, want ErrInvalidAssetName", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestFilesystemLoader
// ---------------------------------------------------------------------------

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		if _, err := NewFilesystemLoader(t.TempDir()); err != nil {
			t.Errorf("NewFilesystemLoader() error = %v", err)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		if _, err := NewFilesystemLoader(""); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeAsset(t, dir, "", "file.txt", "x")
		_, err := NewFilesystemLoader(filepath.Join(dir, "file.txt"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles", "brand.css", "p{color:teal}")
	writeAsset(t, dir, "templates", "page.html", "<main>{{.Body}}</main>")

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	if got, err := loader.LoadStyle("brand"); err != nil || got != "p{color:teal}" {
		t.Errorf("LoadStyle() = %q, %v", got, err)
	}
	if got, err := loader.LoadTemplate("page"); err != nil || got != "<main>{{.Body}}</main>" {
		t.Errorf("LoadTemplate() = %q, %v", got, err)
	}
	if _, err := loader.LoadStyle("missing"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(missing) error = %v, want ErrStyleNotFound", err)
	}
	if _, err := loader.LoadTemplate("missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(missing) error = %v, want ErrTemplateNotFound", err)
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	writeAsset(t, outside, "", "secret.css", "leak")

	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "styles"), 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(base, "styles", "evil.css")
	if err := os.Symlink(filepath.Join(outside, "secret.css"), link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}
	if _, err := loader.LoadStyle("evil"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadStyle() error = %v, want ErrPathTraversal", err)
	}
}

// ---------------------------------------------------------------------------
// TestResolver
// ---------------------------------------------------------------------------

func TestResolver(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		r, err := NewResolver("")
		if err != nil {
			t.Fatalf("NewResolver() error = %v", err)
		}
		if r.HasCustomLoader() {
			t.Error("HasCustomLoader() = true, want false")
		}
		if _, err := r.LoadStyle(DefaultStyleName); err != nil {
			t.Errorf("LoadStyle() error = %v", err)
		}
	})

	t.Run("custom overrides embedded", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeAsset(t, dir, "styles", "default.css", "custom")

		r, err := NewResolver(dir)
		if err != nil {
			t.Fatalf("NewResolver() error = %v", err)
		}
		if got, _ := r.LoadStyle(DefaultStyleName); got != "custom" {
			t.Errorf("LoadStyle() = %q, want custom", got)
		}
	})

	t.Run("falls back on not found", func(t *testing.T) {
		t.Parallel()

		r, err := NewResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewResolver() error = %v", err)
		}
		tmpl, err := r.LoadTemplate(DefaultTemplateName)
		if err != nil || !strings.Contains(tmpl, "{{.Body}}") {
			t.Errorf("LoadTemplate() = %q, %v, want embedded page", tmpl, err)
		}
	})

	t.Run("no fallback on invalid name", func(t *testing.T) {
		t.Parallel()

		r, err := NewResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewResolver() error = %v", err)
		}
		if _, err := r.LoadStyle("a/b"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle() error = %v, want ErrInvalidAssetName", err)
		}
	})

	t.Run("invalid custom path", func(t *testing.T) {
		t.Parallel()

		if _, err := NewResolver("/nonexistent/path/abc123xyz"); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	got := StyleNames()
	want := []string{"default", "print"}
	if len(got) != len(want) {
		t.Fatalf("StyleNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("StyleNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
