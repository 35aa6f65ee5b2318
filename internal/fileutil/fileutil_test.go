package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "post.json")
	if err := os.WriteFile(file, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"regular file", file, true},
		{"directory", dir, false},
		{"missing", filepath.Join(dir, "missing.json"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"default", false},
		{"my-style", false},
		{"./brand.css", true},
		{"../shared/site.yaml", true},
		{"/abs/path.css", true},
		{`C:\styles\brand.css`, true},
	}
	for _, tt := range tests {
		if got := IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestHasExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		exts []string
		want bool
	}{
		{"post.json", []string{".json"}, true},
		{"POST.JSON", []string{".json"}, true},
		{"notes.markdown", []string{".md", ".markdown"}, true},
		{"notes.txt", []string{".md", ".markdown"}, false},
		{"noext", []string{".json"}, false},
	}
	for _, tt := range tests {
		if got := HasExtension(tt.path, tt.exts...); got != tt.want {
			t.Errorf("HasExtension(%q, %v) = %v, want %v", tt.path, tt.exts, got, tt.want)
		}
	}
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates and replaces", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.html")
		for _, content := range []string{"<p>one</p>", "<p>two</p>"} {
			if err := WriteFileAtomic(path, []byte(content), 0o644); err != nil {
				t.Fatalf("WriteFileAtomic() error = %v", err)
			}
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != content {
				t.Errorf("content = %q, want %q", got, content)
			}
		}

		entries, err := os.ReadDir(filepath.Dir(path))
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("directory has %d entries, want 1 (temp file left behind)", len(entries))
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "out.html")
		if err := WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
			t.Error("WriteFileAtomic() error = nil, want error")
		}
	})
}
