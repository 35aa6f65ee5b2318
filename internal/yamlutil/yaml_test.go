package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-richtext/internal/yamlutil"
)

type testConfig struct {
	Name    string            `yaml:"name"`
	Workers int               `yaml:"workers"`
	Classes map[string]string `yaml:"classes"`
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
	}{
		{name: "valid", data: []byte("name: blog\nworkers: 4"), dest: &testConfig{}},
		{name: "unknown field ignored", data: []byte("name: blog\nextra: 1"), dest: &testConfig{}},
		{name: "nil data", data: nil, dest: &testConfig{}, wantErr: yamlutil.ErrNilData},
		{name: "empty data", data: []byte{}, dest: &testConfig{}, wantErr: yamlutil.ErrNilData},
		{name: "nil destination", data: []byte("name: x"), dest: nil, wantErr: yamlutil.ErrNilDestination},
		{
			name:    "too large",
			data:    []byte("name: " + strings.Repeat("x", yamlutil.MaxInputSize)),
			dest:    &testConfig{},
			wantErr: yamlutil.ErrInputTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Unmarshal() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if cfg := tt.dest.(*testConfig); cfg.Name != "blog" {
				t.Errorf("Name = %q, want blog", cfg.Name)
			}
		})
	}
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("known fields", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		err := yamlutil.UnmarshalStrict([]byte("name: blog\nclasses:\n  p: mb-4\n  a: link"), &cfg)
		if err != nil {
			t.Fatalf("UnmarshalStrict() error = %v", err)
		}
		if cfg.Classes["p"] != "mb-4" || cfg.Classes["a"] != "link" {
			t.Errorf("Classes = %v", cfg.Classes)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		err := yamlutil.UnmarshalStrict([]byte("name: blog\nworkerz: 4"), &cfg)
		if err == nil {
			t.Fatal("UnmarshalStrict() error = nil, want unknown field error")
		}
		if !strings.HasPrefix(err.Error(), "yamlutil: ") {
			t.Errorf("error %q is not prefixed", err)
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		if err := yamlutil.UnmarshalStrict([]byte("name: [unclosed"), &cfg); err == nil {
			t.Error("UnmarshalStrict() error = nil, want syntax error")
		}
	})
}
