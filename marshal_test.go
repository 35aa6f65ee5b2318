package richtext

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"
)

func TestMarshal_LexicalShape(t *testing.T) {
	t.Parallel()

	out, err := Marshal(sampleDocument())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !gjson.ValidBytes(out) {
		t.Fatalf("Marshal() produced invalid JSON: %s", out)
	}

	doc := gjson.ParseBytes(out)
	tests := []struct {
		path string
		want string
	}{
		{path: "root.type", want: "root"},
		{path: "root.version", want: "1"},
		{path: "root.children.#", want: "6"},
		{path: "root.children.0.type", want: "heading"},
		{path: "root.children.0.tag", want: "h1"},
		{path: "root.children.0.children.0.text", want: "Fish & Chips <guide>"},
		{path: "root.children.1.type", want: "paragraph"},
		{path: "root.children.1.children.0.format", want: "1"},
		{path: "root.children.2.children.1.type", want: "link"},
		{path: "root.children.2.children.1.fields.linkType", want: "custom"},
		{path: "root.children.2.children.1.fields.url", want: "https://example.com/map"},
		{path: "root.children.2.children.1.fields.newTab", want: "true"},
		{path: "root.children.3.listType", want: "number"},
		{path: "root.children.3.tag", want: "ol"},
		{path: "root.children.3.children.0.type", want: "listitem"},
		{path: "root.children.3.children.0.children.0.format", want: "3"},
		{path: "root.children.3.children.1.children.1.listType", want: "bullet"},
		{path: "root.children.3.children.1.children.1.tag", want: "ul"},
		{path: "root.children.4.type", want: "horizontalrule"},
		{path: "root.children.5.children.#", want: "0"},
	}

	for _, tt := range tests {
		if got := doc.Get(tt.path).String(); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.path, got, tt.want)
		}
	}
	if doc.Get("root.children.4.children").Exists() {
		t.Error("horizontal rule should not carry children")
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	want := sampleDocument()
	out, err := Marshal(want)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	doc, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(doc.Warnings) != 0 {
		t.Errorf("Parse() warnings = %v, want none", doc.Warnings)
	}
	if diff := cmp.Diff(want, doc.Root, equateEmpty); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if RenderHTML(want) != RenderHTML(doc.Root) {
		t.Errorf("round trip renders differently:\n%s\n%s", RenderHTML(want), RenderHTML(doc.Root))
	}
}

func TestMarshal_SkipsUnknownKinds(t *testing.T) {
	t.Parallel()

	root := Root(Paragraph(Text("a", 0), &Node{Kind: Kind(99)}, nil))
	out, err := Marshal(root)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if n := gjson.GetBytes(out, "root.children.0.children.#").Int(); n != 1 {
		t.Errorf("paragraph children = %d, want 1", n)
	}
}

func TestMarshal_RequiresRoot(t *testing.T) {
	t.Parallel()

	for _, n := range []*Node{nil, Paragraph()} {
		if _, err := Marshal(n); !errors.Is(err, ErrMalformedInput) {
			t.Errorf("Marshal(%v) error = %v, want ErrMalformedInput", n, err)
		}
		if _, err := MarshalIndent(n, "", "  "); !errors.Is(err, ErrMalformedInput) {
			t.Errorf("MarshalIndent(%v) error = %v, want ErrMalformedInput", n, err)
		}
	}
}

func TestMarshalIndent(t *testing.T) {
	t.Parallel()

	out, err := MarshalIndent(Root(Paragraph(Text("hi", 0))), "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent() error = %v", err)
	}
	if !strings.Contains(string(out), "\n  \"root\": {") {
		t.Errorf("MarshalIndent() not indented:\n%s", out)
	}
}
