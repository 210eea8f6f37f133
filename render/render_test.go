package render

import (
	"strings"
	"testing"

	"github.com/minios-linux/locgen/resource"
)

func TestRenderOrderedItems(t *testing.T) {
	m := resource.MappingOf(
		resource.Pair{Key: "zeta", Value: "Z"},
		resource.Pair{Key: "alpha", Value: "A"},
	)
	out, err := Render(m, `{{range .Items}}{{.Key}}={{.Value}};{{end}}`)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if out != "zeta=Z;alpha=A;" {
		t.Fatalf("Render = %q, want insertion order", out)
	}
}

func TestRenderHelpers(t *testing.T) {
	m := resource.MappingOf(resource.Pair{Key: "main_title-text", Value: "hello wORLD"})
	src := `{{range .Items}}{{camelize .Key}}|{{classify .Key}}|{{dasherize .Key}}|{{titleize .Value}}{{end}}`
	out, err := Render(m, src)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if want := "mainTitleText|MainTitleText|main-title-text|Hello World"; out != want {
		t.Fatalf("Render = %q, want %q", out, want)
	}
}

func TestRenderDefaultTemplate(t *testing.T) {
	m := resource.MappingOf(
		resource.Pair{Key: "greet", Value: `Say "hi"`},
		resource.Pair{Key: "bye", Value: "Line\nbreak"},
	)
	out, err := Render(m, DefaultTemplate)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	for _, want := range []string{
		`"greet": "Say \"hi\"",`,
		`"bye": "Line\nbreak"`,
		"define([], function () {",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, `"Line\nbreak",`) {
		t.Errorf("trailing comma after last item:\n%s", out)
	}
}

func TestRenderEmptyMapping(t *testing.T) {
	out, err := Render(resource.NewMapping(), DefaultTemplate)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !strings.Contains(out, "return {\n    };") {
		t.Fatalf("unexpected output for empty mapping:\n%s", out)
	}
}

func TestRenderMalformedTemplate(t *testing.T) {
	_, err := Render(resource.NewMapping(), "{{range .Items}")
	if !resource.IsKind(err, resource.KindRender) {
		t.Fatalf("error = %v, want render kind", err)
	}

	_, err = Render(resource.MappingOf(resource.Pair{Key: "k", Value: "v"}), "{{range .Items}}{{.Missing}}{{end}}")
	if !resource.IsKind(err, resource.KindRender) {
		t.Fatalf("execute error = %v, want render kind", err)
	}
}

func TestStringHelpers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"camelize", Camelize, "foo_bar-baz", "fooBarBaz"},
		{"camelize upper start", Camelize, "FooBar", "fooBar"},
		{"classify", Classify, "foo_bar", "FooBar"},
		{"underscored", Underscored, "fooBar Baz", "foo_bar_baz"},
		{"dasherize", Dasherize, "fooBar_baz", "foo-bar-baz"},
		{"capitalize", Capitalize, "élan", "Élan"},
		{"capitalize empty", Capitalize, "", ""},
		{"humanize", Humanize, "fooBar_baz", "Foo bar baz"},
		{"quote", Quote, "<a & b>\t", `"<a & b>\t"`},
		{"quote line separator", Quote, "a\u2028b", `"a\u2028b"`},
	}
	for _, tc := range tests {
		if got := tc.fn(tc.in); got != tc.want {
			t.Errorf("%s(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}
