// Package render turns a projected mapping into generated module source
// through a text/template.
//
// Templates receive Data: .Items is the ordered list of key/value pairs.
// The string helpers returned by Funcs are available as template functions.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/minios-linux/locgen/resource"
)

// DefaultTemplate emits an AMD JavaScript module returning the strings.
//
//go:embed templates/module.js.tmpl
var DefaultTemplate string

// Data is the value a template is executed with.
type Data struct {
	Items []resource.Pair
}

// Template is a parsed module template.
type Template struct {
	tmpl *template.Template
}

// Compile parses src with the helper functions installed.
func Compile(name, src string) (*Template, error) {
	t, err := template.New(name).Funcs(Funcs()).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, &resource.Error{Op: "parse template", Kind: resource.KindRender, Path: name, Err: err}
	}
	return &Template{tmpl: t}, nil
}

// Execute renders m.
func (t *Template) Execute(m *resource.Mapping) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, Data{Items: m.Pairs()}); err != nil {
		return "", &resource.Error{Op: "render template", Kind: resource.KindRender, Path: t.tmpl.Name(),
			Err: fmt.Errorf("executing: %w", err)}
	}
	return buf.String(), nil
}

// Render parses src and renders m with it.
func Render(m *resource.Mapping, src string) (string, error) {
	t, err := Compile("module", src)
	if err != nil {
		return "", err
	}
	return t.Execute(m)
}
