// Package config — .locgen.yaml configuration file support.
//
// A .locgen.yaml file declares the source resource file and every module to
// generate from it. Relative paths are resolved against the directory that
// holds the configuration file.
//
//	source: resources/Strings.fr-FR.resx
//	fallback: resources/Strings.resx
//	targets:
//	  - name: app
//	    whitelist: [whitelists/common.txt, whitelists/app.txt]
//	    dest: build/nls/fr/app.js
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/minios-linux/locgen/pipeline"
	"github.com/minios-linux/locgen/pseudoloc"
	"github.com/minios-linux/locgen/resource"
	"github.com/minios-linux/locgen/whitelist"
)

// FileName is the default config file name.
const FileName = ".locgen.yaml"

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// File is the top-level .locgen.yaml structure.
type File struct {
	// Source is the resource file to convert.
	Source string `yaml:"source"`
	// Type forces the schema ("resx", "lspkg"); derived from Source when empty.
	Type resource.Kind `yaml:"type,omitempty"`
	// Template is a module template file. Empty uses the built-in template.
	Template string `yaml:"template,omitempty"`
	// Fallback is either a file (YAML mapping or resource file) or an inline
	// key: text mapping.
	Fallback Fallback `yaml:"fallback,omitempty"`
	// Pseudo enables pseudo-localization of all generated values.
	Pseudo bool `yaml:"pseudo,omitempty"`
	// PseudoLoc replaces the default pseudo-localization settings as a whole.
	PseudoLoc *pseudoloc.Options `yaml:"pseudoloc,omitempty"`
	// Targets lists the modules to generate.
	Targets []whitelist.Target `yaml:"targets"`

	dir string
}

// Fallback is a fallback mapping given by path or inline.
type Fallback struct {
	Path   string
	Inline *resource.Mapping
}

// UnmarshalYAML accepts a scalar path or a mapping.
func (f *Fallback) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		f.Path = node.Value
		return nil
	case yaml.MappingNode:
		m := resource.NewMapping()
		if err := node.Decode(m); err != nil {
			return err
		}
		f.Inline = m
		return nil
	}
	return fmt.Errorf("line %d: fallback must be a file path or a mapping", node.Line)
}

// IsZero lets omitempty drop an unset fallback.
func (f Fallback) IsZero() bool { return f.Path == "" && f.Inline == nil }

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// LoadFile loads and validates .locgen.yaml from the given directory.
// Returns nil if no .locgen.yaml exists.
func LoadFile(dir string) (*File, error) {
	f, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return f, err
}

// Load reads and validates the configuration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, &resource.Error{Op: "parse config", Kind: resource.KindInvalidConfig, Path: path, Err: err}
	}

	if f.Source == "" {
		return nil, &resource.Error{Op: "parse config", Kind: resource.KindInvalidConfig, Path: path,
			Err: fmt.Errorf("%w: \"source\" is required", resource.ErrInvalidConfiguration)}
	}
	for i, t := range f.Targets {
		if t.Whitelist.IsZero() {
			return nil, &resource.Error{Op: "parse config", Kind: resource.KindInvalidConfig, Path: path,
				Err: fmt.Errorf("%w: target #%d has no whitelist", resource.ErrInvalidConfiguration, i+1)}
		}
		if t.Dest == "" {
			return nil, &resource.Error{Op: "parse config", Kind: resource.KindInvalidConfig, Path: path,
				Err: fmt.Errorf("%w: target #%d has no dest", resource.ErrInvalidConfiguration, i+1)}
		}
	}

	f.dir = filepath.Dir(path)
	f.resolvePaths()
	return &f, nil
}

// resolvePaths makes every relative path relative to the config directory.
func (f *File) resolvePaths() {
	f.Source = f.abs(f.Source)
	f.Template = f.abs(f.Template)
	f.Fallback.Path = f.abs(f.Fallback.Path)
	for i := range f.Targets {
		t := &f.Targets[i]
		t.Dest = f.abs(t.Dest)
		for j, p := range t.Whitelist.Paths {
			t.Whitelist.Paths[j] = f.abs(p)
		}
	}
}

func (f *File) abs(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(f.dir, p)
}

// Dir returns the directory the file was loaded from.
func (f *File) Dir() string { return f.dir }

// ---------------------------------------------------------------------------
// Pipeline options
// ---------------------------------------------------------------------------

// Options reads the template and fallback files and returns the pipeline
// options described by the file. An empty target list renders the whole
// source once.
func (f *File) Options(ctx context.Context) (pipeline.Options, error) {
	opts := pipeline.Options{
		Source: f.Source,
		Kind:   f.Type,
	}
	if len(f.Targets) > 0 {
		opts.Targets = f.Targets
	}

	if f.Template != "" {
		data, err := os.ReadFile(f.Template)
		if err != nil {
			return opts, &resource.Error{Op: "read template", Kind: resource.KindIO, Path: f.Template, Err: err}
		}
		opts.Template = string(data)
	}

	fb, err := f.Fallback.Load(ctx)
	if err != nil {
		return opts, err
	}
	opts.Fallback = fb

	return opts, nil
}

// PseudoLocOptions returns the configured pseudo-localization settings,
// falling back to pseudoloc.DefaultOptions.
func (f *File) PseudoLocOptions() pseudoloc.Options {
	if f.PseudoLoc != nil {
		return *f.PseudoLoc
	}
	return pseudoloc.DefaultOptions()
}

// Load returns the fallback mapping, or nil when none is configured.
func (f Fallback) Load(ctx context.Context) (*resource.Mapping, error) {
	switch {
	case f.Inline != nil:
		return f.Inline, nil
	case f.Path != "":
		return resource.LoadFallback(ctx, f.Path)
	}
	return nil, nil
}
