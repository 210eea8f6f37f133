// Package pipeline runs the whole conversion: extract a resource file, load
// the target whitelists, project, optionally pseudo-localize, and render one
// module per target.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/minios-linux/locgen/projection"
	"github.com/minios-linux/locgen/pseudoloc"
	"github.com/minios-linux/locgen/render"
	"github.com/minios-linux/locgen/resource"
	"github.com/minios-linux/locgen/whitelist"
)

// Options describes one conversion.
type Options struct {
	// Source is the .resx or .lspkg file to read.
	Source string
	// Kind is the source schema. KindAuto derives it from the extension.
	Kind resource.Kind
	// Targets lists the modules to generate. Nil renders the whole source
	// mapping once, with an empty Dest.
	Targets []whitelist.Target
	// Fallback supplies values for whitelisted keys the source lacks.
	Fallback *resource.Mapping
	// Template is the module template source. Empty uses render.DefaultTemplate.
	Template string
	// Logger receives progress and error records. Nil discards them.
	Logger *slog.Logger
}

// Output is a generated module.
type Output struct {
	Name string
	Dest string
	Text string
}

// Run converts opts.Source into one Output per target.
func Run(ctx context.Context, opts Options) ([]Output, error) {
	return run(ctx, opts, nil)
}

// RunPseudoLoc is Run with every projected value pseudo-localized before
// rendering.
func RunPseudoLoc(ctx context.Context, opts Options, ploc pseudoloc.Options) ([]Output, error) {
	return run(ctx, opts, pseudoloc.New(ploc))
}

func run(ctx context.Context, opts Options, ploc *pseudoloc.Transformer) ([]Output, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	out, err := execute(ctx, opts, ploc, log)
	if err != nil {
		log.Error("generation failed", "source", opts.Source, "err", err)
		return nil, err
	}
	return out, nil
}

func execute(ctx context.Context, opts Options, ploc *pseudoloc.Transformer, log *slog.Logger) ([]Output, error) {
	tmplSrc, tmplName := opts.Template, "template"
	if tmplSrc == "" {
		tmplSrc, tmplName = render.DefaultTemplate, "default"
	}
	tmpl, err := render.Compile(tmplName, tmplSrc)
	if err != nil {
		return nil, err
	}

	// Extraction and whitelist loading are independent; run them together.
	var (
		ex     *resource.Extraction
		loaded []whitelist.Loaded
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ex, err = resource.ExtractFile(gctx, opts.Source, opts.Kind)
		return err
	})
	if opts.Targets != nil {
		g.Go(func() error {
			var err error
			loaded, err = whitelist.LoadAll(gctx, opts.Targets)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	reportExtraction(log, opts.Source, ex)

	// Keep the nil/non-nil distinction: nil targets means no filtering.
	if opts.Targets != nil && loaded == nil {
		loaded = []whitelist.Loaded{}
	}
	results := projection.Project(ex.Mapping, loaded, opts.Fallback)

	if ploc != nil {
		if opts.Targets == nil {
			// The passthrough result aliases the extracted mapping; do not
			// rewrite it in place.
			results[0].Filtered = results[0].Filtered.Clone()
		}
		projection.Apply(results, ploc.String)
	}

	outputs := make([]Output, 0, len(results))
	for _, r := range results {
		text, err := tmpl.Execute(r.Filtered)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", describe(r), err)
		}
		log.Debug("rendered module", "dest", r.Dest, "keys", r.Filtered.Len())
		outputs = append(outputs, Output{Name: r.Name, Dest: r.Dest, Text: text})
	}
	return outputs, nil
}

func reportExtraction(log *slog.Logger, source string, ex *resource.Extraction) {
	if ex.Kind != resource.KindResx && ex.Kind != resource.KindLspkg {
		log.Warn("unsupported resource type, nothing extracted", "source", source, "type", ex.Kind.String())
	}
	for _, s := range ex.Skipped {
		log.Debug("skipped entry", "source", source, "index", s.Index, "key", s.Key, "reason", string(s.Reason))
	}
	log.Info("extracted resources", "source", source, "type", ex.Kind.String(),
		"keys", ex.Mapping.Len(), "skipped", len(ex.Skipped))
}

func describe(r projection.Result) string {
	switch {
	case r.Name != "":
		return fmt.Sprintf("target %q", r.Name)
	case r.Dest != "":
		return r.Dest
	}
	return "module"
}

// Write stores every output at its Dest, creating parent directories.
// Outputs without a Dest are skipped.
func Write(outputs []Output) error {
	for _, o := range outputs {
		if o.Dest == "" {
			continue
		}
		if dir := filepath.Dir(o.Dest); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return &resource.Error{Op: "write module", Kind: resource.KindIO, Path: dir, Err: err}
			}
		}
		if err := os.WriteFile(o.Dest, []byte(o.Text), 0644); err != nil {
			return &resource.Error{Op: "write module", Kind: resource.KindIO, Path: o.Dest, Err: err}
		}
	}
	return nil
}
