// locgen — converts .resx / .lspkg localization files into generated source modules.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/minios-linux/locgen/config"
	"github.com/minios-linux/locgen/i18n"
	"github.com/minios-linux/locgen/pipeline"
	"github.com/minios-linux/locgen/pseudoloc"
	"github.com/minios-linux/locgen/resource"
	"github.com/minios-linux/locgen/whitelist"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+i18n.T(format)+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+i18n.T(format)+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+i18n.T(format)+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+i18n.T(format)+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir string
	verbose bool
)

// newLogger returns the structured logger handed to the pipeline. Without
// --verbose the pipeline stays quiet and the CLI reports on its own.
func newLogger() *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "locgen",
		Short: i18n.T("Generate source modules from .resx/.lspkg localization files"),
		Long: i18n.T(`locgen reads a .resx or .lspkg localization file and generates one source
module per target. Each target selects and renames keys through a whitelist
(one "key, alias, alias" line per key), takes missing values from an optional
fallback mapping and is rendered through a text template.

Commands:
  generate    Generate modules (from flags or .locgen.yaml)
  extract     Print the strings of a resource file as YAML
  version     Show version information`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&rootDir, "root", ".", i18n.T("Project root directory (where .locgen.yaml lives)"))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, i18n.T("Log pipeline progress to stderr"))

	root.AddCommand(
		newGenerateCmd(),
		newExtractCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: i18n.T("Show version information"),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("locgen version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// generate
// ---------------------------------------------------------------------------

type generateFlags struct {
	resource   string
	whitelists []string
	kind       resource.Kind
	output     string
	template   string
	fallback   string
	pseudo     bool
	configPath string
}

func newGenerateCmd() *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: i18n.T("Generate source modules"),
		Long: i18n.T(`Generate source modules from a resource file.

With -r the job is described by flags: -w names the whitelist file(s) of a
single target and -o its destination; without -o the module is printed to
stdout. Without -r the job is read from .locgen.yaml (or --config).`),
		Example: `  locgen generate -r Strings.fr-FR.resx -w whitelist.txt
  locgen generate -r Strings.lspkg -t lspkg -w common.txt -w app.txt -o nls/fr/app.js
  locgen generate --pseudo -r Strings.resx > qps-ploc.js
  locgen generate --config build/.locgen.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.resource, "resource", "r", "", i18n.T("Resource file to convert (.resx or .lspkg)"))
	fl.StringArrayVarP(&f.whitelists, "whitelist", "w", nil, i18n.T("Whitelist file (repeatable; files are concatenated)"))
	fl.VarP(&f.kind, "type", "t", i18n.T("Resource type: resx or lspkg (default: file extension)"))
	fl.StringVarP(&f.output, "output", "o", "", i18n.T("Write the module to this file instead of stdout"))
	fl.StringVar(&f.template, "template", "", i18n.T("Module template file (default: built-in AMD module)"))
	fl.StringVar(&f.fallback, "fallback", "", i18n.T("Fallback values: YAML key/text file or another resource file"))
	fl.BoolVar(&f.pseudo, "pseudo", false, i18n.T("Pseudo-localize all values"))
	fl.StringVar(&f.configPath, "config", "", i18n.T("Configuration file (default: <root>/.locgen.yaml)"))

	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, f generateFlags) error {
	var (
		opts   pipeline.Options
		pseudo bool
		ploc   = pseudoloc.DefaultOptions()
	)

	if f.resource != "" {
		var err error
		if opts, err = optionsFromFlags(ctx, f); err != nil {
			return err
		}
		pseudo = f.pseudo
	} else {
		cfg, err := loadConfig(f.configPath)
		if err != nil {
			return err
		}
		if opts, err = cfg.Options(ctx); err != nil {
			return err
		}
		pseudo = cfg.Pseudo || f.pseudo
		ploc = cfg.PseudoLocOptions()
		// Flags still override the file.
		if cmd.Flags().Changed("type") {
			opts.Kind = f.kind
		}
	}

	if opts.Kind.Resolve(opts.Source) == resource.KindUnknown {
		logWarning("Unsupported resource type for %s; the generated module will be empty", opts.Source)
	}
	opts.Logger = newLogger()

	var (
		outputs []pipeline.Output
		err     error
	)
	if pseudo {
		outputs, err = pipeline.RunPseudoLoc(ctx, opts, ploc)
	} else {
		outputs, err = pipeline.Run(ctx, opts)
	}
	if err != nil {
		return err
	}

	// Without a whitelist the unfiltered module still honors -o.
	if f.resource != "" && len(f.whitelists) == 0 && f.output != "" {
		outputs[0].Dest = f.output
	}

	return emit(cmd, outputs)
}

// emit writes outputs with a destination and prints the first one without.
func emit(cmd *cobra.Command, outputs []pipeline.Output) error {
	for _, o := range outputs {
		if o.Dest == "" {
			fmt.Fprint(cmd.OutOrStdout(), o.Text)
			break
		}
	}

	if err := pipeline.Write(outputs); err != nil {
		return err
	}
	for _, o := range outputs {
		if o.Dest != "" {
			logSuccess("Wrote %s", o.Dest)
		}
	}
	return nil
}

func optionsFromFlags(ctx context.Context, f generateFlags) (pipeline.Options, error) {
	opts := pipeline.Options{
		Source: f.resource,
		Kind:   f.kind,
	}

	if len(f.whitelists) > 0 {
		opts.Targets = []whitelist.Target{{
			Whitelist: whitelist.FromFiles(f.whitelists...),
			Dest:      f.output,
		}}
	}

	if f.template != "" {
		data, err := os.ReadFile(f.template)
		if err != nil {
			return opts, fmt.Errorf("reading template %s: %w", f.template, err)
		}
		opts.Template = string(data)
	}

	if f.fallback != "" {
		fb, err := resource.LoadFallback(ctx, f.fallback)
		if err != nil {
			return opts, err
		}
		opts.Fallback = fb
	}

	return opts, nil
}

func loadConfig(path string) (*config.File, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.LoadFile(rootDir)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, errors.New(i18n.Tf("no resource file given (-r) and no %s found in %s",
			config.FileName, absPath(rootDir)))
	}
	logInfo("Using %s", filepath.Join(cfg.Dir(), config.FileName))
	return cfg, nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// ---------------------------------------------------------------------------
// extract
// ---------------------------------------------------------------------------

func newExtractCmd() *cobra.Command {
	var (
		source string
		kind   resource.Kind
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: i18n.T("Print the strings of a resource file as YAML"),
		Long: i18n.T(`Extract a resource file and print its key/text pairs as YAML, in document
order. Entries that could not be read are reported on stderr.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if source == "" {
				return errors.New(i18n.T("missing resource file (-r)"))
			}
			ex, err := resource.ExtractFile(cmd.Context(), source, kind)
			if err != nil {
				return err
			}
			if ex.Kind == resource.KindUnknown {
				logWarning("Unsupported resource type for %s; nothing extracted", source)
			}
			for _, s := range ex.Skipped {
				logWarning("Skipped entry #%d %q: %s", s.Index+1, s.Key, s.Reason)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			if err := enc.Encode(ex.Mapping); err != nil {
				return fmt.Errorf("encoding yaml: %w", err)
			}
			logInfo("%d keys, %d skipped", ex.Mapping.Len(), len(ex.Skipped))
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "resource", "r", "", i18n.T("Resource file to read"))
	cmd.Flags().VarP(&kind, "type", "t", i18n.T("Resource type: resx or lspkg (default: file extension)"))

	return cmd
}
