package whitelist

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/minios-linux/locgen/resource"
)

// ---------------------------------------------------------------------------
// Sources
// ---------------------------------------------------------------------------

// Separator joins the contents of the files of a multi-file Source.
const Separator = "\n"

// errShape is the message reported for a whitelist setting of the wrong shape.
const errShape = "incorrect whitelist configuration; supported options: " +
	"mapping (pre-populated whitelist), string (file path), list of strings (file paths)"

// Source says where a target's whitelist comes from: either an Inline
// whitelist or one or more files that are concatenated before parsing.
// Exactly one of the two must be set.
type Source struct {
	Inline *Whitelist
	Paths  []string
}

// FromWhitelist wraps a pre-built whitelist.
func FromWhitelist(w *Whitelist) Source { return Source{Inline: w} }

// FromFiles reads the whitelist from the given files.
func FromFiles(paths ...string) Source { return Source{Paths: paths} }

// IsZero reports whether no whitelist was configured.
func (s Source) IsZero() bool { return s.Inline == nil && len(s.Paths) == 0 }

func (s Source) validate() error {
	if (s.Inline == nil) == (len(s.Paths) == 0) {
		return invalidShape(fmt.Errorf("%w: %s", resource.ErrInvalidConfiguration, errShape))
	}
	for _, p := range s.Paths {
		if strings.TrimSpace(p) == "" {
			return invalidShape(fmt.Errorf("%w: empty whitelist path", resource.ErrInvalidConfiguration))
		}
	}
	return nil
}

func invalidShape(err error) error {
	return &resource.Error{Op: "load whitelist", Kind: resource.KindInvalidConfig, Err: err}
}

// UnmarshalYAML accepts the three supported shapes:
//
//	whitelist: strings.txt              # single file
//	whitelist: [common.txt, app.txt]    # several files, concatenated
//	whitelist:                          # inline
//	  Greeting: [hello, hi]
//	  Farewell:
func (s *Source) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" || node.Value == "" {
			break
		}
		*s = FromFiles(node.Value)
		return nil

	case yaml.SequenceNode:
		var paths []string
		if err := node.Decode(&paths); err != nil {
			break
		}
		if len(paths) == 0 {
			break
		}
		*s = FromFiles(paths...)
		return nil

	case yaml.MappingNode:
		w := New()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			switch val.Kind {
			case yaml.ScalarNode:
				if val.Tag == "!!null" || val.Value == "" {
					w.Add(key.Value)
				} else {
					w.Add(key.Value, val.Value)
				}
			case yaml.SequenceNode:
				var aliases []string
				if err := val.Decode(&aliases); err != nil {
					return fmt.Errorf("line %d: aliases of %q: %w", val.Line, key.Value, err)
				}
				w.Add(key.Value, aliases...)
			default:
				return fmt.Errorf("line %d: aliases of %q must be a string or a list", val.Line, key.Value)
			}
		}
		*s = FromWhitelist(w)
		return nil
	}

	return fmt.Errorf("line %d: %w: %s", node.Line, resource.ErrInvalidConfiguration, errShape)
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Target pairs a whitelist source with the file the generated module goes to.
type Target struct {
	Name      string `yaml:"name,omitempty"`
	Whitelist Source `yaml:"whitelist"`
	Dest      string `yaml:"dest"`
}

// Loaded is a Target whose whitelist has been read and parsed.
type Loaded struct {
	Name      string
	Whitelist *Whitelist
	Dest      string
}

// Load resolves a single source. Files are read concurrently.
func Load(ctx context.Context, src Source) (*Whitelist, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}
	if src.Inline != nil {
		return src.Inline, nil
	}

	contents := make([]string, len(src.Paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range src.Paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return &resource.Error{Op: "read whitelist", Kind: resource.KindIO, Path: path, Err: err}
			}
			contents[i] = string(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Parse(strings.Join(contents, Separator)), nil
}

// LoadAll loads the whitelists of all targets concurrently. The result keeps
// the order of targets; the first failure is returned.
func LoadAll(ctx context.Context, targets []Target) ([]Loaded, error) {
	out := make([]Loaded, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			w, err := Load(ctx, t.Whitelist)
			if err != nil {
				return fmt.Errorf("target %s: %w", t.label(i), err)
			}
			out[i] = Loaded{Name: t.Name, Whitelist: w, Dest: t.Dest}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (t Target) label(i int) string {
	switch {
	case t.Name != "":
		return fmt.Sprintf("%q", t.Name)
	case t.Dest != "":
		return fmt.Sprintf("%q", t.Dest)
	}
	return fmt.Sprintf("#%d", i+1)
}
