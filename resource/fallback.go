package resource

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFallback reads a fallback mapping. YAML files (.yaml, .yml) hold a
// flat "key: text" document; anything else is extracted as a resource file
// of the kind given by its extension.
func LoadFallback(ctx context.Context, path string) (*Mapping, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &Error{Op: "read fallback", Kind: KindIO, Path: path, Err: err}
		}
		m := NewMapping()
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, &Error{Op: "parse fallback", Kind: KindInvalidConfig, Path: path, Err: err}
		}
		return m, nil
	}

	ex, err := ExtractFile(ctx, path, KindAuto)
	if err != nil {
		return nil, err
	}
	return ex.Mapping, nil
}
