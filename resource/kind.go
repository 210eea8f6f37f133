package resource

import (
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
)

var _ pflag.Value = (*Kind)(nil)

// Kind identifies the XML schema of a resource file.
type Kind int

const (
	// KindAuto means no schema was given; it is derived from the file extension.
	KindAuto Kind = iota
	// KindResx is a .NET .resx file (<root><data name="…"><value>…</value></data></root>).
	KindResx
	// KindLspkg is a localization package (.lspkg) wrapping LCX items.
	KindLspkg
	// KindUnknown is any other schema name. Extraction yields an empty mapping.
	KindUnknown
)

// ParseKind maps a schema name to a Kind. Matching is case-insensitive and a
// leading dot is ignored, so extensions can be passed directly.
func ParseKind(name string) Kind {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "":
		return KindAuto
	case "resx":
		return KindResx
	case "lspkg":
		return KindLspkg
	}
	return KindUnknown
}

// KindFromPath derives the Kind from a file name extension.
func KindFromPath(path string) Kind {
	k := ParseKind(filepath.Ext(path))
	if k == KindAuto {
		return KindUnknown
	}
	return k
}

// Resolve returns k, or the kind derived from path when k is KindAuto.
func (k Kind) Resolve(path string) Kind {
	if k == KindAuto {
		return KindFromPath(path)
	}
	return k
}

func (k Kind) String() string {
	switch k {
	case KindAuto:
		return ""
	case KindResx:
		return "resx"
	case KindLspkg:
		return "lspkg"
	}
	return "unknown"
}

// Set implements pflag.Value. Any name is accepted: an unsupported one
// becomes KindUnknown, which extracts to an empty mapping.
func (k *Kind) Set(s string) error {
	*k = ParseKind(s)
	return nil
}

// Type implements pflag.Value.
func (k *Kind) Type() string { return "type" }

// UnmarshalText lets a Kind be read from YAML configuration.
func (k *Kind) UnmarshalText(b []byte) error {
	*k = ParseKind(string(b))
	return nil
}
