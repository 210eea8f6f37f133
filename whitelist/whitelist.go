// Package whitelist reads the per-target key lists that select, and rename,
// the resource strings emitted into a generated module.
//
// A whitelist document has one key per line followed by optional aliases:
//
//	Greeting, hello, hi
//	Farewell
//
// A key listed on several lines collects the aliases of all of them.
package whitelist

import (
	"strings"
)

// Whitelist maps resource keys to the alias names they are emitted under.
// Keys keep the order in which they first appeared.
type Whitelist struct {
	keys    []string
	aliases map[string][]string
}

// New returns an empty Whitelist.
func New() *Whitelist {
	return &Whitelist{aliases: make(map[string][]string)}
}

// Add appends aliases to key, registering key if it is new.
func (w *Whitelist) Add(key string, aliases ...string) {
	if w.aliases == nil {
		w.aliases = make(map[string][]string)
	}
	existing, ok := w.aliases[key]
	if !ok {
		w.keys = append(w.keys, key)
		existing = []string{}
	}
	w.aliases[key] = append(existing, aliases...)
}

// Keys returns the whitelisted keys in order.
func (w *Whitelist) Keys() []string {
	if w == nil {
		return nil
	}
	out := make([]string, len(w.keys))
	copy(out, w.keys)
	return out
}

// Len returns the number of whitelisted keys.
func (w *Whitelist) Len() int {
	if w == nil {
		return 0
	}
	return len(w.keys)
}

// Raw returns the aliases declared for key, possibly empty.
func (w *Whitelist) Raw(key string) ([]string, bool) {
	if w == nil {
		return nil, false
	}
	a, ok := w.aliases[key]
	return a, ok
}

// Aliases returns the names key is emitted under: its declared aliases, or
// the key itself when none were declared.
func (w *Whitelist) Aliases(key string) []string {
	a, _ := w.Raw(key)
	if len(a) == 0 {
		return []string{key}
	}
	out := make([]string, len(a))
	copy(out, a)
	return out
}

// Parse reads a whitelist document. Fields are trimmed; lines with a blank
// key and empty aliases (trailing commas) are ignored. CRLF line endings are
// accepted.
func Parse(text string) *Whitelist {
	w := New()
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Split(line, ",")
		key := strings.TrimSpace(fields[0])
		if key == "" {
			continue
		}
		var aliases []string
		for _, f := range fields[1:] {
			if f = strings.TrimSpace(f); f != "" {
				aliases = append(aliases, f)
			}
		}
		w.Add(key, aliases...)
	}
	return w
}
