// Package projection narrows an extracted resource mapping down to what each
// output target asked for, renaming keys to their aliases and filling gaps
// from a fallback mapping.
package projection

import (
	"github.com/minios-linux/locgen/resource"
	"github.com/minios-linux/locgen/whitelist"
)

// Result is the projected mapping of one target.
type Result struct {
	Name     string
	Filtered *resource.Mapping
	Dest     string
}

// Project builds one Result per target.
//
// For every whitelisted key the value comes from res, or from fallback when
// res lacks the key. Empty values count as missing. A resolved value is
// stored under each alias of the key; an unresolved key is left out.
//
// With nil targets nothing is filtered: a single Result carrying res itself
// is returned.
func Project(res *resource.Mapping, targets []whitelist.Loaded, fallback *resource.Mapping) []Result {
	if targets == nil {
		return []Result{{Filtered: res}}
	}
	if res == nil {
		res = resource.NewMapping()
	}
	if fallback == nil {
		fallback = resource.NewMapping()
	}

	out := make([]Result, 0, len(targets))
	for _, t := range targets {
		out = append(out, Result{
			Name:     t.Name,
			Filtered: filter(res, t.Whitelist, fallback),
			Dest:     t.Dest,
		})
	}
	return out
}

func filter(res *resource.Mapping, wl *whitelist.Whitelist, fallback *resource.Mapping) *resource.Mapping {
	filtered := resource.NewMapping()
	for _, key := range wl.Keys() {
		value, ok := res.Get(key)
		if !ok {
			value = ""
			if v, found := fallback.Get(key); found {
				value = v
			}
		}
		if value == "" {
			continue
		}
		for _, name := range wl.Aliases(key) {
			filtered.Set(name, value)
		}
	}
	return filtered
}

// Apply rewrites every value of every result in place.
func Apply(results []Result, fn func(string) string) {
	for _, r := range results {
		r.Filtered.Each(func(_, v string) string { return fn(v) })
	}
}
