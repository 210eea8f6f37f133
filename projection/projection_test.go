package projection

import (
	"reflect"
	"testing"

	"github.com/minios-linux/locgen/resource"
	"github.com/minios-linux/locgen/whitelist"
)

func mapping(kv ...string) *resource.Mapping {
	m := resource.NewMapping()
	for i := 0; i+1 < len(kv); i += 2 {
		m.Set(kv[i], kv[i+1])
	}
	return m
}

func target(dest string, wl *whitelist.Whitelist) whitelist.Loaded {
	return whitelist.Loaded{Whitelist: wl, Dest: dest}
}

func pairs(m *resource.Mapping) []resource.Pair { return m.Pairs() }

func TestProjectAliasFanOut(t *testing.T) {
	wl := whitelist.New()
	wl.Add("greeting", "hi", "hello")

	got := Project(mapping("greeting", "Hi!"), []whitelist.Loaded{target("out.js", wl)}, nil)
	if len(got) != 1 {
		t.Fatalf("results = %d, want 1", len(got))
	}
	want := []resource.Pair{{Key: "hi", Value: "Hi!"}, {Key: "hello", Value: "Hi!"}}
	if !reflect.DeepEqual(pairs(got[0].Filtered), want) {
		t.Fatalf("filtered = %#v, want %#v", pairs(got[0].Filtered), want)
	}
	if got[0].Dest != "out.js" {
		t.Fatalf("dest = %q, want out.js", got[0].Dest)
	}
}

func TestProjectFallbackPrecedenceAndOmission(t *testing.T) {
	wl := whitelist.Parse("both\nonly_fallback, fb\nmissing\nempty")
	res := mapping("both", "primary", "empty", "", "unlisted", "x")
	fb := mapping("both", "secondary", "only_fallback", "from fallback", "empty", "fallback ignored")

	got := Project(res, []whitelist.Loaded{target("", wl)}, fb)[0].Filtered

	want := []resource.Pair{
		{Key: "both", Value: "primary"},
		{Key: "fb", Value: "from fallback"},
	}
	if !reflect.DeepEqual(pairs(got), want) {
		t.Fatalf("filtered = %#v, want %#v", pairs(got), want)
	}
}

func TestProjectEndToEndScenario(t *testing.T) {
	wl := whitelist.New()
	wl.Add("k1", "greet")

	got := Project(
		mapping("k1", "Hello", "k2", "World"),
		[]whitelist.Loaded{target("", wl)},
		mapping("k2", "fallbackWorld"),
	)[0].Filtered

	want := []resource.Pair{{Key: "greet", Value: "Hello"}}
	if !reflect.DeepEqual(pairs(got), want) {
		t.Fatalf("filtered = %#v, want %#v", pairs(got), want)
	}
}

func TestProjectNoTargetsPassthrough(t *testing.T) {
	res := mapping("a", "1")
	got := Project(res, nil, mapping("b", "2"))
	if len(got) != 1 || got[0].Filtered != res {
		t.Fatalf("Project(nil targets) = %#v, want the input mapping unchanged", got)
	}
	if res.Len() != 1 {
		t.Fatalf("input mapping modified: %#v", res.Pairs())
	}
}

func TestProjectNilMappings(t *testing.T) {
	wl := whitelist.Parse("a")
	got := Project(nil, []whitelist.Loaded{target("x", wl), target("y", wl)}, nil)
	if len(got) != 2 {
		t.Fatalf("results = %d, want 2", len(got))
	}
	for _, r := range got {
		if r.Filtered.Len() != 0 {
			t.Errorf("%s: filtered = %#v, want empty", r.Dest, r.Filtered.Pairs())
		}
	}
}

func TestProjectTargetsAreIndependent(t *testing.T) {
	a := whitelist.Parse("k, first")
	b := whitelist.Parse("k, second")
	got := Project(mapping("k", "v"), []whitelist.Loaded{target("a", a), target("b", b)}, nil)

	if got[0].Filtered.Has("second") || got[1].Filtered.Has("first") {
		t.Fatal("targets share a filtered mapping")
	}
}

func TestApply(t *testing.T) {
	wl := whitelist.Parse("a\nb")
	results := Project(mapping("a", "x", "b", "y"), []whitelist.Loaded{target("", wl)}, nil)
	Apply(results, func(s string) string { return "<" + s + ">" })

	want := []resource.Pair{{Key: "a", Value: "<x>"}, {Key: "b", Value: "<y>"}}
	if !reflect.DeepEqual(pairs(results[0].Filtered), want) {
		t.Fatalf("filtered = %#v, want %#v", pairs(results[0].Filtered), want)
	}
}
