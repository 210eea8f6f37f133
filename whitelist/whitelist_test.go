package whitelist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/minios-linux/locgen/resource"
)

func TestParseMergesRepeatedKeys(t *testing.T) {
	w := Parse("a,x\na,y")

	assert.Equal(t, []string{"a"}, w.Keys())
	raw, ok := w.Raw("a")
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, raw)
}

func TestParseTrimsAndDefaultsAliases(t *testing.T) {
	w := Parse("  Greeting ,  hello , hi \r\nFarewell\r\n\r\n   \nTrailing,\n")

	assert.Equal(t, []string{"Greeting", "Farewell", "Trailing"}, w.Keys())
	assert.Equal(t, []string{"hello", "hi"}, w.Aliases("Greeting"))
	assert.Equal(t, []string{"Farewell"}, w.Aliases("Farewell"))
	assert.Equal(t, []string{"Trailing"}, w.Aliases("Trailing"))
	_, blank := w.Raw("")
	assert.False(t, blank, "blank lines must not produce an empty key")
}

func TestParseSkipsBlankKeys(t *testing.T) {
	w := Parse(" , alias\n,x,y\t\nKept, k\r\n ,\r\n")

	assert.Equal(t, []string{"Kept"}, w.Keys())
	assert.Equal(t, []string{"k"}, w.Aliases("Kept"))
	_, blank := w.Raw("")
	assert.False(t, blank, "a blank key field must not register the empty key")
}

func TestAliasesReturnsCopy(t *testing.T) {
	w := New()
	w.Add("k", "a")
	got := w.Aliases("k")
	got[0] = "mutated"
	assert.Equal(t, []string{"a"}, w.Aliases("k"))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConcatenatesFiles(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.txt", "a, x\nb")
	second := writeFile(t, dir, "second.txt", "a, y\nc, z")

	w, err := Load(context.Background(), FromFiles(first, second))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, w.Keys())
	assert.Equal(t, []string{"x", "y"}, w.Aliases("a"))
	assert.Equal(t, []string{"z"}, w.Aliases("c"))
}

func TestLoadInlinePassesThrough(t *testing.T) {
	inline := New()
	inline.Add("k", "alias")

	w, err := Load(context.Background(), FromWhitelist(inline))
	require.NoError(t, err)
	assert.Same(t, inline, w)
}

func TestLoadRejectsInvalidShapes(t *testing.T) {
	for name, src := range map[string]Source{
		"empty":      {},
		"both":       {Inline: New(), Paths: []string{"a.txt"}},
		"blank path": {Paths: []string{" "}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(context.Background(), src)
			require.Error(t, err)
			assert.True(t, resource.IsKind(err, resource.KindInvalidConfig), "err = %v", err)
			assert.ErrorIs(t, err, resource.ErrInvalidConfiguration)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), FromFiles(filepath.Join(t.TempDir(), "missing.txt")))
	require.Error(t, err)
	assert.True(t, resource.IsKind(err, resource.KindIO))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadAllKeepsOrderAndFailsFast(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "one")
	b := writeFile(t, dir, "b.txt", "two, deux")

	loaded, err := LoadAll(context.Background(), []Target{
		{Whitelist: FromFiles(a), Dest: "out/a.js"},
		{Whitelist: FromFiles(b), Dest: "out/b.js"},
	})
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "out/a.js", loaded[0].Dest)
	assert.Equal(t, []string{"one"}, loaded[0].Whitelist.Keys())
	assert.Equal(t, []string{"deux"}, loaded[1].Whitelist.Aliases("two"))

	_, err = LoadAll(context.Background(), []Target{
		{Whitelist: FromFiles(a), Dest: "ok.js"},
		{Name: "broken", Whitelist: FromFiles(filepath.Join(dir, "nope.txt"))},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `target "broken"`)
}

func TestSourceUnmarshalYAML(t *testing.T) {
	var cfg struct {
		Targets []Target `yaml:"targets"`
	}
	doc := `
targets:
  - whitelist: strings.txt
    dest: a.js
  - whitelist: [common.txt, app.txt]
    dest: b.js
  - whitelist:
      Greeting: [hello, hi]
      Farewell:
      Title: heading
    dest: c.js
`
	require.NoError(t, yaml.Unmarshal([]byte(doc), &cfg))
	require.Len(t, cfg.Targets, 3)

	assert.Equal(t, []string{"strings.txt"}, cfg.Targets[0].Whitelist.Paths)
	assert.Equal(t, []string{"common.txt", "app.txt"}, cfg.Targets[1].Whitelist.Paths)

	inline := cfg.Targets[2].Whitelist.Inline
	require.NotNil(t, inline)
	assert.Equal(t, []string{"Greeting", "Farewell", "Title"}, inline.Keys())
	assert.Equal(t, []string{"hello", "hi"}, inline.Aliases("Greeting"))
	assert.Equal(t, []string{"Farewell"}, inline.Aliases("Farewell"))
	assert.Equal(t, []string{"heading"}, inline.Aliases("Title"))
}

func TestSourceUnmarshalYAMLRejectsNestedList(t *testing.T) {
	var src Source
	err := yaml.Unmarshal([]byte("[[a], [b]]"), &src)
	require.Error(t, err)
	assert.ErrorIs(t, err, resource.ErrInvalidConfiguration)
}
