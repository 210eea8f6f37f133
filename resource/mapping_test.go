package resource

import (
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestMappingKeepsInsertionOrder(t *testing.T) {
	m := NewMapping()
	m.Set("b", "1")
	m.Set("a", "2")
	m.Set("b", "3")

	if got, want := m.Keys(), []string{"b", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	if v, ok := m.Get("b"); !ok || v != "3" {
		t.Fatalf("Get(b) = %q, %v", v, ok)
	}
}

func TestMappingCloneAndEach(t *testing.T) {
	m := MappingOf(Pair{"k", "v"})
	c := m.Clone()
	c.Each(func(_, v string) string { return v + "!" })

	if v, _ := m.Get("k"); v != "v" {
		t.Fatalf("original changed: %q", v)
	}
	if v, _ := c.Get("k"); v != "v!" {
		t.Fatalf("clone = %q, want v!", v)
	}
}

func TestMappingNilReceiver(t *testing.T) {
	var m *Mapping
	if m.Len() != 0 || m.Has("x") || m.Keys() != nil || m.Pairs() != nil {
		t.Fatal("nil mapping should behave as empty")
	}
	if m.Clone().Len() != 0 {
		t.Fatal("Clone of nil should be empty")
	}
}

func TestMappingYAMLOrder(t *testing.T) {
	m := MappingOf(Pair{"z", "last"}, Pair{"a", "first"})
	out, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != "z: last\na: first\n" {
		t.Fatalf("yaml = %q", out)
	}
}
