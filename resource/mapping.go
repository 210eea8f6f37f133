package resource

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Pair is a single key/text entry of a Mapping.
type Pair struct {
	Key   string
	Value string
}

// Mapping is a key → localized text table that remembers insertion order.
// Setting an existing key replaces its value but keeps its position.
type Mapping struct {
	keys   []string
	values map[string]string
}

// NewMapping returns an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]string)}
}

// MappingOf builds a Mapping from pairs, in order.
func MappingOf(pairs ...Pair) *Mapping {
	m := NewMapping()
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// Set stores value under key.
func (m *Mapping) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Pairs returns the entries in insertion order.
func (m *Mapping) Pairs() []Pair {
	if m == nil {
		return nil
	}
	out := make([]Pair, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Pair{Key: k, Value: m.values[k]})
	}
	return out
}

// Each rewrites every value in place with fn(key, value).
func (m *Mapping) Each(fn func(key, value string) string) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		m.values[k] = fn(k, m.values[k])
	}
}

// Clone returns an independent copy.
func (m *Mapping) Clone() *Mapping {
	c := NewMapping()
	if m == nil {
		return c
	}
	for _, k := range m.keys {
		c.Set(k, m.values[k])
	}
	return c
}

// MarshalYAML emits the mapping as an ordered YAML mapping node.
func (m *Mapping) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, p := range m.Pairs() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Value},
		)
	}
	return node, nil
}

// UnmarshalYAML reads a flat YAML mapping, keeping document order.
func (m *Mapping) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of key: text", node.Line)
	}
	*m = Mapping{values: make(map[string]string)}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value of %q must be a string", v.Line, k.Value)
		}
		m.Set(k.Value, v.Value)
	}
	return nil
}
