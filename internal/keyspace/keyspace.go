// Package keyspace holds a flat, slash-separated view of hierarchical
// settings, the in-memory model shared by file and memory backends.
package keyspace

import (
	"sort"
	"strings"
)

// Separator joins group segments and the trailing key name.
const Separator = "/"

// Map stores entries under their full path ("a/b/key").
type Map struct {
	entries map[string]string
}

func New() *Map {
	return &Map{entries: make(map[string]string)}
}

// Join returns the full path of key within group.
func Join(group []string, key string) string {
	if len(group) == 0 {
		return key
	}
	return strings.Join(group, Separator) + Separator + key
}

func prefix(group []string) string {
	if len(group) == 0 {
		return ""
	}
	return strings.Join(group, Separator) + Separator
}

func (m *Map) Get(group []string, key string) (string, bool) {
	v, ok := m.entries[Join(group, key)]
	return v, ok
}

func (m *Map) Set(group []string, key, value string) {
	m.entries[Join(group, key)] = value
}

// SetPath stores value under an already joined path.
func (m *Map) SetPath(path, value string) {
	m.entries[path] = value
}

// ChildGroups returns the sorted, distinct group names directly under group.
func (m *Map) ChildGroups(group []string) []string {
	p := prefix(group)
	seen := make(map[string]struct{})
	for path := range m.entries {
		rest, ok := strings.CutPrefix(path, p)
		if !ok {
			continue
		}
		if name, _, nested := strings.Cut(rest, Separator); nested {
			seen[name] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// ChildKeys returns the sorted key names stored directly in group.
func (m *Map) ChildKeys(group []string) []string {
	p := prefix(group)
	seen := make(map[string]struct{})
	for path := range m.entries {
		rest, ok := strings.CutPrefix(path, p)
		if !ok || strings.Contains(rest, Separator) {
			continue
		}
		seen[rest] = struct{}{}
	}
	return sortedKeys(seen)
}

func (m *Map) Remove(group []string, key string) {
	delete(m.entries, Join(group, key))
}

// RemoveGroup deletes every entry at or below group. An empty group removes
// everything.
func (m *Map) RemoveGroup(group []string) {
	p := prefix(group)
	for path := range m.entries {
		if strings.HasPrefix(path, p) {
			delete(m.entries, path)
		}
	}
}

func (m *Map) Clear() {
	clear(m.entries)
}

func (m *Map) Len() int {
	return len(m.entries)
}

// Paths returns every full path in sorted order.
func (m *Map) Paths() []string {
	paths := make([]string, 0, len(m.entries))
	for path := range m.entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Lookup returns the value stored under a full path.
func (m *Map) Lookup(path string) (string, bool) {
	v, ok := m.entries[path]
	return v, ok
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
