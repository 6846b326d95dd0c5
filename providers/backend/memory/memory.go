// Package memory provides an in-process Backend. Nothing is persisted; it
// backs tests and the fallback used when a settings file cannot be opened.
package memory

import (
	"context"

	"github.com/hengadev/encset/internal/keyspace"
)

// Backend keeps every entry in memory.
type Backend struct {
	entries *keyspace.Map
}

func New() *Backend {
	return &Backend{entries: keyspace.New()}
}

func (b *Backend) Get(group []string, key string) (string, bool, error) {
	v, ok := b.entries.Get(group, key)
	return v, ok, nil
}

func (b *Backend) Set(group []string, key, value string) error {
	b.entries.Set(group, key, value)
	return nil
}

func (b *Backend) ChildGroups(group []string) ([]string, error) {
	return b.entries.ChildGroups(group), nil
}

func (b *Backend) ChildKeys(group []string) ([]string, error) {
	return b.entries.ChildKeys(group), nil
}

func (b *Backend) Remove(group []string, key string) error {
	b.entries.Remove(group, key)
	return nil
}

func (b *Backend) RemoveGroup(group []string) error {
	b.entries.RemoveGroup(group)
	return nil
}

func (b *Backend) Clear() error {
	b.entries.Clear()
	return nil
}

func (b *Backend) Sync(context.Context) error { return nil }

func (b *Backend) FileName() string { return "" }

func (b *Backend) Close() error { return nil }

// Len returns the number of stored entries.
func (b *Backend) Len() int {
	return b.entries.Len()
}
