// Package ini provides a Backend stored as an INI file using the QSettings
// layout, so files stay interchangeable with the desktop client that wrote
// them.
//
// Layout:
//   - top-level keys live in the [General] section
//   - a key under group path "a/b" lives in section [a] as "b\key"
//   - a group literally named "General" is written as [%General]
//
// The whole file is loaded at Open and rewritten atomically on Sync.
package ini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/hengadev/encset/internal/fsutil"
	"github.com/hengadev/encset/internal/keyspace"

	goini "gopkg.in/ini.v1"
)

const (
	generalSection = "General"
	escapedGeneral = "%General"
	keySeparator   = `\`
)

// QSettings writes "key=value" without alignment padding.
func init() {
	goini.PrettyFormat = false
	goini.PrettyEqual = false
}

var loadOptions = goini.LoadOptions{
	IgnoreInlineComment:      true,
	IgnoreContinuation:       true,
	SkipUnrecognizableLines:  true,
	KeyValueDelimiters:       "=",
	KeyValueDelimiterOnWrite: "=",
}

// File is an INI-backed settings tree.
type File struct {
	path    string
	entries *keyspace.Map
	dirty   bool
}

// Open loads the INI file at path. A missing file is an empty store; the file
// is created on the first Sync.
func Open(path string) (*File, error) {
	f := &File{path: path, entries: keyspace.New()}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := f.decode(data); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return f, nil
}

func (f *File) decode(data []byte) error {
	cfg, err := goini.LoadSources(loadOptions, data)
	if err != nil {
		return err
	}
	for _, sec := range cfg.Sections() {
		prefix := ""
		switch sec.Name() {
		case goini.DefaultSection, generalSection:
		case escapedGeneral:
			prefix = generalSection + keyspace.Separator
		default:
			prefix = sec.Name() + keyspace.Separator
		}
		for _, k := range sec.Keys() {
			path := prefix + strings.ReplaceAll(k.Name(), keySeparator, keyspace.Separator)
			f.entries.SetPath(path, k.Value())
		}
	}
	return nil
}

func (f *File) encode(w io.Writer) error {
	cfg := goini.Empty(loadOptions)

	sections := make(map[string]*goini.Section)
	section := func(name string) (*goini.Section, error) {
		if sec, ok := sections[name]; ok {
			return sec, nil
		}
		sec, err := cfg.NewSection(name)
		if err != nil {
			return nil, err
		}
		sections[name] = sec
		return sec, nil
	}

	for _, path := range orderedPaths(f.entries.Paths()) {
		value, _ := f.entries.Lookup(path)

		name, key := generalSection, path
		if group, rest, nested := strings.Cut(path, keyspace.Separator); nested {
			name, key = group, rest
			if name == generalSection {
				name = escapedGeneral
			}
		}

		sec, err := section(name)
		if err != nil {
			return fmt.Errorf("failed to create section %q: %w", name, err)
		}
		if _, err := sec.NewKey(strings.ReplaceAll(key, keyspace.Separator, keySeparator), value); err != nil {
			return fmt.Errorf("failed to write key %q: %w", key, err)
		}
	}

	_, err := cfg.WriteTo(w)
	return err
}

// orderedPaths puts top-level keys first so [General] leads the file.
func orderedPaths(paths []string) []string {
	sort.SliceStable(paths, func(i, j int) bool {
		iTop := !strings.Contains(paths[i], keyspace.Separator)
		jTop := !strings.Contains(paths[j], keyspace.Separator)
		return iTop && !jTop
	})
	return paths
}

func (f *File) Get(group []string, key string) (string, bool, error) {
	v, ok := f.entries.Get(group, key)
	return v, ok, nil
}

func (f *File) Set(group []string, key, value string) error {
	f.entries.Set(group, key, value)
	f.dirty = true
	return nil
}

func (f *File) ChildGroups(group []string) ([]string, error) {
	return f.entries.ChildGroups(group), nil
}

func (f *File) ChildKeys(group []string) ([]string, error) {
	return f.entries.ChildKeys(group), nil
}

func (f *File) Remove(group []string, key string) error {
	f.entries.Remove(group, key)
	f.dirty = true
	return nil
}

func (f *File) RemoveGroup(group []string) error {
	f.entries.RemoveGroup(group)
	f.dirty = true
	return nil
}

func (f *File) Clear() error {
	f.entries.Clear()
	f.dirty = true
	return nil
}

// Sync rewrites the file when there are pending changes or when it does not
// exist yet.
func (f *File) Sync(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !f.dirty {
		if _, err := os.Stat(f.path); err == nil {
			return nil
		}
	}
	if err := fsutil.WriteAtomic(f.path, f.encode); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	f.dirty = false
	return nil
}

func (f *File) FileName() string {
	return f.path
}

func (f *File) Close() error {
	return nil
}
