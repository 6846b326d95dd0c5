// Package fsutil holds small file helpers shared by the store and the file
// backends.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileMode is the permission every settings, key and backup file is written
// with.
const FileMode = 0o600

// WriteAtomic writes through a temporary sibling of dst and renames it over
// dst, so readers never see a partially written file.
func WriteAtomic(dst string, write func(io.Writer) error) error {
	return publish(dst, write, func(tmp string) error {
		if err := os.Rename(tmp, dst); err != nil {
			return fmt.Errorf("failed to replace %s: %w", filepath.Base(dst), err)
		}
		return nil
	})
}

// WriteExclusive is WriteAtomic that never replaces an existing dst. When
// dst already exists the returned error matches fs.ErrExist and dst is left
// untouched.
func WriteExclusive(dst string, write func(io.Writer) error) error {
	return publish(dst, write, func(tmp string) error {
		if err := os.Link(tmp, dst); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Base(dst), err)
		}
		return nil
	})
}

// publish writes a complete temporary sibling of dst and hands its name to
// commit. The temporary file is always removed afterwards.
func publish(dst string, write func(io.Writer) error, commit func(tmp string) error) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), FileMode); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	return commit(tmp.Name())
}

// CopyFile atomically replaces dst with the contents of src.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filepath.Base(src), err)
	}
	defer in.Close()

	return WriteAtomic(dst, func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
}
