package encset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hengadev/encset/internal/encseterr"
	"github.com/hengadev/encset/internal/fsutil"
)

// Sync flushes the backend and then writes BackupPath from the post-flush
// state, replacing any previous backup. When a BackupSink is configured the
// fresh backup is uploaded as well.
//
// The order is fixed: the backup always reflects the state just synced,
// never the one before it.
func (s *Store) Sync(ctx context.Context) (err error) {
	defer s.observe(ctx, "sync", time.Now(), &err)

	if err := s.backend.Sync(ctx); err != nil {
		return encseterr.NewBackendError(encseterr.Sync, err)
	}

	bak := s.BackupPath()
	if bak == "" {
		return nil
	}
	if err := s.writeBackup(bak); err != nil {
		return encseterr.NewBackupError(bak, err)
	}
	s.logger.Debug("backup written", "path", bak)

	if s.backup == nil {
		return nil
	}
	if err := s.uploadBackup(ctx, bak); err != nil {
		return encseterr.NewBackupError(bak, err)
	}
	s.logger.Debug("backup uploaded", "path", bak)
	return nil
}

// BackupPath returns the location Sync writes the backup to, or "" when the
// backend has no on-disk location.
func (s *Store) BackupPath() string {
	name := s.backend.FileName()
	if name == "" {
		return ""
	}
	return name + BackupSuffix
}

func (s *Store) writeBackup(dst string) error {
	if snap, ok := s.backend.(Snapshotter); ok {
		return fsutil.WriteAtomic(dst, snap.Snapshot)
	}
	return fsutil.CopyFile(s.backend.FileName(), dst)
}

func (s *Store) uploadBackup(ctx context.Context, bak string) error {
	f, err := os.Open(bak)
	if err != nil {
		return fmt.Errorf("failed to open backup: %w", err)
	}
	defer f.Close()

	return s.backup.Upload(ctx, filepath.Base(bak), f)
}
