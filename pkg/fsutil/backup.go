package fsutil

import (
	"context"
	"errors"
	"fmt"
)

// BackupSuffix is the suffix of sidecar backup files.
const BackupSuffix = ".srcindex.bak"

// BackupPath returns the sidecar backup path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup copies the file at path to its sidecar backup, replacing any
// older backup. It returns false without error when path does not exist.
func CreateBackup(ctx context.Context, path string) (bool, error) {
	content, info, err := ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("backup: %w", err)
	}

	if err := WriteAtomic(ctx, BackupPath(path), content, info.Mode.Perm()); err != nil {
		return false, fmt.Errorf("backup: %w", err)
	}

	return true, nil
}
