package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode of files WriteAtomic creates.
const DefaultFileMode os.FileMode = 0644

// WriteAtomic replaces path with content so that readers see either the old
// file or the new one, never a partial write. The content goes to a temp
// file beside path which is then renamed over it.
//
// A zero mode keeps the permissions of the file being replaced, or uses
// DefaultFileMode for a new file. On failure path is left untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if mode == 0 {
		mode = existingMode(path)
	}

	tmpPath, err := writeTemp(path, content, mode)
	if err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}

// writeTemp writes content to a synced temp file in path's directory and
// returns its name. The temp file is removed if any step fails.
func writeTemp(path string, content []byte, mode os.FileMode) (name string, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	_, writeErr := tmp.Write(content)
	if writeErr == nil {
		writeErr = tmp.Sync()
	}
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return "", fmt.Errorf("write temp file: %w", writeErr)
	}

	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return "", fmt.Errorf("chmod temp file: %w", err)
	}

	return tmp.Name(), nil
}

func existingMode(path string) os.FileMode {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return DefaultFileMode
	}
	return info.Mode().Perm()
}
