package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	dirMode       os.FileMode = 0o755
	fileMode      os.FileMode = 0o644
	ownerWritable os.FileMode = 0o200
	ownerFull     os.FileMode = 0o700
)

// PrepareCleanTree leaves path as an existing empty directory. Read-only
// entries are made writable first so their removal cannot fail.
func PrepareCleanTree(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		if mkErr := os.MkdirAll(path, dirMode); mkErr != nil {
			return fmt.Errorf("failed to create %q: %w", path, mkErr)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to inspect %q: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q exists and is not a directory", path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("failed to list %q: %w", path, err)
	}
	for _, entry := range entries {
		if removeErr := removeWritable(filepath.Join(path, entry.Name())); removeErr != nil {
			return removeErr
		}
	}
	return nil
}

// removeWritable deletes path recursively after granting the owner write
// permission on every file and directory below it.
func removeWritable(path string) error {
	walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return infoErr
		}
		mode := info.Mode().Perm() | ownerWritable
		if d.IsDir() {
			mode |= ownerFull
		}
		if chmodErr := os.Chmod(p, mode); chmodErr != nil {
			return fmt.Errorf("failed to make %q writable: %w", p, chmodErr)
		}
		return nil
	})
	if walkErr != nil {
		return walkErr
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove %q: %w", path, err)
	}
	return nil
}

// CopyTree copies src into dst recursively, merging into dst if it exists.
func CopyTree(src, dst string) error {
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(src, p)
		if relErr != nil {
			return relErr
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			return os.MkdirAll(target, dirMode)
		case d.Type()&fs.ModeSymlink != 0:
			link, linkErr := os.Readlink(p)
			if linkErr != nil {
				return linkErr
			}
			return os.Symlink(link, target)
		default:
			return CopyFile(p, target)
		}
	})
}

// CopyFile copies a single file, keeping its permission bits.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	if mkErr := os.MkdirAll(filepath.Dir(dst), dirMode); mkErr != nil {
		return mkErr
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, copyErr := io.Copy(out, in); copyErr != nil {
		_ = out.Close()
		return copyErr
	}
	return out.Close()
}

// isDir reports whether path exists and is a directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
