package filesystem

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

// entryFilter decides whether a path (relative to the archive root, slash
// separated) is written to the archive.
type entryFilter func(rel string, d fs.DirEntry) bool

// WriteZip archives srcDir into dest, atomically replacing any existing file.
func WriteZip(srcDir, dest string, keep entryFilter) error {
	if err := os.MkdirAll(filepath.Dir(dest), dirMode); err != nil {
		return fmt.Errorf("failed to create %q: %w", filepath.Dir(dest), err)
	}

	pending, err := renameio.NewPendingFile(dest, renameio.WithPermissions(fileMode))
	if err != nil {
		return fmt.Errorf("failed to create temp archive for %q: %w", dest, err)
	}
	defer func() { _ = pending.Cleanup() }()

	writer := zip.NewWriter(pending)
	walkErr := filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == srcDir {
			return nil
		}
		rel, relErr := filepath.Rel(srcDir, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if keep != nil && !keep(rel, d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		return addZipEntry(writer, p, rel, d)
	})
	if walkErr != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to archive %q: %w", srcDir, walkErr)
	}
	if closeErr := writer.Close(); closeErr != nil {
		return fmt.Errorf("failed to finalize %q: %w", dest, closeErr)
	}

	return pending.CloseAtomicallyReplace()
}

func addZipEntry(writer *zip.Writer, path, rel string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = rel
	if d.IsDir() {
		header.Name += "/"
		_, createErr := writer.CreateHeader(header)
		return createErr
	}
	header.Method = zip.Deflate

	entry, err := writer.CreateHeader(header)
	if err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(entry, file)
	return err
}

// ExtractZip unpacks archivePath into dest. Entries escaping dest are rejected.
func ExtractZip(archivePath, dest string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", archivePath, err)
	}
	defer reader.Close()

	root := filepath.Clean(dest)
	for _, file := range reader.File {
		target := filepath.Join(root, filepath.FromSlash(file.Name))
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes destination", file.Name)
		}
		if extractErr := extractEntry(file, target); extractErr != nil {
			return fmt.Errorf("failed to extract %q: %w", file.Name, extractErr)
		}
	}
	return nil
}

func extractEntry(file *zip.File, target string) error {
	if file.FileInfo().IsDir() {
		return os.MkdirAll(target, dirMode)
	}
	if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
		return err
	}

	mode := file.Mode().Perm()
	if mode == 0 {
		mode = fileMode
	}

	in, err := file.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, copyErr := io.Copy(out, in); copyErr != nil { //nolint:gosec // archives come from the pinned dependency bucket
		_ = out.Close()
		return copyErr
	}
	return out.Close()
}
