package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
)

// Stager fills the build tree from the mod workspace.
type Stager struct {
	settings *entities.Settings
}

// NewStager creates a Stager for the workspace described by settings.
func NewStager(settings *entities.Settings) *Stager {
	return &Stager{settings: settings}
}

// PrepareCleanTree leaves each path freshly created or emptied.
func (it *Stager) PrepareCleanTree(paths ...string) error {
	for _, path := range paths {
		logger.Debugf("Cleaning %s", path)
		if err := PrepareCleanTree(path); err != nil {
			return err
		}
	}
	return nil
}

// StageCore copies the mod content directory and the top-level documents into
// the build tree. A missing content directory is fatal.
func (it *Stager) StageCore(modName string) error {
	contentPath := it.settings.ContentPath(modName)
	if !isDir(contentPath) {
		return &entities.MissingSourceError{Path: contentPath, Err: fs.ErrNotExist}
	}

	buildPath := it.settings.BuildPath()
	target := filepath.Join(buildPath, it.settings.Paths.ContentRoot, modName)
	if err := CopyTree(contentPath, target); err != nil {
		return fmt.Errorf("failed to stage %q: %w", contentPath, err)
	}

	for _, doc := range []string{it.settings.ChangelogPath(), it.settings.ReadmePath()} {
		if _, err := os.Stat(doc); errors.Is(err, fs.ErrNotExist) {
			return &entities.MissingSourceError{Path: doc, Err: err}
		}
		if err := CopyFile(doc, filepath.Join(buildPath, filepath.Base(doc))); err != nil {
			return fmt.Errorf("failed to stage %q: %w", doc, err)
		}
	}

	return nil
}

// DiscoverExtras lists every directory directly under the extras directory,
// sorted by name. A missing extras directory yields no packages.
func (it *Stager) DiscoverExtras() ([]entities.ExtraPackage, error) {
	extrasPath := it.settings.ExtrasPath()
	entries, err := os.ReadDir(extrasPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list extras in %q: %w", extrasPath, err)
	}

	extras := make([]entities.ExtraPackage, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		extras = append(extras, entities.ExtraPackage{
			Name:       entry.Name(),
			SourcePath: filepath.Join(extrasPath, entry.Name()),
		})
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i].Name < extras[j].Name })
	return extras, nil
}

// StageExtra copies an extra package to <build>/<extras>/<name>.
func (it *Stager) StageExtra(extra entities.ExtraPackage) (string, error) {
	if !isDir(extra.SourcePath) {
		return "", &entities.MissingSourceError{Path: extra.SourcePath, Err: fs.ErrNotExist}
	}
	target := filepath.Join(it.settings.BuildPath(), it.settings.Paths.Extras, extra.Name)
	if err := CopyTree(extra.SourcePath, target); err != nil {
		return "", fmt.Errorf("failed to stage extra %q: %w", extra.Name, err)
	}
	return target, nil
}
