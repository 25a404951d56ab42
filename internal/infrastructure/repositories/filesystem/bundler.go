package filesystem

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/gobwas/glob"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
)

// Bundler zips archive variants out of the build tree.
type Bundler struct {
	rootAllowList []glob.Glob
}

// NewBundler compiles the root allow-list patterns from settings.
func NewBundler(settings *entities.Settings) (*Bundler, error) {
	patterns := make([]glob.Glob, 0, len(settings.Bundle.RootAllowList))
	for _, raw := range settings.Bundle.RootAllowList {
		compiled, err := glob.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid root allow-list pattern %q: %w", raw, err)
		}
		patterns = append(patterns, compiled)
	}
	return &Bundler{rootAllowList: patterns}, nil
}

// Bundle writes the variant's archive, replacing any previous one, and
// returns its path.
func (it *Bundler) Bundle(variant entities.ArchiveVariant) (string, error) {
	if !isDir(variant.SourceSubtree) {
		return "", &entities.MissingSourceError{Path: variant.SourceSubtree, Err: fs.ErrNotExist}
	}

	var keep entryFilter
	if variant.FilterRoot {
		keep = it.keepAtRoot
	}

	if err := WriteZip(variant.SourceSubtree, variant.OutputPath, keep); err != nil {
		return "", err
	}
	logger.Infof("> Built %s", variant.OutputPath)
	return variant.OutputPath, nil
}

// keepAtRoot keeps every directory and every nested entry; a file at the top
// level survives only when it matches the allow-list.
func (it *Bundler) keepAtRoot(rel string, d fs.DirEntry) bool {
	if d.IsDir() || strings.Contains(rel, "/") {
		return true
	}
	return it.allowed(rel)
}

// allowed reports whether a top-level file name is in the root allow-list.
func (it *Bundler) allowed(name string) bool {
	for _, pattern := range it.rootAllowList {
		if pattern.Match(name) {
			return true
		}
	}
	return false
}
