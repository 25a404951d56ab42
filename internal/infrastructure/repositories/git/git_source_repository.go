package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
	"github.com/rios0rios0/modrelease/internal/infrastructure/repositories/filesystem"
)

// SourceRepository fetches dependencies published as tags of a Git repository.
type SourceRepository struct {
	settings *entities.Settings
	cloner   Cloner
}

// NewSourceRepository creates a source backed by go-git.
func NewSourceRepository(settings *entities.Settings) *SourceRepository {
	return NewSourceRepositoryWithCloner(settings, NewGoGitCloner())
}

// NewSourceRepositoryWithCloner creates a source using the given cloner.
func NewSourceRepositoryWithCloner(settings *entities.Settings, cloner Cloner) *SourceRepository {
	return &SourceRepository{settings: settings, cloner: cloner}
}

func (it *SourceRepository) Kind() entities.SourceKind { return entities.SourceControl }

// RepositoryURL returns the clone URL of an "Account/RepoName" repository.
func (it *SourceRepository) RepositoryURL(repository string) string {
	return strings.TrimSuffix(it.settings.Git.BaseURL, "/") + "/" + repository + ".git"
}

// Fetch clones the repository at the pinned tag into scratchPath and copies
// <content root>/<name> into the same location of buildPath.
func (it *SourceRepository) Fetch(
	ctx context.Context,
	spec entities.DependencySpec,
	scratchPath, buildPath string,
) error {
	timeout := it.settings.Timeouts.Transfer
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := it.RepositoryURL(spec.Repository)
	cloneDir := filepath.Join(scratchPath, spec.Name)
	logger.Infof("[git] Collecting %s %s from repository %s", spec.Name, spec.Tag, spec.Repository)

	if err := it.cloner.CloneTag(ctx, CloneRequest{
		URL:    url,
		Dir:    cloneDir,
		Branch: it.settings.Git.DefaultBranch,
		Tag:    spec.Tag,
		Token:  it.settings.Git.Token,
	}); err != nil {
		return transferError(spec, "checkout", err, timeout)
	}

	contentRoot := it.settings.Paths.ContentRoot
	source := filepath.Join(cloneDir, contentRoot, spec.Name)
	info, err := os.Stat(source)
	if err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("%q is not a directory", source)
		}
		return transferError(spec, "locate content", err, timeout)
	}

	target := filepath.Join(buildPath, contentRoot, spec.Name)
	if copyErr := filesystem.CopyTree(source, target); copyErr != nil {
		return transferError(spec, "copy content", copyErr, timeout)
	}
	logger.Debugf("[git] Copied %s into %s", source, target)
	return nil
}

func transferError(spec entities.DependencySpec, op string, err error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("timed out after %s: %w", timeout, err)
	}
	return &entities.TransferError{Dependency: spec.Name, Op: op, Err: err}
}
