//go:build unit

package git_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
	gitRepo "github.com/rios0rios0/modrelease/internal/infrastructure/repositories/git"
	"github.com/rios0rios0/modrelease/test/domain/entitybuilders"
)

// fakeCloner writes the given files into the clone directory instead of cloning.
type fakeCloner struct {
	files    map[string]string
	err      error
	block    bool
	requests []gitRepo.CloneRequest
}

func (f *fakeCloner) CloneTag(ctx context.Context, req gitRepo.CloneRequest) error {
	f.requests = append(f.requests, req)
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if f.err != nil {
		return f.err
	}
	for name, content := range f.files {
		path := filepath.Join(req.Dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func TestSourceRepositoryFetch(t *testing.T) {
	t.Parallel()

	t.Run("should clone at the tag and copy only the dependency content", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.NewDefaultSettings().WithWorkDir(t.TempDir())
		settings.Git.Token = "token"
		cloner := &fakeCloner{files: map[string]string{
			"GameData/Baz/Baz.cfg":    "BAZ",
			"GameData/Other/skip.cfg": "",
			"README.md":               "",
		}}
		source := gitRepo.NewSourceRepositoryWithCloner(settings, cloner)
		spec := entitybuilders.NewDependencySpecBuilder().
			WithName("Baz").WithSourceControl("Acct/BazRepo", "v1.1").BuildDependencySpec()
		scratch := t.TempDir()
		build := t.TempDir()

		// when
		err := source.Fetch(context.Background(), spec, scratch, build)

		// then
		require.NoError(t, err)
		require.Len(t, cloner.requests, 1)
		req := cloner.requests[0]
		assert.Equal(t, "https://github.com/Acct/BazRepo.git", req.URL)
		assert.Equal(t, filepath.Join(scratch, "Baz"), req.Dir)
		assert.Equal(t, "v1.1", req.Tag)
		assert.Equal(t, "token", req.Token)

		content, readErr := os.ReadFile(filepath.Join(build, "GameData", "Baz", "Baz.cfg"))
		require.NoError(t, readErr)
		assert.Equal(t, "BAZ", string(content))
		assert.NoDirExists(t, filepath.Join(build, "GameData", "Other"))
		assert.NoFileExists(t, filepath.Join(build, "README.md"))
	})

	t.Run("should return TransferError when the tag cannot be checked out", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.NewDefaultSettings().WithWorkDir(t.TempDir())
		cloner := &fakeCloner{err: errors.New(`tag "v9" not found`)}
		source := gitRepo.NewSourceRepositoryWithCloner(settings, cloner)
		spec := entitybuilders.NewDependencySpecBuilder().
			WithName("Baz").WithSourceControl("Acct/BazRepo", "v9").BuildDependencySpec()

		// when
		err := source.Fetch(context.Background(), spec, t.TempDir(), t.TempDir())

		// then
		var transfer *entities.TransferError
		require.ErrorAs(t, err, &transfer)
		assert.Equal(t, "checkout", transfer.Op)
	})

	t.Run("should return TransferError when the content directory is missing", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.NewDefaultSettings().WithWorkDir(t.TempDir())
		cloner := &fakeCloner{files: map[string]string{"GameData/Wrong/x.cfg": ""}}
		source := gitRepo.NewSourceRepositoryWithCloner(settings, cloner)
		spec := entitybuilders.NewDependencySpecBuilder().
			WithName("Baz").WithSourceControl("Acct/BazRepo", "v1.1").BuildDependencySpec()

		// when
		err := source.Fetch(context.Background(), spec, t.TempDir(), t.TempDir())

		// then
		var transfer *entities.TransferError
		require.ErrorAs(t, err, &transfer)
		assert.Equal(t, "locate content", transfer.Op)
	})

	t.Run("should report a timeout as TransferError", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.NewDefaultSettings().WithWorkDir(t.TempDir())
		settings.Timeouts.Transfer = 10 * time.Millisecond
		source := gitRepo.NewSourceRepositoryWithCloner(settings, &fakeCloner{block: true})
		spec := entitybuilders.NewDependencySpecBuilder().
			WithName("Baz").WithSourceControl("Acct/BazRepo", "v1.1").BuildDependencySpec()

		// when
		err := source.Fetch(context.Background(), spec, t.TempDir(), t.TempDir())

		// then
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "timed out")
	})

	t.Run("should build clone URLs against a custom base", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.NewDefaultSettings()
		settings.Git.BaseURL = "https://git.example.com/"
		source := gitRepo.NewSourceRepositoryWithCloner(settings, &fakeCloner{})

		// when
		url := source.RepositoryURL("Acct/Repo")

		// then
		assert.Equal(t, "https://git.example.com/Acct/Repo.git", url)
	})
}
