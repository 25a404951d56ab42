package lock

import (
	"fmt"

	"github.com/gofrs/flock"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
)

// FileLockRepository is an advisory, path-scoped lock on the workspace.
type FileLockRepository struct {
	path string
}

// NewFileLockRepository creates a lock backed by the settings' lock file.
func NewFileLockRepository(settings *entities.Settings) *FileLockRepository {
	return &FileLockRepository{path: settings.LockPath()}
}

// Acquire takes the lock without blocking. The returned function releases it.
func (it *FileLockRepository) Acquire() (func() error, error) {
	fileLock := flock.New(it.path)
	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %q: %w", it.path, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", entities.ErrWorkspaceLocked, it.path)
	}
	logger.Debugf("Acquired workspace lock %s", it.path)
	return fileLock.Unlock, nil
}
