package repositories

import (
	"github.com/rios0rios0/modrelease/internal/domain/entities"
)

// StagerRepository owns the build tree: it wipes it and fills it with mod content.
type StagerRepository interface {
	// PrepareCleanTree leaves every path existing and empty.
	PrepareCleanTree(paths ...string) error

	// StageCore copies the mod content directory and top-level documentation
	// into the build tree.
	StageCore(modName string) error

	// DiscoverExtras enumerates the optional sub-packages.
	DiscoverExtras() ([]entities.ExtraPackage, error)

	// StageExtra copies one sub-package into the build tree and returns the
	// staged location.
	StageExtra(extra entities.ExtraPackage) (string, error)
}

// BundlerRepository writes archive variants.
type BundlerRepository interface {
	// Bundle zips the variant's subtree and returns the written archive path.
	Bundle(variant entities.ArchiveVariant) (string, error)
}

// LockRepository guards the workspace against concurrent builds.
type LockRepository interface {
	// Acquire takes the lock or fails with entities.ErrWorkspaceLocked.
	Acquire() (release func() error, err error)
}
