//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"path/filepath"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
	"github.com/rios0rios0/modrelease/internal/domain/repositories"
)

// SpyStager implements repositories.StagerRepository and records every call
// in Calls, in order.
type SpyStager struct {
	BuildPath string
	Extras    []entities.ExtraPackage

	PrepareErr  error
	StageErr    error
	DiscoverErr error

	PreparedPaths [][]string
	Calls         []string
}

var _ repositories.StagerRepository = (*SpyStager)(nil)

func (s *SpyStager) PrepareCleanTree(paths ...string) error {
	s.Calls = append(s.Calls, "prepare")
	s.PreparedPaths = append(s.PreparedPaths, paths)
	return s.PrepareErr
}

func (s *SpyStager) StageCore(modName string) error {
	s.Calls = append(s.Calls, "stage-core:"+modName)
	return s.StageErr
}

func (s *SpyStager) DiscoverExtras() ([]entities.ExtraPackage, error) {
	s.Calls = append(s.Calls, "discover-extras")
	return s.Extras, s.DiscoverErr
}

func (s *SpyStager) StageExtra(extra entities.ExtraPackage) (string, error) {
	s.Calls = append(s.Calls, "stage-extra:"+extra.Name)
	return filepath.Join(s.BuildPath, "Extras", extra.Name), nil
}

// SpyBundler implements repositories.BundlerRepository. It writes nothing and
// returns the variant output path.
type SpyBundler struct {
	BundleErr error
	Variants  []entities.ArchiveVariant
}

var _ repositories.BundlerRepository = (*SpyBundler)(nil)

func (b *SpyBundler) Bundle(variant entities.ArchiveVariant) (string, error) {
	if b.BundleErr != nil {
		return "", b.BundleErr
	}
	b.Variants = append(b.Variants, variant)
	return variant.OutputPath, nil
}

// StubMetadataRepository implements repositories.MetadataRepository with
// canned documents.
type StubMetadataRepository struct {
	BuildData *entities.BuildData
	Version   entities.VersionInfo
	Changelog entities.Changelog

	BuildDataErr error
	VersionErr   error
	ChangelogErr error
	WriteErr     error

	WrittenVersion   string
	WrittenChangelog entities.Changelog
	WriteCalls       int
}

var _ repositories.MetadataRepository = (*StubMetadataRepository)(nil)

func (m *StubMetadataRepository) LoadBuildData() (*entities.BuildData, error) {
	return m.BuildData, m.BuildDataErr
}

func (m *StubMetadataRepository) LoadVersion(_ string) (entities.VersionInfo, error) {
	return m.Version, m.VersionErr
}

func (m *StubMetadataRepository) LoadChangelog() (entities.Changelog, error) {
	return m.Changelog, m.ChangelogErr
}

func (m *StubMetadataRepository) WriteReleaseNotes(version string, changelog entities.Changelog) error {
	m.WriteCalls++
	m.WrittenVersion = version
	m.WrittenChangelog = changelog
	return m.WriteErr
}

// StubLockRepository implements repositories.LockRepository.
type StubLockRepository struct {
	AcquireErr   error
	AcquireCalls int
	ReleaseCalls int
}

var _ repositories.LockRepository = (*StubLockRepository)(nil)

func (l *StubLockRepository) Acquire() (func() error, error) {
	l.AcquireCalls++
	if l.AcquireErr != nil {
		return nil, l.AcquireErr
	}
	return func() error {
		l.ReleaseCalls++
		return nil
	}, nil
}
