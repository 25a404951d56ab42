//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/modrelease/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// VersionInfoBuilder helps create test versions with a fluent interface.
type VersionInfoBuilder struct {
	*testkit.BaseBuilder
	version     entities.VersionTriple
	gameVersion entities.VersionTriple
}

// NewVersionInfoBuilder creates a new version builder with sensible defaults.
func NewVersionInfoBuilder() *VersionInfoBuilder {
	return &VersionInfoBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		version:     entities.VersionTriple{Major: "1", Minor: "0", Patch: "0"},
		gameVersion: entities.VersionTriple{Major: "1", Minor: "12", Patch: "5"},
	}
}

// WithVersion sets the mod version.
func (b *VersionInfoBuilder) WithVersion(major, minor, patch string) *VersionInfoBuilder {
	b.version = triple(major, minor, patch)
	return b
}

// WithGameVersion sets the supported game version.
func (b *VersionInfoBuilder) WithGameVersion(major, minor, patch string) *VersionInfoBuilder {
	b.gameVersion = triple(major, minor, patch)
	return b
}

// Build creates the version (satisfies testkit.Builder interface).
func (b *VersionInfoBuilder) Build() interface{} {
	return b.BuildVersionInfo()
}

// BuildVersionInfo creates the version with a concrete return type.
func (b *VersionInfoBuilder) BuildVersionInfo() entities.VersionInfo {
	return entities.VersionInfo{Version: b.version, GameVersion: b.gameVersion}
}

// Reset clears the builder state, allowing it to be reused.
func (b *VersionInfoBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.version = triple("1", "0", "0")
	b.gameVersion = triple("1", "12", "5")
	return b
}

// Clone creates a deep copy of the VersionInfoBuilder.
func (b *VersionInfoBuilder) Clone() testkit.Builder {
	return &VersionInfoBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		version:     b.version,
		gameVersion: b.gameVersion,
	}
}

func triple(major, minor, patch string) entities.VersionTriple {
	return entities.VersionTriple{
		Major: entities.VersionPart(major),
		Minor: entities.VersionPart(minor),
		Patch: entities.VersionPart(patch),
	}
}
