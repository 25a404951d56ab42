//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/modrelease/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// BuildDataBuilder helps create test build data with a fluent interface.
type BuildDataBuilder struct {
	*testkit.BaseBuilder
	modName      string
	dependencies map[string]entities.DependencySpec
	curseForgeID string
	spaceDockID  string
}

// NewBuildDataBuilder creates a new build data builder with sensible defaults.
func NewBuildDataBuilder() *BuildDataBuilder {
	return &BuildDataBuilder{
		BaseBuilder:  testkit.NewBaseBuilder(),
		modName:      "Foo",
		dependencies: map[string]entities.DependencySpec{},
		curseForgeID: "123456",
		spaceDockID:  "789",
	}
}

// WithModName sets the mod name.
func (b *BuildDataBuilder) WithModName(name string) *BuildDataBuilder {
	b.modName = name
	return b
}

// WithDependency adds a dependency keyed by its name.
func (b *BuildDataBuilder) WithDependency(spec entities.DependencySpec) *BuildDataBuilder {
	b.dependencies[spec.Name] = spec
	return b
}

// WithCurseForgeID sets the CurseForge project id.
func (b *BuildDataBuilder) WithCurseForgeID(id string) *BuildDataBuilder {
	b.curseForgeID = id
	return b
}

// WithSpaceDockID sets the SpaceDock mod id.
func (b *BuildDataBuilder) WithSpaceDockID(id string) *BuildDataBuilder {
	b.spaceDockID = id
	return b
}

// Build creates the build data (satisfies testkit.Builder interface).
func (b *BuildDataBuilder) Build() interface{} {
	return b.BuildBuildData()
}

// BuildBuildData creates the build data with a concrete return type.
func (b *BuildDataBuilder) BuildBuildData() *entities.BuildData {
	dependencies := make(map[string]entities.DependencySpec, len(b.dependencies))
	for name, spec := range b.dependencies {
		dependencies[name] = spec
	}
	return &entities.BuildData{
		ModName:      b.modName,
		Dependencies: dependencies,
		CurseForge:   entities.ProviderTarget{ModID: b.curseForgeID},
		SpaceDock:    entities.ProviderTarget{ModID: b.spaceDockID},
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *BuildDataBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.modName = "Foo"
	b.dependencies = map[string]entities.DependencySpec{}
	b.curseForgeID = "123456"
	b.spaceDockID = "789"
	return b
}

// Clone creates a deep copy of the BuildDataBuilder.
func (b *BuildDataBuilder) Clone() testkit.Builder {
	dependencies := make(map[string]entities.DependencySpec, len(b.dependencies))
	for name, spec := range b.dependencies {
		dependencies[name] = spec
	}
	return &BuildDataBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		modName:      b.modName,
		dependencies: dependencies,
		curseForgeID: b.curseForgeID,
		spaceDockID:  b.spaceDockID,
	}
}
