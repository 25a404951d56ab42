//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/modrelease/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// DependencySpecBuilder helps create test dependency pins with a fluent interface.
type DependencySpecBuilder struct {
	*testkit.BaseBuilder
	name       string
	kind       entities.SourceKind
	version    string
	repository string
	tag        string
}

// NewDependencySpecBuilder creates a builder defaulting to an object storage pin.
func NewDependencySpecBuilder() *DependencySpecBuilder {
	return &DependencySpecBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "ModuleManager",
		kind:        entities.SourceObjectStorage,
		version:     "4.2.3",
	}
}

// WithName sets the dependency name.
func (b *DependencySpecBuilder) WithName(name string) *DependencySpecBuilder {
	b.name = name
	return b
}

// WithObjectStorage pins the dependency to an archive version in the bucket.
func (b *DependencySpecBuilder) WithObjectStorage(version string) *DependencySpecBuilder {
	b.kind = entities.SourceObjectStorage
	b.version = version
	b.repository = ""
	b.tag = ""
	return b
}

// WithSourceControl pins the dependency to a repository tag.
func (b *DependencySpecBuilder) WithSourceControl(repository, tag string) *DependencySpecBuilder {
	b.kind = entities.SourceControl
	b.version = ""
	b.repository = repository
	b.tag = tag
	return b
}

// WithKind overrides the source kind.
func (b *DependencySpecBuilder) WithKind(kind entities.SourceKind) *DependencySpecBuilder {
	b.kind = kind
	return b
}

// Build creates the dependency (satisfies testkit.Builder interface).
func (b *DependencySpecBuilder) Build() interface{} {
	return b.BuildDependencySpec()
}

// BuildDependencySpec creates the dependency with a concrete return type.
func (b *DependencySpecBuilder) BuildDependencySpec() entities.DependencySpec {
	return entities.DependencySpec{
		Name:       b.name,
		Kind:       b.kind,
		Version:    b.version,
		Repository: b.repository,
		Tag:        b.tag,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *DependencySpecBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "ModuleManager"
	b.kind = entities.SourceObjectStorage
	b.version = "4.2.3"
	b.repository = ""
	b.tag = ""
	return b
}

// Clone creates a deep copy of the DependencySpecBuilder.
func (b *DependencySpecBuilder) Clone() testkit.Builder {
	return &DependencySpecBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		kind:        b.kind,
		version:     b.version,
		repository:  b.repository,
		tag:         b.tag,
	}
}
