//go:build unit

package entities_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
)

func TestArchiveVariants(t *testing.T) {
	t.Parallel()

	version := entities.VersionInfo{
		Version:     entities.VersionTriple{Major: "1", Minor: "2", Patch: "3"},
		GameVersion: entities.VersionTriple{Major: "1", Minor: "12", Patch: "5"},
	}

	t.Run("should name the core variant with the Core qualifier and filter the root", func(t *testing.T) {
		t.Parallel()

		// given / when
		variant := entities.NewCoreVariant("Foo", version, "/ws/build", "/ws/deploy")

		// then
		assert.Equal(t, "Foo_Core", variant.Label)
		assert.Equal(t, entities.VariantCore, variant.Kind)
		assert.Equal(t, "/ws/build", variant.SourceSubtree)
		assert.Equal(t, filepath.Join("/ws/deploy", "Foo_Core_1_2_3.zip"), variant.OutputPath)
		assert.True(t, variant.FilterRoot)
	})

	t.Run("should name the complete variant after the mod", func(t *testing.T) {
		t.Parallel()

		// given / when
		variant := entities.NewCompleteVariant("Foo", version, "/ws/build", "/ws/deploy")

		// then
		assert.Equal(t, entities.VariantComplete, variant.Kind)
		assert.Equal(t, filepath.Join("/ws/deploy", "Foo_1_2_3.zip"), variant.OutputPath)
		assert.True(t, variant.FilterRoot)
	})

	t.Run("should name an extra variant after the extra and keep its root", func(t *testing.T) {
		t.Parallel()

		// given
		extra := entities.ExtraPackage{Name: "Opt", SourcePath: "/ws/Extras/Opt"}

		// when
		variant := entities.NewExtraVariant(extra, version, "/ws/build/Extras/Opt", "/ws/deploy")

		// then
		assert.Equal(t, entities.VariantExtra, variant.Kind)
		assert.Equal(t, "/ws/build/Extras/Opt", variant.SourceSubtree)
		assert.Equal(t, filepath.Join("/ws/deploy", "Opt_1_2_3.zip"), variant.OutputPath)
		assert.False(t, variant.FilterRoot)
	})
}
