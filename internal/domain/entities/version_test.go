//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
)

func TestParseVersionInfo(t *testing.T) {
	t.Parallel()

	t.Run("should format the mod and game versions from a .version document", func(t *testing.T) {
		// given
		data := []byte(`{
			"NAME": "Foo",
			"VERSION": {"MAJOR": 1, "MINOR": 2, "PATCH": 3},
			"KSP_VERSION": {"MAJOR": 1, "MINOR": 12, "PATCH": 5}
		}`)

		// when
		info, err := entities.ParseVersionInfo(data)

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.2.3", info.FormatVersion())
		assert.Equal(t, "1.12.5", info.FormatGameVersion())
		assert.Equal(t, "1.2.3", info.Format(entities.ModVersion))
		assert.Equal(t, "1.12.5", info.Format(entities.GameVersion))
		assert.Equal(t, "1_2_3", info.ArchiveSuffix())
	})

	t.Run("should keep string and negative parts verbatim", func(t *testing.T) {
		// given
		data := []byte(`{
			"VERSION": {"MAJOR": "2", "MINOR": -1, "PATCH": "rc1"},
			"KSP_VERSION": {"MAJOR": 1, "MINOR": 8, "PATCH": 0}
		}`)

		// when
		info, err := entities.ParseVersionInfo(data)

		// then
		require.NoError(t, err)
		assert.Equal(t, "2.-1.rc1", info.FormatVersion())
		assert.Equal(t, "2_-1_rc1", info.ArchiveSuffix())
	})

	t.Run("should fail when the game version object is missing", func(t *testing.T) {
		// given
		data := []byte(`{"VERSION": {"MAJOR": 1, "MINOR": 0, "PATCH": 0}}`)

		// when
		_, err := entities.ParseVersionInfo(data)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "KSP_VERSION")
	})

	t.Run("should fail on a part that is neither number nor string", func(t *testing.T) {
		// given
		data := []byte(`{
			"VERSION": {"MAJOR": [1], "MINOR": 0, "PATCH": 0},
			"KSP_VERSION": {"MAJOR": 1, "MINOR": 0, "PATCH": 0}
		}`)

		// when
		_, err := entities.ParseVersionInfo(data)

		// then
		require.Error(t, err)
	})

	t.Run("should fail on malformed JSON", func(t *testing.T) {
		// given
		data := []byte(`{"VERSION": `)

		// when
		_, err := entities.ParseVersionInfo(data)

		// then
		require.Error(t, err)
	})
}
