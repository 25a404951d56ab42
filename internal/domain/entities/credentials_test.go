//go:build unit

package entities_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
)

func TestNewCredentialsFromEnv(t *testing.T) {
	t.Parallel()

	t.Run("should resolve every provider secret through the lookup", func(t *testing.T) {
		t.Parallel()

		// given
		env := map[string]string{
			"CURSEFORGE_TOKEN":   "cf-token",
			"SPACEDOCK_LOGIN":    "user",
			"SPACEDOCK_PASSWORD": "pass",
		}
		lookup := func(key string) (string, bool) {
			value, ok := env[key]
			return value, ok
		}

		// when
		credentials := entities.NewCredentialsFromEnv(lookup)

		// then
		assert.Equal(t, "cf-token", credentials.CurseForgeToken)
		assert.Equal(t, "user", credentials.SpaceDockLogin)
		assert.Equal(t, "pass", credentials.SpaceDockPassword)
	})

	t.Run("should leave missing secrets empty", func(t *testing.T) {
		t.Parallel()

		// when
		credentials := entities.NewCredentialsFromEnv(func(string) (string, bool) { return "", false })

		// then
		assert.Empty(t, credentials.CurseForgeToken)
		assert.Empty(t, credentials.SpaceDockLogin)
	})

	t.Run("should never print secret values", func(t *testing.T) {
		t.Parallel()

		// given
		credentials := entities.Credentials{CurseForgeToken: "cf-token", SpaceDockPassword: "pass"}

		// when
		printed := fmt.Sprintf("%v %s", credentials, credentials)

		// then
		assert.NotContains(t, printed, "cf-token")
		assert.NotContains(t, printed, "pass")
	})
}
