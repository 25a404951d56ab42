//go:build unit

package internal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/rios0rios0/modrelease/internal"
)

func TestRegisterProviders(t *testing.T) {
	t.Parallel()

	t.Run("should resolve the app with every subcommand controller", func(t *testing.T) {
		t.Parallel()

		// given
		container := dig.New()

		// when
		err := internal.RegisterProviders(container)

		// then
		require.NoError(t, err)
		var app *internal.AppInternal
		require.NoError(t, container.Invoke(func(a *internal.AppInternal) { app = a }))

		var uses []string
		for _, controller := range app.GetControllers() {
			uses = append(uses, controller.GetBind().Use)
		}
		assert.Equal(t, []string{"build", "deploy", "version"}, uses)
	})

	t.Run("should fail when registering twice on the same container", func(t *testing.T) {
		t.Parallel()

		// given
		container := dig.New()
		require.NoError(t, internal.RegisterProviders(container))

		// when
		err := internal.RegisterProviders(container)

		// then
		require.Error(t, err)
	})
}
