package internal

import (
	"fmt"

	"go.uber.org/dig"

	"github.com/rios0rios0/modrelease/internal/domain/commands"
	"github.com/rios0rios0/modrelease/internal/domain/entities"
	"github.com/rios0rios0/modrelease/internal/infrastructure/controllers"
	"github.com/rios0rios0/modrelease/internal/infrastructure/repositories"
)

// RegisterProviders registers all internal providers with the DIG container.
// Layers are registered bottom-up: repositories, entities, commands, controllers.
func RegisterProviders(container *dig.Container) error {
	layers := []struct {
		name     string
		register func(*dig.Container) error
	}{
		{"repositories", repositories.RegisterProviders},
		{"entities", entities.RegisterProviders},
		{"commands", commands.RegisterProviders},
		{"controllers", controllers.RegisterProviders},
	}

	for _, layer := range layers {
		if err := layer.register(container); err != nil {
			return fmt.Errorf("failed to register %s providers: %w", layer.name, err)
		}
	}

	if err := container.Provide(NewAppInternal); err != nil {
		return fmt.Errorf("failed to register app: %w", err)
	}
	return nil
}
