package repositories

import (
	"github.com/rios0rios0/modrelease/internal/domain/entities"
	cfRepo "github.com/rios0rios0/modrelease/internal/infrastructure/repositories/curseforge"
	sdRepo "github.com/rios0rios0/modrelease/internal/infrastructure/repositories/spacedock"
	"go.uber.org/dig"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register provider registry with all publishing provider factories
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register(entities.ProviderCurseForge, cfRepo.NewProviderRepository)
		reg.Register(entities.ProviderSpaceDock, sdRepo.NewProviderRepository)
		return reg
	}); err != nil {
		return err
	}

	// Workspace repositories are built per invocation from the resolved settings
	if err := container.Provide(func() WorkspaceFactory {
		return NewWorkspace
	}); err != nil {
		return err
	}

	return nil
}
