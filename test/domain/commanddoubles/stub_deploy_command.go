//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/modrelease/internal/domain/commands"
	"github.com/rios0rios0/modrelease/internal/domain/entities"
)

// StubDeployCommand is a stub implementation of commands.Deploy.
type StubDeployCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Outcomes         []entities.PublishOutcome
	LastSettings     *entities.Settings
	LastOpts         commands.DeployOptions
}

var _ commands.Deploy = (*StubDeployCommand)(nil)

func (s *StubDeployCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.DeployOptions,
) ([]entities.PublishOutcome, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.Outcomes, s.ExecuteErr
}
