//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/modrelease/internal/domain/commands"
	"github.com/rios0rios0/modrelease/internal/domain/entities"
)

// StubVersionCommand is a stub implementation of commands.Version.
type StubVersionCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Report           *commands.VersionReport
	LastSettings     *entities.Settings
}

var _ commands.Version = (*StubVersionCommand)(nil)

func (s *StubVersionCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
) (*commands.VersionReport, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	return s.Report, s.ExecuteErr
}
