package usecase

import (
	"context"
	"fmt"

	"github.com/semmidev/photark/internal/domain"
)

// Maintenance toggles the target application's read-only maintenance mode
// through an admin command run inside its container. Whether a disable is
// due at failure time is tracked on the BackupRun, not here.
type Maintenance struct {
	runtime   domain.ContainerRuntime
	container string
	onCmd     []string
	offCmd    []string
	logger    Logger
}

func NewMaintenance(rt domain.ContainerRuntime, container string, onCmd, offCmd []string, logger Logger) *Maintenance {
	return &Maintenance{
		runtime:   rt,
		container: container,
		onCmd:     onCmd,
		offCmd:    offCmd,
		logger:    logger,
	}
}

// Enable must complete before the database dump starts: dumping under
// active writes risks an inconsistent snapshot.
func (m *Maintenance) Enable(ctx context.Context) error {
	if _, err := m.runtime.Exec(ctx, m.container, m.onCmd, nil); err != nil {
		m.logger.Errorf("Failed to enable maintenance mode on %s: %v", m.container, err)
		return fmt.Errorf("enable maintenance mode: %w", err)
	}
	m.logger.Infof("Maintenance mode enabled on %s", m.container)
	return nil
}

// Disable is a recovery action. Failure is expected to be non-escalating:
// it is logged as a warning and returned for the caller to discard.
func (m *Maintenance) Disable(ctx context.Context) error {
	if _, err := m.runtime.Exec(ctx, m.container, m.offCmd, nil); err != nil {
		m.logger.Warnf("Failed to disable maintenance mode on %s: %v", m.container, err)
		return fmt.Errorf("disable maintenance mode: %w", err)
	}
	m.logger.Infof("Maintenance mode disabled on %s", m.container)
	return nil
}
