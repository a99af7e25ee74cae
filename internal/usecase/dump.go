package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/semmidev/photark/internal/config"
	"github.com/semmidev/photark/internal/domain"
)

// DumpStep produces the database snapshot file. It runs strictly after the
// maintenance toggle; ordering is enforced by the orchestrator, not checked
// here. The returned path is reported even on failure so cleanup can remove
// a partial artifact.
type DumpStep struct {
	runtime  domain.ContainerRuntime
	versions *VersionResolver
	cfg      *config.Config
	logger   Logger
}

func NewDumpStep(rt domain.ContainerRuntime, versions *VersionResolver, cfg *config.Config, logger Logger) *DumpStep {
	return &DumpStep{
		runtime:  rt,
		versions: versions,
		cfg:      cfg,
		logger:   logger,
	}
}

func (d *DumpStep) Execute(ctx context.Context) (string, error) {
	dumpDir := d.cfg.DumpDir()
	if d.cfg.Mode == config.ModeStandalone {
		if err := os.MkdirAll(dumpDir, 0o755); err != nil {
			return "", fmt.Errorf("create dump directory: %w", err)
		}
	}

	appVersion := orUnknown(d.versions.Resolve(ctx, d.cfg.AppContainer, d.cfg.AppVersionCmd))
	dbVersion := orUnknown(d.versions.Resolve(ctx, d.cfg.DBContainer, d.cfg.DBVersionCmd))

	dumpPath := filepath.Join(dumpDir,
		fmt.Sprintf("%s-%s-mariadb-%s.sql", d.cfg.DBName, appVersion, dbVersion))

	cmd := []string{
		"mariadb-dump",
		"-u", d.cfg.DBUser,
		"--single-transaction",
		"--quick",
		"--routines",
		"--triggers",
		"--events",
		d.cfg.DBName,
	}

	d.logger.Infof("Dumping database %s from %s to %s", d.cfg.DBName, d.cfg.DBContainer, dumpPath)
	if err := d.runtime.ExecToFile(ctx, d.cfg.DBContainer, cmd, nil, dumpPath); err != nil {
		return dumpPath, fmt.Errorf("database dump: %w", err)
	}

	info, err := os.Stat(dumpPath)
	if err != nil {
		return dumpPath, fmt.Errorf("stat dump file: %w", err)
	}
	d.logger.Infof("Dump created, size: %.2f MB", float64(info.Size())/(1024*1024))

	return dumpPath, nil
}
