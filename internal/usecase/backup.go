package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/semmidev/photark/internal/config"
	"github.com/semmidev/photark/internal/domain"
)

type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

// Backup is the orchestration state machine for one run. Steps execute in a
// fixed order; the first failure's exit code is authoritative and every
// recovery action after it is best-effort.
//
// Concurrent runs against the same repository are unsupported. There is no
// lock here; borg takes its own repository lock and fails fast, which is
// the documented backstop for a misconfigured second timer.
type Backup struct {
	cfg         *config.Config
	runtime     domain.ContainerRuntime
	maintenance *Maintenance
	dump        *DumpStep
	archiver    domain.Archiver
	notifier    domain.Notifier
	offsite     domain.Storage
	logger      Logger
	now         func() time.Time
}

func NewBackup(
	cfg *config.Config,
	rt domain.ContainerRuntime,
	maintenance *Maintenance,
	dump *DumpStep,
	archiver domain.Archiver,
	notifier domain.Notifier,
	offsite domain.Storage,
	logger Logger,
) *Backup {
	return &Backup{
		cfg:         cfg,
		runtime:     rt,
		maintenance: maintenance,
		dump:        dump,
		archiver:    archiver,
		notifier:    notifier,
		offsite:     offsite,
		logger:      logger,
		now:         time.Now,
	}
}

func (uc *Backup) Execute(ctx context.Context) error {
	run := &domain.BackupRun{StartedAt: uc.now()}
	uc.logger.Infof("Starting backup (%s mode)", uc.cfg.Mode)

	if err := uc.notifier.Start(ctx); err != nil {
		uc.logger.Warnf("Start notification failed: %v", err)
	}

	if err := uc.preflight(ctx); err != nil {
		return uc.fail(ctx, run, err)
	}

	run.Maintenance = domain.MaintenanceEnabling
	if err := uc.maintenance.Enable(ctx); err != nil {
		run.Maintenance = domain.MaintenanceOff
		return uc.fail(ctx, run, err)
	}
	run.Maintenance = domain.MaintenanceOn

	dumpPath, err := uc.dump.Execute(ctx)
	run.DumpPath = dumpPath
	if err != nil {
		return uc.fail(ctx, run, err)
	}

	// Create must precede prune so the fresh archive is part of the
	// repository the retention policy evaluates, and prune must precede
	// compact because compaction only reclaims already-deleted archives.
	run.ArchiveName = run.StartedAt.Format("2006-01-02T15:04:05")
	uc.logger.Infof("Creating archive %s", run.ArchiveName)
	if err := uc.archiver.Create(ctx, run.ArchiveName, uc.cfg.ArchiveSources(), uc.excludePatterns()); err != nil {
		return uc.fail(ctx, run, fmt.Errorf("archive create: %w", err))
	}

	uc.uploadOffsite(ctx, run)

	policy := domain.RetentionPolicy{
		KeepDaily:   uc.cfg.KeepDaily,
		KeepWeekly:  uc.cfg.KeepWeekly,
		KeepMonthly: uc.cfg.KeepMonthly,
	}
	uc.logger.Infof("Pruning repository (keep %d daily, %d weekly, %d monthly)",
		policy.KeepDaily, policy.KeepWeekly, policy.KeepMonthly)
	if err := uc.archiver.Prune(ctx, policy); err != nil {
		return uc.fail(ctx, run, fmt.Errorf("archive prune: %w", err))
	}

	uc.logger.Infof("Compacting repository")
	if err := uc.archiver.Compact(ctx); err != nil {
		return uc.fail(ctx, run, fmt.Errorf("archive compact: %w", err))
	}

	uc.cleanup(ctx, run)

	elapsed := uc.now().Sub(run.StartedAt).Round(time.Second)
	message := fmt.Sprintf("archive %s created in %s", run.ArchiveName, elapsed)
	if err := uc.notifier.Success(ctx, message); err != nil {
		uc.logger.Warnf("Success notification failed: %v", err)
	}
	uc.logger.Infof("Backup completed in %s", elapsed)
	return nil
}

// preflight validates the environment before any side effect. Violations
// exit with code 1.
func (uc *Backup) preflight(ctx context.Context) error {
	info, err := os.Stat(uc.cfg.BackupPath)
	if err != nil || !info.IsDir() {
		return domain.Exitf(1, "backup path %s is not an existing directory", uc.cfg.BackupPath)
	}
	if err := uc.archiver.Check(); err != nil {
		return &domain.ExitError{Code: 1, Err: err}
	}
	if err := uc.runtime.Ping(ctx); err != nil {
		return &domain.ExitError{Code: 1, Err: err}
	}
	return nil
}

// fail is the single entry into the FAILED state: unwind maintenance mode,
// discard the incomplete artifact, report, and propagate the original code.
func (uc *Backup) fail(ctx context.Context, run *domain.BackupRun, err error) error {
	code := domain.ExitCode(err)
	uc.logger.Errorf("Backup failed: %v", err)

	if run.Maintenance == domain.MaintenanceOn {
		run.Maintenance = domain.MaintenanceDisabling
		if derr := uc.maintenance.Disable(ctx); derr != nil {
			// Remote state unconfirmed, the flag must not pretend otherwise.
			run.Maintenance = domain.MaintenanceOn
		} else {
			run.Maintenance = domain.MaintenanceOff
		}
	}

	uc.removeDump(run)

	if nerr := uc.notifier.Failure(ctx, code, err.Error()); nerr != nil {
		uc.logger.Warnf("Failure notification failed: %v", nerr)
	}
	return err
}

// cleanup runs on the success path. Its failures downgrade to warnings and
// never convert a completed backup into a failed run.
func (uc *Backup) cleanup(ctx context.Context, run *domain.BackupRun) {
	uc.removeDump(run)

	if run.Maintenance == domain.MaintenanceOn {
		run.Maintenance = domain.MaintenanceDisabling
		if derr := uc.maintenance.Disable(ctx); derr != nil {
			run.Maintenance = domain.MaintenanceOn
		} else {
			run.Maintenance = domain.MaintenanceOff
		}
	}
}

func (uc *Backup) removeDump(run *domain.BackupRun) {
	if run.DumpPath == "" {
		return
	}
	if err := os.Remove(run.DumpPath); err != nil {
		if !os.IsNotExist(err) {
			uc.logger.Warnf("Failed to delete dump artifact %s: %v", run.DumpPath, err)
		}
		return
	}
	uc.logger.Infof("Deleted dump artifact %s", run.DumpPath)
}

// uploadOffsite copies the dump to the configured offsite target before
// local cleanup deletes it. Failure is expected to be non-escalating.
func (uc *Backup) uploadOffsite(ctx context.Context, run *domain.BackupRun) {
	if uc.offsite == nil || run.DumpPath == "" {
		return
	}
	remoteName := run.StartedAt.Format("20060102_150405") + "_" + filepath.Base(run.DumpPath)
	if err := uc.offsite.Upload(ctx, run.DumpPath, remoteName); err != nil {
		uc.logger.Warnf("Offsite dump copy failed: %v", err)
		return
	}
	uc.logger.Infof("Offsite dump copy uploaded as %s", remoteName)
}

// excludePatterns expands the configured cache subdirectories into absolute
// patterns under each archived tree.
func (uc *Backup) excludePatterns() []string {
	var patterns []string
	for _, sub := range uc.cfg.Excludes {
		patterns = append(patterns, filepath.Join(uc.cfg.LibraryPath, sub))
		if uc.cfg.Mode == config.ModeStandalone {
			patterns = append(patterns, filepath.Join(uc.cfg.DataPath, sub))
		}
	}
	return patterns
}
