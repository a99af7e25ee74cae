package app

import (
	"context"
	"fmt"

	"github.com/semmidev/photark/internal/adapter/archive"
	"github.com/semmidev/photark/internal/adapter/notify"
	"github.com/semmidev/photark/internal/adapter/runtime"
	"github.com/semmidev/photark/internal/adapter/storage"
	"github.com/semmidev/photark/internal/config"
	"github.com/semmidev/photark/internal/domain"
	"github.com/semmidev/photark/internal/infrastructure/logger"
	"github.com/semmidev/photark/internal/usecase"
)

type App struct {
	config  *config.Config
	logger  *logger.Logger
	runtime *runtime.Docker
	backup  *usecase.Backup
}

func New(cfg *config.Config) (*App, error) {
	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt, err := runtime.NewDocker()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize container runtime: %w", err)
	}

	notifiers := notify.Multi{notify.NewHealthcheck(cfg.HealthcheckURL)}
	if cfg.Telegram.Enabled() {
		tg, err := notify.NewTelegram(cfg.Telegram)
		if err != nil {
			log.Warnf("Telegram notifications disabled: %v", err)
		} else {
			notifiers = append(notifiers, tg)
			log.Infof("✓ Telegram notifications enabled")
		}
	}

	var offsite domain.Storage
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3(cfg.S3)
		if err != nil {
			log.Warnf("S3 offsite copy disabled: %v", err)
		} else {
			offsite = s3Store
			log.Infof("✓ S3 offsite dump copy enabled (bucket: %s)", cfg.S3.Bucket)
		}
	}

	versions := usecase.NewVersionResolver(rt, log)
	maintenance := usecase.NewMaintenance(rt, cfg.AppContainer, cfg.MaintenanceOnCmd, cfg.MaintenanceOffCmd, log)
	dump := usecase.NewDumpStep(rt, versions, cfg, log)
	archiver := archive.NewBorg(cfg.BorgRepo)

	backup := usecase.NewBackup(cfg, rt, maintenance, dump, archiver, notifiers, offsite, log)

	return &App{
		config:  cfg,
		logger:  log,
		runtime: rt,
		backup:  backup,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	return a.backup.Execute(ctx)
}

func (a *App) Shutdown() {
	_ = a.runtime.Close()
	a.logger.Close()
}
