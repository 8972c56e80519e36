package main

import (
	"github.com/iffypixy/metaorta/internal/config"
	"github.com/iffypixy/metaorta/internal/models"
	"github.com/iffypixy/metaorta/internal/services"
	"github.com/iffypixy/metaorta/internal/utils"
	"github.com/iffypixy/metaorta/pkg/logger"
)

// appServices holds all initialized services needed by the application.
type appServices struct {
	cfg         *config.Config
	notifier    services.Notifier
	worker      *services.NotifyWorker
	maintenance *services.MaintenanceService
}

// bootstrap initializes all application dependencies: database, notifier, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize system logger
	services.InitSystemLogger(models.GetDB())

	// Notification delivery (Redis-backed queue if enabled, otherwise sync)
	notifier, worker := services.InitNotifier(cfg, services.GetHub())

	// Nightly maintenance: log retention and stale request sweep
	maintenance := services.NewMaintenanceService(models.GetDB())
	maintenance.StartScheduler()

	return &appServices{
		cfg:         cfg,
		notifier:    notifier,
		worker:      worker,
		maintenance: maintenance,
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.maintenance.StopScheduler()

	if s.worker != nil {
		s.worker.Stop()
	}
	if closer, ok := s.notifier.(*services.QueueNotifier); ok {
		closer.Close()
	}
	logger.Info().Msg("All services stopped")
}
