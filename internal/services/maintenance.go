package services

import (
	"github.com/iffypixy/metaorta/internal/models"
	"github.com/iffypixy/metaorta/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const logRetentionDays = 30

// MaintenanceService runs periodic housekeeping: audit log retention and a
// consistency sweep deleting requests that still point at occupied slots
// (possible only after a crash mid-accept on a store without transaction
// support).
type MaintenanceService struct {
	db        *gorm.DB
	scheduler *cron.Cron
}

func NewMaintenanceService(db *gorm.DB) *MaintenanceService {
	return &MaintenanceService{db: db}
}

// StartScheduler begins the nightly maintenance run.
func (s *MaintenanceService) StartScheduler() {
	s.scheduler = cron.New()
	if _, err := s.scheduler.AddFunc("30 3 * * *", s.run); err != nil {
		logger.Error().Err(err).Msg("maintenance: failed to schedule")
		return
	}
	s.scheduler.Start()
	logger.Info().Msg("maintenance scheduler started")
}

// StopScheduler stops the scheduler, waiting for a running job to finish.
func (s *MaintenanceService) StopScheduler() {
	if s.scheduler != nil {
		ctx := s.scheduler.Stop()
		<-ctx.Done()
	}
}

func (s *MaintenanceService) run() {
	deleted, err := NewSystemLogService(s.db).CleanupOldLogs(logRetentionDays)
	if err != nil {
		logger.Error().Err(err).Msg("maintenance: log cleanup failed")
	} else if deleted > 0 {
		logger.Info().Int64("deleted", deleted).Msg("maintenance: old audit logs removed")
	}

	swept, err := s.SweepStaleRequests()
	if err != nil {
		logger.Error().Err(err).Msg("maintenance: stale request sweep failed")
	} else if swept > 0 {
		logger.Warn().Int64("swept", swept).Msg("maintenance: requests on occupied slots removed")
	}
}

// SweepStaleRequests deletes requests targeting occupied member slots.
func (s *MaintenanceService) SweepStaleRequests() (int64, error) {
	result := s.db.Where("member_id IN (?)", s.db.Model(&models.ProjectMember{}).
		Select("id").
		Where("is_occupied = ?", true)).
		Delete(&models.ProjectRequest{})
	return result.RowsAffected, result.Error
}
