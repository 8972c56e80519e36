package services

import (
	"errors"

	"github.com/iffypixy/metaorta/internal/models"
	"gorm.io/gorm"
)

// HistoryService reads the tenure audit. Rows are written exclusively by
// the request and membership services.
type HistoryService struct {
	db *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// ListByUser returns a user's role tenure, newest first.
func (s *HistoryService) ListByUser(userID uint) ([]models.UserHistory, error) {
	var exists int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	var history []models.UserHistory
	err := s.db.Where("user_id = ?", userID).
		Preload("Project").
		Order("start_date DESC").
		Find(&history).Error
	return history, err
}

// ListByProject returns the tenure audit of a single project.
func (s *HistoryService) ListByProject(projectID uint) ([]models.UserHistory, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var history []models.UserHistory
	err := s.db.Where("project_id = ?", projectID).
		Preload("User").
		Order("start_date DESC").
		Find(&history).Error
	return history, err
}
