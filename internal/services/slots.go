package services

import (
	"errors"

	"github.com/iffypixy/metaorta/internal/models"
	"gorm.io/gorm"
)

// SlotService places new role openings on project cards and grows card
// capacity. Every member row counts against its card's capacity whether or
// not the seat is occupied.
type SlotService struct {
	db *gorm.DB
}

func NewSlotService(db *gorm.DB) *SlotService {
	return &SlotService{db: db}
}

type OpenSlotRequest struct {
	Role         string `json:"role" binding:"required"`
	Requirements string `json:"requirements"`
	Benefits     string `json:"benefits"`
}

type AddCapacityRequest struct {
	Slots int `json:"slots" binding:"required,min=1"`
}

// OpenSlot creates an unoccupied member row on the first card with free
// capacity, scanning cards in creation order. When every card is full a new
// card with default capacity is created. The project's free-slot counter is
// decremented by one either way.
func (s *SlotService) OpenSlot(actorID, projectID uint, req *OpenSlotRequest) (*models.ProjectMember, error) {
	_, role, err := DeriveRole(s.db, projectID, actorID)
	if err != nil {
		return nil, err
	}
	if !role.IsFounder() {
		return nil, ErrPermissionDenied
	}

	var member *models.ProjectMember
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var cards []models.ProjectCard
		if err := tx.Where("project_id = ?", projectID).Order("created_at ASC, id ASC").Find(&cards).Error; err != nil {
			return err
		}

		var host *models.ProjectCard
		for i := range cards {
			var count int64
			if err := tx.Model(&models.ProjectMember{}).Where("card_id = ?", cards[i].ID).Count(&count).Error; err != nil {
				return err
			}
			if int(count) < cards[i].Slots {
				host = &cards[i]
				break
			}
		}

		if host == nil {
			card := models.ProjectCard{ProjectID: projectID, Slots: models.DefaultCardSlots}
			if err := tx.Create(&card).Error; err != nil {
				return err
			}
			host = &card
		}

		m := models.ProjectMember{
			ProjectID:    projectID,
			CardID:       host.ID,
			Role:         req.Role,
			Requirements: req.Requirements,
			Benefits:     req.Benefits,
			IsOccupied:   false,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Project{}).Where("id = ?", projectID).
			UpdateColumn("slots", gorm.Expr("slots - 1")).Error; err != nil {
			return err
		}

		member = &m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// AddCapacity grows a card's capacity. The mutation is invoked only after
// external payment confirmation; the service itself just applies the
// bounded increase.
func (s *SlotService) AddCapacity(actorID, cardID uint, additional int) (*models.ProjectCard, error) {
	var card models.ProjectCard
	if err := s.db.First(&card, cardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	_, role, err := DeriveRole(s.db, card.ProjectID, actorID)
	if err != nil {
		return nil, err
	}
	if !role.IsFounder() {
		return nil, ErrPermissionDenied
	}

	if card.Slots == models.MaxCardSlots {
		return nil, ErrCapacityExceeded
	}
	if card.Slots+additional > models.MaxCardSlots {
		return nil, ErrCapacityExceeded
	}

	if err := s.db.Model(&card).UpdateColumn("slots", gorm.Expr("slots + ?", additional)).Error; err != nil {
		return nil, err
	}
	card.Slots += additional
	return &card, nil
}
