package services

import (
	"errors"
	"time"

	"github.com/iffypixy/metaorta/internal/models"
	"gorm.io/gorm"
)

// RequestService runs the join-request lifecycle: a (member, user) pair
// moves NONE → REQUESTED → accepted or declined, and both outcomes delete
// request rows rather than persisting a terminal state.
type RequestService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewRequestService(db *gorm.DB, notifier Notifier) *RequestService {
	return &RequestService{db: db, notifier: notifier}
}

// Send files a request of the actor for an open member slot and notifies
// the project founder.
func (s *RequestService) Send(actorID, memberID uint) (*models.ProjectRequest, error) {
	var member models.ProjectMember
	if err := s.db.First(&member, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	project, role, err := DeriveRole(s.db, member.ProjectID, actorID)
	if err != nil {
		return nil, err
	}
	if role.IsFounder() {
		return nil, ErrPermissionDenied
	}
	if member.IsOccupied {
		return nil, ErrSlotOccupied
	}

	var existing int64
	if err := s.db.Model(&models.ProjectRequest{}).
		Where("member_id = ? AND user_id = ?", memberID, actorID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrDuplicateRequest
	}

	request := models.ProjectRequest{
		ProjectID: member.ProjectID,
		MemberID:  memberID,
		UserID:    actorID,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, err
	}

	s.notifier.Notify(project.FounderID, NewRequestSentEvent(project, &request))
	return &request, nil
}

// Accept converts a request into a membership. Winner-take-all: every
// request referencing the member is deleted, not just the accepted one, and
// a tenure row is opened for the new member. The occupy write is guarded by
// a conditional update so a request racing on an already-taken slot loses
// with ErrSlotOccupied.
func (s *RequestService) Accept(actorID, projectID, requestID uint) (*models.ProjectMember, error) {
	project, role, err := DeriveRole(s.db, projectID, actorID)
	if err != nil {
		return nil, err
	}
	if !role.IsFounder() {
		return nil, ErrPermissionDenied
	}

	var request models.ProjectRequest
	if err := s.db.Where("project_id = ?", projectID).First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var member models.ProjectMember
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ProjectMember{}).
			Where("id = ? AND is_occupied = ?", request.MemberID, false).
			Updates(map[string]interface{}{"is_occupied": true, "user_id": request.UserID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSlotOccupied
		}

		if err := tx.First(&member, request.MemberID).Error; err != nil {
			return err
		}

		// Clear the whole queue for this slot, competing requests included
		if err := tx.Where("member_id = ?", request.MemberID).
			Delete(&models.ProjectRequest{}).Error; err != nil {
			return err
		}

		history := models.UserHistory{
			UserID:    request.UserID,
			ProjectID: projectID,
			Role:      member.Role,
			StartDate: time.Now(),
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(request.UserID, NewRequestAcceptedEvent(project, &member))
	return &member, nil
}

// Decline removes only the targeted request; competing requests for the
// same slot stay live.
func (s *RequestService) Decline(actorID, projectID, requestID uint) error {
	project, role, err := DeriveRole(s.db, projectID, actorID)
	if err != nil {
		return err
	}
	if !role.IsFounder() {
		return ErrPermissionDenied
	}

	var request models.ProjectRequest
	if err := s.db.Where("project_id = ?", projectID).First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var member models.ProjectMember
	if err := s.db.First(&member, request.MemberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.db.Delete(&models.ProjectRequest{}, request.ID).Error; err != nil {
		return err
	}

	s.notifier.Notify(request.UserID, NewRequestDeclinedEvent(project, &member))
	return nil
}

// ListByProject returns pending requests for the founder's review.
func (s *RequestService) ListByProject(actorID, projectID uint) ([]models.ProjectRequest, error) {
	_, role, err := DeriveRole(s.db, projectID, actorID)
	if err != nil {
		return nil, err
	}
	if !role.IsFounder() {
		return nil, ErrPermissionDenied
	}

	var requests []models.ProjectRequest
	err = s.db.Where("project_id = ?", projectID).
		Preload("Member").
		Preload("User").
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}
