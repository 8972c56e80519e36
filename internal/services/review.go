package services

import (
	"errors"

	"github.com/iffypixy/metaorta/internal/models"
	"gorm.io/gorm"
)

// ReviewService records founder feedback about occupied member seats.
// Append-only: reviews are never edited or deleted.
type ReviewService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewReviewService(db *gorm.DB, notifier Notifier) *ReviewService {
	return &ReviewService{db: db, notifier: notifier}
}

type LeaveFeedbackRequest struct {
	Like        *bool  `json:"like" binding:"required"`
	Description string `json:"description"`
}

// LeaveFeedback creates a review for an occupied member and notifies the
// reviewed user.
func (s *ReviewService) LeaveFeedback(actorID, memberID uint, like bool, description string) (*models.Review, error) {
	var member models.ProjectMember
	if err := s.db.First(&member, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !member.IsOccupied || member.UserID == nil {
		return nil, ErrNotFound
	}

	project, role, err := DeriveRole(s.db, member.ProjectID, actorID)
	if err != nil {
		return nil, err
	}
	if !role.IsFounder() {
		return nil, ErrPermissionDenied
	}

	rating := models.ReviewRatingDislike
	if like {
		rating = models.ReviewRatingLike
	}

	review := models.Review{
		ProjectID:   member.ProjectID,
		MemberID:    memberID,
		Rating:      rating,
		Description: description,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, err
	}

	s.notifier.Notify(*member.UserID, NewReviewGivenEvent(project, &review))
	return &review, nil
}

// ListByMember returns the reviews left for a member seat.
func (s *ReviewService) ListByMember(memberID uint) ([]models.Review, error) {
	var member models.ProjectMember
	if err := s.db.First(&member, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var reviews []models.Review
	err := s.db.Where("member_id = ?", memberID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}
