package services

import (
	"errors"
	"time"

	"github.com/iffypixy/metaorta/internal/models"
	"gorm.io/gorm"
)

// MembershipService removes members from projects and keeps the tenure
// audit consistent: every occupied-then-vacated seat leaves exactly one
// closed UserHistory row.
//
// Removal restores exactly the capacity unit the member row consumed: the
// project's free-slot counter goes back up by one per deleted row, card
// capacity is untouched.
type MembershipService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewMembershipService(db *gorm.DB, notifier Notifier) *MembershipService {
	return &MembershipService{db: db, notifier: notifier}
}

// RemoveMember deletes a member row on the founder's behalf, closes the
// occupant's open tenure row and notifies the removed user.
func (s *MembershipService) RemoveMember(actorID, projectID, memberID uint) error {
	project, role, err := DeriveRole(s.db, projectID, actorID)
	if err != nil {
		return err
	}
	if !role.IsFounder() {
		return ErrPermissionDenied
	}

	var member models.ProjectMember
	if err := s.db.Where("project_id = ?", projectID).First(&member, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := dropSeatDependents(tx, member.ID); err != nil {
			return err
		}
		if err := tx.Delete(&models.ProjectMember{}, member.ID).Error; err != nil {
			return err
		}

		if member.IsOccupied && member.UserID != nil {
			if err := closeTenure(tx, *member.UserID, projectID, member.Role); err != nil {
				return err
			}
		}

		return tx.Model(&models.Project{}).Where("id = ?", projectID).
			UpdateColumn("slots", gorm.Expr("slots + 1")).Error
	})
	if err != nil {
		return err
	}

	if member.IsOccupied && member.UserID != nil {
		s.notifier.Notify(*member.UserID, NewKickedEvent(project, member.Role))
	}
	return nil
}

// LeaveProject removes every seat the actor holds in the project. Self
// initiated, so no notification is raised.
func (s *MembershipService) LeaveProject(actorID, projectID uint) error {
	_, role, err := DeriveRole(s.db, projectID, actorID)
	if err != nil {
		return err
	}
	if role.IsFounder() {
		return ErrPermissionDenied
	}
	if !role.IsMember() {
		return ErrNotFound
	}

	var seats []models.ProjectMember
	if err := s.db.Where("project_id = ? AND user_id = ?", projectID, actorID).Find(&seats).Error; err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, seat := range seats {
			if err := dropSeatDependents(tx, seat.ID); err != nil {
				return err
			}
			if err := tx.Delete(&models.ProjectMember{}, seat.ID).Error; err != nil {
				return err
			}
			if err := closeTenure(tx, actorID, projectID, seat.Role); err != nil {
				return err
			}
			if err := tx.Model(&models.Project{}).Where("id = ?", projectID).
				UpdateColumn("slots", gorm.Expr("slots + 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// dropSeatDependents deletes the rows a member seat owns: pending
// requests and assigned tasks go with the seat. Reviews and closed
// tenure rows are audit records and survive it.
func dropSeatDependents(tx *gorm.DB, memberID uint) error {
	if err := tx.Where("member_id = ?", memberID).Delete(&models.ProjectRequest{}).Error; err != nil {
		return err
	}
	return tx.Where("member_id = ?", memberID).Delete(&models.ProjectTask{}).Error
}

// closeTenure sets end_date on the open tenure row matching (user,
// project, role). Matching on the open row only keeps the audit append-only
// across repeated stints in the same role.
func closeTenure(tx *gorm.DB, userID, projectID uint, memberRole string) error {
	now := time.Now()
	return tx.Model(&models.UserHistory{}).
		Where("user_id = ? AND project_id = ? AND role = ? AND end_date IS NULL", userID, projectID, memberRole).
		Update("end_date", now).Error
}

// ListMembers returns the project's member rows, open slots included.
func (s *MembershipService) ListMembers(projectID uint) ([]models.ProjectMember, error) {
	var exists int64
	if err := s.db.Model(&models.Project{}).Where("id = ?", projectID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	var members []models.ProjectMember
	err := s.db.Where("project_id = ?", projectID).
		Preload("User").
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}
