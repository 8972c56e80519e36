package services

import (
	"errors"

	"github.com/iffypixy/metaorta/internal/models"
	"gorm.io/gorm"
)

// RoleKind classifies an actor's standing within a project.
type RoleKind int

const (
	RoleVisitor RoleKind = iota
	RoleMember
	RoleFounder
)

func (k RoleKind) String() string {
	switch k {
	case RoleFounder:
		return "founder"
	case RoleMember:
		return "member"
	default:
		return "visitor"
	}
}

// ProjectRole is the actor's derived standing in a single project. It is
// computed once per request and consumed by every permission check, instead
// of re-querying ad hoc inside each operation.
type ProjectRole struct {
	Kind RoleKind
	// MemberIDs are the seats the actor occupies, set only for RoleMember.
	MemberIDs []uint
}

func (r ProjectRole) IsFounder() bool { return r.Kind == RoleFounder }
func (r ProjectRole) IsMember() bool  { return r.Kind == RoleMember }

// HoldsSeat reports whether the actor occupies the given member seat.
func (r ProjectRole) HoldsSeat(memberID uint) bool {
	for _, id := range r.MemberIDs {
		if id == memberID {
			return true
		}
	}
	return false
}

// DeriveRole computes the actor's role for a project. Returns ErrNotFound
// when the project does not exist.
func DeriveRole(db *gorm.DB, projectID, actorID uint) (*models.Project, ProjectRole, error) {
	var project models.Project
	if err := db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ProjectRole{}, ErrNotFound
		}
		return nil, ProjectRole{}, err
	}

	if project.FounderID == actorID {
		return &project, ProjectRole{Kind: RoleFounder}, nil
	}

	var seats []models.ProjectMember
	if err := db.Where("project_id = ? AND user_id = ? AND is_occupied = ?", projectID, actorID, true).
		Find(&seats).Error; err != nil {
		return nil, ProjectRole{}, err
	}

	if len(seats) == 0 {
		return &project, ProjectRole{Kind: RoleVisitor}, nil
	}

	ids := make([]uint, 0, len(seats))
	for _, m := range seats {
		ids = append(ids, m.ID)
	}
	return &project, ProjectRole{Kind: RoleMember, MemberIDs: ids}, nil
}
