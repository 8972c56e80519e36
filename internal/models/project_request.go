package models

import "time"

// ProjectRequest is a pending application of a user for an open member
// slot. At most one request exists per (member, user) pair. Requests are
// short-lived: acceptance converts one of them into a membership and
// deletes every request on the slot, decline deletes just the one row.
type ProjectRequest struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProjectID uint           `gorm:"index;not null" json:"project_id"`
	Project   *Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	MemberID  uint           `gorm:"uniqueIndex:idx_member_user;not null" json:"member_id"`
	Member    *ProjectMember `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	UserID    uint           `gorm:"uniqueIndex:idx_member_user;not null" json:"user_id"`
	User      *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func (ProjectRequest) TableName() string { return "project_requests" }
