package models

import (
	"time"
)

// ProjectMember is a role opening within a project card. Before a join
// request is accepted it is an unoccupied slot (UserID nil); afterwards it
// is a seat held by exactly one user.
type ProjectMember struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	ProjectID    uint         `gorm:"index;not null" json:"project_id"`
	Project      *Project     `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	CardID       uint         `gorm:"index;not null" json:"card_id"`
	Card         *ProjectCard `gorm:"foreignKey:CardID" json:"card,omitempty"`
	Role         string       `gorm:"size:100;not null" json:"role"`
	Requirements string       `gorm:"type:text" json:"requirements"`
	Benefits     string       `gorm:"type:text" json:"benefits"`
	IsOccupied   bool         `gorm:"not null;default:false" json:"is_occupied"`
	UserID       *uint        `gorm:"index" json:"user_id"`
	User         *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (ProjectMember) TableName() string { return "project_members" }
