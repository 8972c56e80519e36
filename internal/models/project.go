package models

import (
	"time"

	"gorm.io/gorm"
)

// Project represents a startup project assembled on the platform.
// Slots is the remaining free-slot budget: it is decremented every time a
// role opening (ProjectMember row) is created and restored when a member
// row is removed.
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	FounderID   uint           `gorm:"index;not null" json:"founder_id"`
	Founder     *User          `gorm:"foreignKey:FounderID" json:"founder,omitempty"`
	Description string         `gorm:"type:text" json:"description"`
	StartDate   *time.Time     `json:"start_date"`
	EndDate     *time.Time     `json:"end_date"`
	Location    string         `gorm:"size:200" json:"location"`
	Avatar      string         `gorm:"size:500" json:"avatar"`
	Slots       int            `gorm:"not null;default:0" json:"slots"`
	Cards       []ProjectCard  `gorm:"foreignKey:ProjectID" json:"cards,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string { return "projects" }
