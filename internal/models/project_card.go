package models

import "time"

// Card slot capacity bounds. Every card holds at most MaxCardSlots seats;
// new cards open with DefaultCardSlots.
const (
	MaxCardSlots     = 4
	DefaultCardSlots = 4
)

// ProjectCard is a fixed-capacity grouping of role openings within a
// project. The number of member rows attached to a card never exceeds its
// Slots capacity.
type ProjectCard struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProjectID uint            `gorm:"index;not null" json:"project_id"`
	Project   *Project        `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Slots     int             `gorm:"not null" json:"slots"`
	Members   []ProjectMember `gorm:"foreignKey:CardID" json:"members,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (ProjectCard) TableName() string { return "project_cards" }
