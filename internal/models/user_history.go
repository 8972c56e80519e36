package models

import "time"

// UserHistory is an append-only audit of role tenure. A row is opened
// (EndDate nil) when a join request is accepted and closed when the member
// leaves or is removed. Rows are never deleted.
type UserHistory struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ProjectID uint       `gorm:"index;not null" json:"project_id"`
	Project   *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Role      string     `gorm:"size:100;not null" json:"role"`
	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	CreatedAt time.Time  `json:"created_at"`
}

func (UserHistory) TableName() string { return "user_histories" }
