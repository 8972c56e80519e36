package models

import "time"

// Review ratings
const (
	ReviewRatingLike    = "LIKE"
	ReviewRatingDislike = "DISLIKE"
)

// Review is founder feedback about an occupied member seat. Append-only:
// there is no edit or delete operation.
type Review struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"index;not null" json:"project_id"`
	Project     *Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	MemberID    uint           `gorm:"index;not null" json:"member_id"`
	Member      *ProjectMember `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Rating      string         `gorm:"size:20;not null" json:"rating"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (Review) TableName() string { return "reviews" }
