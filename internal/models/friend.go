package models

import "time"

// FriendRequest is a pending friendship application. At most one request
// exists per (sender, recipient) pair; acceptance converts it into a
// Friendship row, decline deletes it.
type FriendRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"uniqueIndex:idx_sender_recipient;not null" json:"sender_id"`
	Sender      *User     `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	RecipientID uint      `gorm:"uniqueIndex:idx_sender_recipient;not null" json:"recipient_id"`
	Recipient   *User     `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (FriendRequest) TableName() string { return "friend_requests" }

// Friendship links two users. Stored once per pair with UserID < FriendID
// normalized at creation.
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_friend;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	FriendID  uint      `gorm:"uniqueIndex:idx_user_friend;not null" json:"friend_id"`
	Friend    *User     `gorm:"foreignKey:FriendID" json:"friend,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Friendship) TableName() string { return "friendships" }
