package services

import (
	"errors"

	"github.com/iffypixy/metaorta/internal/models"
	"gorm.io/gorm"
)

// FriendService runs the friendship lifecycle. It mirrors the join-request
// shape: a pending request either becomes a Friendship row or is deleted.
type FriendService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewFriendService(db *gorm.DB, notifier Notifier) *FriendService {
	return &FriendService{db: db, notifier: notifier}
}

// Send files a friend request and notifies the recipient.
func (s *FriendService) Send(actorID, recipientID uint) (*models.FriendRequest, error) {
	if actorID == recipientID {
		return nil, ErrPermissionDenied
	}

	var recipient models.User
	if err := s.db.First(&recipient, recipientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if already, err := s.areFriends(actorID, recipientID); err != nil {
		return nil, err
	} else if already {
		return nil, ErrDuplicateRequest
	}

	var pending int64
	if err := s.db.Model(&models.FriendRequest{}).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			actorID, recipientID, recipientID, actorID).
		Count(&pending).Error; err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, ErrDuplicateRequest
	}

	request := models.FriendRequest{SenderID: actorID, RecipientID: recipientID}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, err
	}

	s.notifier.Notify(recipientID, NewFriendRequestSentEvent(&request))
	return &request, nil
}

// Accept converts a pending request into a friendship and notifies the
// sender. Recipient-only.
func (s *FriendService) Accept(actorID, requestID uint) (*models.Friendship, error) {
	var request models.FriendRequest
	if err := s.db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if request.RecipientID != actorID {
		return nil, ErrPermissionDenied
	}

	userID, friendID := request.SenderID, request.RecipientID
	if friendID < userID {
		userID, friendID = friendID, userID
	}

	friendship := models.Friendship{UserID: userID, FriendID: friendID}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.FriendRequest{}, request.ID).Error; err != nil {
			return err
		}
		return tx.Create(&friendship).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(request.SenderID, NewFriendRequestAcceptedEvent(&friendship))
	return &friendship, nil
}

// Decline deletes a pending request. Recipient-only, no notification.
func (s *FriendService) Decline(actorID, requestID uint) error {
	var request models.FriendRequest
	if err := s.db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if request.RecipientID != actorID {
		return ErrPermissionDenied
	}

	return s.db.Delete(&models.FriendRequest{}, request.ID).Error
}

// List returns the actor's friends.
func (s *FriendService) List(actorID uint) ([]models.User, error) {
	var friendships []models.Friendship
	if err := s.db.Where("user_id = ? OR friend_id = ?", actorID, actorID).
		Preload("User").
		Preload("Friend").
		Find(&friendships).Error; err != nil {
		return nil, err
	}

	friends := make([]models.User, 0, len(friendships))
	for _, f := range friendships {
		if f.UserID == actorID {
			if f.Friend != nil {
				friends = append(friends, *f.Friend)
			}
		} else if f.User != nil {
			friends = append(friends, *f.User)
		}
	}
	return friends, nil
}

// ListIncoming returns pending requests addressed to the actor.
func (s *FriendService) ListIncoming(actorID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := s.db.Where("recipient_id = ?", actorID).
		Preload("Sender").
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (s *FriendService) areFriends(a, b uint) (bool, error) {
	if b < a {
		a, b = b, a
	}
	var count int64
	err := s.db.Model(&models.Friendship{}).
		Where("user_id = ? AND friend_id = ?", a, b).
		Count(&count).Error
	return count > 0, err
}
