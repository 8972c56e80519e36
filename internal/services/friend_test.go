package services

import (
	"errors"
	"testing"

	"github.com/iffypixy/metaorta/internal/models"
)

func TestFriendSend(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	notifier := &recordingNotifier{}
	svc := NewFriendService(db, notifier)

	request, err := svc.Send(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if request.SenderID != alice.ID || request.RecipientID != bob.ID {
		t.Errorf("request = (%d → %d), expected (%d → %d)",
			request.SenderID, request.RecipientID, alice.ID, bob.ID)
	}

	last := notifier.last()
	if last == nil || last.UserID != bob.ID || last.Event.Name != EventFriendRequestSent {
		t.Errorf("expected FRIEND_REQUEST_SENT notification to recipient, got %+v", last)
	}
}

func TestFriendSend_Rejections(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	svc := NewFriendService(db, &recordingNotifier{})

	if _, err := svc.Send(alice.ID, bob.ID); err != nil {
		t.Fatalf("seed request failed: %v", err)
	}
	// alice and carol are already friends
	if _, err := svc.Send(carol.ID, alice.ID); err != nil {
		t.Fatalf("carol request failed: %v", err)
	}
	var carolReq models.FriendRequest
	db.Where("sender_id = ?", carol.ID).First(&carolReq)
	if _, err := svc.Accept(alice.ID, carolReq.ID); err != nil {
		t.Fatalf("carol accept failed: %v", err)
	}

	tests := []struct {
		name      string
		sender    uint
		recipient uint
		wantErr   error
	}{
		{"self request", alice.ID, alice.ID, ErrPermissionDenied},
		{"missing recipient", alice.ID, 9999, ErrNotFound},
		{"duplicate same direction", alice.ID, bob.ID, ErrDuplicateRequest},
		{"duplicate reverse direction", bob.ID, alice.ID, ErrDuplicateRequest},
		{"already friends", alice.ID, carol.ID, ErrDuplicateRequest},
		{"already friends reverse", carol.ID, alice.ID, ErrDuplicateRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Send(tt.sender, tt.recipient)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Send() error = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}

func TestFriendAccept(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	notifier := &recordingNotifier{}
	svc := NewFriendService(db, notifier)
	request, _ := svc.Send(bob.ID, alice.ID)

	// Only the recipient may accept
	if _, err := svc.Accept(bob.ID, request.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("sender accept: expected ErrPermissionDenied, got %v", err)
	}

	friendship, err := svc.Accept(alice.ID, request.ID)
	if err != nil {
		t.Fatalf("Accept failed: %v", err)
	}

	// Pair stored normalized, lower id first
	if friendship.UserID >= friendship.FriendID {
		t.Errorf("friendship not normalized: (%d, %d)", friendship.UserID, friendship.FriendID)
	}

	// Request consumed
	var pending int64
	db.Model(&models.FriendRequest{}).Count(&pending)
	if pending != 0 {
		t.Errorf("expected 0 pending requests, got %d", pending)
	}

	last := notifier.last()
	if last == nil || last.UserID != bob.ID || last.Event.Name != EventFriendRequestAccepted {
		t.Errorf("expected FRIEND_REQUEST_ACCEPTED notification to sender, got %+v", last)
	}

	// Both sides see each other
	for _, u := range []*models.User{alice, bob} {
		friends, err := svc.List(u.ID)
		if err != nil {
			t.Fatalf("List(%s) failed: %v", u.Username, err)
		}
		if len(friends) != 1 {
			t.Errorf("%s: expected 1 friend, got %d", u.Username, len(friends))
		}
	}
}

func TestFriendDecline(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	svc := NewFriendService(db, &recordingNotifier{})
	request, _ := svc.Send(bob.ID, alice.ID)

	if err := svc.Decline(bob.ID, request.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("sender decline: expected ErrPermissionDenied, got %v", err)
	}

	if err := svc.Decline(alice.ID, request.ID); err != nil {
		t.Fatalf("Decline failed: %v", err)
	}

	var pending int64
	db.Model(&models.FriendRequest{}).Count(&pending)
	if pending != 0 {
		t.Errorf("expected 0 pending requests, got %d", pending)
	}

	// No friendship was formed
	var friendships int64
	db.Model(&models.Friendship{}).Count(&friendships)
	if friendships != 0 {
		t.Errorf("expected 0 friendships, got %d", friendships)
	}

	if err := svc.Decline(alice.ID, request.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double decline: expected ErrNotFound, got %v", err)
	}
}

func TestFriendListIncoming(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	svc := NewFriendService(db, &recordingNotifier{})
	svc.Send(bob.ID, alice.ID)
	svc.Send(carol.ID, alice.ID)

	incoming, err := svc.ListIncoming(alice.ID)
	if err != nil {
		t.Fatalf("ListIncoming failed: %v", err)
	}
	if len(incoming) != 2 {
		t.Errorf("expected 2 incoming requests, got %d", len(incoming))
	}
}
