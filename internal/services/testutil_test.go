package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/iffypixy/metaorta/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory database with the full schema. Each
// call gets its own named shared-cache database so the connection pool
// sees a single store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectCard{},
		&models.ProjectMember{},
		&models.ProjectRequest{},
		&models.ProjectTask{},
		&models.UserHistory{},
		&models.Review{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.SystemLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// recordedEvent is one Notify call captured by the recording notifier.
type recordedEvent struct {
	UserID uint
	Event  Event
}

// recordingNotifier captures notifications instead of delivering them.
type recordingNotifier struct {
	events []recordedEvent
}

func (n *recordingNotifier) Notify(userID uint, event Event) {
	n.events = append(n.events, recordedEvent{UserID: userID, Event: event})
}

func (n *recordingNotifier) last() *recordedEvent {
	if len(n.events) == 0 {
		return nil
	}
	return &n.events[len(n.events)-1]
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "hashed",
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return &user
}

func createTestProject(t *testing.T, db *gorm.DB, founderID uint) *models.Project {
	t.Helper()

	svc := NewProjectService(db, 4)
	project, err := svc.Create(&CreateProjectRequest{Name: "fintech startup"}, founderID)
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return project
}

// openTestSlot creates an unoccupied member slot through the slot service.
func openTestSlot(t *testing.T, db *gorm.DB, founderID, projectID uint, role string) *models.ProjectMember {
	t.Helper()

	member, err := NewSlotService(db).OpenSlot(founderID, projectID, &OpenSlotRequest{Role: role})
	if err != nil {
		t.Fatalf("failed to open slot: %v", err)
	}
	return member
}

// occupyTestSlot runs the full request flow to seat a user on a slot.
func occupyTestSlot(t *testing.T, db *gorm.DB, founderID, projectID, memberID, userID uint) *models.ProjectMember {
	t.Helper()

	svc := NewRequestService(db, &recordingNotifier{})
	request, err := svc.Send(userID, memberID)
	if err != nil {
		t.Fatalf("failed to send request: %v", err)
	}
	member, err := svc.Accept(founderID, projectID, request.ID)
	if err != nil {
		t.Fatalf("failed to accept request: %v", err)
	}
	return member
}
