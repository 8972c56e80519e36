package services

import (
	"errors"
	"time"

	"github.com/iffypixy/metaorta/internal/models"
	"gorm.io/gorm"
)

// TaskService runs the task lifecycle: founder-created, assignee-driven
// status changes, founder-archived.
type TaskService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewTaskService(db *gorm.DB, notifier Notifier) *TaskService {
	return &TaskService{db: db, notifier: notifier}
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
}

// Create assigns a task to an occupied member seat. A vacant slot has no
// assignee, so it is treated as absent.
func (s *TaskService) Create(actorID, memberID uint, req *CreateTaskRequest) (*models.ProjectTask, error) {
	var member models.ProjectMember
	if err := s.db.First(&member, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !member.IsOccupied || member.UserID == nil {
		return nil, ErrNotFound
	}

	project, role, err := DeriveRole(s.db, member.ProjectID, actorID)
	if err != nil {
		return nil, err
	}
	if !role.IsFounder() {
		return nil, ErrPermissionDenied
	}

	priority := req.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	task := models.ProjectTask{
		ProjectID:   member.ProjectID,
		MemberID:    memberID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Priority:    priority,
		Status:      models.TaskStatusAssigned,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}

	s.notifier.Notify(*member.UserID, NewTaskAssignedEvent(project, &task))
	return &task, nil
}

// ChangeStatus sets the task status. Only the assignee may move a task,
// and any known status may follow any other; ordering is a product
// convention, not an enforced machine.
func (s *TaskService) ChangeStatus(actorID, taskID uint, status string) (*models.ProjectTask, error) {
	if !models.ValidTaskStatus(status) {
		return nil, ErrInvalidStatus
	}

	var task models.ProjectTask
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var member models.ProjectMember
	if err := s.db.First(&member, task.MemberID).Error; err != nil {
		return nil, err
	}
	if member.UserID == nil || *member.UserID != actorID {
		return nil, ErrPermissionDenied
	}

	if err := s.db.Model(&task).Update("status", status).Error; err != nil {
		return nil, err
	}
	task.Status = status
	return &task, nil
}

// Archive deletes the task after the founder's review. Irreversible: there
// is no archived state, only removal.
func (s *TaskService) Archive(actorID, taskID uint) error {
	var task models.ProjectTask
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	project, role, err := DeriveRole(s.db, task.ProjectID, actorID)
	if err != nil {
		return err
	}
	if !role.IsFounder() {
		return ErrPermissionDenied
	}

	var member models.ProjectMember
	if err := s.db.First(&member, task.MemberID).Error; err != nil {
		return err
	}

	if err := s.db.Delete(&models.ProjectTask{}, task.ID).Error; err != nil {
		return err
	}

	if member.UserID != nil {
		s.notifier.Notify(*member.UserID, NewTaskAcceptedEvent(project, &task))
	}
	return nil
}

// ListByMember returns the tasks assigned to a member seat.
func (s *TaskService) ListByMember(memberID uint) ([]models.ProjectTask, error) {
	var member models.ProjectMember
	if err := s.db.First(&member, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var tasks []models.ProjectTask
	err := s.db.Where("member_id = ?", memberID).Order("created_at ASC").Find(&tasks).Error
	return tasks, err
}
