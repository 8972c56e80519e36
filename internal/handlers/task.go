package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/iffypixy/metaorta/internal/middleware"
	"github.com/iffypixy/metaorta/internal/services"
	"github.com/iffypixy/metaorta/pkg/response"
	"gorm.io/gorm"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(db *gorm.DB, notifier services.Notifier) *TaskHandler {
	return &TaskHandler{
		taskService: services.NewTaskService(db, notifier),
	}
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ASSIGNED IN_PROGRESS DONE"`
}

// Create assigns a task to a member seat, founder-only
// POST /api/members/:id/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	memberID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actorID := middleware.GetUserID(c)
	var task interface{}
	err := services.WithRetry(func() error {
		t, err := h.taskService.Create(actorID, memberID, &req)
		task = t
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, task)
}

// ListByMember returns a member's tasks
// GET /api/members/:id/tasks
func (h *TaskHandler) ListByMember(c *gin.Context) {
	memberID, ok := pathID(c, "id")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByMember(memberID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, tasks)
}

// ChangeStatus moves a task to a new status, assignee-only
// PUT /api/tasks/:id/status
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.ChangeStatus(middleware.GetUserID(c), taskID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, task)
}

// Archive deletes an accepted task, founder-only
// DELETE /api/tasks/:id
func (h *TaskHandler) Archive(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	actorID := middleware.GetUserID(c)
	err := services.WithRetry(func() error {
		return h.taskService.Archive(actorID, taskID)
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response.NoContent(c)
}
