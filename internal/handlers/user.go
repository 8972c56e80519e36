package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/iffypixy/metaorta/internal/services"
	"github.com/iffypixy/metaorta/pkg/response"
	"gorm.io/gorm"
)

type UserHandler struct {
	authService    *services.AuthService
	historyService *services.HistoryService
	projectService *services.ProjectService
}

func NewUserHandler(db *gorm.DB, authService *services.AuthService, projectService *services.ProjectService) *UserHandler {
	return &UserHandler{
		authService:    authService,
		historyService: services.NewHistoryService(db),
		projectService: projectService,
	}
}

// GetByID returns a user's public profile
// GET /api/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.authService.GetUser(id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, user)
}

// GetHistory returns a user's role tenure
// GET /api/users/:id/history
func (h *UserHandler) GetHistory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	history, err := h.historyService.ListByUser(id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, history)
}

// GetProjects returns the projects a user founded or belongs to
// GET /api/users/:id/projects
func (h *UserHandler) GetProjects(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.authService.GetUser(id); err != nil {
		respondError(c, err)
		return
	}

	projects, err := h.projectService.ListByUser(id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, projects)
}
