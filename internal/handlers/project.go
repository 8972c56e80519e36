package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/iffypixy/metaorta/internal/config"
	"github.com/iffypixy/metaorta/internal/middleware"
	"github.com/iffypixy/metaorta/internal/services"
	"github.com/iffypixy/metaorta/pkg/response"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService    *services.ProjectService
	slotService       *services.SlotService
	membershipService *services.MembershipService
}

func NewProjectHandler(db *gorm.DB, cfg *config.Config, notifier services.Notifier) *ProjectHandler {
	return &ProjectHandler{
		projectService:    services.NewProjectService(db, cfg.Projects.InitialSlots),
		slotService:       services.NewSlotService(db),
		membershipService: services.NewMembershipService(db, notifier),
	}
}

// List returns paginated projects
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	var req services.ProjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.projectService.List(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}

// GetByID returns a project with its cards and slots
// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, project)
}

// Create creates a new project
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actorID := middleware.GetUserID(c)
	var project interface{}
	err := services.WithRetry(func() error {
		p, err := h.projectService.Create(&req, actorID)
		project = p
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, project)
}

// Update edits a project, founder-only
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Update(middleware.GetUserID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, project)
}

// OpenSlot opens a new role slot on the project
// POST /api/projects/:id/slots
func (h *ProjectHandler) OpenSlot(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.OpenSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actorID := middleware.GetUserID(c)
	var member interface{}
	err := services.WithRetry(func() error {
		m, err := h.slotService.OpenSlot(actorID, id, &req)
		member = m
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, member)
}

// AddCapacity grows a card's slot capacity, applied after payment
// confirmation by the payment callback boundary
// POST /api/cards/:id/slots
func (h *ProjectHandler) AddCapacity(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.AddCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	card, err := h.slotService.AddCapacity(middleware.GetUserID(c), id, req.Slots)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, card)
}

// ListMembers returns the project's member slots and seats
// GET /api/projects/:id/members
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	members, err := h.membershipService.ListMembers(id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, members)
}
