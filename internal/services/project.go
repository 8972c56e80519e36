package services

import (
	"time"

	"github.com/iffypixy/metaorta/internal/models"
	"gorm.io/gorm"
)

type ProjectService struct {
	db           *gorm.DB
	initialSlots int
}

func NewProjectService(db *gorm.DB, initialSlots int) *ProjectService {
	if initialSlots <= 0 {
		initialSlots = models.DefaultCardSlots
	}
	return &ProjectService{db: db, initialSlots: initialSlots}
}

type ProjectListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Name     string `form:"name"`
	Location string `form:"location"`
}

type ProjectListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.Project `json:"items"`
}

type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Location    string     `json:"location"`
	Avatar      string     `json:"avatar"`
}

type UpdateProjectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Location    string     `json:"location"`
	Avatar      string     `json:"avatar"`
}

// List returns paginated projects
func (s *ProjectService) List(req *ProjectListRequest) (*ProjectListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	var projects []models.Project
	var total int64

	query := s.db.Model(&models.Project{})

	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.Location != "" {
		query = query.Where("location LIKE ?", "%"+req.Location+"%")
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").
		Preload("Founder").Find(&projects).Error; err != nil {
		return nil, err
	}

	return &ProjectListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    projects,
	}, nil
}

// GetByID returns a project with its cards and member slots
func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.Preload("Founder").
		Preload("Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order("project_cards.created_at ASC")
		}).
		Preload("Cards.Members").
		Preload("Cards.Members.User").
		First(&project, id).Error; err != nil {
		return nil, ErrNotFound
	}
	return &project, nil
}

// Create creates a project with its first card and the initial free-slot
// budget.
func (s *ProjectService) Create(req *CreateProjectRequest, founderID uint) (*models.Project, error) {
	project := models.Project{
		Name:        req.Name,
		FounderID:   founderID,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Location:    req.Location,
		Avatar:      req.Avatar,
		Slots:       s.initialSlots,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		card := models.ProjectCard{ProjectID: project.ID, Slots: models.DefaultCardSlots}
		return tx.Create(&card).Error
	})
	if err != nil {
		return nil, err
	}

	return &project, nil
}

// Update applies a founder-only partial edit
func (s *ProjectService) Update(actorID, id uint, req *UpdateProjectRequest) (*models.Project, error) {
	project, role, err := DeriveRole(s.db, id, actorID)
	if err != nil {
		return nil, err
	}
	if !role.IsFounder() {
		return nil, ErrPermissionDenied
	}

	updates := make(map[string]interface{})

	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.StartDate != nil {
		updates["start_date"] = req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = req.EndDate
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}

	if len(updates) > 0 {
		if err := s.db.Model(project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return project, nil
}

// ListByUser returns the projects a user founded or holds a seat in.
func (s *ProjectService) ListByUser(userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.
		Where("founder_id = ?", userID).
		Or("id IN (?)", s.db.Model(&models.ProjectMember{}).
			Select("project_id").
			Where("user_id = ? AND is_occupied = ?", userID, true)).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}
