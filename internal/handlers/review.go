package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/iffypixy/metaorta/internal/middleware"
	"github.com/iffypixy/metaorta/internal/services"
	"github.com/iffypixy/metaorta/pkg/response"
	"gorm.io/gorm"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(db *gorm.DB, notifier services.Notifier) *ReviewHandler {
	return &ReviewHandler{
		reviewService: services.NewReviewService(db, notifier),
	}
}

// Create leaves founder feedback about an occupied member
// POST /api/members/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	memberID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.LeaveFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actorID := middleware.GetUserID(c)
	var review interface{}
	err := services.WithRetry(func() error {
		r, err := h.reviewService.LeaveFeedback(actorID, memberID, *req.Like, req.Description)
		review = r
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, review)
}

// ListByMember returns the reviews left for a member
// GET /api/members/:id/reviews
func (h *ReviewHandler) ListByMember(c *gin.Context) {
	memberID, ok := pathID(c, "id")
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListByMember(memberID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, reviews)
}
