package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/iffypixy/metaorta/internal/middleware"
	"github.com/iffypixy/metaorta/internal/services"
	"github.com/iffypixy/metaorta/pkg/response"
	"gorm.io/gorm"
)

type RequestHandler struct {
	requestService *services.RequestService
}

func NewRequestHandler(db *gorm.DB, notifier services.Notifier) *RequestHandler {
	return &RequestHandler{
		requestService: services.NewRequestService(db, notifier),
	}
}

// Send files a join request for an open slot
// POST /api/members/:id/requests
func (h *RequestHandler) Send(c *gin.Context) {
	memberID, ok := pathID(c, "id")
	if !ok {
		return
	}

	actorID := middleware.GetUserID(c)
	var request interface{}
	err := services.WithRetry(func() error {
		r, err := h.requestService.Send(actorID, memberID)
		request = r
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, request)
}

// List returns the project's pending requests, founder-only
// GET /api/projects/:id/requests
func (h *RequestHandler) List(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	requests, err := h.requestService.ListByProject(middleware.GetUserID(c), projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, requests)
}

// Accept converts a request into a membership
// PUT /api/projects/:id/requests/:requestId/accept
func (h *RequestHandler) Accept(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	requestID, ok := pathID(c, "requestId")
	if !ok {
		return
	}

	actorID := middleware.GetUserID(c)
	var member interface{}
	err := services.WithRetry(func() error {
		m, err := h.requestService.Accept(actorID, projectID, requestID)
		member = m
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, member)
}

// Decline removes a single request
// PUT /api/projects/:id/requests/:requestId/decline
func (h *RequestHandler) Decline(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	requestID, ok := pathID(c, "requestId")
	if !ok {
		return
	}

	actorID := middleware.GetUserID(c)
	err := services.WithRetry(func() error {
		return h.requestService.Decline(actorID, projectID, requestID)
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response.NoContent(c)
}
