package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/iffypixy/metaorta/internal/middleware"
	"github.com/iffypixy/metaorta/internal/services"
	"github.com/iffypixy/metaorta/pkg/response"
	"gorm.io/gorm"
)

type FriendHandler struct {
	friendService *services.FriendService
}

func NewFriendHandler(db *gorm.DB, notifier services.Notifier) *FriendHandler {
	return &FriendHandler{
		friendService: services.NewFriendService(db, notifier),
	}
}

type sendFriendRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// Send files a friend request
// POST /api/friends/requests
func (h *FriendHandler) Send(c *gin.Context) {
	var req sendFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	request, err := h.friendService.Send(middleware.GetUserID(c), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, request)
}

// ListIncoming returns pending requests addressed to the caller
// GET /api/friends/requests
func (h *FriendHandler) ListIncoming(c *gin.Context) {
	requests, err := h.friendService.ListIncoming(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, requests)
}

// Accept converts a request into a friendship
// PUT /api/friends/requests/:id/accept
func (h *FriendHandler) Accept(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	friendship, err := h.friendService.Accept(middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, friendship)
}

// Decline deletes a pending request
// PUT /api/friends/requests/:id/decline
func (h *FriendHandler) Decline(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.friendService.Decline(middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	response.NoContent(c)
}

// List returns the caller's friends
// GET /api/friends
func (h *FriendHandler) List(c *gin.Context) {
	friends, err := h.friendService.List(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, friends)
}
