package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/iffypixy/metaorta/internal/middleware"
	"github.com/iffypixy/metaorta/internal/services"
	"github.com/iffypixy/metaorta/pkg/response"
	"gorm.io/gorm"
)

type MemberHandler struct {
	membershipService *services.MembershipService
}

func NewMemberHandler(db *gorm.DB, notifier services.Notifier) *MemberHandler {
	return &MemberHandler{
		membershipService: services.NewMembershipService(db, notifier),
	}
}

// Remove kicks a member from the project, founder-only
// DELETE /api/projects/:id/members/:memberId
func (h *MemberHandler) Remove(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}

	actorID := middleware.GetUserID(c)
	err := services.WithRetry(func() error {
		return h.membershipService.RemoveMember(actorID, projectID, memberID)
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response.NoContent(c)
}

// Leave removes all of the caller's seats in the project
// POST /api/projects/:id/leave
func (h *MemberHandler) Leave(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	actorID := middleware.GetUserID(c)
	err := services.WithRetry(func() error {
		return h.membershipService.LeaveProject(actorID, projectID)
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response.NoContent(c)
}
