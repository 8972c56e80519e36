package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/iffypixy/metaorta/internal/models"
	"github.com/iffypixy/metaorta/internal/services"
)

// HealthHandler provides enhanced health check endpoints.
type HealthHandler struct {
	notifier services.Notifier
}

func NewHealthHandler(notifier services.Notifier) *HealthHandler {
	return &HealthHandler{notifier: notifier}
}

// CheckHealth returns the health status of all subsystems.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	// Database check
	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	// Notification delivery mode
	notifyMode := "sync"
	if _, ok := h.notifier.(*services.QueueNotifier); ok {
		notifyMode = "async (Redis)"
	}

	// Live SSE connections
	sseClients := services.GetHub().ClientCount()

	// Requests still awaiting a verdict
	var pendingCount int64
	models.GetDB().Model(&models.ProjectRequest{}).Count(&pendingCount)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "metaorta",
		"components": gin.H{
			"database":         dbStatus,
			"notify_mode":      notifyMode,
			"sse_clients":      sseClients,
			"pending_requests": pendingCount,
		},
	})
}
