package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iffypixy/metaorta/internal/services"
	"github.com/iffypixy/metaorta/internal/utils"
	"github.com/iffypixy/metaorta/pkg/logger"
	"github.com/iffypixy/metaorta/pkg/response"
)

// SSEHandler handles Server-Sent Events for real-time notifications
type SSEHandler struct {
	hub *services.Hub
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(hub *services.Hub) *SSEHandler {
	return &SSEHandler{hub: hub}
}

// StreamEvents handles SSE connections for the authenticated user's events.
// EventSource cannot set headers, so the token is also accepted as a query
// parameter.
func (h *SSEHandler) StreamEvents(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}

	if token == "" {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	claims, err := utils.ParseToken(token)
	if err != nil {
		response.Unauthorized(c, "Invalid token")
		return
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Header("Access-Control-Allow-Origin", "*")

	clientID := uuid.New().String()

	events := h.hub.Subscribe(claims.UserID, clientID)
	defer h.hub.Unsubscribe(claims.UserID, clientID)

	logger.Info().Uint("user_id", claims.UserID).Str("client_id", clientID).Int("total", h.hub.ClientCount()).Msg("SSE client connected")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			data, err := json.Marshal(event)
			if err != nil {
				logger.Error().Err(err).Msg("SSE marshal error")
				return true
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			c.Writer.Flush()
			return true
		case <-c.Request.Context().Done():
			logger.Info().Str("client_id", clientID).Msg("SSE client disconnected")
			return false
		}
	})
}
