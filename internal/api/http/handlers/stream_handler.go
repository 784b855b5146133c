package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/offloadr/connect-api/internal/auth"
	"github.com/offloadr/connect-api/internal/domain"
	"github.com/offloadr/connect-api/internal/realtime"
	"github.com/offloadr/connect-api/internal/service"
	"github.com/offloadr/connect-api/internal/visibility"
)

const streamHeartbeat = 25 * time.Second

// StreamHandler serves the live change feed over SSE. Clients receive small
// change descriptors and re-fetch through the normal read endpoints, so the
// stream itself never carries data the caller is not allowed to see.
type StreamHandler struct {
	hub        *realtime.Hub
	workspaces *service.WorkspaceService
	logger     *zap.Logger
}

// NewStreamHandler constructs handler.
func NewStreamHandler(hub *realtime.Hub, workspaces *service.WorkspaceService, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{hub: hub, workspaces: workspaces, logger: logger}
}

// Stream handles GET /api/v1/stream. Every caller gets their own
// notification topic and the workspace index; workspace_id adds that
// workspace's channel after an access check, and team members may pass the
// global staff channel id.
func (h *StreamHandler) Stream(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	topics := []string{
		realtime.UserTopic(user.ID),
		realtime.WorkspaceIndexTopic,
	}

	if workspaceID := c.Query("workspace_id"); workspaceID != "" {
		if workspaceID == domain.GlobalStaffChannelID {
			if !visibility.CanSeeTeamChannel(user) {
				return fiber.NewError(http.StatusForbidden, http.StatusText(http.StatusForbidden))
			}
		} else {
			if _, err := h.workspaces.Get(c.Context(), user, workspaceID); err != nil {
				return err
			}
		}
		topics = append(topics, realtime.WorkspaceTopic(workspaceID))
	}

	merged := make(chan realtime.Change, 32)
	teardowns := make([]func(), 0, len(topics))
	done := make(chan struct{})
	for _, topic := range topics {
		ch, unsubscribe := h.hub.Subscribe(topic)
		teardowns = append(teardowns, unsubscribe)
		go func(ch <-chan realtime.Change) {
			for change := range ch {
				select {
				case merged <- change:
				case <-done:
					return
				}
			}
		}(ch)
	}

	logger := h.logger
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer func() {
			close(done)
			for _, teardown := range teardowns {
				teardown()
			}
		}()

		ticker := time.NewTicker(streamHeartbeat)
		defer ticker.Stop()

		for {
			select {
			case change := <-merged:
				payload, err := json.Marshal(change)
				if err != nil {
					logger.Error("marshal stream event", zap.Error(err))
					continue
				}
				fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
			case <-ticker.C:
				fmt.Fprint(w, ": keep-alive\n\n")
			}
			if err := w.Flush(); err != nil {
				// client went away
				return
			}
		}
	}))
	return nil
}
