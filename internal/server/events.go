package server

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// heartbeatInterval keeps idle SSE connections alive through proxies.
const heartbeatInterval = 15 * time.Second

// billEvents streams change notifications for one bill as Server-Sent
// Events. The events carry no payload beyond what changed; clients are
// expected to refetch the full bill snapshot and recompute splits on every
// event (the consistency contract: notifications have no ordering or
// latency guarantee, and the snapshot is the only source of truth).
func (s *Server) billEvents(c *gin.Context) {
	sub, err := s.svc.Subscribe(c.Request.Context(), c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer sub.Cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case event, ok := <-sub.C:
			if !ok {
				return
			}
			c.SSEvent("change", event)
			c.Writer.Flush()
		case <-heartbeat.C:
			fmt.Fprint(c.Writer, ": ping\n\n")
			c.Writer.Flush()
		}
	}
}
