package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graficaflow/grafica-api/internal/events"
)

type EventsHandler struct {
	broker *events.Broker
}

func NewEventsHandler(broker *events.Broker) *EventsHandler {
	return &EventsHandler{broker: broker}
}

// @Summary Change Feed
// @Description Server-sent event stream of data changes, used by open
// views to reload affected collections
// @Tags Events
// @Produce text/event-stream
// @Success 200 {string} string
// @Security BearerAuth
// @Router /events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	ch, cancel := h.broker.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	// Heartbeat keeps proxies from closing idle streams
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			return true
		case event, ok := <-ch:
			if !ok {
				return false
			}
			payload, err := json.Marshal(event)
			if err != nil {
				return true
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Topic, payload)
			return true
		}
	})
}
