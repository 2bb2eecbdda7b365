package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graficaflow/grafica-api/internal/events"
	"github.com/graficaflow/grafica-api/internal/services"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// @Summary Health Check
// @Description Returns service liveness
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

type JobHandler struct {
	jobService *services.JobService
	broker     *events.Broker
}

func NewJobHandler(jobService *services.JobService, broker *events.Broker) *JobHandler {
	return &JobHandler{jobService: jobService, broker: broker}
}

// @Summary Worker Stats
// @Description Returns background worker pool statistics and the number
// of connected event-feed subscribers
// @Tags Jobs
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /jobs/stats [get]
func (h *JobHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"worker":          h.jobService.Stats(),
		"sse_subscribers": h.broker.SubscriberCount(),
	})
}
