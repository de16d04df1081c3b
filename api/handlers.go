package api

import (
	"net/http"
	"time"

	"backendjobs/application"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// PathDateLayout is the MM-DD-YYYY date accepted in the trigger path
const PathDateLayout = "01-02-2006"

type handlers struct {
	dispatcher application.JobDispatcher
	now        func() time.Time
}

func (h *handlers) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "healthy"})
}

// executeJob starts the executions due on the path date, or today without one
func (h *handlers) executeJob(c *gin.Context) {
	date := h.now().UTC()
	if raw := c.Param("date"); raw != "" {
		parsed, err := time.Parse(PathDateLayout, raw)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Date must be in MM-DD-YYYY format."})
			return
		}
		date = parsed
	}

	count, err := h.dispatcher.Dispatch(c.Request.Context(), date)
	if err != nil {
		log.WithFields(log.Fields{
			"date":  date.Format(PathDateLayout),
			"error": err,
		}).Error("Failed to dispatch jobs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch scheduled jobs."})
		return
	}

	log.WithFields(log.Fields{
		"date":       date.Format(PathDateLayout),
		"executions": count,
	}).Info("Job execution started")
	c.JSON(http.StatusOK, gin.H{"message": "Job execution started in background."})
}
