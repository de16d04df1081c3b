package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Headers sent by the scheduler on every job trigger
const (
	HeaderInternalRequest = "X-Internal-Request"
	HeaderCronAuthToken   = "X-CRON-Auth-Token"
)

// requireCronAuth rejects requests that are not marked internal or carry the wrong token
func requireCronAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		internal := strings.EqualFold(c.GetHeader(HeaderInternalRequest), "true")
		provided := c.GetHeader(HeaderCronAuthToken)

		if !internal || token == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			log.WithFields(log.Fields{
				"path":     c.Request.URL.Path,
				"clientIp": c.ClientIP(),
			}).Warn("Unauthorized job trigger")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Unauthorized request."})
			return
		}

		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("HTTP request")
	}
}
