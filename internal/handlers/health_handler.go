package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthCheck reports process liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "catalog-service",
	})
}

// ReadyCheck reports whether the backing stores are reachable. Redis being
// down degrades caching but does not fail readiness.
func ReadyCheck(db *gorm.DB, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"db":     "down",
			})
			return
		}

		cache := "ok"
		if err := redisClient.Ping(ctx).Err(); err != nil {
			cache = "down"
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"db":     "ok",
			"cache":  cache,
		})
	}
}
