package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// BreakerStater reports a circuit breaker state by name.
type BreakerStater interface {
	BreakerState() string
}

// Health returns a JSON health check response.
// Checks DB and Redis connectivity and reports the mail circuit; never exposes
// credentials or internals. An open mail circuit does not fail the check.
func Health(db *gorm.DB, rdb *redis.Client, mail BreakerStater) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "error"
		if db != nil {
			if sqlDB, err := db.DB(); err == nil && sqlDB.PingContext(ctx) == nil {
				dbStatus = "connected"
			}
		}

		redisStatus := "connected"
		if rdb == nil {
			redisStatus = "disabled"
		} else if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus == "error" {
			status = http.StatusServiceUnavailable
		}

		body := gin.H{
			"ok":    status == http.StatusOK,
			"db":    dbStatus,
			"redis": redisStatus,
		}
		if mail != nil {
			body["mail_circuit"] = mail.BreakerState()
		}
		c.JSON(status, body)
	}
}
