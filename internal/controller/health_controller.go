package controller

import (
	"atomic_sensei_backend/internal/util"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const healthProbeTimeout = 2 * time.Second

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb}
}

// @Summary Health check
// @Description Reports the state of the database and Redis
// @Tags System
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	probeCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthProbeTimeout)
	defer cancel()

	components := gin.H{
		"database": componentState(c.pingDatabase(probeCtx)),
		"redis":    componentState(c.Redis.Ping(probeCtx).Err()),
	}
	for _, state := range components {
		if state != "up" {
			ctx.JSON(http.StatusServiceUnavailable, util.Response{
				Code:    http.StatusServiceUnavailable,
				Message: "Service degraded",
				Data:    gin.H{"status": "degraded", "components": components},
			})
			return
		}
	}

	util.Success(ctx, gin.H{"status": "ok", "components": components})
}

func (c *HealthController) pingDatabase(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func componentState(err error) string {
	if err != nil {
		return "down"
	}
	return "up"
}
