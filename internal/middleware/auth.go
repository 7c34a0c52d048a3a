package middleware

import (
	"atomic_sensei_backend/internal/config"
	"atomic_sensei_backend/internal/util"
	"atomic_sensei_backend/pkg/logger"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware requires a valid bearer token and stores its claims
// under util.ContextUserKey.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		if tokenString == "" || tokenString == authHeader {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			logger.Log.Debug("Rejected token", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, claims)
		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastActive(userID uint, at time.Time) error
}

// ActivityMiddleware refreshes the caller's lastActive stamp without
// blocking the request.
func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := util.GetUserFromContext(c); claims != nil {
			userID := claims.UserID
			go func() {
				if err := repo.UpdateLastActive(userID, time.Now()); err != nil {
					logger.Log.Warn("Failed to update last active", zap.Uint("userId", userID), zap.Error(err))
				}
			}()
		}
		c.Next()
	}
}
