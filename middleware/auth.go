package middleware

import (
	"net/http"
	"strings"

	"servicehub/models"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const actorKey = "actor"

// JWTAuthMiddleware validates the bearer token and stores the actor it
// carries in the request context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		actor, err := utils.ParseActor(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", err.Error())
			return
		}

		c.Set(actorKey, actor)
		if l, ok := c.Get(loggerKey); ok {
			if logger, ok := l.(*zap.Logger); ok {
				c.Set(loggerKey, logger.With(zap.String("actorId", actor.ID), zap.String("role", actor.UserType)))
			}
		}
		c.Next()
	}
}

// ActorFromContext returns the actor set by JWTAuthMiddleware.
func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
