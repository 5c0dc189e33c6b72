package middleware

import (
	"net/http"

	"servicehub/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only when the authenticated actor has
// one of the given user types.
func RequireRole(userTypes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
			return
		}
		for _, t := range userTypes {
			if actor.UserType == t {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "Forbidden", "role "+actor.UserType+" cannot access this resource")
	}
}
