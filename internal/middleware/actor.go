package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	actorKey = "actorID"

	// ActorHeader carries the acting user's identifier, propagated by the
	// surrounding application. The ledger records it on audit fields; it does
	// not authenticate anyone.
	ActorHeader = "X-Actor-ID"

	// SystemActor attributes writes with no propagated identity.
	SystemActor = "system"
)

// ActorMiddleware resolves the acting user for audit attribution.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(ActorHeader)
		if actor == "" {
			actor = SystemActor
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// GetActorFromContext returns the acting user recorded by ActorMiddleware.
func GetActorFromContext(c *gin.Context) string {
	if actor, ok := c.Get(actorKey); ok {
		if s, ok := actor.(string); ok && s != "" {
			return s
		}
	}
	return SystemActor
}
