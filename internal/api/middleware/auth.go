package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/caadpo/genesis-backend/internal/model"
	"github.com/caadpo/genesis-backend/pkg/jwt"
	"github.com/caadpo/genesis-backend/pkg/redis"
	"github.com/caadpo/genesis-backend/pkg/response"
)

const (
	// ActorKey is the gin context key holding the authenticated actor.
	ActorKey = "actor"
	// ClaimsKey holds the raw token claims (logout needs the JWT ID).
	ClaimsKey = "claims"
)

// JWTAuth extracts and validates the access token from
// Authorization: Bearer <token>. cache may be nil; without Redis the
// blacklist check is skipped and revocation degrades to token expiry.
func JWTAuth(jwtMgr *jwt.Manager, cache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "invalid or expired token")
			c.Abort()
			return
		}
		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "wrong token type")
			c.Abort()
			return
		}

		if cache != nil {
			blacklisted, err := cache.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blacklisted {
				response.Unauthorized(c, 10002, "token revoked")
				c.Abort()
				return
			}
			// a Redis read failure must not lock everyone out
		}

		c.Set(ActorKey, claims.Actor())
		c.Set(ClaimsKey, claims)

		c.Next()
	}
}

// RoleAuth rejects requests whose actor holds none of the allowed roles.
// Row-level scoping (own unit, own directorate) stays in the service layer;
// this only gates whole endpoints.
func RoleAuth(allowed ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ActorKey)
		if !exists {
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
			return
		}

		actor := v.(model.Actor)
		for _, r := range allowed {
			if actor.Role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "insufficient role")
		c.Abort()
	}
}
