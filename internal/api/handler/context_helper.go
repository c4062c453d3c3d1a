package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/caadpo/genesis-backend/internal/api/middleware"
	"github.com/caadpo/genesis-backend/internal/model"
	"github.com/caadpo/genesis-backend/pkg/jwt"
	"github.com/caadpo/genesis-backend/pkg/response"
)

// MustGetActor extracts the authenticated actor the JWT middleware injected.
// On a miss it writes a 401 and returns ok=false; the caller should return
// immediately.
func MustGetActor(c *gin.Context) (model.Actor, bool) {
	v, exists := c.Get(middleware.ActorKey)
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return model.Actor{}, false
	}
	actor, ok := v.(model.Actor)
	if !ok {
		response.Unauthorized(c, 10002, "not authenticated")
		return model.Actor{}, false
	}
	return actor, true
}

// MustGetClaims extracts the raw token claims (logout needs the JWT ID and
// expiry, not just the actor).
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.ClaimsKey)
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	return claims, true
}

// MustParamID parses a numeric :id path parameter.
func MustParamID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
