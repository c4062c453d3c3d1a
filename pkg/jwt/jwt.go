package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/caadpo/genesis-backend/config"
	"github.com/caadpo/genesis-backend/internal/model"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carries the actor descriptor the core consumes on every request.
type Claims struct {
	UserID        uint       `json:"user_id"`
	Role          model.Role `json:"role"`
	OrgUnitID     uint       `json:"org_unit_id"`
	DirectorateID uint       `json:"directorate_id"`
	ServiceNumber int        `json:"service_number"`
	TokenType     string     `json:"token_type"` // "access" | "refresh"
	jwtv5.RegisteredClaims
}

// Actor converts the claims back into the authorization descriptor.
func (c *Claims) Actor() model.Actor {
	return model.Actor{
		UserID:        c.UserID,
		Role:          c.Role,
		OrgUnitID:     c.OrgUnitID,
		DirectorateID: c.DirectorateID,
		ServiceNumber: c.ServiceNumber,
	}
}

// Manager issues and validates tokens.
type Manager struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewManager builds a Manager from config.
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:          []byte(cfg.JWTSecret),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// GenerateAccessToken signs a short-lived access token for the actor.
func (m *Manager) GenerateAccessToken(actor model.Actor) (string, error) {
	return m.generate(actor, "access", m.accessTokenTTL)
}

// GenerateRefreshToken signs a refresh token for the actor.
func (m *Manager) GenerateRefreshToken(actor model.Actor) (string, error) {
	return m.generate(actor, "refresh", m.refreshTokenTTL)
}

func (m *Manager) generate(actor model.Actor, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:        actor.UserID,
		Role:          actor.Role,
		OrgUnitID:     actor.OrgUnitID,
		DirectorateID: actor.DirectorateID,
		ServiceNumber: actor.ServiceNumber,
		TokenType:     tokenType,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
			Issuer:    "genesis-backend",
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken validates a token string and returns its claims.
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
