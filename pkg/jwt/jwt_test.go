package jwt

import (
	"testing"
	"time"

	"github.com/caadpo/genesis-backend/config"
	"github.com/caadpo/genesis-backend/internal/model"
)

func testManager(ttl time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-at-least-16-chars",
		AccessTokenTTL:  ttl,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func testActor() model.Actor {
	return model.Actor{
		UserID:        42,
		Role:          model.RoleDirector,
		OrgUnitID:     7,
		DirectorateID: 3,
		ServiceNumber: 123456,
	}
}

func TestManager_GenerateAndParse(t *testing.T) {
	m := testManager(15 * time.Minute)

	token, err := m.GenerateAccessToken(testActor())
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.TokenType != "access" {
		t.Errorf("expected token_type=access, got %s", claims.TokenType)
	}
	actor := claims.Actor()
	if actor.UserID != 42 || actor.Role != model.RoleDirector {
		t.Errorf("actor round trip mismatch: %+v", actor)
	}
	if actor.OrgUnitID != 7 || actor.DirectorateID != 3 {
		t.Errorf("scope round trip mismatch: %+v", actor)
	}
}

func TestManager_ParseExpired(t *testing.T) {
	m := testManager(-time.Minute)

	token, err := m.GenerateAccessToken(testActor())
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := m.ParseToken(token); err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestManager_ParseForeignSecret(t *testing.T) {
	m := testManager(15 * time.Minute)
	other := NewManager(&config.AuthConfig{
		JWTSecret:       "another-secret-16-chars-long",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})

	token, err := other.GenerateAccessToken(testActor())
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := m.ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
