package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_URI", "MONGO_DB", "JWT_SECRET", "JWT_EXPIRY"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "garagem", cfg.MongoDB)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DB", "garagem_test")
	t.Setenv("JWT_SECRET", "another-secret")
	t.Setenv("JWT_EXPIRY", "1h30m")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "garagem_test", cfg.MongoDB)
	assert.Equal(t, "another-secret", cfg.JWTSecret)
	assert.Equal(t, 90*time.Minute, cfg.JWTExpiry)
}

func TestLoad_InvalidExpiry(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "soon")

	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
}
