package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/garagem-conectada/garagem-api/internal/models"
)

func newTestService() *Service {
	return NewService("test-secret", time.Hour)
}

func TestNewService_DefaultExpiry(t *testing.T) {
	service := NewService("secret", 0)
	assert.Equal(t, 24*time.Hour, service.tokenExp)
}

func TestService_HashPassword(t *testing.T) {
	service := newTestService()

	password := "testpassword123"
	hash, err := service.HashPassword(password)

	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)
}

func TestService_CheckPassword(t *testing.T) {
	service := newTestService()

	password := "testpassword123"
	hash, _ := service.HashPassword(password)

	assert.True(t, service.CheckPassword(password, hash))
	assert.False(t, service.CheckPassword("wrongpassword", hash))
}

func TestService_GenerateAndValidateToken(t *testing.T) {
	service := newTestService()

	user := &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Test User",
		Email: "test@example.com",
	}

	token, err := service.GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Greater(t, claims.Exp, time.Now().Unix())
}

func TestService_ValidateToken_BearerPrefix(t *testing.T) {
	service := newTestService()
	user := &models.User{ID: primitive.NewObjectID(), Email: "test@example.com"}

	token, _ := service.GenerateToken(user)
	claims, err := service.ValidateToken("Bearer " + token)

	assert.NoError(t, err)
	assert.Equal(t, user.Email, claims.Email)
}

func TestService_ValidateToken_Invalid(t *testing.T) {
	service := newTestService()

	_, err := service.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_ValidateToken_Expired(t *testing.T) {
	// Bypass the constructor's expiry floor to mint an already-expired token.
	service := &Service{jwtSecret: []byte("test-secret"), tokenExp: -time.Hour}
	user := &models.User{ID: primitive.NewObjectID(), Email: "test@example.com"}

	token, _ := service.GenerateToken(user)
	_, err := service.ValidateToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestService_ValidateToken_WrongSecret(t *testing.T) {
	service := newTestService()
	other := NewService("other-secret", time.Hour)
	user := &models.User{ID: primitive.NewObjectID(), Email: "test@example.com"}

	token, _ := other.GenerateToken(user)
	_, err := service.ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_ExtractTokenFromHeader(t *testing.T) {
	service := newTestService()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid header", "Bearer abc123", "abc123", false},
		{"empty header", "", "", true},
		{"missing scheme", "abc123", "", true},
		{"wrong scheme", "Basic abc123", "", true},
		{"empty token", "Bearer ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}

func TestService_ValidateEmail(t *testing.T) {
	service := newTestService()

	assert.NoError(t, service.ValidateEmail("user@example.com"))
	assert.Error(t, service.ValidateEmail("not-an-email"))
	assert.Error(t, service.ValidateEmail("@example.com"))
	assert.Error(t, service.ValidateEmail("user@nodot"))
}

func TestService_ValidatePassword(t *testing.T) {
	service := newTestService()

	assert.NoError(t, service.ValidatePassword("longenough"))
	assert.Error(t, service.ValidatePassword("short"))
}
