package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/graficaflow/grafica-api/internal/config"
	"github.com/stretchr/testify/assert"
)

func newAuthServiceForTest(t *testing.T) *AuthService {
	cfg := &config.Config{
		AdminEmail:         "dono@grafica.local",
		AdminPassword:      "segredo123",
		JWTSecret:          "test-secret",
		JWTExpirationHours: 24,
	}
	svc, err := NewAuthService(cfg)
	assert.NoError(t, err)
	return svc
}

func TestLogin_Success(t *testing.T) {
	svc := newAuthServiceForTest(t)

	result, err := svc.Login(context.Background(), "dono@grafica.local", "segredo123")
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "dono@grafica.local", result.Email)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), result.ExpiresAt, time.Minute)

	// The token must be valid and carry the operator email
	token, err := jwt.Parse(result.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "dono@grafica.local", claims["email"])
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAuthServiceForTest(t)

	_, err := svc.Login(context.Background(), "dono@grafica.local", "errada")
	assert.Error(t, err)
	assert.Equal(t, "credenciais inválidas", err.Error())
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newAuthServiceForTest(t)

	_, err := svc.Login(context.Background(), "intruso@example.com", "segredo123")
	assert.Error(t, err)
	assert.Equal(t, "credenciais inválidas", err.Error())
}
