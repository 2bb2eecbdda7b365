package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/graficaflow/grafica-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates the shop operator. This is a single-tenant
// system: the only credential pair comes from configuration, hashed at
// startup so the plain password never sits in memory longer than needed.
type AuthService struct {
	cfg          *config.Config
	passwordHash []byte
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.Config) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{cfg: cfg, passwordHash: hash}, nil
}

// LoginResult represents the result of a login attempt
type LoginResult struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login verifies the operator credentials and returns a JWT
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email != s.cfg.AdminEmail {
		return nil, errors.New("credenciais inválidas")
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return nil, errors.New("credenciais inválidas")
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour)
	token, err := s.generateJWT(email, expiresAt)
	if err != nil {
		return nil, errors.New("erro ao gerar token")
	}

	return &LoginResult{
		Token:     token,
		Email:     email,
		ExpiresAt: expiresAt,
	}, nil
}

// generateJWT creates a new signed token for the operator
func (s *AuthService) generateJWT(email string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   expiresAt.Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
