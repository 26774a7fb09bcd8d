package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/middleware"
	"tikoncha/internal/models"
)

type TokenService interface {
	Issue(user *models.User) (*models.TokenResponse, error)
	Decode(token string) (*middleware.Claims, error)
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
	leeway time.Duration
}

func NewTokenService(secret []byte, ttl, leeway time.Duration) TokenService {
	return &tokenService{secret: secret, ttl: ttl, leeway: leeway}
}

func (s *tokenService) Issue(user *models.User) (*models.TokenResponse, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)
	claims := middleware.Claims{
		Role:  user.RoleName,
		Phone: user.PhoneNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &models.TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt.Unix(),
		UserID:      user.ID,
		UserRole:    user.RoleName,
	}, nil
}

// Decode validates signature and expiry. Причина отказа наружу не отдаётся.
func (s *tokenService) Decode(raw string) (*middleware.Claims, error) {
	claims, err := middleware.DecodeToken(s.secret, s.leeway, raw)
	if err != nil {
		return nil, apperrors.E(apperrors.Unauthorized, "could not validate credentials")
	}
	return claims, nil
}
