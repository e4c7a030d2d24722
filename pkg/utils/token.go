package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pushp314/learnhub-backend/internal/config"
)

type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

func signToken(userID, email, role string, ttl time.Duration, secret string) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "learnhub-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateAccessToken issues a short-lived access token (15 minutes).
func GenerateAccessToken(userID, email, role string) (string, error) {
	return signToken(userID, email, role, accessTokenTTL, config.AppConfig.JWTSecret)
}

// GenerateRefreshToken issues a long-lived refresh token (7 days) signed with its own secret.
func GenerateRefreshToken(userID, email, role string) (string, error) {
	return signToken(userID, email, role, refreshTokenTTL, config.AppConfig.JWTRefreshSecret)
}

func parseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ValidateToken verifies an access token and returns its claims.
func ValidateToken(tokenString string) (*Claims, error) {
	return parseToken(tokenString, config.AppConfig.JWTSecret)
}

// ValidateRefreshToken verifies a refresh token against the refresh secret.
func ValidateRefreshToken(tokenString string) (*Claims, error) {
	return parseToken(tokenString, config.AppConfig.JWTRefreshSecret)
}
