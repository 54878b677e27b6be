package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"sevasangh_backend/internals/configs"
	userModel "sevasangh_backend/internals/features/users/user/model"
)

const AccessTokenTTL = 12 * time.Hour

// CreateAccessToken issues the signed JWT carried by the back-office UI.
func CreateAccessToken(u *userModel.UserModel) (string, error) {
	if configs.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret is not configured")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":   u.ID,
		"user_name": u.UserName,
		"role":      u.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(AccessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

// TokenExpiry reads exp from an already-verified token string without
// re-validating; used when blacklisting on logout.
func TokenExpiry(tokenString string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	}); err != nil {
		return time.Now().Add(AccessTokenTTL)
	}
	if exp, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(exp), 0)
	}
	return time.Now().Add(AccessTokenTTL)
}
