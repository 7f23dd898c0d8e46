package utils

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserIDKey = contextKey("userID")
const UserRoleKey = contextKey("userRole")
const RequestIDKey = contextKey("requestID")

// Token lifetime. Sessions are stateless (no revocation store), so expiry is
// the only invalidation mechanism.
const tokenValidity = 7 * 24 * time.Hour

// GenerateToken issues a signed bearer token carrying user id, email and role.
func GenerateToken(userID uint, email, role string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET não configurado")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   int64(userID),
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenValidity).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and verifies a bearer token, returning the subject user
// id and role.
func ValidateToken(tokenStr string) (userID uint, role string, err error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return 0, "", errors.New("JWT_SECRET não configurado")
	}

	token, err := jwt.ParseWithClaims(tokenStr, jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Require exact HS256 to avoid algorithm confusion.
		if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", errors.New("token inválido")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("token inválido")
	}

	switch v := claims["sub"].(type) {
	case float64:
		userID = uint(v)
	case int64:
		userID = uint(v)
	default:
		return 0, "", errors.New("token inválido")
	}
	role, _ = claims["role"].(string)
	return userID, role, nil
}

// BearerToken extracts the raw token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer ")), true
}

// GetUserID returns the authenticated user id injected by the auth middleware.
func GetUserID(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(UserIDKey).(uint)
	return id, ok
}

// GetUserRole returns the authenticated role injected by the auth middleware.
func GetUserRole(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(UserRoleKey).(string)
	return role, ok
}
