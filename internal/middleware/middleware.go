package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/franciscosanchezn/pizzeria-dao/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by JWTAuth
const (
	UserIDKey   = "userID"
	UserRoleKey = "userRole"
)

var allowedRoles = map[string]bool{
	"admin": true,
	"user":  true,
}

// JWTAuth validates HMAC signed Bearer tokens and stores the subject and
// role claims in the Gin context
func JWTAuth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, models.ErrUnauthorized,
				"Missing Authorization header. A valid Bearer token is required.")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortWithError(c, http.StatusUnauthorized, models.ErrUnauthorized,
				"Authorization header must use Bearer scheme. Format: 'Bearer <token>'")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			abortWithError(c, http.StatusUnauthorized, models.ErrUnauthorized, "Bearer token is empty")
			return
		}

		claims, err := parseAndValidateJWT(tokenString, jwtSecret)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, models.ErrUnauthorized, err.Error())
			return
		}

		if err := extractAndSetClaims(c, claims); err != nil {
			abortWithError(c, http.StatusUnauthorized, models.ErrUnauthorized, err.Error())
			return
		}

		c.Next()
	}
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, models.NewAPIError(code, message))
}

// parseJWTToken validates and parses a JWT token using HMAC signing method
func parseJWTToken(tokenString string, jwtSecret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// reject algorithm confusion, only HMAC keys are configured
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v. Expected HMAC", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token parsing failed: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims format")
	}
	return claims, nil
}

// parseAndValidateJWT parses the JWT and requires an expiration in the future
func parseAndValidateJWT(tokenString string, jwtSecret []byte) (jwt.MapClaims, error) {
	claims, err := parseJWTToken(tokenString, jwtSecret)
	if err != nil {
		return nil, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp == nil {
		return nil, fmt.Errorf("token missing required 'exp' claim")
	}

	iat, err := claims.GetIssuedAt()
	if err != nil {
		return nil, fmt.Errorf("invalid iat claim: %w", err)
	}
	if iat != nil && iat.After(time.Now().Add(time.Minute)) {
		return nil, fmt.Errorf("token issued in the future")
	}

	return claims, nil
}

// extractAndSetClaims copies the subject and role claims into the Gin context
func extractAndSetClaims(c *gin.Context, claims jwt.MapClaims) error {
	user, ok := claims["user"].(string)
	if !ok || user == "" {
		sub, _ := claims.GetSubject()
		user = sub
	}
	if user == "" {
		return fmt.Errorf("token missing required 'user' or 'sub' claim")
	}
	c.Set(UserIDKey, user)

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return fmt.Errorf("token missing required 'role' claim")
	}
	if !allowedRoles[role] {
		return fmt.Errorf("invalid role '%s'. Allowed roles: admin, user", role)
	}
	c.Set(UserRoleKey, role)

	return nil
}

// GenerateToken signs an HS256 token carrying the user and role claims
func GenerateToken(jwtSecret []byte, user, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user": user,
		"role": role,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}
