package middleware

import (
	"net/http"
	"strings"

	"github.com/salonops/backend/internal/infrastructure/auth"
	"github.com/salonops/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUsernameKey = "jwt_username"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// JWTAuth returns a middleware that requires a valid bearer token.
// On success the claims and actor identity are stored in the gin context.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			abortUnauthorized(c, "ERR_UNAUTHORIZED", "Missing or malformed authorization header")
			return
		}

		claims, err := jwtService.Validate(token)
		if err != nil {
			log := logger.FromContext(c.Request.Context())
			log.Warn("Token validation failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)

			code := "ERR_TOKEN_INVALID"
			if err == auth.ErrExpiredToken {
				code = "ERR_TOKEN_EXPIRED"
			}
			abortUnauthorized(c, code, "Invalid or expired token")
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth parses a bearer token when present but never rejects the
// request. Handlers fall back to the X-User-ID header in development.
func OptionalJWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token != "" {
			if claims, err := jwtService.Validate(token); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// GetJWTClaims retrieves the validated claims from the gin context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if typed, ok := claims.(*auth.Claims); ok {
			return typed
		}
	}
	return nil
}

// GetJWTUserID retrieves the authenticated user ID from the gin context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTUsername retrieves the authenticated username from the gin context
func GetJWTUsername(c *gin.Context) string {
	return c.GetString(JWTUsernameKey)
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader(AuthHeaderKey)
	if header == "" || !strings.HasPrefix(header, BearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(header, BearerPrefix)
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTUsernameKey, claims.Username)
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
