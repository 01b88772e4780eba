package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/careplan-api/internal/models"
	appErrors "github.com/noah-isme/careplan-api/pkg/errors"
	"github.com/noah-isme/careplan-api/pkg/response"
)

const (
	// ContextUserKey is the gin context key storing JWT claims.
	ContextUserKey = "currentUser"
	// ContextTokenKey stores the raw bearer token for upstream calls such as sign-out.
	ContextTokenKey = "accessToken"
)

// TokenValidator verifies an access token.
type TokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// PrivilegeResolver looks up the privilege level stored for a user.
type PrivilegeResolver interface {
	Privilege(ctx context.Context, userID string) (models.ProfileRole, error)
}

// JWT protects routes by requiring a valid access token. When privileges is
// set the caller's stored role is attached to the claims.
func JWT(tokens TokenValidator, privileges PrivilegeResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing or invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		attach(c, token, claims, privileges)
		c.Next()
	}
}

// OptionalJWT attaches claims when present but does not block.
func OptionalJWT(tokens TokenValidator, privileges PrivilegeResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		attach(c, token, claims, privileges)
		c.Next()
	}
}

// CurrentUser returns the verified claims, or nil when the request carries no session.
func CurrentUser(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*models.JWTClaims)
	return claims
}

// AccessToken returns the bearer token attached by JWT.
func AccessToken(c *gin.Context) string {
	return c.GetString(ContextTokenKey)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func attach(c *gin.Context, token string, claims *models.JWTClaims, privileges PrivilegeResolver) {
	if privileges != nil {
		role, err := privileges.Privilege(c.Request.Context(), claims.UserID)
		if err != nil {
			// degrade to Normal; the logger middleware reports c.Errors
			_ = c.Error(err)
		} else {
			claims.Privilege = role
		}
	}
	c.Set(ContextUserKey, claims)
	c.Set(ContextTokenKey, token)
}
