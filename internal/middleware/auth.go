package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/services"
)

const identityKey = "identity"

// Identity is the authenticated caller stored on the Gin context.
type Identity struct {
	UserID   uint
	Username string
	Email    string
	Role     string
	Scope    string
	TokenID  string
}

// HasRole reports whether the identity's token scope carries the given role
// code, for example "ADMIN".
func (i Identity) HasRole(roleCode string) bool {
	want := "ROLE_" + roleCode
	for _, granted := range strings.Fields(i.Scope) {
		if granted == want {
			return true
		}
	}
	return false
}

// Auth returns a middleware that verifies the bearer token on every request
// and stores the caller identity in the context. Verification includes the
// denylist, so a logged-out token is rejected even before its expiry.
func Auth(auth services.AuthServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(apperrors.ErrUnauthenticated.StatusCode, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrUnauthenticated.Code,
					"message": apperrors.ErrUnauthenticated.Message,
				},
			})
			return
		}

		claims, err := auth.VerifyToken(token, false)
		if err != nil {
			c.AbortWithStatusJSON(apperrors.ErrUnauthenticated.StatusCode, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrUnauthenticated.Code,
					"message": apperrors.ErrUnauthenticated.Message,
				},
			})
			return
		}

		c.Set(identityKey, Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
			Role:     claims.Role,
			Scope:    claims.Scope,
			TokenID:  claims.ID,
		})
		c.Next()
	}
}

// RequireRole returns a middleware that rejects callers whose token scope
// does not carry the given role. It must run after Auth.
func RequireRole(roleCode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok || !identity.HasRole(roleCode) {
			c.AbortWithStatusJSON(apperrors.ErrForbidden.StatusCode, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrForbidden.Code,
					"message": apperrors.ErrForbidden.Message,
				},
			})
			return
		}
		c.Next()
	}
}

// CurrentIdentity reads the authenticated caller from the context.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
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
