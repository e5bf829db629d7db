package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vaaltic/crm/internal/models"
	"github.com/vaaltic/crm/internal/repositories"
	"github.com/vaaltic/crm/internal/services"
)

// PrincipalKey is the gin context key the authenticated user lives under.
const PrincipalKey = "principal"

// endpoints reachable without a token
func isPublicPath(path string) bool {
	switch path {
	case "/api/auth/login", "/api/auth/register":
		return true
	}
	if strings.HasPrefix(path, "/swagger") ||
		strings.HasPrefix(path, "/healthz") ||
		strings.HasPrefix(path, "/metrics") {
		return true
	}
	return false
}

// AuthMiddleware validates the bearer token and re-resolves the principal
// from the credential store on every request. The token is trusted only
// for its subject; role and active status come from the fresh lookup, so
// deactivating a user takes effect immediately without token revocation.
func AuthMiddleware(auth *services.AuthService, users repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		email, err := auth.ParseSubject(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := users.GetByEmail(email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account is deactivated"})
			return
		}

		c.Set(PrincipalKey, user)
		c.Next()
	}
}

// Principal extracts the authenticated user set by AuthMiddleware.
func Principal(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
