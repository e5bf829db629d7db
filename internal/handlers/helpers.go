package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vaaltic/crm/internal/middleware"
	"github.com/vaaltic/crm/internal/models"
)

// principal aborts with 401 when no authenticated user is in context;
// that only happens when a route was wired outside the auth middleware.
func principal(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.Principal(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return nil, false
	}
	return user, true
}

// respondError maps the service error taxonomy onto HTTP statuses.
// Conflicts surface as 400 because the reference API reports duplicate
// registration that way.
func respondError(c *gin.Context, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to perform this action"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
