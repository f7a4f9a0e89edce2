package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aduvert/recettes/internal/service"
)

// writeServiceError translates the service error taxonomy into the JSON
// error contract: ValidationError 400, ErrNotFound 404, anything else 500.
func writeServiceError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	var uErr *service.UploadError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
	case errors.As(err, &uErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": uErr.Message})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recette non trouvée"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
