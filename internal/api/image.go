package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aduvert/recettes/internal/service"
)

// ImageHandler serves the image upload and removal routes.
type ImageHandler struct {
	images service.ImageStore
	logger zerolog.Logger
}

// NewImageHandler creates a new image handler.
func NewImageHandler(images service.ImageStore, logger zerolog.Logger) *ImageHandler {
	return &ImageHandler{
		images: images,
		logger: logger.With().Str("component", "image_handler").Logger(),
	}
}

// RegisterRoutes registers the image routes on the API group.
func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/upload-image", h.UploadImage)
	router.DELETE("/delete-image", h.DeleteImage)
}

// DeleteImageRequest is the body of a delete-image request.
type DeleteImageRequest struct {
	ImageURL string `json:"imageUrl"`
}

func (h *ImageHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune image fournie"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'upload de l'image"})
		return
	}
	defer func() { _ = src.Close() }()

	imageURL, err := h.images.Save(c.Request.Context(), src, file.Filename, file.Header.Get("Content-Type"), file.Size)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"imageUrl": imageURL,
		"message":  "Image uploadée avec succès",
	})
}

func (h *ImageHandler) DeleteImage(c *gin.Context) {
	var req DeleteImageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ImageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL d'image requise"})
		return
	}

	if err := h.images.Delete(c.Request.Context(), req.ImageURL); err != nil {
		h.logger.Error().Err(err).Str("image_url", req.ImageURL).Msg("image deletion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression de l'image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Image supprimée avec succès",
	})
}
