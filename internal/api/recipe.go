package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aduvert/recettes/internal/model"
	"github.com/aduvert/recettes/internal/service"
)

// RecipeHandler serves the recipe CRUD routes.
type RecipeHandler struct {
	recipes *service.RecipeService
	images  service.ImageStore
	logger  zerolog.Logger
}

// NewRecipeHandler creates a new recipe handler. The image store is only used
// for best-effort cleanup of files orphaned by deletes and image swaps.
func NewRecipeHandler(recipes *service.RecipeService, images service.ImageStore, logger zerolog.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		images:  images,
		logger:  logger.With().Str("component", "recipe_handler").Logger(),
	}
}

// RegisterRoutes registers the recipe routes on the API group.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

// recipeID parses the :id path parameter. A non-numeric id can never match a
// row, so it reports not-found rather than bad-request.
func recipeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recette non trouvée"})
		return 0, false
	}
	return uint(id), true
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := service.ListFilter{
		Category: c.Query("categorie"),
		Search:   c.Query("search"),
	}

	recipes, err := h.recipes.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}

	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var in service.RecipeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      recipe.ID,
		"message": "Recette créée avec succès",
	})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var in service.RecipeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	previousImageURL, err := h.recipes.Update(c.Request.Context(), id, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	// A replaced or detached image leaves an orphaned file behind; removing
	// it is best-effort and never fails the update.
	if previousImageURL != nil && (in.ImageURL == nil || *in.ImageURL != *previousImageURL) {
		if err := h.images.Delete(c.Request.Context(), *previousImageURL); err != nil {
			h.logger.Warn().Err(err).Str("image_url", *previousImageURL).Msg("failed to remove replaced image")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recette modifiée avec succès"})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	imageURL, err := h.recipes.Delete(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	// Best-effort: the row's removal is the operation's contract, a missing
	// file must not fail the response.
	if imageURL != nil {
		if err := h.images.Delete(c.Request.Context(), *imageURL); err != nil {
			h.logger.Warn().Err(err).Str("image_url", *imageURL).Msg("failed to remove recipe image")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recette supprimée avec succès"})
}
