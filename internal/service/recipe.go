package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/aduvert/recettes/internal/model"
)

// RecipeInput carries the client-supplied fields of a create or full-replace
// update request. JSON keys follow the original wire contract.
type RecipeInput struct {
	Title        string   `json:"titre"`
	Description  string   `json:"description"`
	Category     string   `json:"categorie"`
	PrepMinutes  int      `json:"temps_preparation"`
	Difficulty   string   `json:"difficulte"`
	Emoji        string   `json:"emoji"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	ImageURL     *string  `json:"image_url"`
}

// ListFilter restricts List results. Zero values (or the "all" sentinel for
// Category) mean no restriction.
type ListFilter struct {
	Category string
	Search   string
}

// RecipeService handles recipe persistence operations.
type RecipeService struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(db *gorm.DB, logger zerolog.Logger) *RecipeService {
	return &RecipeService{
		db:     db,
		logger: logger.With().Str("component", "recipe_service").Logger(),
	}
}

// List returns all recipes matching the filter, newest first. Category and
// search compose with AND; search matches title or description
// case-insensitively.
func (s *RecipeService) List(ctx context.Context, filter ListFilter) ([]model.Recipe, error) {
	query := s.db.WithContext(ctx)

	if filter.Category != "" && filter.Category != "all" {
		query = query.Where("categorie = ?", filter.Category)
	}

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(titre) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var recipes []model.Recipe
	if err := query.Order("date_creation DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Get retrieves a recipe by id.
func (s *RecipeService) Get(ctx context.Context, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// Create validates the input, applies field defaults and inserts a new recipe.
func (s *RecipeService) Create(ctx context.Context, in RecipeInput) (*model.Recipe, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	recipe := model.Recipe{
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		PrepMinutes:  in.PrepMinutes,
		Difficulty:   in.Difficulty,
		Ingredients:  model.StringList(in.Ingredients),
		Instructions: model.StringList(in.Instructions),
		ImageURL:     in.ImageURL,
		Emoji:        in.Emoji,
	}
	applyDefaults(&recipe)

	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}

	s.logger.Info().Uint("id", recipe.ID).Str("categorie", recipe.Category).Msg("recipe created")
	return &recipe, nil
}

// Update replaces every mutable field of an existing recipe and refreshes
// date_modification. It returns the previous image URL so the caller can
// clean up a replaced image file.
func (s *RecipeService) Update(ctx context.Context, id uint, in RecipeInput) (*string, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var existing model.Recipe
	if err := s.db.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	previousImageURL := existing.ImageURL

	existing.Title = in.Title
	existing.Description = in.Description
	existing.Category = in.Category
	existing.PrepMinutes = in.PrepMinutes
	existing.Difficulty = in.Difficulty
	existing.Ingredients = model.StringList(in.Ingredients)
	existing.Instructions = model.StringList(in.Instructions)
	existing.ImageURL = in.ImageURL
	existing.Emoji = in.Emoji
	applyDefaults(&existing)

	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, err
	}

	s.logger.Info().Uint("id", id).Msg("recipe updated")
	return previousImageURL, nil
}

// Delete removes a recipe and returns its former image URL (if any) so the
// caller can schedule best-effort image deletion.
func (s *RecipeService) Delete(ctx context.Context, id uint) (*string, error) {
	var existing model.Recipe
	if err := s.db.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id).Error; err != nil {
		return nil, err
	}

	s.logger.Info().Uint("id", id).Msg("recipe deleted")
	return existing.ImageURL, nil
}

func validateInput(in RecipeInput) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Category) == "" {
		return &ValidationError{Message: "Titre et catégorie sont requis"}
	}
	if !model.ValidCategory(in.Category) {
		return &ValidationError{Message: "Catégorie invalide"}
	}
	if in.Difficulty != "" && !model.ValidDifficulty(in.Difficulty) {
		return &ValidationError{Message: "Difficulté invalide"}
	}
	return nil
}

func applyDefaults(r *model.Recipe) {
	if r.Difficulty == "" {
		r.Difficulty = model.DifficultyEasy
	}
	if r.Emoji == "" {
		r.Emoji = model.EmojiFor(r.Category)
	}
	if r.Ingredients == nil {
		r.Ingredients = model.StringList{}
	}
	if r.Instructions == nil {
		r.Instructions = model.StringList{}
	}
}
