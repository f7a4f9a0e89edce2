package database

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/aduvert/recettes/internal/model"
)

// DemoRecipes are inserted on first-ever startup so the catalog is not empty
// for demos. Nothing depends on their presence.
func DemoRecipes() []model.Recipe {
	return []model.Recipe{
		{
			Title:       "Risotto aux champignons",
			Description: "Un délicieux risotto crémeux aux champignons de saison, parfait pour un dîner réconfortant et savoureux.",
			Category:    model.CategoryCuisine,
			PrepMinutes: 35,
			Difficulty:  model.DifficultyEasy,
			Emoji:       "🥘",
			Ingredients: model.StringList{
				"300g de riz Arborio",
				"500g de champignons mélangés",
				"1L de bouillon de légumes",
				"1 oignon",
				"100ml de vin blanc",
				"50g de parmesan",
				"Huile d'olive",
			},
			Instructions: model.StringList{
				"Faire chauffer le bouillon",
				"Faire revenir l'oignon haché",
				"Ajouter le riz et nacrer 2 minutes",
				"Ajouter le vin blanc",
				"Incorporer le bouillon louche par louche",
				"Ajouter les champignons sautés",
				"Terminer avec le parmesan",
			},
		},
		{
			Title:       "Mojito Classic",
			Description: "Le cocktail cubain traditionnel à base de rhum blanc, menthe fraîche et citron vert. Rafraîchissant et parfait pour l'été.",
			Category:    model.CategoryCocktails,
			PrepMinutes: 5,
			Difficulty:  model.DifficultyEasy,
			Emoji:       "🍸",
			Ingredients: model.StringList{
				"6cl de rhum blanc",
				"10 feuilles de menthe fraîche",
				"1/2 citron vert",
				"2 cuillères à café de sucre de canne",
				"Eau gazeuse",
				"Glaçons",
			},
			Instructions: model.StringList{
				"Mettre la menthe et le sucre dans un verre",
				"Piler délicatement",
				"Ajouter le jus de citron vert",
				"Ajouter le rhum",
				"Remplir de glaçons",
				"Compléter avec l'eau gazeuse",
				"Mélanger et décorer",
			},
		},
	}
}

// Seed inserts the demo recipes when the table is empty. It is a no-op on
// every later startup.
func Seed(db *gorm.DB, logger zerolog.Logger) error {
	var count int64
	if err := db.Model(&model.Recipe{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count recipes: %w", err)
	}
	if count > 0 {
		return nil
	}

	recipes := DemoRecipes()
	if err := db.Create(&recipes).Error; err != nil {
		return fmt.Errorf("failed to seed demo recipes: %w", err)
	}

	logger.Info().Int("count", len(recipes)).Msg("demo recipes seeded")
	return nil
}
