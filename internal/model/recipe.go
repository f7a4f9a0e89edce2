package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Recipe categories. The table carries a CHECK constraint for these; the
// service validates them before any write reaches the database.
const (
	CategoryCuisine   = "cuisine"
	CategoryCocktails = "cocktails"
)

// Difficulty levels, in the catalog's original French.
const (
	DifficultyEasy   = "Facile"
	DifficultyMedium = "Moyen"
	DifficultyHard   = "Difficile"
)

// Emoji fallbacks used when a recipe has no uploaded image.
const (
	DefaultEmoji         = "🍽️"
	DefaultCocktailEmoji = "🍹"
)

// StringList stores an ordered list of strings as a JSON-encoded TEXT column.
// Callers always see a native slice; the encoded form never crosses the API.
type StringList []string

// Value implements the driver.Valuer interface.
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}

	if len(bytes) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Recipe is the sole persisted entity. Column names and JSON keys keep the
// catalog's original French wire contract.
type Recipe struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"column:titre;size:255;not null" json:"titre"`
	Description  string     `gorm:"column:description;type:text" json:"description"`
	Category     string     `gorm:"column:categorie;size:50;not null;check:categorie IN ('cuisine','cocktails')" json:"categorie"`
	PrepMinutes  int        `gorm:"column:temps_preparation" json:"temps_preparation"`
	Difficulty   string     `gorm:"column:difficulte;size:20;default:Facile;check:difficulte IN ('Facile','Moyen','Difficile')" json:"difficulte"`
	Ingredients  StringList `gorm:"column:ingredients;type:text" json:"ingredients"`
	Instructions StringList `gorm:"column:instructions;type:text" json:"instructions"`
	ImageURL     *string    `gorm:"column:image_url;size:255" json:"image_url"`
	Emoji        string     `gorm:"column:emoji;size:10" json:"emoji"`
	CreatedAt    time.Time  `gorm:"column:date_creation" json:"date_creation"`
	UpdatedAt    time.Time  `gorm:"column:date_modification" json:"date_modification"`
}

// TableName keeps the original table name.
func (Recipe) TableName() string {
	return "recettes"
}

// ValidCategory reports whether c is one of the two allowed categories.
func ValidCategory(c string) bool {
	return c == CategoryCuisine || c == CategoryCocktails
}

// ValidDifficulty reports whether d is one of the three allowed levels.
func ValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// EmojiFor returns the fallback emoji for a category.
func EmojiFor(category string) string {
	if category == CategoryCocktails {
		return DefaultCocktailEmoji
	}
	return DefaultEmoji
}
