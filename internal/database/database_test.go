package database

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aduvert/recettes/internal/model"
)

func openMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openMemoryDB(t)

	require.NoError(t, Migrate(db, zerolog.Nop()))
	require.NoError(t, Migrate(db, zerolog.Nop()))

	assert.True(t, db.Migrator().HasTable(&model.Recipe{}))
	assert.True(t, db.Migrator().HasColumn(&model.Recipe{}, "image_url"))
}

func TestMigrateBackfillsImageURLColumn(t *testing.T) {
	db := openMemoryDB(t)

	// Simulate a schema that predates image uploads.
	require.NoError(t, Migrate(db, zerolog.Nop()))
	require.NoError(t, db.Migrator().DropColumn(&model.Recipe{}, "image_url"))
	require.False(t, db.Migrator().HasColumn(&model.Recipe{}, "image_url"))

	require.NoError(t, Migrate(db, zerolog.Nop()))
	assert.True(t, db.Migrator().HasColumn(&model.Recipe{}, "image_url"))
}

func TestSeedOnlyOnEmptyTable(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, Migrate(db, zerolog.Nop()))

	require.NoError(t, Seed(db, zerolog.Nop()))

	var count int64
	require.NoError(t, db.Model(&model.Recipe{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// A second run must not duplicate the demo data.
	require.NoError(t, Seed(db, zerolog.Nop()))
	require.NoError(t, db.Model(&model.Recipe{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestSeedContent(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, Migrate(db, zerolog.Nop()))
	require.NoError(t, Seed(db, zerolog.Nop()))

	var mojito model.Recipe
	require.NoError(t, db.First(&mojito, "titre = ?", "Mojito Classic").Error)
	assert.Equal(t, model.CategoryCocktails, mojito.Category)
	assert.Equal(t, "🍸", mojito.Emoji)
	assert.Len(t, mojito.Ingredients, 6)
	assert.Len(t, mojito.Instructions, 7)

	var risotto model.Recipe
	require.NoError(t, db.First(&risotto, "titre = ?", "Risotto aux champignons").Error)
	assert.Equal(t, model.CategoryCuisine, risotto.Category)
	assert.Equal(t, 35, risotto.PrepMinutes)
}
