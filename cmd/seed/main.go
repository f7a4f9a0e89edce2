// Command seed inserts the demo recipes. Without -force it only seeds an
// empty catalog, same as the server does on first startup.
package main

import (
	"flag"
	"os"

	"github.com/aduvert/recettes/config"
	"github.com/aduvert/recettes/internal/database"
)

func main() {
	force := flag.Bool("force", false, "insert demo recipes even when the catalog is not empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logger)

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer func() { _ = database.Close(db) }()

	if *force {
		recipes := database.DemoRecipes()
		if err := db.Create(&recipes).Error; err != nil {
			logger.Fatal().Err(err).Msg("failed to insert demo recipes")
		}
		logger.Info().Int("count", len(recipes)).Msg("demo recipes inserted")
		return
	}

	// database.New already ran the first-startup seeding; nothing left to do.
	logger.Info().Msg("catalog ready")
}
