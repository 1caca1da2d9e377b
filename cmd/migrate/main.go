package main

import (
	"github.com/vitaplan/backend/config"
	"github.com/vitaplan/backend/internal/database"
	"github.com/vitaplan/backend/pkg/logger"
)

// Applies the schema and exits. Kept separate from the API binary so
// deployments can migrate before rolling new instances.
func main() {
	log := logger.New()
	defer log.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalw("failed to load configuration", "error", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalw("failed to run migrations", "error", err)
	}

	log.Infow("migrations applied")
}
