package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/veewoo/veewoo-prompt/internal/models"
)

// Connect opens the Postgres connection. The handle is passed explicitly to
// every service; nothing in this package holds global state.
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Migrate creates or updates the schema. PromptTag is migrated before Prompt
// so the join table exists with its composite key when the association is
// wired up.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.PromptTag{},
		&models.Prompt{},
		&models.PlaceholderVariable{},
		&models.PlaceholderOption{},
	)
}
