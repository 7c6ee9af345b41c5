package database

import (
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	// Registers the pure-Go "sqlite" driver used by the local fallback.
	_ "modernc.org/sqlite"

	"showhome/internal/domain/content"
)

// Connect opens PostgreSQL when the DSN says so and falls back to
// SQLite for local development.
func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate brings the CMS schema up to date.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&content.Page{},
		&content.ServiceCard{},
	)
}
