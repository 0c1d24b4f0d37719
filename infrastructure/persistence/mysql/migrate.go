package mysql

import (
	"dddkit/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all persistence objects.
// Intended for development environments; production schemas are managed
// with versioned migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&po.UserPO{},
		&po.OutboxEventPO{},
	)
}
