package migrations

import (
	"gorm.io/gorm"

	"parley/internal/infrastructure/persistence/models"
)

// MigrateSupportTables creates the tables owned by the support desk.
// The directory tables (users, teams) belong to the host platform and are
// deliberately excluded.
func MigrateSupportTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.TicketModel{},
		&models.MessageModel{},
		&models.NotificationModel{},
	)
}
