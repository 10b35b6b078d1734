package migration

import (
	"github.com/fixdesk/fixdesk/internal/infrastructure/persistence/models"
)

// AutoMigrateModels returns the models the development strategy keeps in sync
func AutoMigrateModels() []interface{} {
	return models.AllModels()
}
