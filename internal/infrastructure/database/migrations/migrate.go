package migrations

import (
	"github.com/PavaniTiago/cck-survey-api/internal/domain/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&entities.ResponseRecord{})
}
