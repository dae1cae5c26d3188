package migrations

import (
	"gorm.io/gorm"
)

// AddIndexes adds indexes to the response archive table
func AddIndexes(db *gorm.DB) error {
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_survey_response_rows_response_id ON survey_response_rows (response_id)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_survey_response_rows_submitted_at ON survey_response_rows (submitted_at)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_survey_response_rows_client_name ON survey_response_rows (client_name)").Error; err != nil {
		return err
	}

	return nil
}
