package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/PavaniTiago/cck-survey-api/internal/domain/entities"
	"github.com/PavaniTiago/cck-survey-api/internal/infrastructure/database"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// :memory: é por conexão
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Prepare(db))
	require.NoError(t, database.RegisterMiddlewares(db, "America/Bogota"))
	return db
}

func record(responseID string, event entities.Event, at time.Time) entities.ResponseRecord {
	return entities.NewResponseRecord(entities.ResponseRow{
		ResponseID: responseID,
		ClientName: "ACME",
		JobLevel:   "Gerente",
		StartDate:  "01/01/2020",
		Department: "Finanzas",
		Event:      event,
		Answer:     entities.EventAnswer{Probability: "Algo probable", Impact: "Muy negativo"},
	}, at)
}

func TestResponseRepositorySaveAndList(t *testing.T) {
	db := setupTestDB(t)
	loc := time.FixedZone("COT", -5*60*60)
	repo := NewResponseRepository(db, loc)
	ctx := context.Background()

	first := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	require.NoError(t, repo.Save(ctx, []entities.ResponseRecord{
		record("aaaa1111", "Ciberataque", first),
		record("aaaa1111", "Fraude interno", first),
	}))
	require.NoError(t, repo.Save(ctx, []entities.ResponseRecord{
		record("bbbb2222", "Conflicto laboral grave", second),
	}))
	require.NoError(t, repo.Save(ctx, nil))

	all, total, err := repo.List(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	assert.Equal(t, "bbbb2222", all[0].ResponseID)
	assert.Equal(t, loc, all[0].SubmittedAt.Location())

	filtered, total, err := repo.List(ctx, "aaaa1111", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, filtered, 2)
	assert.Equal(t, entities.Event("Ciberataque"), filtered[0].Row().Event)
	assert.Equal(t, "Muy negativo", filtered[1].Row().Answer.Impact)

	paged, _, err := repo.List(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.Len(t, paged, 1)
}

func TestRegisterMiddlewaresSkipsNonPostgres(t *testing.T) {
	db := setupTestDB(t)
	assert.Nil(t, db.Callback().Query().Get("set_timezone_before_query"))
}
