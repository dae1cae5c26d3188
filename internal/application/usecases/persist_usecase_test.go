package usecases

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PavaniTiago/cck-survey-api/internal/domain/entities"
	"github.com/PavaniTiago/cck-survey-api/internal/infrastructure/export"
)

// answeredSession monta uma sessão já na página de salvamento
func answeredSession(events ...entities.Event) *entities.Session {
	s := entities.NewSession("sess", "abcd1234", len(events))
	s.ClientName = "ACME"
	s.CredentialsVerified = true
	s.SelectedEvents = events
	s.Page = entities.PageSave
	for i, e := range events {
		s.SetAnswer(e, entities.EventAnswer{
			Probability:             entities.AnswerFields[0].Options[i%len(entities.AnswerFields[0].Options)],
			PastOccurrence:          entities.AnswerFields[1].Options[0],
			Detectability:           entities.AnswerFields[2].Options[0],
			OrganizationalStructure: entities.AnswerFields[3].Options[0],
			Impact:                  entities.AnswerFields[4].Options[0],
			Responsibility:          entities.AnswerFields[5].Options[0],
			SelfEfficacy:            entities.AnswerFields[6].Options[0],
		})
	}
	d, _ := entities.NewDemographics("Gerente", time.Date(2018, 8, 15, 0, 0, 0, 0, time.UTC), "Finanzas", true)
	s.Demographics = &d
	return s
}

var threeEvents = []entities.Event{
	entities.CriticalEvents[0],
	entities.CriticalEvents[4],
	entities.CriticalEvents[7],
}

func newPersist(conn *fakeConnector, archive *memArchive) *PersistUseCase {
	u := NewPersistUseCase(conn, nil, time.UTC, nil)
	if archive != nil {
		u = NewPersistUseCase(conn, archive, time.UTC, nil)
	}
	return u.WithClock(func() time.Time { return fixedNow })
}

func exportedRows(t *testing.T, file *entities.ExportFile) []entities.ResponseRow {
	t.Helper()
	require.NotNil(t, file)
	rows, err := export.ReadCSV(bytes.NewReader(file.Data))
	require.NoError(t, err)
	return rows
}

func TestBuildRowsPreservesInsertionOrder(t *testing.T) {
	s := answeredSession(threeEvents...)
	rows, err := BuildRows(s, fixedNow)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for i, row := range rows {
		assert.Equal(t, threeEvents[i], row.Event)
		assert.Equal(t, "abcd1234", row.ResponseID)
		assert.Equal(t, "ACME", row.ClientName)
		assert.Equal(t, "01/10/2024 09:30:15", row.SubmittedAt)
		assert.Equal(t, "Gerente", row.JobLevel)
		assert.Equal(t, "15/08/2018", row.StartDate)
		assert.Equal(t, "Finanzas", row.Department)
		assert.Len(t, row.Values(), len(entities.Header))
	}
}

func TestBuildRowsRequiresAnswers(t *testing.T) {
	s := answeredSession()
	_, err := BuildRows(s, fixedNow)
	assert.ErrorIs(t, err, ErrNothingToSave)

	s = answeredSession(threeEvents...)
	s.Demographics = nil
	_, err = BuildRows(s, fixedNow)
	assert.ErrorIs(t, err, ErrNothingToSave)
}

func TestPersistUsesConfiguredLocation(t *testing.T) {
	loc := time.FixedZone("COT", -5*3600)
	u := NewPersistUseCase(&fakeConnector{ws: newMemWorksheet()}, nil, loc, nil).
		WithClock(func() time.Time { return fixedNow })

	result, err := u.Persist(context.Background(), answeredSession(threeEvents...))
	require.NoError(t, err)
	assert.Equal(t, "01/10/2024 04:30:15", result.Rows[0].SubmittedAt)
}

func TestPersistSuccess(t *testing.T) {
	ws := newMemWorksheet()
	archive := &memArchive{}
	s := answeredSession(threeEvents...)

	result, err := newPersist(&fakeConnector{ws: ws}, archive).Persist(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Equal(t, FailureNone, result.Failure)
	assert.Equal(t, 3, result.RowsWritten)
	assert.Nil(t, result.Export)
	assert.False(t, s.CredentialsError)

	rows := ws.dataRows()
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, string(threeEvents[i]), row[6])
	}
	assert.Equal(t, entities.Header, ws.rows[0])
	assert.Len(t, archive.saved, 3)
}

func TestPersistConnectorNull(t *testing.T) {
	conn := &fakeConnector{}
	s := answeredSession(threeEvents...)

	result, err := newPersist(conn, nil).Persist(context.Background(), s)
	require.NoError(t, err)
	assert.False(t, result.Succeeded)
	assert.Equal(t, FailureConnection, result.Failure)
	assert.Zero(t, result.RowsWritten)
	assert.True(t, s.CredentialsError)
	assert.Equal(t, 1, conn.calls)
	assert.Len(t, exportedRows(t, result.Export), 3)
	assert.Equal(t, 3, result.Export.Rows)
}

func TestPersistConnectorError(t *testing.T) {
	s := answeredSession(threeEvents...)
	result, err := newPersist(&fakeConnector{err: errors.New("boom")}, nil).Persist(context.Background(), s)
	require.NoError(t, err)
	assert.False(t, result.Succeeded)
	assert.Equal(t, FailureConnection, result.Failure)
	assert.Len(t, exportedRows(t, result.Export), 3)
}

func TestPersistUnverifiedSkipsConnect(t *testing.T) {
	conn := &fakeConnector{ws: newMemWorksheet()}
	archive := &memArchive{}
	s := answeredSession(threeEvents...)
	s.CredentialsVerified = false

	result, err := newPersist(conn, archive).Persist(context.Background(), s)
	require.NoError(t, err)
	assert.False(t, result.Succeeded)
	assert.Equal(t, FailureUnverified, result.Failure)
	assert.Zero(t, conn.calls)
	assert.Empty(t, conn.ws.dataRows())
	assert.Len(t, exportedRows(t, result.Export), 3)
	assert.Len(t, archive.saved, 3)
}

func TestPersistPartialFailure(t *testing.T) {
	ws := newMemWorksheet()
	ws.failAfter = 2
	s := answeredSession(threeEvents...)

	result, err := newPersist(&fakeConnector{ws: ws}, nil).Persist(context.Background(), s)
	require.NoError(t, err)
	assert.False(t, result.Succeeded)
	assert.Equal(t, FailureAppend, result.Failure)
	assert.Equal(t, 2, result.RowsWritten)
	assert.True(t, s.CredentialsError)

	// as linhas já gravadas não são desfeitas
	assert.Len(t, ws.dataRows(), 2)

	// o CSV traz todas as linhas, inclusive as já gravadas
	exported := exportedRows(t, result.Export)
	require.Len(t, exported, 3)
	for i, row := range exported {
		assert.Equal(t, threeEvents[i], row.Event)
	}
}

func TestPersistRerunDuplicatesRows(t *testing.T) {
	ws := newMemWorksheet()
	ws.failAfter = 2
	s := answeredSession(threeEvents...)
	u := newPersist(&fakeConnector{ws: ws}, nil)

	_, err := u.Persist(context.Background(), s)
	require.NoError(t, err)
	require.True(t, s.CredentialsError)

	ws.failAfter = 0
	result, err := u.Persist(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, result.Succeeded)

	rows := ws.dataRows()
	require.Len(t, rows, 5)
	assert.Equal(t, rows[0], rows[2])
	assert.Equal(t, rows[1], rows[3])
}

func TestPersistArchiveFailureIsIgnored(t *testing.T) {
	archive := &memArchive{err: errors.New("disk full")}
	s := answeredSession(threeEvents...)

	result, err := newPersist(&fakeConnector{ws: newMemWorksheet()}, archive).Persist(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
}
