package usecases

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/PavaniTiago/cck-survey-api/internal/domain/entities"
	"github.com/PavaniTiago/cck-survey-api/internal/domain/repositories"
	"github.com/PavaniTiago/cck-survey-api/internal/infrastructure/export"
)

// ErrNothingToSave indica uma sessão sem respostas ou sem dados demográficos
var ErrNothingToSave = errors.New("no hay respuestas para guardar")

// FailureKind classifica por que a gravação remota não se completou
type FailureKind string

const (
	FailureNone       FailureKind = ""
	FailureUnverified FailureKind = "credentials_unverified"
	FailureConnection FailureKind = "connection_failure"
	FailureAppend     FailureKind = "append_failure"
)

// PersistResult é o resultado de uma passada de salvamento
type PersistResult struct {
	Succeeded   bool
	RowsWritten int
	Failure     FailureKind
	Rows        []entities.ResponseRow
	Export      *entities.ExportFile
}

// PersistUseCase grava as respostas na planilha e gera o CSV de fallback quando a gravação falha
type PersistUseCase struct {
	connector repositories.WorksheetConnector
	archive   repositories.ResponseArchive
	location  *time.Location
	now       Clock
	logger    *zap.Logger
}

// NewPersistUseCase cria uma nova instância de PersistUseCase. archive pode ser nil.
func NewPersistUseCase(connector repositories.WorksheetConnector, archive repositories.ResponseArchive, location *time.Location, logger *zap.Logger) *PersistUseCase {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersistUseCase{
		connector: connector,
		archive:   archive,
		location:  location,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock substitui o relógio usado nos carimbos de data
func (u *PersistUseCase) WithClock(clock Clock) *PersistUseCase {
	u.now = clock
	return u
}

// BuildRows achata a sessão em uma linha por evento, na ordem em que os eventos foram respondidos
func BuildRows(s *entities.Session, at time.Time) ([]entities.ResponseRow, error) {
	answers := s.Answers()
	if s.Demographics == nil || len(answers) == 0 {
		return nil, ErrNothingToSave
	}

	submittedAt := at.Format(entities.TimestampLayout)
	rows := make([]entities.ResponseRow, 0, len(answers))
	for _, a := range answers {
		rows = append(rows, entities.ResponseRow{
			ResponseID:  s.ResponseID,
			ClientName:  s.ClientName,
			SubmittedAt: submittedAt,
			JobLevel:    s.Demographics.JobLevel,
			StartDate:   s.Demographics.StartDateLabel(),
			Department:  s.Demographics.Department,
			Event:       a.Event,
			Answer:      a.Answer,
		})
	}
	return rows, nil
}

// Persist acrescenta cada linha ao final da aba. A primeira falha interrompe as gravações
// restantes sem desfazer as já feitas. Se a passada não se completar, todas as linhas
// ficam disponíveis no CSV de fallback, mesmo as que já foram gravadas.
func (u *PersistUseCase) Persist(ctx context.Context, s *entities.Session) (PersistResult, error) {
	at := u.now().In(u.location)
	rows, err := BuildRows(s, at)
	if err != nil {
		return PersistResult{}, err
	}

	result := PersistResult{Rows: rows}
	log := u.logger.With(zap.String("response_id", s.ResponseID), zap.Int("rows", len(rows)))

	var ws repositories.Worksheet
	if !s.CredentialsVerified {
		result.Failure = FailureUnverified
	} else {
		ws, err = u.connector.Connect(ctx)
		if err != nil || ws == nil {
			log.Error("erro ao conectar com Google Sheets", zap.Error(err))
			s.CredentialsError = true
			result.Failure = FailureConnection
			ws = nil
		}
	}

	if ws != nil {
		for _, row := range rows {
			if err := appendRow(ctx, ws, row); err != nil {
				log.Error("erro ao salvar resposta", zap.String("evento", string(row.Event)), zap.Int("written", result.RowsWritten), zap.Error(err))
				s.CredentialsError = true
				result.Failure = FailureAppend
				break
			}
			result.RowsWritten++
		}
		result.Succeeded = result.Failure == FailureNone
	}

	if !result.Succeeded {
		file, err := export.Build(rows, at)
		if err != nil {
			return result, err
		}
		result.Export = file
		log.Warn("respostas disponíveis apenas no CSV", zap.String("failure", string(result.Failure)), zap.Int("written", result.RowsWritten))
	} else {
		log.Info("respostas salvas no Google Sheets")
	}

	u.archiveRows(ctx, rows, at)
	return result, nil
}

// appendRow escreve a linha logo após a última linha preenchida
func appendRow(ctx context.Context, ws repositories.Worksheet, row entities.ResponseRow) error {
	values, err := ws.AllValues(ctx)
	if err != nil {
		return err
	}
	return ws.UpdateRow(ctx, len(values)+1, row.Values())
}

func (u *PersistUseCase) archiveRows(ctx context.Context, rows []entities.ResponseRow, at time.Time) {
	if u.archive == nil {
		return
	}
	records := make([]entities.ResponseRecord, len(rows))
	for i, row := range rows {
		records[i] = entities.NewResponseRecord(row, at)
	}
	if err := u.archive.Save(ctx, records); err != nil {
		u.logger.Error("erro ao arquivar respostas", zap.Error(err))
	}
}
