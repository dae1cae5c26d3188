package repositories

import (
	"context"

	"github.com/PavaniTiago/cck-survey-api/internal/domain/entities"
)

// Worksheet é uma aba de planilha remota com uma linha de cabeçalho seguida das respostas
type Worksheet interface {
	Title() string
	// AllValues retorna todas as linhas preenchidas, cabeçalho incluído
	AllValues(ctx context.Context) ([][]string, error)
	// UpdateRow sobrescreve a linha indicada (base 1) a partir da coluna A
	UpdateRow(ctx context.Context, row int, values []string) error
	// Records retorna as linhas de dados indexadas pelo cabeçalho
	Records(ctx context.Context) ([]map[string]string, error)
}

// WorksheetConnector abre (ou cria) a aba de respostas
type WorksheetConnector interface {
	Connect(ctx context.Context) (Worksheet, error)
}

// ResponseArchive guarda uma cópia local das linhas salvas
type ResponseArchive interface {
	Save(ctx context.Context, rows []entities.ResponseRecord) error
	List(ctx context.Context, responseID string, page, limit int) ([]entities.ResponseRecord, int64, error)
}
