package usecases

import (
	"context"
	"errors"
	"sync"

	"github.com/PavaniTiago/cck-survey-api/internal/domain/entities"
	"github.com/PavaniTiago/cck-survey-api/internal/domain/repositories"
)

var errRemote = errors.New("quota exceeded")

// memWorksheet guarda as linhas em memória. failAfter > 0 faz a escrita
// de dados falhar depois dessa quantidade de linhas gravadas.
type memWorksheet struct {
	mu        sync.Mutex
	rows      [][]string
	writes    int
	failAfter int
}

func newMemWorksheet() *memWorksheet {
	return &memWorksheet{rows: [][]string{entities.Header}}
}

func (w *memWorksheet) Title() string { return "Respuestas" }

func (w *memWorksheet) AllValues(context.Context) ([][]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([][]string, len(w.rows))
	copy(out, w.rows)
	return out, nil
}

func (w *memWorksheet) UpdateRow(_ context.Context, row int, values []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if row > 1 && w.failAfter > 0 && w.writes >= w.failAfter {
		return errRemote
	}
	for len(w.rows) < row {
		w.rows = append(w.rows, nil)
	}
	w.rows[row-1] = values
	if row > 1 {
		w.writes++
	}
	return nil
}

func (w *memWorksheet) Records(context.Context) ([]map[string]string, error) {
	return nil, nil
}

func (w *memWorksheet) dataRows() [][]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rows[1:]
}

type fakeConnector struct {
	ws    *memWorksheet
	err   error
	calls int
}

func (c *fakeConnector) Connect(context.Context) (repositories.Worksheet, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	if c.ws == nil {
		return nil, nil
	}
	return c.ws, nil
}

type memArchive struct {
	saved []entities.ResponseRecord
	err   error
}

func (a *memArchive) Save(_ context.Context, rows []entities.ResponseRecord) error {
	if a.err != nil {
		return a.err
	}
	a.saved = append(a.saved, rows...)
	return nil
}

func (a *memArchive) List(context.Context, string, int, int) ([]entities.ResponseRecord, int64, error) {
	return a.saved, int64(len(a.saved)), nil
}

func sequenceIDs(prefix string) IDGenerator {
	n := 0
	return func() string {
		n++
		return prefix + string(rune('0'+n))
	}
}
