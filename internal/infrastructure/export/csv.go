package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/PavaniTiago/cck-survey-api/internal/domain/entities"
)

// FileName monta o nome do arquivo de fallback com o momento até o segundo
func FileName(at time.Time) string {
	return fmt.Sprintf("encuesta_cck_respuestas_%s.csv", at.Format("20060102_150405"))
}

// WriteCSV escreve o cabeçalho fixo e uma linha por evento
func WriteCSV(w io.Writer, rows []entities.ResponseRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(entities.Header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV lê um arquivo gerado por WriteCSV
func ReadCSV(r io.Reader) ([]entities.ResponseRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(entities.Header)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("erro ao ler cabeçalho: %w", err)
	}
	for i, col := range entities.Header {
		if header[i] != col {
			return nil, fmt.Errorf("coluna %d inesperada: %q", i+1, header[i])
		}
	}

	var rows []entities.ResponseRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row, err := entities.ResponseRowFromValues(record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Build gera o arquivo de fallback completo
func Build(rows []entities.ResponseRow, at time.Time) (*entities.ExportFile, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return nil, fmt.Errorf("erro ao gerar CSV: %w", err)
	}
	return &entities.ExportFile{
		FileName: FileName(at),
		Data:     buf.Bytes(),
		Rows:     len(rows),
	}, nil
}
