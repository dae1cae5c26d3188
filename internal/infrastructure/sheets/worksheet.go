package sheets

import (
	"context"
	"fmt"
	"strings"

	gsheets "google.golang.org/api/sheets/v4"
)

type worksheet struct {
	values        *gsheets.SpreadsheetsValuesService
	spreadsheetID string
	title         string
}

func (w *worksheet) Title() string { return w.title }

// quotedTitle escapa o nome da aba para notação A1
func (w *worksheet) quotedTitle() string {
	return "'" + strings.ReplaceAll(w.title, "'", "''") + "'"
}

func (w *worksheet) AllValues(ctx context.Context) ([][]string, error) {
	resp, err := w.values.Get(w.spreadsheetID, w.quotedTitle()).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(fmt.Sprintf("ler aba %s", w.title), err)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = fmt.Sprint(cell)
		}
	}
	return rows, nil
}

func (w *worksheet) UpdateRow(ctx context.Context, row int, values []string) error {
	if row < 1 {
		return fmt.Errorf("linha inválida %d", row)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}

	rng := fmt.Sprintf("%s!A%d", w.quotedTitle(), row)
	body := &gsheets.ValueRange{Values: [][]interface{}{cells}}
	if _, err := w.values.Update(w.spreadsheetID, rng, body).ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return wrapAPIError(fmt.Sprintf("escrever %s", rng), err)
	}
	return nil
}

func (w *worksheet) Records(ctx context.Context) ([]map[string]string, error) {
	rows, err := w.AllValues(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []map[string]string{}, nil
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
