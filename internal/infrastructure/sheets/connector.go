package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/PavaniTiago/cck-survey-api/internal/domain/entities"
	"github.com/PavaniTiago/cck-survey-api/internal/domain/repositories"
)

// Capacidade da aba criada quando ela ainda não existe
const (
	defaultRowCount    = 1000
	defaultColumnCount = 50
)

// ErrSpreadsheetNotFound indica que o documento não existe ou não foi compartilhado com a conta de serviço
var ErrSpreadsheetNotFound = errors.New("planilha não encontrada")

// CredentialResolver produz as credenciais da conta de serviço
type CredentialResolver interface {
	Resolve(ctx context.Context) (*Credentials, error)
}

// ConnectorConfig identifica o documento e a aba de respostas.
// Quando SpreadsheetName está definido o documento é localizado pelo nome via Drive.
type ConnectorConfig struct {
	SpreadsheetID   string
	SpreadsheetName string
	WorksheetTitle  string
}

// Connector abre a aba de respostas e garante o cabeçalho
type Connector struct {
	resolver CredentialResolver
	cfg      ConnectorConfig
	options  []option.ClientOption
	logger   *zap.Logger

	// credenciais resolvidas com sucesso; o token é reaproveitado entre conexões
	credsMu sync.Mutex
	creds   *Credentials
}

// NewConnector cria o conector. As opções extras são repassadas aos clientes do Google.
func NewConnector(resolver CredentialResolver, cfg ConnectorConfig, logger *zap.Logger, opts ...option.ClientOption) *Connector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.WorksheetTitle == "" {
		cfg.WorksheetTitle = "Respuestas"
	}
	return &Connector{
		resolver: resolver,
		cfg:      cfg,
		options:  opts,
		logger:   logger,
	}
}

func (c *Connector) clientOptions(creds *Credentials) []option.ClientOption {
	opts := make([]option.ClientOption, 0, len(c.options)+1)
	if creds.TokenSource != nil {
		opts = append(opts, option.WithTokenSource(creds.TokenSource))
	}
	return append(opts, c.options...)
}

// Connect resolve as credenciais, abre o documento, cria a aba se necessário
// e reescreve o cabeçalho na linha 1 em toda abertura.
func (c *Connector) Connect(ctx context.Context) (repositories.Worksheet, error) {
	creds, err := c.credentials(ctx)
	if err != nil {
		return nil, err
	}
	opts := c.clientOptions(creds)

	srv, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente do Sheets: %w", err)
	}

	spreadsheetID := c.cfg.SpreadsheetID
	if c.cfg.SpreadsheetName != "" {
		spreadsheetID, err = c.findByName(ctx, opts)
		if err != nil {
			return nil, err
		}
	}

	ss, err := srv.Spreadsheets.Get(spreadsheetID).Fields("spreadsheetId,sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(fmt.Sprintf("abrir planilha %s", spreadsheetID), err)
	}

	if !hasSheet(ss, c.cfg.WorksheetTitle) {
		if err := c.addSheet(ctx, srv, spreadsheetID); err != nil {
			return nil, err
		}
		c.logger.Info("aba criada", zap.String("spreadsheet_id", spreadsheetID), zap.String("title", c.cfg.WorksheetTitle))
	}

	ws := &worksheet{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
		title:         c.cfg.WorksheetTitle,
	}
	if err := ws.UpdateRow(ctx, 1, entities.Header); err != nil {
		return nil, fmt.Errorf("erro ao escrever cabeçalho: %w", err)
	}

	return ws, nil
}

// credentials resolve uma única vez; falhas não são guardadas
func (c *Connector) credentials(ctx context.Context) (*Credentials, error) {
	c.credsMu.Lock()
	defer c.credsMu.Unlock()
	if c.creds != nil {
		return c.creds, nil
	}
	creds, err := c.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	c.creds = creds
	return creds, nil
}

// Check verifica a conectividade lendo todos os registros da aba
func (c *Connector) Check(ctx context.Context) (int, error) {
	ws, err := c.Connect(ctx)
	if err != nil {
		return 0, err
	}
	records, err := ws.Records(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (c *Connector) addSheet(ctx context.Context, srv *gsheets.Service, spreadsheetID string) error {
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{
					Title: c.cfg.WorksheetTitle,
					GridProperties: &gsheets.GridProperties{
						RowCount:    defaultRowCount,
						ColumnCount: defaultColumnCount,
					},
				},
			},
		}},
	}
	if _, err := srv.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do(); err != nil {
		return wrapAPIError(fmt.Sprintf("criar aba %s", c.cfg.WorksheetTitle), err)
	}
	return nil
}

func (c *Connector) findByName(ctx context.Context, opts []option.ClientOption) (string, error) {
	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("erro ao criar cliente do Drive: %w", err)
	}

	q := fmt.Sprintf("name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false",
		strings.ReplaceAll(c.cfg.SpreadsheetName, "'", `\'`))
	list, err := srv.Files.List().Q(q).Fields("files(id,name)").PageSize(1).
		SupportsAllDrives(true).IncludeItemsFromAllDrives(true).Context(ctx).Do()
	if err != nil {
		return "", wrapAPIError("buscar planilha por nome", err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("%w: %q", ErrSpreadsheetNotFound, c.cfg.SpreadsheetName)
	}
	return list.Files[0].Id, nil
}

func hasSheet(ss *gsheets.Spreadsheet, title string) bool {
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return true
		}
	}
	return false
}

func wrapAPIError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return fmt.Errorf("%s: %w", op, ErrSpreadsheetNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
