package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultSpreadsheetID é o documento de respostas usado em produção
const DefaultSpreadsheetID = "10vcVWojXWDOZPlXnwIqPtinDtSSwq6evz4mDwTdkz-o"

// Config reúne a configuração da aplicação lida do ambiente
type Config struct {
	Port        string
	LogLevel    string
	CORSOrigins string
	DatabaseURL string
	SecretsFile string
	Survey      SurveyConfig
	Sheets      SheetsConfig
}

type SurveyConfig struct {
	TotalEvents   int
	StrictAnswers bool
	SessionTTL    time.Duration
	Timezone      string
}

type SheetsConfig struct {
	SpreadsheetID           string
	SpreadsheetName         string
	WorksheetTitle          string
	HaltOnCredentialFailure bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SECRETS_FILE", "secrets.toml")
	v.SetDefault("SURVEY_TOTAL_EVENTS", 3)
	v.SetDefault("SURVEY_STRICT_ANSWERS", false)
	v.SetDefault("SURVEY_SESSION_TTL", 2*time.Hour)
	v.SetDefault("SURVEY_TIMEZONE", "America/Bogota")
	v.SetDefault("SHEETS_SPREADSHEET_ID", DefaultSpreadsheetID)
	v.SetDefault("SHEETS_SPREADSHEET_NAME", "")
	v.SetDefault("SHEETS_WORKSHEET_TITLE", "Respuestas")
	v.SetDefault("SHEETS_HALT_ON_CREDENTIAL_FAILURE", false)
}

// Load lê a configuração das variáveis de ambiente
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:        v.GetString("PORT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		CORSOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		SecretsFile: v.GetString("SECRETS_FILE"),
		Survey: SurveyConfig{
			TotalEvents:   v.GetInt("SURVEY_TOTAL_EVENTS"),
			StrictAnswers: v.GetBool("SURVEY_STRICT_ANSWERS"),
			SessionTTL:    v.GetDuration("SURVEY_SESSION_TTL"),
			Timezone:      v.GetString("SURVEY_TIMEZONE"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:           v.GetString("SHEETS_SPREADSHEET_ID"),
			SpreadsheetName:         v.GetString("SHEETS_SPREADSHEET_NAME"),
			WorksheetTitle:          v.GetString("SHEETS_WORKSHEET_TITLE"),
			HaltOnCredentialFailure: v.GetBool("SHEETS_HALT_ON_CREDENTIAL_FAILURE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate verifica limites que o fluxo da pesquisa pressupõe
func (c *Config) Validate() error {
	if c.Survey.TotalEvents < 1 || c.Survey.TotalEvents > 10 {
		return fmt.Errorf("SURVEY_TOTAL_EVENTS deve estar entre 1 e 10, recebido %d", c.Survey.TotalEvents)
	}
	if c.Survey.SessionTTL <= 0 {
		return fmt.Errorf("SURVEY_SESSION_TTL deve ser positivo")
	}
	if c.Sheets.SpreadsheetID == "" && c.Sheets.SpreadsheetName == "" {
		return fmt.Errorf("SHEETS_SPREADSHEET_ID ou SHEETS_SPREADSHEET_NAME é obrigatório")
	}
	if c.Sheets.WorksheetTitle == "" {
		return fmt.Errorf("SHEETS_WORKSHEET_TITLE não pode ser vazio")
	}
	return nil
}
