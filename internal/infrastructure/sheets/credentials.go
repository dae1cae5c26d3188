package sheets

import (
	"context"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scopes exigidos pela conta de serviço
var Scopes = []string{
	"https://spreadsheets.google.com/feeds",
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive",
}

const (
	SecretKey       = "google_credentials"
	EnvJSON         = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
	EnvPath         = "GOOGLE_APPLICATION_CREDENTIALS"
	DefaultFilePath = "credentials.json"
)

var (
	// ErrCredentialsUnavailable indica que todas as fontes falharam
	ErrCredentialsUnavailable = errors.New("no se pudieron cargar las credenciales")
	errSourceAbsent           = errors.New("fonte não configurada")
)

// Source identifica de onde as credenciais vieram
type Source string

const (
	SourceSecretStore Source = "secret_store"
	SourceEnvJSON     Source = "env_json"
	SourceEnvPath     Source = "env_path"
	SourceLocalFile   Source = "local_file"
)

// Credentials é a autorização resolvida para a conta de serviço
type Credentials struct {
	Source      Source
	ClientEmail string
	ProjectID   string
	TokenSource oauth2.TokenSource
}

// SecretStore é o cofre de segredos do ambiente de hospedagem
type SecretStore interface {
	Lookup(key string) (map[string]any, bool)
}

// SourceFailure registra por que uma fonte foi descartada
type SourceFailure struct {
	Source Source
	Err    error
}

// ResolveError é retornado quando nenhuma fonte produziu credenciais
type ResolveError struct {
	Failures []SourceFailure
}

func (e *ResolveError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Source, f.Err))
	}
	return fmt.Sprintf("%v (%s)", ErrCredentialsUnavailable, strings.Join(parts, "; "))
}

func (e *ResolveError) Unwrap() error { return ErrCredentialsUnavailable }

// Resolver tenta as quatro fontes de credenciais em ordem de prioridade, parando no primeiro sucesso
type Resolver struct {
	secrets   SecretStore
	lookupEnv func(string) (string, bool)
	readFile  func(string) ([]byte, error)
	localPath string
	logger    *zap.Logger
}

type ResolverOption func(*Resolver)

// WithEnv substitui a leitura de variáveis de ambiente
func WithEnv(lookup func(string) (string, bool)) ResolverOption {
	return func(r *Resolver) { r.lookupEnv = lookup }
}

// WithLocalPath altera o arquivo local padrão
func WithLocalPath(path string) ResolverOption {
	return func(r *Resolver) { r.localPath = path }
}

// NewResolver cria o resolvedor. secrets pode ser nil.
func NewResolver(secrets SecretStore, logger *zap.Logger, opts ...ResolverOption) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{
		secrets:   secrets,
		lookupEnv: os.LookupEnv,
		readFile:  os.ReadFile,
		localPath: DefaultFilePath,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type probe struct {
	source Source
	load   func(ctx context.Context) (*Credentials, error)
}

func (r *Resolver) probes() []probe {
	return []probe{
		{SourceSecretStore, r.fromSecretStore},
		{SourceEnvJSON, r.fromEnvJSON},
		{SourceEnvPath, r.fromEnvPath},
		{SourceLocalFile, r.fromLocalFile},
	}
}

// Resolve retorna as credenciais da fonte de maior prioridade disponível.
// Não há novas tentativas: o esgotamento das fontes é definitivo.
func (r *Resolver) Resolve(ctx context.Context) (*Credentials, error) {
	var failures []SourceFailure
	for _, p := range r.probes() {
		creds, err := p.load(ctx)
		if err == nil {
			r.logger.Debug("credenciais carregadas", zap.String("source", string(p.source)), zap.String("client_email", creds.ClientEmail))
			return creds, nil
		}
		if !errors.Is(err, errSourceAbsent) {
			r.logger.Warn("fonte de credenciais descartada", zap.String("source", string(p.source)), zap.Error(err))
		}
		failures = append(failures, SourceFailure{Source: p.source, Err: err})
	}
	return nil, &ResolveError{Failures: failures}
}

func (r *Resolver) fromSecretStore(ctx context.Context) (*Credentials, error) {
	if r.secrets == nil {
		return nil, errSourceAbsent
	}
	stored, ok := r.secrets.Lookup(SecretKey)
	if !ok {
		return nil, errSourceAbsent
	}
	table := make(map[string]any, len(stored))
	for k, v := range stored {
		table[k] = v
	}
	// Cofres em TOML costumam guardar a chave com "\n" escapado
	if key, ok := table["private_key"].(string); ok {
		table["private_key"] = strings.ReplaceAll(key, `\n`, "\n")
	}
	data, err := json.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("serializar segredo: %w", err)
	}
	return fromJSON(ctx, SourceSecretStore, data)
}

func (r *Resolver) fromEnvJSON(ctx context.Context) (*Credentials, error) {
	raw, ok := r.lookupEnv(EnvJSON)
	if !ok {
		return nil, errSourceAbsent
	}
	return fromJSON(ctx, SourceEnvJSON, []byte(raw))
}

func (r *Resolver) fromEnvPath(ctx context.Context) (*Credentials, error) {
	path, ok := r.lookupEnv(EnvPath)
	if !ok {
		return nil, errSourceAbsent
	}
	return r.fromFile(ctx, SourceEnvPath, path)
}

func (r *Resolver) fromLocalFile(ctx context.Context) (*Credentials, error) {
	return r.fromFile(ctx, SourceLocalFile, r.localPath)
}

func (r *Resolver) fromFile(ctx context.Context, source Source, path string) (*Credentials, error) {
	data, err := r.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("ler %s: %w", path, err)
	}
	return fromJSON(ctx, source, data)
}

type serviceAccount struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

func fromJSON(ctx context.Context, source Source, data []byte) (*Credentials, error) {
	var sa serviceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return nil, fmt.Errorf("documento de credenciais inválido: %w", err)
	}
	if sa.ClientEmail == "" || sa.PrivateKey == "" {
		return nil, fmt.Errorf("documento de credenciais sem client_email ou private_key")
	}
	// JWTConfigFromJSON só lê a chave na primeira troca de token
	if err := parsePrivateKey(sa.PrivateKey); err != nil {
		return nil, err
	}

	cfg, err := google.JWTConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, err
	}

	return &Credentials{
		Source:      source,
		ClientEmail: sa.ClientEmail,
		ProjectID:   sa.ProjectID,
		TokenSource: cfg.TokenSource(context.WithoutCancel(ctx)),
	}, nil
}

// parsePrivateKey aceita chaves PEM em PKCS#8 ou PKCS#1
func parsePrivateKey(key string) error {
	block, _ := pem.Decode([]byte(key))
	if block == nil {
		return errors.New("private_key não está em formato PEM")
	}
	if _, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		return nil
	}
	if _, err := x509.ParsePKCS1PrivateKey(block.Bytes); err != nil {
		return fmt.Errorf("private_key inválida: %w", err)
	}
	return nil
}
