package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// SecretFile é o cofre de segredos do ambiente de hospedagem, um arquivo TOML
// com tabelas nomeadas (ex.: [google_credentials]).
type SecretFile struct {
	v      *viper.Viper
	loaded bool
}

// LoadSecretFile lê o arquivo de segredos. Um arquivo inexistente resulta num cofre vazio.
func LoadSecretFile(path string) (*SecretFile, error) {
	s := &SecretFile{v: viper.New()}
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return s, nil
	}

	s.v.SetConfigFile(path)
	s.v.SetConfigType("toml")
	if err := s.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo de segredos %s: %w", path, err)
	}
	s.loaded = true
	return s, nil
}

// Lookup retorna a tabela guardada sob key. Chaves são normalizadas para minúsculas.
func (s *SecretFile) Lookup(key string) (map[string]any, bool) {
	if s == nil || !s.loaded || !s.v.IsSet(key) {
		return nil, false
	}
	table := s.v.GetStringMap(key)
	if len(table) == 0 {
		return nil, false
	}
	return table, true
}
