package usecases

import (
	"time"

	"github.com/google/uuid"
)

// Clock retorna o momento atual; substituível em testes
type Clock func() time.Time

// IDGenerator produz identificadores opacos
type IDGenerator func() string

// NewResponseID gera o identificador curto de uma tentativa de resposta
func NewResponseID() string {
	return uuid.NewString()[:8]
}

// NewSessionID gera o identificador do cookie de sessão
func NewSessionID() string {
	return uuid.NewString()
}
