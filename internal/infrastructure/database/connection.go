package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Chave para o contexto que indica se o timezone já foi configurado
type timezoneKey struct{}

// SetTimezoneMiddleware cria um middleware GORM para definir o timezone da sessão postgres
func SetTimezoneMiddleware(timezone string) func(db *gorm.DB) {
	stmt := fmt.Sprintf("SET timezone = '%s'", timezone)
	return func(db *gorm.DB) {
		// Verificar se já está processando uma configuração de timezone
		if _, ok := db.Statement.Context.Value(timezoneKey{}).(bool); ok {
			return // Evita recursão infinita
		}

		ctx := context.WithValue(db.Statement.Context, timezoneKey{}, true)
		db.WithContext(ctx).Exec(stmt)
	}
}

// RegisterMiddlewares registra os middlewares do GORM. Só se aplica ao postgres.
func RegisterMiddlewares(db *gorm.DB, timezone string) error {
	if db.Dialector.Name() != "postgres" || timezone == "" {
		return nil
	}
	return db.Callback().Query().Before("gorm:query").Register("set_timezone_before_query", SetTimezoneMiddleware(timezone))
}
