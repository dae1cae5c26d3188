package utils

import (
	"fmt"
	"strings"
	"time"
)

// Offsets usados quando o tzdata não está disponível no container
var fallbackZones = map[string]*time.Location{
	"America/Bogota":    time.FixedZone("COT", -5*60*60),
	"America/Sao_Paulo": time.FixedZone("BRT", -3*60*60),
}

// GetLocation retorna a localização do fuso configurado.
// Se não conseguir carregar, usa um offset fixo conhecido ou UTC.
func GetLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err == nil {
		return loc
	}
	if fixed, ok := fallbackZones[name]; ok {
		return fixed
	}
	return time.UTC
}

// ParseDayDate aceita DD/MM/YYYY (formato exibido ao respondente) ou YYYY-MM-DD
func ParseDayDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("data vazia")
	}

	for _, layout := range []string{"02/01/2006", "2006-01-02", time.RFC3339} {
		t, err := time.Parse(layout, value)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("formato de data inválido: %q (use DD/MM/YYYY)", value)
}
