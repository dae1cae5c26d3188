package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SheetsChecker abre a planilha configurada e conta os registros
type SheetsChecker interface {
	Check(ctx context.Context) (int, error)
}

// SessionCounter informa quantas sessões estão ativas
type SessionCounter interface {
	Count() int
}

type HealthHandler struct {
	sheets   SheetsChecker
	sessions SessionCounter
	logger   *zap.Logger
}

func NewHealthHandler(sheets SheetsChecker, sessions SessionCounter, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{sheets: sheets, sessions: sessions, logger: logger}
}

// Health check
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	body := fiber.Map{
		"status":  "healthy",
		"version": "1.0.0",
	}
	if h.sessions != nil {
		body["sessions"] = h.sessions.Count()
	}
	return c.JSON(body)
}

// Sheets testa a conexão com o Google Sheets
func (h *HealthHandler) Sheets(c *fiber.Ctx) error {
	if h.sheets == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Google Sheets no configurado",
		})
	}

	records, err := h.sheets.Check(c.UserContext())
	if err != nil {
		h.logger.Warn("falha na verificação do Google Sheets", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "❌ Error al conectar con Google Sheets: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "✅ Conexión exitosa a Google Sheets",
		"records": records,
	})
}
