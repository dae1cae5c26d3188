package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/PavaniTiago/cck-survey-api/internal/application/usecases"
	"github.com/PavaniTiago/cck-survey-api/internal/domain/entities"
	"github.com/PavaniTiago/cck-survey-api/internal/interfaces/http/middleware"
)

// SurveyHandler lida com as ações do respondente em cada página
type SurveyHandler struct {
	flow   *usecases.FlowUseCase
	logger *zap.Logger
}

// NewSurveyHandler cria uma nova instância de SurveyHandler
func NewSurveyHandler(flow *usecases.FlowUseCase, logger *zap.Logger) *SurveyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SurveyHandler{
		flow:   flow,
		logger: logger,
	}
}

type consentRequest struct {
	ClientName string `json:"client_name"`
	Consent    string `json:"consent"`
}

// GetPage retorna a página atual da sessão
// @Summary Página atual da pesquisa
// @Tags survey
// @Produce json
// @Success 200 {object} PageView
// @Router /survey [get]
func (h *SurveyHandler) GetPage(c *fiber.Ctx) error {
	return c.JSON(BuildPageView(middleware.CurrentSession(c)))
}

// Consent registra o nome do cliente e o consentimento
// @Summary Consentimento
// @Tags survey
// @Accept json
// @Produce json
// @Success 200 {object} PageView
// @Failure 400 {object} map[string]interface{} "Consentimento ausente"
// @Failure 403 {object} map[string]interface{} "Participação recusada"
// @Failure 409 {object} map[string]interface{} "Página incorreta"
// @Router /survey/consent [post]
func (h *SurveyHandler) Consent(c *fiber.Ctx) error {
	var req consentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Corpo da requisição inválido",
		})
	}

	s := middleware.CurrentSession(c)
	if err := h.flow.Consent(s, req.ClientName, req.Consent); err != nil {
		return respondError(c, err)
	}
	return c.JSON(BuildPageView(s))
}

// Start sorteia os eventos e abre a primeira avaliação
func (h *SurveyHandler) Start(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	if err := h.flow.Start(s); err != nil {
		return respondError(c, err)
	}
	return c.JSON(BuildPageView(s))
}

// SubmitEvaluation recebe as sete respostas do evento atual
func (h *SurveyHandler) SubmitEvaluation(c *fiber.Ctx) error {
	input := map[string]string{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Corpo da requisição inválido",
		})
	}

	s := middleware.CurrentSession(c)
	if err := h.flow.SubmitEvaluation(s, input); err != nil {
		return respondError(c, err)
	}
	return c.JSON(BuildPageView(s))
}

// SubmitDemographics grava os dados demográficos e salva as respostas
// @Summary Dados demográficos e salvamento
// @Tags survey
// @Accept json
// @Produce json
// @Success 200 {object} PageView
// @Failure 400 {object} map[string]interface{} "Dados inválidos"
// @Failure 409 {object} map[string]interface{} "Página incorreta"
// @Router /survey/demographics [post]
func (h *SurveyHandler) SubmitDemographics(c *fiber.Ctx) error {
	var in usecases.DemographicsInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Corpo da requisição inválido",
		})
	}

	s := middleware.CurrentSession(c)
	result, err := h.flow.SubmitDemographics(c.UserContext(), s, in)
	if err != nil {
		return respondError(c, err)
	}

	view := BuildPageView(s)
	if view.Result != nil {
		view.Result.RowsWritten = result.RowsWritten
	}
	return c.JSON(view)
}

// Export devolve o CSV de fallback da última passada de salvamento
func (h *SurveyHandler) Export(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	if s.LastExport == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No hay respuestas para descargar",
		})
	}

	c.Attachment(s.LastExport.FileName)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(s.LastExport.Data)
}

// Reset inicia uma nova pesquisa mantendo o nome do cliente
func (h *SurveyHandler) Reset(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	if err := h.flow.Reset(s); err != nil {
		return respondError(c, err)
	}
	return c.JSON(BuildPageView(s))
}

// respondError converte os erros do fluxo no código HTTP correspondente
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := err.Error()
	switch {
	case errors.Is(err, usecases.ErrWrongPage):
		status = fiber.StatusConflict
	case errors.Is(err, usecases.ErrConsentDeclined):
		status = fiber.StatusForbidden
		message = consentDeclinedMessage
	case errors.Is(err, usecases.ErrInvalidConsent),
		errors.Is(err, usecases.ErrNothingToSave),
		errors.Is(err, entities.ErrMissingAnswer),
		errors.Is(err, entities.ErrInvalidAnswer),
		errors.Is(err, entities.ErrInvalidDemographics):
		status = fiber.StatusBadRequest
	}

	body := fiber.Map{"error": message}
	if s := middleware.CurrentSession(c); s != nil {
		body["page"] = s.Page
	}
	return c.Status(status).JSON(body)
}
