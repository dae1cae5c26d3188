package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PavaniTiago/cck-survey-api/internal/domain/entities"
	"github.com/PavaniTiago/cck-survey-api/internal/domain/repositories"
)

// ResponseHandler expõe as respostas arquivadas no banco
type ResponseHandler struct {
	archive repositories.ResponseArchive
}

func NewResponseHandler(archive repositories.ResponseArchive) *ResponseHandler {
	return &ResponseHandler{archive: archive}
}

type archivedEvent struct {
	Event  string               `json:"evento"`
	Answer entities.EventAnswer `json:"respuesta"`
}

type archivedResponse struct {
	ResponseID  string          `json:"id_respuesta"`
	ClientName  string          `json:"nombre_cliente"`
	SubmittedAt string          `json:"fecha_respuesta"`
	JobLevel    string          `json:"nivel_cargo"`
	StartDate   string          `json:"fecha_inicio"`
	Department  string          `json:"departamento"`
	Events      []archivedEvent `json:"eventos"`
}

// GetResponses lista as linhas arquivadas agrupadas por tentativa de resposta
// @Summary Respostas arquivadas
// @Tags admin
// @Produce json
// @Param page query int false "Página atual" default(1)
// @Param limit query int false "Itens por página" default(100)
// @Param response_id query string false "ID da resposta"
// @Success 200 {object} map[string]interface{} "Lista de respostas"
// @Failure 500 {object} map[string]interface{} "Erro interno do servidor"
// @Router /admin/responses [get]
func (h *ResponseHandler) GetResponses(c *fiber.Ctx) error {
	page, limit := parsePagination(c, 100)
	responseID := c.Query("response_id")

	records, total, err := h.archive.List(c.UserContext(), responseID, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": groupByResponse(records),
		"meta": fiber.Map{
			"total":     total,
			"page":      page,
			"limit":     limit,
			"last_page": lastPage(total, limit),
		},
	})
}

// groupByResponse preserva a ordem em que cada tentativa aparece
func groupByResponse(records []entities.ResponseRecord) []archivedResponse {
	index := map[string]int{}
	out := []archivedResponse{}
	for _, rec := range records {
		row := rec.Row()
		i, ok := index[row.ResponseID]
		if !ok {
			i = len(out)
			index[row.ResponseID] = i
			out = append(out, archivedResponse{
				ResponseID:  row.ResponseID,
				ClientName:  row.ClientName,
				SubmittedAt: row.SubmittedAt,
				JobLevel:    row.JobLevel,
				StartDate:   row.StartDate,
				Department:  row.Department,
			})
		}
		out[i].Events = append(out[i].Events, archivedEvent{Event: string(row.Event), Answer: row.Answer})
	}
	return out
}
