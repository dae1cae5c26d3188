package handlers

import (
	"go.uber.org/zap"

	"github.com/PavaniTiago/cck-survey-api/internal/application/usecases"
	"github.com/PavaniTiago/cck-survey-api/internal/domain/repositories"
)

type Handlers struct {
	Survey    *SurveyHandler
	Health    *HealthHandler
	Responses *ResponseHandler
}

// NewHandlers monta os handlers da API. archive nil desativa as rotas administrativas.
func NewHandlers(flow *usecases.FlowUseCase, sheets SheetsChecker, sessions SessionCounter, archive repositories.ResponseArchive, logger *zap.Logger) *Handlers {
	h := &Handlers{
		Survey: NewSurveyHandler(flow, logger),
		Health: NewHealthHandler(sheets, sessions, logger),
	}
	if archive != nil {
		h.Responses = NewResponseHandler(archive)
	}
	return h
}
