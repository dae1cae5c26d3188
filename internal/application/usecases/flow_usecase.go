package usecases

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/PavaniTiago/cck-survey-api/internal/domain/entities"
	"github.com/PavaniTiago/cck-survey-api/internal/domain/repositories"
	"github.com/PavaniTiago/cck-survey-api/internal/utils"
)

var (
	ErrWrongPage       = errors.New("acción no válida en la página actual")
	ErrConsentDeclined = errors.New("el encuestado no dio su consentimiento")
	ErrInvalidConsent  = errors.New("seleccione una opción de consentimiento")
)

// Persister executa a passada de salvamento
type Persister interface {
	Persist(ctx context.Context, s *entities.Session) (PersistResult, error)
}

// FlowConfig controla o número de eventos e a política para campos não respondidos
type FlowConfig struct {
	TotalEvents   int
	StrictAnswers bool
}

// DemographicsInput são os valores brutos do formulário demográfico
type DemographicsInput struct {
	JobLevel   string `json:"job_level"`
	StartDate  string `json:"start_date"`
	Department string `json:"department"`
}

// FlowUseCase conduz o respondente pelas páginas da pesquisa
type FlowUseCase struct {
	cfg        FlowConfig
	verifier   repositories.WorksheetConnector
	persister  Persister
	responseID IDGenerator
	now        Clock
	logger     *zap.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewFlowUseCase cria uma nova instância de FlowUseCase.
// verifier é usado para verificar as credenciais quando uma sessão é criada.
func NewFlowUseCase(cfg FlowConfig, verifier repositories.WorksheetConnector, persister Persister, logger *zap.Logger) *FlowUseCase {
	if cfg.TotalEvents <= 0 {
		cfg.TotalEvents = 3
	}
	if cfg.TotalEvents > len(entities.CriticalEvents) {
		cfg.TotalEvents = len(entities.CriticalEvents)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FlowUseCase{
		cfg:        cfg,
		verifier:   verifier,
		persister:  persister,
		responseID: NewResponseID,
		now:        time.Now,
		logger:     logger,
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithRand fixa a fonte aleatória do sorteio de eventos
func (u *FlowUseCase) WithRand(r *rand.Rand) *FlowUseCase {
	u.rng = r
	return u
}

// WithIDGenerator substitui o gerador de response_id
func (u *FlowUseCase) WithIDGenerator(gen IDGenerator) *FlowUseCase {
	u.responseID = gen
	return u
}

// WithClock substitui o relógio usado como data de início padrão
func (u *FlowUseCase) WithClock(clock Clock) *FlowUseCase {
	u.now = clock
	return u
}

// TotalEvents retorna o número de eventos avaliados por respondente
func (u *FlowUseCase) TotalEvents() int {
	return u.cfg.TotalEvents
}

// NewSession cria a sessão de um novo respondente e verifica as credenciais uma vez
func (u *FlowUseCase) NewSession(ctx context.Context, id string) *entities.Session {
	s := entities.NewSession(id, u.responseID(), u.cfg.TotalEvents)

	if u.verifier == nil {
		s.CredentialsError = true
		return s
	}

	ws, err := u.verifier.Connect(ctx)
	if err != nil || ws == nil {
		s.CredentialsError = true
		if err != nil {
			s.CredentialsMessage = err.Error()
		}
		u.logger.Warn("credenciais do Google Sheets não verificadas", zap.String("session_id", id), zap.Error(err))
		return s
	}

	s.CredentialsVerified = true
	return s
}

func expectPage(s *entities.Session, want entities.Page) error {
	if s.Page != want {
		return fmt.Errorf("%w: esperada %s, atual %s", ErrWrongPage, want, s.Page)
	}
	return nil
}

// Consent registra o nome do cliente e a decisão de consentimento.
// Recusar interrompe o fluxo sem alterar a sessão.
func (u *FlowUseCase) Consent(s *entities.Session, clientName, consent string) error {
	if err := expectPage(s, entities.PageIntro); err != nil {
		return err
	}
	switch consent {
	case entities.ConsentAccept:
		s.ClientName = clientName
		// Nova tentativa, novo identificador
		s.ResponseID = u.responseID()
		s.Page = entities.PageInstructions
		return nil
	case entities.ConsentDecline:
		return ErrConsentDeclined
	default:
		return ErrInvalidConsent
	}
}

// Start sorteia os eventos sem reposição e abre a avaliação do primeiro
func (u *FlowUseCase) Start(s *entities.Session) error {
	if err := expectPage(s, entities.PageInstructions); err != nil {
		return err
	}

	s.SelectedEvents = u.sample(s.TotalEvents)
	s.Page = entities.PageEvaluation
	return nil
}

func (u *FlowUseCase) sample(n int) []entities.Event {
	if n <= 0 || n > len(entities.CriticalEvents) {
		n = u.cfg.TotalEvents
	}

	u.rngMu.Lock()
	perm := u.rng.Perm(len(entities.CriticalEvents))
	u.rngMu.Unlock()

	events := make([]entities.Event, n)
	for i := range events {
		events[i] = entities.CriticalEvents[perm[i]]
	}
	return events
}

// SubmitEvaluation grava as sete respostas do evento atual e avança
func (u *FlowUseCase) SubmitEvaluation(s *entities.Session, input map[string]string) error {
	if err := expectPage(s, entities.PageEvaluation); err != nil {
		return err
	}
	event, ok := s.CurrentEvent()
	if !ok {
		return fmt.Errorf("%w: sem evento em avaliação", ErrWrongPage)
	}

	answer, err := entities.ParseEventAnswer(input, u.cfg.StrictAnswers)
	if err != nil {
		return err
	}

	s.SetAnswer(event, answer)
	if s.AnsweredCount >= len(s.SelectedEvents) {
		s.Page = entities.PageDemographics
	}
	return nil
}

// SubmitDemographics grava os dados demográficos, passa para a página de salvamento e executa o salvamento
func (u *FlowUseCase) SubmitDemographics(ctx context.Context, s *entities.Session, in DemographicsInput) (PersistResult, error) {
	if err := expectPage(s, entities.PageDemographics); err != nil {
		return PersistResult{}, err
	}

	var start time.Time
	if in.StartDate == "" && !u.cfg.StrictAnswers {
		start = u.now()
	} else {
		parsed, err := utils.ParseDayDate(in.StartDate)
		if err != nil {
			return PersistResult{}, fmt.Errorf("%w: %v", entities.ErrInvalidDemographics, err)
		}
		start = parsed
	}

	d, err := entities.NewDemographics(in.JobLevel, start, in.Department, u.cfg.StrictAnswers)
	if err != nil {
		return PersistResult{}, err
	}

	s.Demographics = &d
	s.Page = entities.PageSave
	return u.Save(ctx, s)
}

// Save executa a passada de salvamento da página final
func (u *FlowUseCase) Save(ctx context.Context, s *entities.Session) (PersistResult, error) {
	if err := expectPage(s, entities.PageSave); err != nil {
		return PersistResult{}, err
	}

	result, err := u.persister.Persist(ctx, s)
	if err != nil {
		return result, err
	}
	s.LastExport = result.Export
	s.Saved = result.Succeeded
	return result, nil
}

// Reset inicia uma nova pesquisa na mesma sessão
func (u *FlowUseCase) Reset(s *entities.Session) error {
	if err := expectPage(s, entities.PageSave); err != nil {
		return err
	}
	s.Reset(u.responseID())
	return nil
}
