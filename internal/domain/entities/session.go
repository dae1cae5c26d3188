package entities

// Page é o estado atual do fluxo da pesquisa
type Page string

const (
	PageIntro        Page = "inicio"
	PageInstructions Page = "instrucciones"
	PageEvaluation   Page = "evaluacion"
	PageDemographics Page = "demograficos"
	PageSave         Page = "guardar"
)

// AnsweredEvent é um par evento/resposta, na ordem em que foi inserido
type AnsweredEvent struct {
	Event  Event       `json:"evento"`
	Answer EventAnswer `json:"respuesta"`
}

// ExportFile é o CSV de fallback oferecido para download
type ExportFile struct {
	FileName string
	Data     []byte
	Rows     int
}

// Session guarda o estado de uma visita de um respondente
type Session struct {
	ID                  string
	Page                Page
	ResponseID          string
	ClientName          string
	TotalEvents         int
	SelectedEvents      []Event
	AnsweredCount       int
	Demographics        *Demographics
	CredentialsVerified bool
	CredentialsError    bool
	CredentialsMessage  string
	LastExport          *ExportFile
	Saved               bool

	answers []AnsweredEvent
}

// NewSession cria uma sessão na página de introdução
func NewSession(id, responseID string, totalEvents int) *Session {
	return &Session{
		ID:          id,
		Page:        PageIntro,
		ResponseID:  responseID,
		TotalEvents: totalEvents,
	}
}

// CurrentEvent retorna o evento em avaliação, se houver
func (s *Session) CurrentEvent() (Event, bool) {
	if s.Page != PageEvaluation || s.AnsweredCount >= len(s.SelectedEvents) {
		return "", false
	}
	return s.SelectedEvents[s.AnsweredCount], true
}

// SetAnswer grava a resposta de um evento. Um evento repetido é sobrescrito mantendo a posição original.
func (s *Session) SetAnswer(e Event, a EventAnswer) {
	for i := range s.answers {
		if s.answers[i].Event == e {
			s.answers[i].Answer = a
			return
		}
	}
	s.answers = append(s.answers, AnsweredEvent{Event: e, Answer: a})
	s.AnsweredCount++
}

// Answers retorna uma cópia das respostas em ordem de inserção
func (s *Session) Answers() []AnsweredEvent {
	out := make([]AnsweredEvent, len(s.answers))
	copy(out, s.answers)
	return out
}

// Answer retorna a resposta dada a um evento
func (s *Session) Answer(e Event) (EventAnswer, bool) {
	for _, a := range s.answers {
		if a.Event == e {
			return a.Answer, true
		}
	}
	return EventAnswer{}, false
}

// Reset volta para a introdução preservando o nome do cliente e o estado das credenciais
func (s *Session) Reset(responseID string) {
	*s = Session{
		ID:                  s.ID,
		Page:                PageIntro,
		ResponseID:          responseID,
		ClientName:          s.ClientName,
		TotalEvents:         s.TotalEvents,
		CredentialsVerified: s.CredentialsVerified,
		CredentialsError:    s.CredentialsError,
		CredentialsMessage:  s.CredentialsMessage,
	}
}
