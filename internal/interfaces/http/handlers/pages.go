package handlers

import (
	"fmt"

	"github.com/PavaniTiago/cck-survey-api/internal/domain/entities"
)

const (
	surveyTitle = "CCK"

	introHeading = "Introducción y Consentimiento"
	introBody    = `El propósito de este cuestionario es evaluar su percepción sobre la probabilidad, el impacto y la preparación de su organización frente a una serie de posibles eventos críticos. Sus respuestas nos ayudarán a identificar áreas clave para mejorar los procesos internos, la detección temprana y la preparación organizacional.

La participación es completamente anónima y voluntaria, y sus respuestas serán utilizadas únicamente con fines de evaluación interna. No serán compartidas con terceros bajo ninguna circunstancia.

Por favor, responda cada pregunta basándose en su experiencia y percepción actual sobre estos eventos. No existen respuestas correctas o incorrectas.

El tiempo estimado para completar el cuestionario es de 5 a 10 minutos.`

	instructionsHeading = "Cómo llenar el cuestionario"
	instructionsBody    = `Se le presentará una serie de posibles eventos o situaciones sobre los cuales queremos conocer su opinión.

Para cada uno de ellos, le pedimos que:

1. Lea cuidadosamente cada pregunta
2. Seleccione la opción que mejor refleje su percepción o experiencia con respecto a la situación planteada
3. Use las escalas provistas para evaluar su respuesta. Cada escala está diseñada para capturar diferentes niveles de probabilidad, impacto o preparación

Si tiene dudas sobre alguna pregunta, elija la respuesta que mejor se acerque a su opinión actual.`

	demographicsHeading = "Datos demográficos"
	demographicsBody    = `Por último... Antes de finalizar quisiéramos reunir algunos datos sobre su cargo y experiencia en la organización. La información suministrada es estrictamente confidencial y no será compartida con otros miembros de la organización. Su uso se limitará estrictamente para el análisis de vulnerabilidades.`

	saveHeading = "Guardando sus respuestas"

	consentDeclinedMessage = "Ha decidido no participar en la encuesta. Gracias por su tiempo."

	credentialsWarning = "⚠️ Advertencia: Hay un problema con las credenciales de Google Sheets. Las respuestas se guardarán localmente, pero no se enviarán a Google Sheets."
	footerNotice       = "Esta encuesta es confidencial y los datos recopilados serán utilizados únicamente con fines estadísticos."

	saveSuccessMessage = "¡Gracias por completar la encuesta! Sus respuestas han sido guardadas correctamente."
	saveWarningMessage = "No se pudieron guardar todas las respuestas en Google Sheets."
	saveInfoMessage    = "Sus respuestas están listas para ser descargadas como archivo CSV."
)

// FieldView é um campo de formulário exibido na página
type FieldView struct {
	Key     string   `json:"key"`
	Section string   `json:"section,omitempty"`
	Prompt  string   `json:"prompt"`
	Kind    string   `json:"kind"`
	Options []string `json:"options,omitempty"`
	Value   string   `json:"value,omitempty"`
}

// ActionView descreve o botão que avança o fluxo
type ActionView struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

type ProgressView struct {
	Answered int     `json:"answered_count"`
	Total    int     `json:"total_events"`
	Fraction float64 `json:"fraction"`
	Label    string  `json:"label"`
}

// SaveView é o resultado da passada de salvamento
type SaveView struct {
	Succeeded   bool   `json:"succeeded"`
	RowsWritten int    `json:"rows_written"`
	Message     string `json:"message"`
	Info        string `json:"info,omitempty"`
	FileName    string `json:"file_name,omitempty"`
}

// PageView é a representação JSON da página atual da sessão
type PageView struct {
	Page       entities.Page `json:"page"`
	Title      string        `json:"title"`
	Heading    string        `json:"heading"`
	Body       string        `json:"body,omitempty"`
	ResponseID string        `json:"response_id"`
	Event      string        `json:"event,omitempty"`
	Progress   *ProgressView `json:"progress,omitempty"`
	Fields     []FieldView   `json:"fields,omitempty"`
	Actions    []ActionView  `json:"actions"`
	Result     *SaveView     `json:"result,omitempty"`
	Warning    string        `json:"warning,omitempty"`
	Notice     string        `json:"notice"`
}

// BuildPageView monta a página correspondente ao estado da sessão
func BuildPageView(s *entities.Session) PageView {
	view := PageView{
		Page:       s.Page,
		Title:      surveyTitle,
		ResponseID: s.ResponseID,
		Actions:    []ActionView{},
		Notice:     footerNotice,
	}
	if s.CredentialsError {
		view.Warning = credentialsWarning
	}

	switch s.Page {
	case entities.PageIntro:
		view.Heading = introHeading
		view.Body = introBody
		view.Fields = []FieldView{
			{Key: "client_name", Prompt: "Nombre del cliente/organización:", Kind: "text", Value: s.ClientName},
			{Key: "consent", Prompt: "Por favor, indique su consentimiento a continuación:", Kind: "radio", Options: entities.ConsentOptions},
		}
		view.Actions = append(view.Actions, ActionView{Label: "Continuar", Method: "POST", Path: "/survey/consent"})

	case entities.PageInstructions:
		view.Heading = instructionsHeading
		view.Body = instructionsBody
		view.Actions = append(view.Actions, ActionView{Label: "Comenzar encuesta", Method: "POST", Path: "/survey/start"})

	case entities.PageEvaluation:
		event, _ := s.CurrentEvent()
		view.Event = string(event)
		view.Heading = fmt.Sprintf("Evaluación del evento: %s", event)
		view.Progress = progressOf(s)
		for _, f := range entities.AnswerFields {
			view.Fields = append(view.Fields, FieldView{
				Key:     f.Key,
				Section: f.Section,
				Prompt:  f.PromptFor(event),
				Kind:    "radio",
				Options: f.Options,
			})
		}
		view.Actions = append(view.Actions, ActionView{Label: "Siguiente", Method: "POST", Path: "/survey/evaluation"})

	case entities.PageDemographics:
		view.Heading = demographicsHeading
		view.Body = demographicsBody
		view.Fields = []FieldView{
			{Key: "job_level", Prompt: "¿Cuál es su nivel de cargo actual dentro de la organización?", Kind: "select", Options: entities.JobLevels},
			{Key: "start_date", Prompt: "¿En qué fecha comenzó a trabajar en la organización?", Kind: "date"},
			{Key: "department", Prompt: "¿A qué área o departamento pertenece dentro de la organización?", Kind: "select", Options: entities.Departments},
		}
		view.Actions = append(view.Actions, ActionView{Label: "Finalizar encuesta", Method: "POST", Path: "/survey/demographics"})

	case entities.PageSave:
		view.Heading = saveHeading
		view.Result = saveViewOf(s)
		if s.LastExport != nil {
			view.Actions = append(view.Actions, ActionView{Label: "Descargar respuestas como CSV", Method: "GET", Path: "/survey/export"})
		}
		view.Actions = append(view.Actions, ActionView{Label: "Iniciar nueva encuesta", Method: "POST", Path: "/survey/reset"})
	}

	return view
}

func progressOf(s *entities.Session) *ProgressView {
	p := &ProgressView{Answered: s.AnsweredCount, Total: s.TotalEvents}
	if s.TotalEvents > 0 {
		p.Fraction = float64(s.AnsweredCount) / float64(s.TotalEvents)
	}
	p.Label = fmt.Sprintf("Evento %d de %d", s.AnsweredCount+1, s.TotalEvents)
	return p
}

func saveViewOf(s *entities.Session) *SaveView {
	if s.Saved {
		return &SaveView{Succeeded: true, RowsWritten: s.AnsweredCount, Message: saveSuccessMessage}
	}
	v := &SaveView{Message: saveWarningMessage}
	if s.LastExport != nil {
		v.Info = saveInfoMessage
		v.FileName = s.LastExport.FileName
	}
	return v
}
