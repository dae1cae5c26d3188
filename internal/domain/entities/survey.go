package entities

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrMissingAnswer       = errors.New("pregunta sin responder")
	ErrInvalidAnswer       = errors.New("respuesta fuera de las opciones")
	ErrInvalidDemographics = errors.New("datos demográficos inválidos")
)

// Formatos de data usados na planilha e no CSV
const (
	StartDateLayout = "02/01/2006"
	TimestampLayout = "02/01/2006 15:04:05"
)

// Header é o cabeçalho fixo de 14 colunas da planilha e do CSV
var Header = []string{
	"ID_Respuesta", "Nombre_Cliente", "Fecha_Respuesta",
	"Nivel_Cargo", "Fecha_Inicio", "Departamento",
	"Evento", "Probabilidad", "Ocurrencia", "Detección",
	"Estructura", "Impacto", "Responsabilidad", "Autoeficacia",
}

// EventAnswer é a avaliação de sete campos dada a um evento
type EventAnswer struct {
	Probability             string `json:"probabilidad"`
	PastOccurrence          string `json:"ocurrencia"`
	Detectability           string `json:"deteccion"`
	OrganizationalStructure string `json:"estructura"`
	Impact                  string `json:"impacto"`
	Responsibility          string `json:"responsabilidad"`
	SelfEfficacy            string `json:"autoeficacia"`
}

// Values retorna os campos na ordem de AnswerFields
func (a EventAnswer) Values() []string {
	return []string{
		a.Probability,
		a.PastOccurrence,
		a.Detectability,
		a.OrganizationalStructure,
		a.Impact,
		a.Responsibility,
		a.SelfEfficacy,
	}
}

// Complete indica se todos os campos têm um valor do seu domínio
func (a EventAnswer) Complete() bool {
	for i, v := range a.Values() {
		if !AnswerFields[i].Valid(v) {
			return false
		}
	}
	return true
}

func answerFromValues(v []string) EventAnswer {
	return EventAnswer{
		Probability:             v[0],
		PastOccurrence:          v[1],
		Detectability:           v[2],
		OrganizationalStructure: v[3],
		Impact:                  v[4],
		Responsibility:          v[5],
		SelfEfficacy:            v[6],
	}
}

// ParseEventAnswer monta um EventAnswer a partir dos valores do formulário, indexados por AnswerField.Key.
// Campos ausentes recebem a primeira opção, a menos que requireExplicit seja true.
func ParseEventAnswer(input map[string]string, requireExplicit bool) (EventAnswer, error) {
	values := make([]string, len(AnswerFields))
	for i, field := range AnswerFields {
		v, ok := input[field.Key]
		if !ok || v == "" {
			if requireExplicit {
				return EventAnswer{}, fmt.Errorf("%w: %s", ErrMissingAnswer, field.Column)
			}
			v = field.Options[0]
		}
		if !field.Valid(v) {
			return EventAnswer{}, fmt.Errorf("%w: %s=%q", ErrInvalidAnswer, field.Column, v)
		}
		values[i] = v
	}
	return answerFromValues(values), nil
}

// Demographics são os dados do respondente coletados ao final
type Demographics struct {
	JobLevel   string    `json:"nivel_cargo"`
	StartDate  time.Time `json:"fecha_inicio"`
	Department string    `json:"departamento"`
}

// StartDateLabel formata a data de início como DD/MM/YYYY
func (d Demographics) StartDateLabel() string {
	return d.StartDate.Format(StartDateLayout)
}

// NewDemographics valida os três campos. Valores vazios recebem a primeira opção, a menos que requireExplicit seja true.
func NewDemographics(jobLevel string, startDate time.Time, department string, requireExplicit bool) (Demographics, error) {
	if jobLevel == "" && !requireExplicit {
		jobLevel = JobLevels[0]
	}
	if department == "" && !requireExplicit {
		department = Departments[0]
	}
	if !contains(JobLevels, jobLevel) {
		return Demographics{}, fmt.Errorf("%w: nivel de cargo %q", ErrInvalidDemographics, jobLevel)
	}
	if !contains(Departments, department) {
		return Demographics{}, fmt.Errorf("%w: departamento %q", ErrInvalidDemographics, department)
	}
	if startDate.IsZero() {
		return Demographics{}, fmt.Errorf("%w: fecha de inicio vacía", ErrInvalidDemographics)
	}
	y, m, d := startDate.Date()
	return Demographics{
		JobLevel:   jobLevel,
		StartDate:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Department: department,
	}, nil
}

// ResponseRow é a unidade de persistência: uma linha por par (sessão, evento)
type ResponseRow struct {
	ResponseID  string
	ClientName  string
	SubmittedAt string
	JobLevel    string
	StartDate   string
	Department  string
	Event       Event
	Answer      EventAnswer
}

// Values retorna a linha na ordem de Header
func (r ResponseRow) Values() []string {
	values := make([]string, 0, len(Header))
	values = append(values,
		r.ResponseID,
		r.ClientName,
		r.SubmittedAt,
		r.JobLevel,
		r.StartDate,
		r.Department,
		string(r.Event),
	)
	return append(values, r.Answer.Values()...)
}

// ResponseRowFromValues é o inverso de Values
func ResponseRowFromValues(values []string) (ResponseRow, error) {
	if len(values) != len(Header) {
		return ResponseRow{}, fmt.Errorf("esperadas %d colunas, recebidas %d", len(Header), len(values))
	}
	return ResponseRow{
		ResponseID:  values[0],
		ClientName:  values[1],
		SubmittedAt: values[2],
		JobLevel:    values[3],
		StartDate:   values[4],
		Department:  values[5],
		Event:       Event(values[6]),
		Answer:      answerFromValues(values[7:]),
	}, nil
}
