package entities

import "time"

// Base contém campos comuns para todas as entidades persistidas
type Base struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

// ResponseRecord é a cópia arquivada de uma ResponseRow
type ResponseRecord struct {
	Base
	ResponseID              string    `json:"id_respuesta" gorm:"column:response_id;size:16;not null"`
	ClientName              string    `json:"nombre_cliente" gorm:"column:client_name"`
	SubmittedAt             time.Time `json:"fecha_respuesta" gorm:"column:submitted_at"`
	JobLevel                string    `json:"nivel_cargo" gorm:"column:job_level"`
	StartDate               string    `json:"fecha_inicio" gorm:"column:start_date"`
	Department              string    `json:"departamento" gorm:"column:department"`
	Event                   string    `json:"evento" gorm:"column:event"`
	Probability             string    `json:"probabilidad" gorm:"column:probability"`
	PastOccurrence          string    `json:"ocurrencia" gorm:"column:past_occurrence"`
	Detectability           string    `json:"deteccion" gorm:"column:detectability"`
	OrganizationalStructure string    `json:"estructura" gorm:"column:organizational_structure"`
	Impact                  string    `json:"impacto" gorm:"column:impact"`
	Responsibility          string    `json:"responsabilidad" gorm:"column:responsibility"`
	SelfEfficacy            string    `json:"autoeficacia" gorm:"column:self_efficacy"`
}

func (ResponseRecord) TableName() string {
	return "survey_response_rows"
}

// NewResponseRecord converte uma linha para o formato do arquivo
func NewResponseRecord(row ResponseRow, submittedAt time.Time) ResponseRecord {
	return ResponseRecord{
		ResponseID:              row.ResponseID,
		ClientName:              row.ClientName,
		SubmittedAt:             submittedAt,
		JobLevel:                row.JobLevel,
		StartDate:               row.StartDate,
		Department:              row.Department,
		Event:                   string(row.Event),
		Probability:             row.Answer.Probability,
		PastOccurrence:          row.Answer.PastOccurrence,
		Detectability:           row.Answer.Detectability,
		OrganizationalStructure: row.Answer.OrganizationalStructure,
		Impact:                  row.Answer.Impact,
		Responsibility:          row.Answer.Responsibility,
		SelfEfficacy:            row.Answer.SelfEfficacy,
	}
}

// Row converte o registro de volta para uma ResponseRow
func (r ResponseRecord) Row() ResponseRow {
	return ResponseRow{
		ResponseID:  r.ResponseID,
		ClientName:  r.ClientName,
		SubmittedAt: r.SubmittedAt.Format(TimestampLayout),
		JobLevel:    r.JobLevel,
		StartDate:   r.StartDate,
		Department:  r.Department,
		Event:       Event(r.Event),
		Answer: EventAnswer{
			Probability:             r.Probability,
			PastOccurrence:          r.PastOccurrence,
			Detectability:           r.Detectability,
			OrganizationalStructure: r.OrganizationalStructure,
			Impact:                  r.Impact,
			Responsibility:          r.Responsibility,
			SelfEfficacy:            r.SelfEfficacy,
		},
	}
}
