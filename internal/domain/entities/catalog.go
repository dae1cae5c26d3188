package entities

import "strings"

// Event é um dos eventos críticos avaliados pelo respondente, identificado pelo texto
type Event string

// CriticalEvents é o catálogo fixo de eventos críticos
var CriticalEvents = []Event{
	"Fuga de información confidencial",
	"Caída prolongada de los sistemas informáticos",
	"Incumplimiento regulatorio",
	"Fraude interno",
	"Crisis reputacional en redes sociales",
	"Falla en la cadena de suministro",
	"Desastre natural que afecta las instalaciones",
	"Ciberataque",
	"Conflicto laboral grave",
	"Error crítico en producto o servicio",
}

// IsCatalogEvent verifica se o evento pertence ao catálogo
func IsCatalogEvent(e Event) bool {
	for _, known := range CriticalEvents {
		if known == e {
			return true
		}
	}
	return false
}

// Opções de consentimento da página de introdução
const (
	ConsentAccept  = "Estoy de acuerdo, deseo continuar"
	ConsentDecline = "No estoy de acuerdo, deseo salir."
)

// ConsentOptions lista as opções na ordem em que são exibidas
var ConsentOptions = []string{ConsentAccept, ConsentDecline}

// AnswerField descreve uma das sete perguntas feitas para cada evento
type AnswerField struct {
	Key     string   `json:"key"`
	Column  string   `json:"column"`
	Section string   `json:"section"`
	Prompt  string   `json:"-"`
	Options []string `json:"options"`
}

// PromptFor retorna o enunciado da pergunta para um evento
func (f AnswerField) PromptFor(e Event) string {
	return strings.ReplaceAll(f.Prompt, "{evento}", string(e))
}

// Valid verifica se o valor pertence ao conjunto de opções do campo
func (f AnswerField) Valid(value string) bool {
	return contains(f.Options, value)
}

// AnswerFields são os campos de EventAnswer, na ordem das colunas da planilha
var AnswerFields = []AnswerField{
	{
		Key:     "probabilidad",
		Column:  "Probabilidad",
		Section: "Probabilidad",
		Prompt:  "¿Qué tan probable considera que es la ocurrencia de un evento como {evento}?",
		Options: []string{"Extremadamente improbable", "Algo improbable", "Ni probable ni improbable", "Algo probable", "Extremadamente probable"},
	},
	{
		Key:     "ocurrencia",
		Column:  "Ocurrencia",
		Section: "Ocurrencia pasada",
		Prompt:  "¿Con qué frecuencia se han presentado situaciones de {evento} en el pasado?",
		Options: []string{"Nunca", "1 vez", "Entre 2 y 3 veces", "Más de 4 veces"},
	},
	{
		Key:     "deteccion",
		Column:  "Detección",
		Section: "Detección",
		Prompt:  "¿Qué tan fácil considera que es anticipar una situación de {evento} antes de que ocurra?",
		Options: []string{"Extremadamente difícil", "Algo difícil", "Ni fácil ni difícil", "Algo fácil", "Extremadamente fácil"},
	},
	{
		Key:     "estructura",
		Column:  "Estructura",
		Section: "Estructura Organizacional",
		Prompt:  `¿Qué tan de acuerdo está con la siguiente afirmación? "La estructura y los procesos internos de la organización favorecen la probabilidad de que una situación como {evento} ocurra."`,
		Options: []string{"Totalmente en desacuerdo", "Algo en desacuerdo", "Ni de acuerdo ni en desacuerdo", "Algo de acuerdo", "Totalmente de acuerdo"},
	},
	{
		Key:     "impacto",
		Column:  "Impacto",
		Section: "Impacto",
		Prompt:  "Si {evento} ocurriera, ¿qué tan negativo considera que sería para la organización?",
		Options: []string{"Nada negativo", "Poco negativo", "Moderadamente negativo", "Muy negativo", "Extremadamente negativo"},
	},
	{
		Key:     "responsabilidad",
		Column:  "Responsabilidad",
		Section: "Responsabilidad",
		Prompt:  "En caso de que ocurriera {evento}, ¿qué nivel de responsabilidad tendría la organización?",
		Options: []string{"Ninguna", "Poca", "Moderada", "Mucha", "Muchísima"},
	},
	{
		Key:     "autoeficacia",
		Column:  "Autoeficacia",
		Section: "Autoeficacia",
		Prompt:  "¿Qué tan preparado considera que está su organización para responder ante {evento} en caso de que ocurriera?",
		Options: []string{"Nada preparado", "Poco preparada", "Moderadamente preparada", "Muy preparada", "Totalmente preparado"},
	},
}

// JobLevels são os níveis de cargo aceitos na página demográfica
var JobLevels = []string{
	"C-Level (Ejecutivo: CEO, CFO, COO, etc.)",
	"Director",
	"Gerente",
	"Coordinador/Supervisor",
	"Analista/Especialista",
	"Asistente/Operativo",
}

// Departments são as áreas aceitas na página demográfica
var Departments = []string{
	"Dirección General",
	"Recursos Humanos",
	"Finanzas",
	"Operaciones",
	"Tecnología/IT",
	"Marketing y Ventas",
	"Logística y Cadena de Suministro",
	"Legal y Cumplimiento",
	"Investigación y Desarrollo",
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
