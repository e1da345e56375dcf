// Package status normalizes the free-text status fields that arrive from
// spreadsheets and manual edits. The mapping tables are fixed; anything not
// covered falls back to the original string unchanged. Pure functions, no
// persistence.
package status

import "strings"

// Field names with a translation table.
const (
	FieldStatus         = "status"
	FieldCourseStatus   = "course_status"
	FieldOperationReady = "operation_ready"
	FieldEmployeeType   = "employee_type"
)

var translations = map[string]map[string]string{
	FieldStatus: {
		"active":    "Ativo",
		"inactive":  "Inativo",
		"on_leave":  "Afastado",
		"fired":     "Demitido",
		"demitido":  "Demitido",
		"desligado": "Demitido",
		"desligada": "Demitido",
		"afastado":  "Afastado",
		"afastada":  "Afastado",
		"ativo":     "Ativo",
		"ativa":     "Ativo",
		"inativo":   "Inativo",
		"inativa":   "Inativo",
	},
	FieldCourseStatus: {
		"not_started": "Não Iniciado",
		"notstarted":  "Não Iniciado",
		"in_progress": "Em Andamento",
		"inprogress":  "Em Andamento",
		"andamento":   "Em Andamento",
		"completed":   "Concluído",
		"concluido":   "Concluído",
		"concluída":   "Concluído",
		"delayed":     "Atrasado",
		"atrasado":    "Atrasado",
		"cancelled":   "Cancelado",
		"cancelado":   "Cancelado",
		"cancelada":   "Cancelado",
	},
	FieldOperationReady: {
		"yes": "Sim",
		"y":   "Sim",
		"s":   "Sim",
		"sim": "Sim",
		"no":  "Não",
		"n":   "Não",
		"não": "Não",
		"nao": "Não",
	},
	FieldEmployeeType: {
		"trainee":    "Estagiário",
		"estagiario": "Estagiário",
		"estagiária": "Estagiário",
		"temporary":  "Temporário",
		"temporario": "Temporário",
		"temporária": "Temporário",
		"intern":     "Estagiário",
		"clt":        "CLT",
		"pj":         "PJ",
		"freelancer": "Freelancer",
	},
}

// Translate maps a raw status value to its canonical Portuguese form for the
// given field. Resolution order: exact key match, already-canonical value
// (re-cased), partial match against either side of the table. Unknown values
// are returned trimmed but otherwise untouched.
func Translate(field, value string) string {
	if value == "" {
		return value
	}

	trimmed := strings.TrimSpace(value)
	lower := strings.ToLower(trimmed)

	table, ok := translations[field]
	if !ok {
		return trimmed
	}

	if canonical, ok := table[lower]; ok {
		return canonical
	}

	for _, canonical := range table {
		if lower == strings.ToLower(canonical) {
			return titleCase(trimmed)
		}
	}

	for raw, canonical := range table {
		if strings.Contains(lower, raw) || strings.Contains(lower, strings.ToLower(canonical)) {
			return canonical
		}
	}

	return trimmed
}

// readyValues are the free-text spellings accepted as an affirmative
// operation_ready flag.
var readyValues = map[string]bool{
	"sim": true,
	"s":   true,
	"y":   true,
	"yes": true,
	"1":   true,
}

// IsReady reports whether the free-text operation_ready flag counts as "yes".
// Anything else, including empty, counts as "no".
func IsReady(value string) bool {
	return readyValues[strings.ToLower(strings.TrimSpace(value))]
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + strings.ToLower(string(runes[1:]))
}
