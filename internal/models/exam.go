package models

// Exam variants accepted by the server. Each selects a fixed field set;
// the forms are driven by these tags, not by inspecting the data.
const (
	ExamBioimpedancia = "bioimpedancia"
	ExamEspirometria  = "espirometria"
	ExamVO2Max        = "vo2max"
)

// Exam is append only: never edited or deleted by the client. DadosExame
// carries the variant's numeric fields under their Portuguese keys.
type Exam struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"user_id"`
	TipoExame string             `json:"tipo_exame"`
	DataExame string             `json:"data_exame"`
	Dados     map[string]float64 `json:"dados_exame"`
}

// Field sets per variant, in the order the forms render them.
var (
	BioimpedanciaFields = []string{
		"peso_corporal", "percentual_gordura", "massa_magra", "massa_gorda",
		"agua_corporal", "massa_ossea", "taxa_metabolica_basal",
	}
	EspirometriaFields = []string{"cvf", "vef1", "relacao_vef1_cvf", "pef"}
	VO2MaxFields       = []string{
		"vo2max", "fc_max", "limiar_anaerobico", "limiar_ventilatorio",
		"potencia_aerobica",
	}
)

// ExamFields returns the numeric field names for a variant, or nil for an
// unknown tag.
func ExamFields(tipo string) []string {
	switch tipo {
	case ExamBioimpedancia:
		return BioimpedanciaFields
	case ExamEspirometria:
		return EspirometriaFields
	case ExamVO2Max:
		return VO2MaxFields
	default:
		return nil
	}
}
