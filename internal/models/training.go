package models

// Training phases as tagged by the server.
const (
	PhaseBase      = "base"
	PhaseBuild     = "construção"
	PhaseIntensify = "intensificação"
	PhaseTaper     = "tapering"
)

type TrainingPlan struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Semana      int       `json:"semana"`
	Fase        string    `json:"fase"`
	FaseDesc    string    `json:"fase_desc"`
	VolumeTotal float64   `json:"volume_total"`
	Workouts    []Workout `json:"workouts"`
}

// Workout belongs to exactly one weekly plan. Completed flips once,
// client-initiated and server-confirmed; the realized fields are only
// present after that transition.
type Workout struct {
	ID             int64    `json:"id"`
	Dia            int      `json:"dia"`
	Tipo           string   `json:"tipo"`
	DistanciaKM    float64  `json:"distancia_km"`
	RitmoAlvo      float64  `json:"ritmo_alvo"`
	RitmoFormatado string   `json:"ritmo_formatado"`
	Descricao      string   `json:"descricao"`
	Completed      bool     `json:"completed"`
	RPERealizado   *int     `json:"rpe_realizado"`
	FCMedia        *float64 `json:"fc_media"`
	TempoRealizado *float64 `json:"tempo_realizado"`
}
