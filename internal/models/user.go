package models

// User is the runner profile exactly as the training API returns it. The
// client treats it as read only: the server recomputes performance_factor
// from weekly feedback and the whole value is replaced on every fetch.
type User struct {
	ID                int64   `json:"id"`
	Idade             int     `json:"idade"`
	Peso              float64 `json:"peso"`
	Sexo              string  `json:"sexo"`
	Nivel             string  `json:"nivel"`
	DistanciaObjetivo float64 `json:"distancia_objetivo"`
	TempoObjetivoMin  int     `json:"tempo_objetivo_min"`
	SemanasTreino     int     `json:"semanas_treino"`
	DiasSemana        int     `json:"dias_semana"`
	Teste5kmTempo     float64 `json:"teste_5km_tempo"`
	Teste5kmFCMedia   float64 `json:"teste_5km_fc_media"`
	Teste5kmRPE       int     `json:"teste_5km_rpe"`
	PerformanceFactor float64 `json:"performance_factor"`
}

// PaceSet holds the training paces the server derives from the 5km test,
// in fractional minutes per kilometer.
type PaceSet struct {
	RitmoFacil     float64 `json:"ritmo_facil"`
	RitmoLongo     float64 `json:"ritmo_longo"`
	RitmoTempo     float64 `json:"ritmo_tempo"`
	RitmoIntervalo float64 `json:"ritmo_intervalo"`
	RitmoLimiar    float64 `json:"ritmo_limiar"`
	RitmoRitmo     float64 `json:"ritmo_ritmo"`
	RitmoObjetivo  float64 `json:"ritmo_objetivo"`
}

// Session is the signed-in state that survives a reload: the profile plus
// its derived paces, as returned by POST /users. It is only ever replaced
// wholesale, never merged field by field.
type Session struct {
	User   User    `json:"user"`
	Ritmos PaceSet `json:"ritmos"`
}
