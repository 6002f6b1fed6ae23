package models

// Feedback is one week's subjective report. Append only from the client's
// point of view; submitting one may move the profile's performance factor.
type Feedback struct {
	ID           int64    `json:"id"`
	UserID       int64    `json:"user_id"`
	Semana       int      `json:"semana"`
	Consistencia int      `json:"consistencia"`
	RPEMedio     float64  `json:"rpe_medio"`
	FCMedio      *float64 `json:"fc_medio"`
	Observacoes  *string  `json:"observacoes"`
}

// Progress is the aggregate the dashboard and progress views render.
type Progress struct {
	Statistics     Statistics `json:"statistics"`
	RecentFeedback []Feedback `json:"recent_feedback"`
}

type Statistics struct {
	TotalPlans         int     `json:"total_plans"`
	TotalWorkouts      int     `json:"total_workouts"`
	CompletedWorkouts  int     `json:"completed_workouts"`
	CompletionRate     float64 `json:"completion_rate"`
	ProgressPercentage float64 `json:"progress_percentage"`
}
