package handlers

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/albqueque12/FitIA/internal/api"
	"github.com/albqueque12/FitIA/internal/models"
	"github.com/albqueque12/FitIA/internal/services"
)

// completionDraft carries a failed completion dialog back to the view so
// the runner retries without retyping.
type completionDraft struct {
	WorkoutID int64
	RPE       string
	FCMedia   string
	Tempo     string
	Erro      string
}

func (h *Handler) TrainingPlans(c *fiber.Ctx) error {
	sess := h.session()
	if sess == nil {
		return c.Redirect("/register")
	}
	return h.renderTraining(c, sess, nil, "")
}

// GenerateWeek requests the next weekly plan. The week defaults to the
// one after the latest generated plan.
func (h *Handler) GenerateWeek(c *fiber.Ctx) error {
	sess := h.session()
	if sess == nil {
		return c.Redirect("/register")
	}

	week, err := strconv.Atoi(c.FormValue("semana"))
	if err != nil {
		return h.renderTraining(c, sess, nil, "Semana inválida.")
	}
	if _, err := h.service.GenerateWeek(c.Context(), sess.User.ID, week); err != nil {
		return h.renderTraining(c, sess, nil, api.UserMessage(err))
	}
	return c.Redirect("/treinos?sucesso=" + url.QueryEscape("Plano da semana "+strconv.Itoa(week)+" gerado."))
}

// CompleteWorkout flips one workout to complete. Blank optional readings
// stay absent rather than turning into zero.
func (h *Handler) CompleteWorkout(c *fiber.Ctx) error {
	sess := h.session()
	if sess == nil {
		return c.Redirect("/register")
	}

	workoutID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return h.renderTraining(c, sess, nil, "Treino inválido.")
	}

	draft := &completionDraft{
		WorkoutID: workoutID,
		RPE:       c.FormValue("rpe_realizado"),
		FCMedia:   c.FormValue("fc_media"),
		Tempo:     c.FormValue("tempo_realizado"),
	}

	rpe, err := strconv.Atoi(draft.RPE)
	if err != nil {
		draft.Erro = "RPE deve estar entre 1 e 10"
		return h.renderTraining(c, sess, draft, "")
	}
	fcMedia, ok := optionalFloat(draft.FCMedia)
	if !ok {
		draft.Erro = "FC média inválida"
		return h.renderTraining(c, sess, draft, "")
	}
	tempo, ok := optionalFloat(draft.Tempo)
	if !ok {
		draft.Erro = "Tempo realizado inválido"
		return h.renderTraining(c, sess, draft, "")
	}

	err = h.service.CompleteWorkout(c.Context(), sess.User.ID, services.CompleteWorkoutInput{
		WorkoutID:      workoutID,
		RPERealizado:   rpe,
		FCMedia:        fcMedia,
		TempoRealizado: tempo,
	})
	if err != nil {
		draft.Erro = api.UserMessage(err)
		return h.renderTraining(c, sess, draft, "")
	}
	return c.Redirect("/treinos?sucesso=" + url.QueryEscape("Treino concluído."))
}

func (h *Handler) renderTraining(c *fiber.Ctx, sess *models.Session, draft *completionDraft, errMsg string) error {
	bind := fiber.Map{
		"Title": "Treinos - FitIA",
		"User":  sess.User,
	}
	if errMsg != "" {
		bind["Erro"] = errMsg
	}
	if draft != nil {
		bind["Draft"] = draft
	}

	plans, err := h.service.Plans(c.Context(), sess.User.ID)
	if err != nil {
		bind["Erro"] = api.UserMessage(err)
	} else {
		bind["Plans"] = plans
		bind["NextWeek"] = nextWeek(plans)
	}
	return h.render(c, "training", bind)
}

func nextWeek(plans []models.TrainingPlan) int {
	latest := 0
	for _, plan := range plans {
		if plan.Semana > latest {
			latest = plan.Semana
		}
	}
	return latest + 1
}
