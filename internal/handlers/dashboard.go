package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/albqueque12/FitIA/internal/api"
	"github.com/albqueque12/FitIA/internal/models"
	"github.com/albqueque12/FitIA/pkg/utils"
)

// Dashboard is the landing page for a registered runner: goal, derived
// paces and the progress aggregate. Fetch failures surface as a banner,
// never as a blank page.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	sess := h.session()
	if sess == nil {
		return c.Redirect("/register")
	}

	bind := fiber.Map{
		"Title":  "FitIA",
		"User":   sess.User,
		"Ritmos": paceRows(sess.Ritmos),
		"Goal":   utils.FormatGoal(sess.User.DistanciaObjetivo, sess.User.TempoObjetivoMin),
	}

	progress, err := h.service.Progress(c.Context(), sess.User.ID)
	if err != nil {
		bind["Erro"] = api.UserMessage(err)
	} else {
		bind["Stats"] = progress.Statistics
		bind["RecentFeedback"] = progress.RecentFeedback
	}
	return h.render(c, "dashboard", bind)
}

type paceRow struct {
	Nome string
	Pace string
}

func paceRows(paces models.PaceSet) []paceRow {
	return []paceRow{
		{"Fácil", utils.FormatPace(paces.RitmoFacil)},
		{"Longo", utils.FormatPace(paces.RitmoLongo)},
		{"Tempo", utils.FormatPace(paces.RitmoTempo)},
		{"Intervalo", utils.FormatPace(paces.RitmoIntervalo)},
		{"Limiar", utils.FormatPace(paces.RitmoLimiar)},
		{"Ritmo de Prova", utils.FormatPace(paces.RitmoRitmo)},
		{"Objetivo", utils.FormatPace(paces.RitmoObjetivo)},
	}
}
