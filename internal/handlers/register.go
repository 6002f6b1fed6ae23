package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/albqueque12/FitIA/internal/api"
	"github.com/albqueque12/FitIA/internal/wizard"
)

// ShowRegister renders the current wizard step. A runner with a stored
// profile has no business here and is sent back to the dashboard.
func (h *Handler) ShowRegister(c *fiber.Ctx) error {
	if h.session() != nil {
		return c.Redirect("/")
	}
	return h.renderWizard(c, "")
}

// SubmitRegister handles every wizard post. The "action" field decides
// between going back, advancing and the final submission.
func (h *Handler) SubmitRegister(c *fiber.Ctx) error {
	if h.session() != nil {
		return c.Redirect("/")
	}

	if c.FormValue("action") == "back" {
		h.wizard.Back()
		return c.Redirect("/register")
	}

	h.wizard.Update(wizard.Form{
		Idade: c.FormValue("idade"),
		Peso:  c.FormValue("peso"),
		Sexo:  c.FormValue("sexo"),
		Nivel: c.FormValue("nivel"),

		DistanciaObjetivo:    c.FormValue("distancia_objetivo"),
		TempoObjetivoHoras:   c.FormValue("tempo_objetivo_horas"),
		TempoObjetivoMinutos: c.FormValue("tempo_objetivo_minutos"),
		SemanasTreino:        c.FormValue("semanas_treino"),
		DiasSemana:           c.FormValue("dias_semana"),

		Teste5kmTempo:   c.FormValue("teste_5km_tempo"),
		Teste5kmFCMedia: c.FormValue("teste_5km_fc_media"),
		Teste5kmRPE:     c.FormValue("teste_5km_rpe"),
	})

	if h.wizard.Step() != wizard.StepFitnessTest {
		if err := h.wizard.Next(); err != nil {
			return h.renderWizard(c, err.Error())
		}
		return c.Redirect("/register")
	}

	payload, err := h.wizard.Payload()
	if err != nil {
		return h.renderWizard(c, err.Error())
	}

	sess, err := h.creator.CreateUser(c.Context(), payload)
	if err != nil {
		// The wizard keeps its fields; the runner can just retry.
		return h.renderWizard(c, api.UserMessage(err))
	}
	if err := h.store.Save(sess); err != nil {
		return h.renderWizard(c, "Não foi possível guardar o perfil localmente. Tente novamente.")
	}
	h.wizard.Reset()
	return c.Redirect("/")
}

func (h *Handler) renderWizard(c *fiber.Ctx, errMsg string) error {
	return h.render(c, "register", fiber.Map{
		"Title": "Cadastro - FitIA",
		"Step":  int(h.wizard.Step()),
		"Form":  h.wizard.Form(),
		"Erro":  errMsg,
	})
}
