package handlers

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/albqueque12/FitIA/internal/api"
	"github.com/albqueque12/FitIA/internal/models"
	"github.com/albqueque12/FitIA/internal/services"
)

type feedbackDraft struct {
	Semana       string
	Consistencia string
	RPEMedio     string
	FCMedio      string
	Observacoes  string
}

func (h *Handler) Feedback(c *fiber.Ctx) error {
	sess := h.session()
	if sess == nil {
		return c.Redirect("/register")
	}
	return h.renderFeedback(c, sess, feedbackDraft{}, "")
}

// SubmitFeedback posts one week's subjective report. Local validation
// failures keep the typed values on screen.
func (h *Handler) SubmitFeedback(c *fiber.Ctx) error {
	sess := h.session()
	if sess == nil {
		return c.Redirect("/register")
	}

	draft := feedbackDraft{
		Semana:       c.FormValue("semana"),
		Consistencia: c.FormValue("consistencia"),
		RPEMedio:     c.FormValue("rpe_medio"),
		FCMedio:      c.FormValue("fc_medio"),
		Observacoes:  c.FormValue("observacoes"),
	}

	semana, err := strconv.Atoi(draft.Semana)
	if err != nil {
		return h.renderFeedback(c, sess, draft, "Semana inválida.")
	}
	consistencia, err := strconv.Atoi(draft.Consistencia)
	if err != nil {
		return h.renderFeedback(c, sess, draft, "Consistência inválida.")
	}
	rpeMedio, err := strconv.ParseFloat(draft.RPEMedio, 64)
	if err != nil {
		return h.renderFeedback(c, sess, draft, "RPE médio inválido.")
	}
	fcMedio, ok := optionalFloat(draft.FCMedio)
	if !ok {
		return h.renderFeedback(c, sess, draft, "FC média inválida.")
	}

	factor, err := h.service.SubmitFeedback(c.Context(), sess.User, services.FeedbackInput{
		Semana:       semana,
		Consistencia: consistencia,
		RPEMedio:     rpeMedio,
		FCMedio:      fcMedio,
		Observacoes:  optionalText(draft.Observacoes),
	})
	if err != nil {
		return h.renderFeedback(c, sess, draft, api.UserMessage(err))
	}

	msg := fmt.Sprintf("Feedback registrado. Novo fator de performance: %.2f", factor)
	return c.Redirect("/feedback?sucesso=" + url.QueryEscape(msg))
}

func (h *Handler) renderFeedback(c *fiber.Ctx, sess *models.Session, draft feedbackDraft, errMsg string) error {
	bind := fiber.Map{
		"Title": "Feedback Semanal - FitIA",
		"User":  sess.User,
		"Draft": draft,
	}
	if errMsg != "" {
		bind["Erro"] = errMsg
	}

	feedbacks, err := h.service.Feedbacks(c.Context(), sess.User.ID)
	if err != nil {
		bind["Erro"] = api.UserMessage(err)
	} else {
		bind["Feedbacks"] = feedbacks
	}
	return h.render(c, "feedback", bind)
}
