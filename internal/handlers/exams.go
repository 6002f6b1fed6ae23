package handlers

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/albqueque12/FitIA/internal/api"
	"github.com/albqueque12/FitIA/internal/models"
	"github.com/albqueque12/FitIA/internal/services"
)

type examDraft struct {
	TipoExame string
	DataExame string
	Valores   map[string]string
}

func (h *Handler) Exams(c *fiber.Ctx) error {
	sess := h.session()
	if sess == nil {
		return c.Redirect("/register")
	}
	return h.renderExams(c, sess, examDraft{TipoExame: models.ExamBioimpedancia}, "")
}

// SubmitExam records one exam of the selected variant. Every field of the
// variant is required; the tag alone decides which fields exist.
func (h *Handler) SubmitExam(c *fiber.Ctx) error {
	sess := h.session()
	if sess == nil {
		return c.Redirect("/register")
	}

	tipo := c.FormValue("tipo_exame")
	draft := examDraft{
		TipoExame: tipo,
		DataExame: c.FormValue("data_exame"),
		Valores:   map[string]string{},
	}

	fields := models.ExamFields(tipo)
	if fields == nil {
		return h.renderExams(c, sess, draft, "Tipo de exame desconhecido.")
	}

	dados := make(map[string]float64, len(fields))
	for _, field := range fields {
		raw := c.FormValue(field)
		draft.Valores[field] = raw
		value, ok := optionalFloat(raw)
		if !ok || value == nil {
			return h.renderExams(c, sess, draft, fmt.Sprintf("Valor inválido para %s.", field))
		}
		dados[field] = *value
	}

	_, err := h.service.SubmitExam(c.Context(), sess.User.ID, services.ExamInput{
		TipoExame: tipo,
		DataExame: draft.DataExame,
		Dados:     dados,
	})
	if err != nil {
		return h.renderExams(c, sess, draft, api.UserMessage(err))
	}
	return c.Redirect("/exames?sucesso=" + url.QueryEscape("Exame registrado."))
}

func (h *Handler) renderExams(c *fiber.Ctx, sess *models.Session, draft examDraft, errMsg string) error {
	bind := fiber.Map{
		"Title":               "Exames Médicos - FitIA",
		"User":                sess.User,
		"Draft":               draft,
		"BioimpedanciaCampos": models.BioimpedanciaFields,
		"EspirometriaCampos":  models.EspirometriaFields,
		"VO2MaxCampos":        models.VO2MaxFields,
	}
	if errMsg != "" {
		bind["Erro"] = errMsg
	}

	exams, err := h.service.Exams(c.Context(), sess.User.ID)
	if err != nil {
		bind["Erro"] = api.UserMessage(err)
	} else {
		bind["Exams"] = exams
	}
	return h.render(c, "exams", bind)
}
