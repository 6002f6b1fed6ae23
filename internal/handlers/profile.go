package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/albqueque12/FitIA/pkg/utils"
)

func (h *Handler) Profile(c *fiber.Ctx) error {
	sess := h.session()
	if sess == nil {
		return c.Redirect("/register")
	}

	user := sess.User
	// Refreshes pick up a factor moved by feedback since registration.
	if fresh, err := h.service.Profile(c.Context(), user.ID); err == nil {
		user = fresh
	}

	return h.render(c, "profile", fiber.Map{
		"Title":        "Perfil - FitIA",
		"User":         user,
		"Ritmos":       paceRows(sess.Ritmos),
		"Goal":         utils.FormatGoal(user.DistanciaObjetivo, user.TempoObjetivoMin),
		"TestRPELabel": utils.RPELabel(user.Teste5kmRPE),
	})
}

// Logout drops the stored session and any half-filled wizard state, then
// lands on the registration flow.
func (h *Handler) Logout(c *fiber.Ctx) error {
	if err := h.store.Clear(); err != nil {
		return h.render(c, "profile", fiber.Map{
			"Erro": "Não foi possível encerrar a sessão. Tente novamente.",
		})
	}
	h.wizard.Reset()
	return c.Redirect("/register")
}

// ToggleTheme flips light/dark and returns to the page that posted.
func (h *Handler) ToggleTheme(c *fiber.Ctx) error {
	next := "dark"
	if h.store.Theme() == "dark" {
		next = "light"
	}
	if err := h.store.SetTheme(next); err != nil {
		return c.Redirect(backTo(c))
	}
	return c.Redirect(backTo(c))
}

func backTo(c *fiber.Ctx) string {
	if ref := c.Get("Referer"); ref != "" {
		return ref
	}
	return "/"
}
