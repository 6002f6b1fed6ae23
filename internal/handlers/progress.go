package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/albqueque12/FitIA/internal/api"
	"github.com/albqueque12/FitIA/pkg/utils"
)

func (h *Handler) Progress(c *fiber.Ctx) error {
	sess := h.session()
	if sess == nil {
		return c.Redirect("/register")
	}

	bind := fiber.Map{
		"Title": "Progresso - FitIA",
		"User":  sess.User,
	}

	// The profile fetch picks up a performance factor moved by feedback.
	user, err := h.service.Profile(c.Context(), sess.User.ID)
	if err == nil {
		bind["User"] = user
		bind["Factor"] = user.PerformanceFactor
		bind["FactorStatus"] = utils.PerformanceStatus(user.PerformanceFactor)
	}

	progress, err := h.service.Progress(c.Context(), sess.User.ID)
	if err != nil {
		bind["Erro"] = api.UserMessage(err)
	} else {
		bind["Stats"] = progress.Statistics
		bind["RecentFeedback"] = progress.RecentFeedback
	}
	return h.render(c, "progress", bind)
}
