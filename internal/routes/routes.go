package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/albqueque12/FitIA/internal/api"
	"github.com/albqueque12/FitIA/internal/config"
	"github.com/albqueque12/FitIA/internal/handlers"
	"github.com/albqueque12/FitIA/internal/refresh"
	"github.com/albqueque12/FitIA/internal/services"
	"github.com/albqueque12/FitIA/internal/session"
	refreshws "github.com/albqueque12/FitIA/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, store *session.Store, client *api.Client, bus *refresh.Bus) {
	service := services.NewTrainingService(client, bus)
	handler := handlers.NewHandler(store, service, client)

	hub := refreshws.NewHub(bus)
	go hub.Run()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/", handler.Dashboard)
	app.Get("/register", handler.ShowRegister)
	app.Post("/register", handler.SubmitRegister)
	app.Post("/logout", handler.Logout)

	app.Get("/treinos", handler.TrainingPlans)
	app.Post("/treinos/gerar", handler.GenerateWeek)
	app.Post("/workouts/:id/completar", handler.CompleteWorkout)

	app.Get("/progresso", handler.Progress)

	app.Get("/feedback", handler.Feedback)
	app.Post("/feedback", handler.SubmitFeedback)

	app.Get("/exames", handler.Exams)
	app.Post("/exames", handler.SubmitExam)

	app.Get("/perfil", handler.Profile)
	app.Post("/tema", handler.ToggleTheme)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(hub.HandleConnection))

	app.Static("/static", cfg.StaticPath)
}
