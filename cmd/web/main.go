package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/albqueque12/FitIA/internal/api"
	"github.com/albqueque12/FitIA/internal/config"
	"github.com/albqueque12/FitIA/internal/refresh"
	"github.com/albqueque12/FitIA/internal/routes"
	"github.com/albqueque12/FitIA/internal/session"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Open the local session store
	store, err := session.Open(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	defer store.Close()

	// 3. Setup Fiber
	engine := html.New(cfg.TemplatePath, ".html")
	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/base",
	})

	// Middleware
	app.Use(cors.New())
	app.Use(logger.New())
	app.Use(recover.New())

	// Routes
	client := api.NewClient(cfg.APIBaseURL)
	bus := refresh.NewBus()
	routes.RegisterRoutes(app, cfg, store, client, bus)

	// 4. Start Server
	log.Printf("Server starting on port %s (API at %s)", cfg.Port, cfg.APIBaseURL)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
