package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/bazaar/internal/config"
	"github.com/example/bazaar/internal/routes"
	"github.com/example/bazaar/internal/store"
)

func main() {
	cfg := config.Load()

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	app := fiber.New(fiber.Config{
		AppName: "Bazaar Session Engine",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	notifier := routes.Register(app, st, cfg)
	defer notifier.Close()

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
