package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/matchpro/platform/app/repository"
	"github.com/matchpro/platform/internal/pkg/access"
	"github.com/matchpro/platform/internal/pkg/cache"
	"github.com/matchpro/platform/internal/pkg/database"
	"github.com/matchpro/platform/internal/pkg/env"
	"github.com/matchpro/platform/internal/pkg/router"
	"github.com/matchpro/platform/internal/pkg/scheduler"
	"github.com/matchpro/platform/internal/pkg/subscription"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	// expiry sweeps run in-process; every instance may sweep, the conditional
	// updates keep them from stepping on each other
	sched := scheduler.New(
		subscription.NewServiceFromDB(database.GetDB()),
		access.NewLedgerFromDB(database.GetDB()),
		env.GetEnv("EXPIRY_SWEEP_SPEC", "@hourly"),
	)
	if err := sched.Start(context.Background()); err != nil {
		log.Fatalf("could not start expiry scheduler: %v", err)
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName: "matchpro-platform",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// ROUTER
	router.InstallRouter(app)

	return app
}
