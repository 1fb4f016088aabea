package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/matchpro/platform/app/controllers"
	"github.com/matchpro/platform/internal/pkg/middleware"
)

// InstallRouter mounts the public API surface.
func InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "matchpro platform api",
		})
	})

	v1 := api.Group("/v1")
	v1.Get("/ping", controllers.HandlePing)

	// Webhook intake authenticates by signature, not by user.
	v1.Post("/payments/webhook", controllers.HandlePaymentWebhook)

	jobs := v1.Group("/jobs", middleware.RequireUser())
	jobs.Get("/search", controllers.HandleJobSearch)
	jobs.Get("/matches", controllers.HandleJobMatches)
	jobs.Get("/:id", controllers.HandleJobDetails)
	jobs.Post("/:id/save", controllers.HandleSaveJob)
	jobs.Delete("/:id/save", controllers.HandleUnsaveJob)

	v1.Get("/saved-jobs", middleware.RequireUser(), controllers.HandleListSavedJobs)

	resumes := v1.Group("/resumes", middleware.RequireUser())
	resumes.Post("/", controllers.HandleCreateResume)
	resumes.Get("/", controllers.HandleListResumes)
	resumes.Get("/:id", controllers.HandleGetResume)
	resumes.Delete("/:id", controllers.HandleDeleteResume)

	applications := v1.Group("/applications", middleware.RequireUser())
	applications.Post("/", controllers.HandleCreateApplication)
	applications.Get("/", controllers.HandleListApplications)
	applications.Get("/:id", controllers.HandleGetApplication)
	applications.Patch("/:id/status", controllers.HandleUpdateApplicationStatus)
	applications.Delete("/:id", controllers.HandleDeleteApplication)

	sub := v1.Group("/subscription", middleware.RequireUser())
	sub.Post("/trial", controllers.HandleStartTrial)
	sub.Get("/", controllers.HandleSubscriptionStatus)

	acc := v1.Group("/access", middleware.RequireUser())
	acc.Post("/free", controllers.HandleGrantFreeAccess)
	acc.Get("/", controllers.HandleCurrentAccess)
}
