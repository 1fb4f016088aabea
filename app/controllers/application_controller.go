package controllers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/matchpro/platform/app/models"
	"github.com/matchpro/platform/app/repository"
	"github.com/matchpro/platform/internal/pkg/database"
	"github.com/matchpro/platform/internal/pkg/jobsearch"
)

type createApplicationRequest struct {
	JobID       string `json:"job_id" validate:"required,uuid4"`
	ResumeID    string `json:"resume_id" validate:"required,uuid4"`
	CoverLetter string `json:"cover_letter" validate:"max=10000"`
}

type updateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required"`
}

var applicationValidate = validator.New()

// HandleCreateApplication submits an application: posting and resume must both
// exist, and the resume must belong to the caller.
func HandleCreateApplication(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req createApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := applicationValidate.Struct(&req); err != nil {
		return badRequest(c, err)
	}

	svc := jobsearch.NewServiceFromDB(database.GetDB())
	if _, err := svc.GetPosting(req.JobID); err != nil {
		if errors.Is(err, jobsearch.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "job_lookup_failed"})
	}

	if _, err := repository.GetGlobalRepositories().Resume.GetForUser(req.ResumeID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "resume_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "resume_lookup_failed"})
	}

	application := &models.JobApplication{
		UserID:      userID,
		JobID:       req.JobID,
		ResumeID:    req.ResumeID,
		CoverLetter: req.CoverLetter,
		Status:      models.ApplicationPending,
	}
	if err := repository.GetGlobalRepositories().Application.Create(application); err != nil {
		log.Printf("application create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "application_create_failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(application)
}

// HandleListApplications returns the caller's applications, newest first.
func HandleListApplications(c *fiber.Ctx) error {
	userID := currentUserID(c)

	applications, err := repository.GetGlobalRepositories().Application.ListByUserID(userID)
	if err != nil {
		log.Printf("application list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "application_list_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"applications": applications,
		"total":        len(applications),
	})
}

// HandleGetApplication returns one of the caller's applications.
func HandleGetApplication(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id := c.Params("id")

	application, err := repository.GetGlobalRepositories().Application.GetForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "application_not_found"})
		}
		log.Printf("application lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "application_lookup_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(application)
}

// HandleUpdateApplicationStatus moves an application through its lifecycle.
func HandleUpdateApplicationStatus(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id := c.Params("id")

	var req updateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if !models.ValidApplicationStatus(req.Status) {
		return badRequest(c, errors.New("status must be one of PENDING, SUBMITTED, VIEWED, REJECTED, ACCEPTED"))
	}

	updated, err := repository.GetGlobalRepositories().Application.UpdateStatusForUser(id, userID, req.Status)
	if err != nil {
		log.Printf("application status update failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "application_update_failed"})
	}
	if !updated {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "application_not_found"})
	}

	application, err := repository.GetGlobalRepositories().Application.GetForUser(id, userID)
	if err != nil {
		log.Printf("application re-read failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "application_lookup_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(application)
}

// HandleDeleteApplication removes one of the caller's applications.
func HandleDeleteApplication(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id := c.Params("id")

	deleted, err := repository.GetGlobalRepositories().Application.DeleteForUser(id, userID)
	if err != nil {
		log.Printf("application delete failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "application_delete_failed"})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "application_not_found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
