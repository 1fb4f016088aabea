package controllers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/matchpro/platform/app/models"
	"github.com/matchpro/platform/app/repository"
)

// createResumeRequest carries a pre-extracted skill list. Text extraction from
// uploaded files happens upstream; this service only stores the result.
type createResumeRequest struct {
	Title  string   `json:"title" validate:"required,max=255"`
	Skills []string `json:"skills" validate:"required,min=1,dive,min=1,max=100"`
}

var resumeValidate = validator.New()

// HandleCreateResume stores a resume skill list for the caller.
func HandleCreateResume(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req createResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := resumeValidate.Struct(&req); err != nil {
		return badRequest(c, err)
	}

	resume := &models.Resume{
		UserID: userID,
		Title:  req.Title,
		Skills: req.Skills,
	}
	if err := repository.GetGlobalRepositories().Resume.Create(resume); err != nil {
		log.Printf("resume create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "resume_create_failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(resume)
}

// HandleListResumes returns the caller's resumes, newest first.
func HandleListResumes(c *fiber.Ctx) error {
	userID := currentUserID(c)

	resumes, err := repository.GetGlobalRepositories().Resume.ListByUserID(userID)
	if err != nil {
		log.Printf("resume list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "resume_list_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"resumes": resumes,
		"total":   len(resumes),
	})
}

// HandleGetResume returns one of the caller's resumes. A resume owned by
// someone else reads as absent.
func HandleGetResume(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id := c.Params("id")

	resume, err := repository.GetGlobalRepositories().Resume.GetForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "resume_not_found"})
		}
		log.Printf("resume lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "resume_lookup_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(resume)
}

// HandleDeleteResume removes one of the caller's resumes.
func HandleDeleteResume(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id := c.Params("id")

	deleted, err := repository.GetGlobalRepositories().Resume.DeleteForUser(id, userID)
	if err != nil {
		log.Printf("resume delete failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "resume_delete_failed"})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "resume_not_found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
