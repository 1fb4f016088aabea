package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/matchpro/platform/internal/pkg/database"
	"github.com/matchpro/platform/internal/pkg/entitlements"
	"github.com/matchpro/platform/internal/pkg/subscription"
)

// HandleStartTrial begins the 14-day trial for the caller. Repeating the call
// returns the existing record.
func HandleStartTrial(c *fiber.Ctx) error {
	userID := currentUserID(c)

	svc := subscription.NewServiceFromDB(database.GetDB())
	sub, err := svc.StartTrial(c.Context(), userID)
	if err != nil {
		log.Printf("start trial failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "trial_start_failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":        sub.Status,
		"trial_ends_at": sub.TrialEndsAt,
	})
}

// HandleSubscriptionStatus reports the effective subscription state together
// with the features it unlocks.
func HandleSubscriptionStatus(c *fiber.Ctx) error {
	userID := currentUserID(c)

	svc := subscription.NewServiceFromDB(database.GetDB())
	check, err := svc.CheckStatus(c.Context(), userID)
	if err != nil {
		if errors.Is(err, subscription.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no_subscription"})
		}
		log.Printf("subscription status check failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "status_check_failed"})
	}

	resume, matching, coach := entitlements.AllowedFeatures(check.Status)
	if !check.IsValid {
		resume, matching, coach = false, false, false
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"is_valid":   check.IsValid,
		"status":     check.Status,
		"expires_at": check.ExpiresAt,
		"features": fiber.Map{
			string(entitlements.FeatureResumeOptimizer): resume,
			string(entitlements.FeatureJobMatching):     matching,
			string(entitlements.FeatureInterviewCoach):  coach,
		},
	})
}
