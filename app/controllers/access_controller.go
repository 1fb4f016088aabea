package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/matchpro/platform/internal/pkg/access"
	"github.com/matchpro/platform/internal/pkg/database"
)

// HandleGrantFreeAccess creates the caller's one-time 24-hour pass. A second
// attempt conflicts.
func HandleGrantFreeAccess(c *fiber.Ctx) error {
	userID := currentUserID(c)

	ledger := access.NewLedgerFromDB(database.GetDB())
	grant, err := ledger.GrantFree(c.Context(), userID)
	if err != nil {
		if errors.Is(err, access.ErrFreeGrantUsed) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "free_access_already_used"})
		}
		log.Printf("free access grant failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "grant_failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"access_type":  grant.AccessType,
		"access_start": grant.AccessStart,
		"access_end":   grant.AccessEnd,
	})
}

// HandleCurrentAccess resolves the grant covering now, if any.
func HandleCurrentAccess(c *fiber.Ctx) error {
	userID := currentUserID(c)

	ledger := access.NewLedgerFromDB(database.GetDB())
	grant, err := ledger.CurrentAccess(c.Context(), userID)
	if err != nil {
		if errors.Is(err, access.ErrNoActiveAccess) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no_active_access"})
		}
		log.Printf("current access lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "access_lookup_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_type":  grant.AccessType,
		"access_start": grant.AccessStart,
		"access_end":   grant.AccessEnd,
	})
}
