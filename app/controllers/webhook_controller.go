package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/matchpro/platform/app/models"
	"github.com/matchpro/platform/internal/pkg/database"
	"github.com/matchpro/platform/internal/pkg/env"
	"github.com/matchpro/platform/internal/pkg/payments"
)

// HandlePaymentWebhook is the payment processor's callback. Every delivery is
// persisted before any side effect, so redeliveries and retries collapse into
// a duplicate acknowledgement.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get("X-Payment-Signature"))
	secret := env.GetEnv("PAYMENT_WEBHOOK_SECRET", "")

	svc := payments.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	signatureValid := payments.VerifyWebhookSignature(rawBody, signature, secret)

	ev, parseErr := payments.ParseCheckoutEvent(rawBody)
	eventID := ""
	eventType := ""
	if parseErr == nil {
		eventID = ev.EventID
		eventType = ev.EventType
	}

	created, stored, err := svc.RecordWebhookEvent(ctx, payments.WebhookEventInput{
		Provider:        models.PaymentProviderStripe,
		ProviderEventID: eventID,
		EventType:       eventType,
		PayloadJSON:     string(rawBody),
		SignatureValid:  signatureValid,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_persist_failed"})
	}
	if !created {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "duplicate": true})
	}
	if !signatureValid {
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, errors.New("invalid webhook signature"))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
	}
	if eventType != "" && eventType != payments.EventCheckoutCompleted {
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, nil)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
	}
	if parseErr != nil {
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, parseErr)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}

	dispatchErr := svc.DispatchCheckout(ctx, ev)
	_ = svc.MarkWebhookProcessed(ctx, stored.ID, dispatchErr)
	if dispatchErr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "checkout_dispatch_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}
