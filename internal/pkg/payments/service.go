// Package payments translates confirmed payment-processor webhook events into
// access grants and subscription activations. Signature verification and
// event deduplication live here so the core services stay pure.
package payments

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/matchpro/platform/app/models"
	"github.com/matchpro/platform/internal/pkg/access"
	"github.com/matchpro/platform/internal/pkg/subscription"
)

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	Provider        string
	ProviderEventID string
	EventType       string
	PayloadJSON     string
	SignatureValid  bool
}

// Service records webhook events and dispatches confirmed checkouts.
type Service struct {
	repo   Repository
	subs   *subscription.Service
	ledger *access.Ledger
}

// NewService creates a payments service over the given collaborators.
func NewService(repo Repository, subs *subscription.Service, ledger *access.Ledger) *Service {
	return &Service{repo: repo, subs: subs, ledger: ledger}
}

// NewServiceFromDB wires the payments service and its collaborators from a
// single GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db), subscription.NewServiceFromDB(db), access.NewLedgerFromDB(db))
}

// RecordWebhookEvent persists webhook payloads idempotently. Events without a
// processor id are keyed by a payload hash.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.PaymentWebhookEvent, error) {
	_ = ctx
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		return false, nil, errors.New("provider is required")
	}
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.PaymentWebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       strings.TrimSpace(in.EventType),
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  in.SignatureValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	_ = ctx
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(webhookEventID, errMsg)
}

// DispatchCheckout routes a confirmed checkout to the matching product: a
// subscription checkout activates the state machine with the event-supplied
// period end, a one-time checkout appends a paid grant to the ledger.
func (s *Service) DispatchCheckout(ctx context.Context, ev *CheckoutEvent) error {
	if ev == nil {
		return errors.New("nil checkout event")
	}

	if ev.IsSubscriptionCheckout() {
		_, err := s.subs.Activate(ctx, ev.UserID, *ev.PeriodEnd, ev.CustomerID, ev.SubscriptionID)
		return err
	}

	_, err := s.ledger.GrantPaid(ctx, ev.UserID, ev.PaymentID, ev.AmountTotal)
	return err
}
