package payments

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// EventCheckoutCompleted is the only event type this service acts on; all
// others are persisted and acknowledged without side effects.
const EventCheckoutCompleted = "checkout.session.completed"

// CheckoutEvent is the normalized shape of a confirmed checkout webhook.
// UserID comes from the session's client reference; SubscriptionID and
// PeriodEnd are set only for recurring-subscription checkouts.
type CheckoutEvent struct {
	EventID        string
	EventType      string
	UserID         string
	PaymentID      string
	AmountTotal    int64
	CustomerID     string
	SubscriptionID string
	PeriodEnd      *time.Time
}

type webhookEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID                string `json:"id"`
			ClientReferenceID string `json:"client_reference_id"`
			AmountTotal       int64  `json:"amount_total"`
			Customer          string `json:"customer"`
			Subscription      string `json:"subscription"`
			CurrentPeriodEnd  int64  `json:"current_period_end"`
		} `json:"object"`
	} `json:"data"`
}

// ParseCheckoutEvent decodes a raw webhook payload into a CheckoutEvent.
// Payloads without a user reference are rejected; the platform cannot route
// a grant without one.
func ParseCheckoutEvent(raw []byte) (*CheckoutEvent, error) {
	var envelope webhookEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}

	obj := envelope.Data.Object
	userID := strings.TrimSpace(obj.ClientReferenceID)
	if userID == "" {
		return nil, errors.New("webhook payload has no client_reference_id")
	}
	if strings.TrimSpace(obj.ID) == "" {
		return nil, errors.New("webhook payload has no session id")
	}

	ev := &CheckoutEvent{
		EventID:        strings.TrimSpace(envelope.ID),
		EventType:      strings.TrimSpace(envelope.Type),
		UserID:         userID,
		PaymentID:      obj.ID,
		AmountTotal:    obj.AmountTotal,
		CustomerID:     strings.TrimSpace(obj.Customer),
		SubscriptionID: strings.TrimSpace(obj.Subscription),
	}
	if obj.CurrentPeriodEnd > 0 {
		t := time.Unix(obj.CurrentPeriodEnd, 0).UTC()
		ev.PeriodEnd = &t
	}
	return ev, nil
}

// IsSubscriptionCheckout reports whether the checkout belongs to the
// recurring-subscription product rather than a one-time access pass.
func (e *CheckoutEvent) IsSubscriptionCheckout() bool {
	return e.SubscriptionID != "" && e.PeriodEnd != nil
}
