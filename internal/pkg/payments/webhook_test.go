package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"
)

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"foo":"bar"}`)
	secret := "top-secret"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	validSig := hex.EncodeToString(mac.Sum(nil))

	if !VerifyWebhookSignature(payload, validSig, secret) {
		t.Fatalf("expected signature to validate")
	}
	if !VerifyWebhookSignature(payload, "sha256="+validSig, secret) {
		t.Fatalf("expected prefixed signature to validate")
	}
	if VerifyWebhookSignature(payload, "deadbeef", secret) {
		t.Fatalf("expected invalid signature to fail")
	}
	if VerifyWebhookSignature(payload, validSig, "") {
		t.Fatalf("expected empty secret to fail")
	}
	if VerifyWebhookSignature(payload, "", secret) {
		t.Fatalf("expected empty signature to fail")
	}
}

func TestParseCheckoutEventOneTime(t *testing.T) {
	raw := []byte(`{
		"id": "evt_123",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_456",
				"client_reference_id": "user-789",
				"amount_total": 1999,
				"customer": "cus_abc"
			}
		}
	}`)

	ev, err := ParseCheckoutEvent(raw)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if ev.EventID != "evt_123" || ev.EventType != EventCheckoutCompleted {
		t.Fatalf("unexpected envelope: %+v", ev)
	}
	if ev.UserID != "user-789" || ev.PaymentID != "cs_456" || ev.AmountTotal != 1999 {
		t.Fatalf("unexpected payment fields: %+v", ev)
	}
	if ev.IsSubscriptionCheckout() {
		t.Fatalf("one-time checkout misclassified as subscription")
	}
}

func TestParseCheckoutEventSubscription(t *testing.T) {
	raw := []byte(`{
		"id": "evt_124",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_457",
				"client_reference_id": "user-789",
				"amount_total": 4999,
				"customer": "cus_abc",
				"subscription": "sub_def",
				"current_period_end": 1767225600
			}
		}
	}`)

	ev, err := ParseCheckoutEvent(raw)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if !ev.IsSubscriptionCheckout() {
		t.Fatalf("subscription checkout misclassified: %+v", ev)
	}
	want := time.Unix(1767225600, 0).UTC()
	if ev.PeriodEnd == nil || !ev.PeriodEnd.Equal(want) {
		t.Fatalf("period end = %v, want %v", ev.PeriodEnd, want)
	}
}

func TestParseCheckoutEventRejectsMissingUser(t *testing.T) {
	raw := []byte(`{
		"id": "evt_125",
		"type": "checkout.session.completed",
		"data": { "object": { "id": "cs_458" } }
	}`)

	if _, err := ParseCheckoutEvent(raw); err == nil {
		t.Fatalf("expected error for payload without client_reference_id")
	}

	if _, err := ParseCheckoutEvent([]byte("{not json")); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}
