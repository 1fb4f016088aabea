package subscription

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/matchpro/platform/app/models"
)

const testUser = "3f1e9a54-0000-4000-8000-000000000001"

func newTestService(t *testing.T, now *time.Time) *Service {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "subscription.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.UserSubscription{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return NewServiceFromDB(db).WithNow(func() time.Time { return *now })
}

func TestStartTrial(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	now := t0
	svc := newTestService(t, &now)
	ctx := context.Background()

	sub, err := svc.StartTrial(ctx, testUser)
	if err != nil {
		t.Fatalf("StartTrial error: %v", err)
	}
	if sub.Status != models.SubscriptionTrial {
		t.Fatalf("status = %s, want TRIAL", sub.Status)
	}
	if !sub.TrialEndsAt.Equal(t0.Add(14 * 24 * time.Hour)) {
		t.Fatalf("trial_ends_at = %v", sub.TrialEndsAt)
	}

	check, err := svc.CheckStatus(ctx, testUser)
	if err != nil {
		t.Fatalf("CheckStatus error: %v", err)
	}
	if !check.IsValid || check.Status != models.SubscriptionTrial {
		t.Fatalf("check = %+v", check)
	}
	if check.ExpiresAt == nil || !check.ExpiresAt.Equal(sub.TrialEndsAt) {
		t.Fatalf("expires_at = %v", check.ExpiresAt)
	}
}

func TestStartTrialIdempotent(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, &now)
	ctx := context.Background()

	first, err := svc.StartTrial(ctx, testUser)
	if err != nil {
		t.Fatalf("StartTrial error: %v", err)
	}
	second, err := svc.StartTrial(ctx, testUser)
	if err != nil {
		t.Fatalf("second StartTrial error: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same record, got %d and %d", first.ID, second.ID)
	}
}

func TestTrialExpiresLazily(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	now := t0
	svc := newTestService(t, &now)
	ctx := context.Background()

	if _, err := svc.StartTrial(ctx, testUser); err != nil {
		t.Fatalf("StartTrial error: %v", err)
	}

	now = t0.Add(15 * 24 * time.Hour)
	check, err := svc.CheckStatus(ctx, testUser)
	if err != nil {
		t.Fatalf("CheckStatus error: %v", err)
	}
	if check.IsValid || check.Status != models.SubscriptionExpired {
		t.Fatalf("check = %+v, want expired", check)
	}

	// The transition is persisted, so a second check reads EXPIRED directly.
	again, err := svc.CheckStatus(ctx, testUser)
	if err != nil {
		t.Fatalf("second CheckStatus error: %v", err)
	}
	if again != check {
		t.Fatalf("check not idempotent: %+v vs %+v", check, again)
	}

	stored, err := svc.repo.GetByUserID(testUser)
	if err != nil {
		t.Fatalf("GetByUserID error: %v", err)
	}
	if stored.Status != models.SubscriptionExpired {
		t.Fatalf("stored status = %s, want EXPIRED", stored.Status)
	}
}

func TestActivateDuringTrial(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	now := t0
	svc := newTestService(t, &now)
	ctx := context.Background()

	if _, err := svc.StartTrial(ctx, testUser); err != nil {
		t.Fatalf("StartTrial error: %v", err)
	}

	// Payment confirmation at T0+5d with a period end of T0+35d wins even
	// though the trial has not expired yet.
	now = t0.Add(5 * 24 * time.Hour)
	periodEnd := t0.Add(35 * 24 * time.Hour)
	sub, err := svc.Activate(ctx, testUser, periodEnd, "cus_123", "sub_456")
	if err != nil {
		t.Fatalf("Activate error: %v", err)
	}
	if sub.Status != models.SubscriptionActive {
		t.Fatalf("status = %s, want ACTIVE", sub.Status)
	}
	if sub.PaymentCustomerID != "cus_123" || sub.PaymentSubscriptionID != "sub_456" {
		t.Fatalf("payment refs not recorded: %+v", sub)
	}

	check, err := svc.CheckStatus(ctx, testUser)
	if err != nil {
		t.Fatalf("CheckStatus error: %v", err)
	}
	if !check.IsValid || check.Status != models.SubscriptionActive {
		t.Fatalf("check = %+v", check)
	}
	if check.ExpiresAt == nil || !check.ExpiresAt.Equal(periodEnd) {
		t.Fatalf("expires_at = %v, want %v", check.ExpiresAt, periodEnd)
	}
}

func TestActiveExpiresAfterPeriodEnd(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	now := t0
	svc := newTestService(t, &now)
	ctx := context.Background()

	periodEnd := t0.Add(30 * 24 * time.Hour)
	if _, err := svc.Activate(ctx, testUser, periodEnd, "cus_123", "sub_456"); err != nil {
		t.Fatalf("Activate error: %v", err)
	}

	now = periodEnd.Add(time.Minute)
	check, err := svc.CheckStatus(ctx, testUser)
	if err != nil {
		t.Fatalf("CheckStatus error: %v", err)
	}
	if check.IsValid || check.Status != models.SubscriptionExpired {
		t.Fatalf("check = %+v, want expired", check)
	}
}

func TestCheckStatusMissingUser(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, &now)

	_, err := svc.CheckStatus(context.Background(), "unknown-user")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExpireDueSweep(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	now := t0
	svc := newTestService(t, &now)
	ctx := context.Background()

	users := []string{
		"3f1e9a54-0000-4000-8000-0000000000aa",
		"3f1e9a54-0000-4000-8000-0000000000bb",
	}
	for _, u := range users {
		if _, err := svc.StartTrial(ctx, u); err != nil {
			t.Fatalf("StartTrial error: %v", err)
		}
	}

	// Nothing is due before the trials run out.
	count, err := svc.ExpireDue(ctx, 0)
	if err != nil {
		t.Fatalf("ExpireDue error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expired = %d, want 0", count)
	}

	now = t0.Add(15 * 24 * time.Hour)
	count, err = svc.ExpireDue(ctx, 0)
	if err != nil {
		t.Fatalf("ExpireDue error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expired = %d, want 2", count)
	}

	for _, u := range users {
		check, err := svc.CheckStatus(ctx, u)
		if err != nil {
			t.Fatalf("CheckStatus error: %v", err)
		}
		if check.IsValid {
			t.Fatalf("user %s still valid after sweep", u)
		}
	}
}
