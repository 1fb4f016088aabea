// Package subscription implements the TRIAL/ACTIVE/EXPIRED access state
// machine for the recurring-subscription product.
package subscription

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/matchpro/platform/app/models"
)

// ErrNotFound signals that no subscription record exists for the user. It is
// deliberately distinct from an expired subscription: the sign-up flow reacts
// by creating one, the sign-in flow treats it as an error.
var ErrNotFound = errors.New("no subscription for user")

// Check is the status-check result. IsValid is true only for TRIAL or ACTIVE
// before their respective expiry.
type Check struct {
	IsValid   bool                      `json:"is_valid"`
	Status    models.SubscriptionStatus `json:"status"`
	ExpiresAt *time.Time                `json:"expires_at,omitempty"`
}

// Service drives subscription state. All operations are request-scoped; the
// only cross-request coordination is the conditional expiry update in the
// repository.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a subscription service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// NewServiceFromDB creates a subscription service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// StartTrial creates the TRIAL record for a new user. It is idempotent: an
// existing record is returned unchanged.
func (s *Service) StartTrial(ctx context.Context, userID string) (*models.UserSubscription, error) {
	_ = ctx
	if userID == "" {
		return nil, errors.New("user_id is required")
	}

	existing, err := s.repo.GetByUserID(userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sub := &models.UserSubscription{
		UserID:      userID,
		Status:      models.SubscriptionTrial,
		TrialEndsAt: s.now().Add(models.TrialDuration),
	}
	if err := s.repo.Create(sub); err != nil {
		// A concurrent sign-up may have won the insert; fall back to the row.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.repo.GetByUserID(userID)
		}
		return nil, err
	}
	return sub, nil
}

// CheckStatus reports the effective status as of now. A stored status that is
// stale relative to now is lazily persisted as EXPIRED through a conditional
// update, so a concurrent payment activation always wins.
func (s *Service) CheckStatus(ctx context.Context, userID string) (Check, error) {
	_ = ctx
	sub, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Check{}, ErrNotFound
		}
		return Check{}, err
	}

	now := s.now()
	switch sub.Status {
	case models.SubscriptionTrial:
		if now.Before(sub.TrialEndsAt) {
			t := sub.TrialEndsAt
			return Check{IsValid: true, Status: models.SubscriptionTrial, ExpiresAt: &t}, nil
		}
		if err := s.expire(sub, models.SubscriptionTrial); err != nil {
			return Check{}, err
		}
	case models.SubscriptionActive:
		if sub.CurrentPeriodEndsAt != nil && now.Before(*sub.CurrentPeriodEndsAt) {
			return Check{IsValid: true, Status: models.SubscriptionActive, ExpiresAt: sub.CurrentPeriodEndsAt}, nil
		}
		if err := s.expire(sub, models.SubscriptionActive); err != nil {
			return Check{}, err
		}
	}

	return Check{IsValid: false, Status: models.SubscriptionExpired}, nil
}

// expire persists the lazy EXPIRED transition. Losing the conditional update
// means a concurrent writer moved the row first; that is not an error.
func (s *Service) expire(sub *models.UserSubscription, from models.SubscriptionStatus) error {
	_, err := s.repo.MarkExpired(sub.ID, from)
	return err
}

// Activate moves the user to ACTIVE with the event-supplied period end. Only
// a confirmed payment event may call this; it also records the processor
// references. A user without a record gets one created on the spot.
func (s *Service) Activate(ctx context.Context, userID string, periodEnd time.Time, customerRef, subscriptionRef string) (*models.UserSubscription, error) {
	_ = ctx
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	if periodEnd.IsZero() {
		return nil, errors.New("period end is required")
	}

	sub := &models.UserSubscription{
		UserID:                userID,
		Status:                models.SubscriptionActive,
		TrialEndsAt:           s.now(),
		CurrentPeriodEndsAt:   &periodEnd,
		PaymentCustomerID:     customerRef,
		PaymentSubscriptionID: subscriptionRef,
	}
	if err := s.repo.Activate(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ExpireDue is the scheduled sweep variant of the lazy expiry: it transitions
// every subscription whose expiry has passed. Returns the number flipped.
func (s *Service) ExpireDue(ctx context.Context, limit int) (int, error) {
	_ = ctx
	if limit <= 0 {
		limit = 100
	}

	subs, err := s.repo.ListExpiring(s.now(), limit)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, sub := range subs {
		updated, err := s.repo.MarkExpired(sub.ID, sub.Status)
		if err != nil {
			return expired, err
		}
		if updated {
			expired++
		}
	}
	return expired, nil
}
