package models

import "time"

type SubscriptionStatus string

const (
	SubscriptionTrial   SubscriptionStatus = "TRIAL"
	SubscriptionActive  SubscriptionStatus = "ACTIVE"
	SubscriptionExpired SubscriptionStatus = "EXPIRED"
)

// TrialDuration is the length of the free trial granted at sign-up.
const TrialDuration = 14 * 24 * time.Hour

// UserSubscription tracks the recurring-subscription state for one user.
// Exactly one live record exists per user (unique index on user_id); it is
// created at sign-up as TRIAL and never deleted.
type UserSubscription struct {
	ID                    uint               `gorm:"primaryKey" json:"id"`
	UserID                string             `gorm:"type:char(36);not null;uniqueIndex" json:"user_id"`
	Status                SubscriptionStatus `gorm:"type:varchar(16);not null;default:'TRIAL';index" json:"status"`
	TrialEndsAt           time.Time          `gorm:"not null" json:"trial_ends_at"`
	CurrentPeriodEndsAt   *time.Time         `gorm:"type:timestamp;default:null" json:"current_period_ends_at,omitempty"`
	PaymentCustomerID     string             `gorm:"type:varchar(191);default:''" json:"payment_customer_id,omitempty"`
	PaymentSubscriptionID string             `gorm:"type:varchar(191);default:''" json:"payment_subscription_id,omitempty"`
	CreatedAt             time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

// ExpiresAt returns the timestamp the current status runs out at, or nil for
// a subscription that is already EXPIRED.
func (s *UserSubscription) ExpiresAt() *time.Time {
	switch s.Status {
	case SubscriptionTrial:
		t := s.TrialEndsAt
		return &t
	case SubscriptionActive:
		return s.CurrentPeriodEndsAt
	default:
		return nil
	}
}
