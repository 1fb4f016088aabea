package models

import "time"

type AccessType string

const (
	AccessFree AccessType = "free"
	AccessPaid AccessType = "paid"
)

type AccessStatus string

const (
	AccessActive  AccessStatus = "active"
	AccessExpired AccessStatus = "expired"
)

const (
	// FreeAccessDuration is the fixed length of the one-time free pass.
	FreeAccessDuration = 24 * time.Hour
	// PaidAccessDuration is the fixed length of a paid access grant.
	PaidAccessDuration = 30 * 24 * time.Hour
)

// UserAccess is one grant in the append-only access ledger. A user may hold
// many grants over time; "current access" is derived from the rows, never
// stored.
//
// FreeGrantKey is set to the user id on free grants and left NULL on paid
// ones, so the unique index enforces at most one free grant per user at the
// storage layer instead of relying on a check-then-insert.
type UserAccess struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       string       `gorm:"type:char(36);not null;index" json:"user_id"`
	AccessType   AccessType   `gorm:"type:varchar(10);not null;index" json:"access_type"`
	AccessStart  time.Time    `gorm:"not null" json:"access_start"`
	AccessEnd    time.Time    `gorm:"not null;index" json:"access_end"`
	PaymentID    string       `gorm:"type:varchar(191);default:''" json:"payment_id,omitempty"`
	AmountPaid   int64        `gorm:"default:0" json:"amount_paid,omitempty"`
	Status       AccessStatus `gorm:"type:varchar(10);not null;default:'active';index" json:"status"`
	FreeGrantKey *string      `gorm:"type:char(36);uniqueIndex" json:"-"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"-"`
}

// Covers reports whether the grant's interval contains now and the grant has
// not been explicitly expired.
func (a *UserAccess) Covers(now time.Time) bool {
	return a.Status == AccessActive && !now.Before(a.AccessStart) && now.Before(a.AccessEnd)
}
