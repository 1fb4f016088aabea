// Package access implements the append-only paid-access ledger used by the
// one-time-purchase product. Grants are discrete rows; "current access" is a
// pure function of the rows and the clock, never mutable state.
package access

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/matchpro/platform/app/models"
)

// ErrFreeGrantUsed signals that the user already consumed their one free
// grant. The storage layer enforces this through the unique free_grant_key
// column, so concurrent duplicate requests cannot both land.
var ErrFreeGrantUsed = errors.New("free access already granted")

// ErrNoActiveAccess signals that no grant covers now. It is an absent result,
// not a failure.
var ErrNoActiveAccess = errors.New("no active access")

// Ledger records and resolves access grants.
type Ledger struct {
	repo Repository
	now  func() time.Time
}

// NewLedger creates a ledger from an injected repository.
func NewLedger(repo Repository) *Ledger {
	return &Ledger{repo: repo, now: time.Now}
}

// NewLedgerFromDB creates a ledger from a GORM DB handle.
func NewLedgerFromDB(db *gorm.DB) *Ledger {
	return NewLedger(NewRepository(db))
}

// WithNow overrides the clock, for tests.
func (l *Ledger) WithNow(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// GrantFree creates the one-time 24-hour free grant. The unique key turns a
// second attempt into ErrFreeGrantUsed regardless of interleaving.
func (l *Ledger) GrantFree(ctx context.Context, userID string) (*models.UserAccess, error) {
	_ = ctx
	if userID == "" {
		return nil, errors.New("user_id is required")
	}

	now := l.now()
	key := userID
	grant := &models.UserAccess{
		UserID:       userID,
		AccessType:   models.AccessFree,
		AccessStart:  now,
		AccessEnd:    now.Add(models.FreeAccessDuration),
		Status:       models.AccessActive,
		FreeGrantKey: &key,
	}
	if err := l.repo.Insert(grant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrFreeGrantUsed
		}
		return nil, err
	}
	return grant, nil
}

// GrantPaid creates a 30-day grant from a confirmed payment. Renewals stack:
// multiple paid grants may coexist and current access resolves to the one
// ending last.
func (l *Ledger) GrantPaid(ctx context.Context, userID, paymentID string, amountPaid int64) (*models.UserAccess, error) {
	_ = ctx
	if userID == "" || paymentID == "" {
		return nil, errors.New("user_id and payment_id are required")
	}

	now := l.now()
	grant := &models.UserAccess{
		UserID:      userID,
		AccessType:  models.AccessPaid,
		AccessStart: now,
		AccessEnd:   now.Add(models.PaidAccessDuration),
		PaymentID:   paymentID,
		AmountPaid:  amountPaid,
		Status:      models.AccessActive,
	}
	if err := l.repo.Insert(grant); err != nil {
		return nil, err
	}
	return grant, nil
}

// CurrentAccess resolves the covering grant as of now, preferring the latest
// end time when grants overlap. Absence surfaces as ErrNoActiveAccess.
func (l *Ledger) CurrentAccess(ctx context.Context, userID string) (*models.UserAccess, error) {
	_ = ctx
	grants, err := l.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	current := CurrentOf(grants, l.now())
	if current == nil {
		return nil, ErrNoActiveAccess
	}
	return current, nil
}

// HasActiveAccess reports whether any grant covers now.
func (l *Ledger) HasActiveAccess(ctx context.Context, userID string) (bool, error) {
	_, err := l.CurrentAccess(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoActiveAccess) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Expire marks one grant expired. Expiring an already-expired grant is a
// no-op, keeping the operation idempotent.
func (l *Ledger) Expire(ctx context.Context, userID string, accessID uint) error {
	_ = ctx
	return l.repo.Expire(userID, accessID)
}

// ExpireLapsed is the scheduled sweep that flips lapsed grants to expired.
// Derivation through CurrentOf never depends on it; the flag only keeps the
// stored rows tidy for reporting.
func (l *Ledger) ExpireLapsed(ctx context.Context) (int64, error) {
	_ = ctx
	return l.repo.ExpireLapsed(l.now())
}

// CurrentOf derives the effective grant purely from ledger entries and the
// clock: the active grant whose [start, end) interval contains now, latest
// end wins on overlap.
func CurrentOf(grants []models.UserAccess, now time.Time) *models.UserAccess {
	var current *models.UserAccess
	for i := range grants {
		g := &grants[i]
		if !g.Covers(now) {
			continue
		}
		if current == nil || g.AccessEnd.After(current.AccessEnd) {
			current = g
		}
	}
	return current
}
