package subscription

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/matchpro/platform/app/models"
)

// Repository provides DB operations used by the subscription service.
type Repository interface {
	Create(sub *models.UserSubscription) error
	GetByUserID(userID string) (*models.UserSubscription, error)
	// MarkExpired flips status to EXPIRED only while the stored status still
	// equals from. It reports whether the row was updated, so a concurrent
	// activation is never clobbered by a stale expiry.
	MarkExpired(id uint, from models.SubscriptionStatus) (bool, error)
	Activate(sub *models.UserSubscription) error
	ListExpiring(now time.Time, limit int) ([]models.UserSubscription, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a subscription repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(sub *models.UserSubscription) error {
	return r.db.Create(sub).Error
}

func (r *gormRepository) GetByUserID(userID string) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	if err := r.db.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) MarkExpired(id uint, from models.SubscriptionStatus) (bool, error) {
	tx := r.db.Model(&models.UserSubscription{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", models.SubscriptionExpired)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *gormRepository) Activate(sub *models.UserSubscription) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status",
			"current_period_ends_at",
			"payment_customer_id",
			"payment_subscription_id",
			"updated_at",
		}),
	}).Create(sub).Error; err != nil {
		return err
	}

	// Ensure ID and trial fields are populated after upsert.
	return r.db.Where("user_id = ?", sub.UserID).First(sub).Error
}

func (r *gormRepository) ListExpiring(now time.Time, limit int) ([]models.UserSubscription, error) {
	var subs []models.UserSubscription
	err := r.db.
		Where("(status = ? AND trial_ends_at <= ?) OR (status = ? AND current_period_ends_at IS NOT NULL AND current_period_ends_at <= ?)",
			models.SubscriptionTrial, now, models.SubscriptionActive, now).
		Order("id ASC").
		Limit(limit).
		Find(&subs).Error
	return subs, err
}
