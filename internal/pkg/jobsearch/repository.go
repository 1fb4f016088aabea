package jobsearch

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/matchpro/platform/app/models"
)

// Repository provides the filtered, sorted, paginated read path over the
// listings store.
type Repository interface {
	Search(filter Filter, now time.Time) ([]models.JobPosting, int64, error)
	GetByID(id string) (*models.JobPosting, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a listings repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Search returns one page of postings plus the total match count. The count
// is taken before pagination so it reflects every matching posting, not just
// the returned window.
func (r *gormRepository) Search(filter Filter, now time.Time) ([]models.JobPosting, int64, error) {
	base := applyFilter(r.db.Model(&models.JobPosting{}), filter, now)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var postings []models.JobPosting
	err := base.Session(&gorm.Session{}).
		Order(orderClause(filter.SortBy)).
		Offset(filter.Offset()).
		Limit(PageSize).
		Find(&postings).Error
	if err != nil {
		return nil, 0, err
	}
	return postings, total, nil
}

func (r *gormRepository) GetByID(id string) (*models.JobPosting, error) {
	var posting models.JobPosting
	if err := r.db.First(&posting, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &posting, nil
}

// applyFilter ANDs every active predicate onto the query. LOWER() keeps the
// substring matches case-insensitive on both MySQL and SQLite.
func applyFilter(db *gorm.DB, f Filter, now time.Time) *gorm.DB {
	if f.Query != "" {
		pattern := "%" + strings.ToLower(f.Query) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if f.Location != "" {
		db = db.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if len(f.EmploymentTypes) > 0 {
		db = db.Where("employment_type IN ?", f.EmploymentTypes)
	}
	if len(f.RemoteTypes) > 0 {
		db = db.Where("remote_type IN ?", f.RemoteTypes)
	}
	if f.MinSalary != nil {
		// Postings without a salary range are excluded while this filter is set.
		db = db.Where("salary_min IS NOT NULL AND salary_min >= ?", *f.MinSalary)
	}
	if f.PostedWithinDays != nil {
		cutoff := now.Add(-time.Duration(*f.PostedWithinDays) * 24 * time.Hour)
		db = db.Where("posted_at >= ?", cutoff)
	}
	return db
}

// orderClause maps a sort key to a deterministic ordering. Relevance is the
// stable store order, which we fix as id ascending; every sort carries the
// same id tiebreak.
func orderClause(sort SortKey) string {
	switch sort {
	case SortDate:
		return "posted_at DESC, id ASC"
	case SortSalary:
		return "CASE WHEN salary_min IS NULL THEN 1 ELSE 0 END ASC, salary_min DESC, id ASC"
	default:
		return "id ASC"
	}
}
