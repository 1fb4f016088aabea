package jobsearch

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matchpro/platform/app/models"
)

// PageSize is the fixed number of postings per result page.
const PageSize = 10

type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortDate      SortKey = "date"
	SortSalary    SortKey = "salary"
)

// Filter is the per-request search input. Every field is optional; absence
// means the predicate is inactive, never a defaulted value. Active predicates
// are ANDed together while multi-value fields are ORed internally.
type Filter struct {
	Query            string                  `json:"query" validate:"max=200"`
	Location         string                  `json:"location" validate:"max=200"`
	EmploymentTypes  []models.EmploymentType `json:"employment_type" validate:"dive,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	RemoteTypes      []models.RemoteType     `json:"remote_type" validate:"dive,oneof=REMOTE HYBRID ON_SITE"`
	MinSalary        *int64                  `json:"min_salary" validate:"omitempty,gt=0"`
	PostedWithinDays *int                    `json:"posted_within" validate:"omitempty,gt=0,lte=365"`
	SortBy           SortKey                 `json:"sort_by" validate:"omitempty,oneof=relevance date salary"`
	Page             int                     `json:"page" validate:"omitempty,gte=1"`
}

var validate = validator.New()

// Normalize trims text fields and fills the page and sort defaults.
func (f *Filter) Normalize() {
	f.Query = strings.TrimSpace(f.Query)
	f.Location = strings.TrimSpace(f.Location)
	if f.SortBy == "" {
		f.SortBy = SortRelevance
	}
	if f.Page < 1 {
		f.Page = 1
	}
}

// Validate reports malformed filter values. Callers should treat a non-nil
// error as a client error, not a search failure.
func (f *Filter) Validate() error {
	return validate.Struct(f)
}

// Offset returns the row offset for the filter's page.
func (f *Filter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}
