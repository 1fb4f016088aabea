// Package jobsearch translates a structured search filter into a bounded,
// sorted result page over the job listings store and annotates postings with
// the caller's skills-match partition.
package jobsearch

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/matchpro/platform/app/models"
	"github.com/matchpro/platform/internal/pkg/skills"
)

// ErrSearchFailed wraps any backing-store failure on the search path. The
// composer performs no retries; a transient store failure surfaces
// immediately.
var ErrSearchFailed = errors.New("search failed")

// ErrNotFound is returned for lookups of postings that do not exist.
var ErrNotFound = errors.New("job posting not found")

// AnnotatedPosting is a posting plus the optional skills-match partition
// computed against the caller's resume skills.
type AnnotatedPosting struct {
	models.JobPosting
	SkillsMatch *skills.MatchResult `json:"skills_match,omitempty"`
}

// Result is one page of search output.
type Result struct {
	Jobs       []AnnotatedPosting `json:"jobs"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
}

// Service composes and executes job searches. It holds no per-request state.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a search service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// NewServiceFromDB creates a search service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// Search validates the filter and returns the requested page. When
// candidateSkills is non-empty every posting is annotated with its
// matching/missing partition.
func (s *Service) Search(filter Filter, candidateSkills []string) (*Result, error) {
	filter.Normalize()
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	postings, total, err := s.repo.Search(filter, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	res := &Result{
		Jobs:       make([]AnnotatedPosting, 0, len(postings)),
		Total:      total,
		Page:       filter.Page,
		TotalPages: totalPages(total),
	}
	for _, posting := range postings {
		annotated := AnnotatedPosting{JobPosting: posting}
		if len(candidateSkills) > 0 {
			match := skills.Match(candidateSkills, posting.RequiredSkills)
			annotated.SkillsMatch = &match
		}
		res.Jobs = append(res.Jobs, annotated)
	}
	return res, nil
}

// GetPosting looks up a single posting, mapping absence to ErrNotFound.
func (s *Service) GetPosting(id string) (*models.JobPosting, error) {
	posting, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	return posting, nil
}

func totalPages(total int64) int {
	return int((total + PageSize - 1) / PageSize)
}
