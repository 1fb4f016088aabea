package jobsearch

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/matchpro/platform/app/models"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "jobsearch.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.JobPosting{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	seedPostings(t, db)
	return NewServiceFromDB(db).WithNow(func() time.Time { return testNow })
}

func seedPostings(t *testing.T, db *gorm.DB) {
	t.Helper()

	salary := func(v int64) *int64 { return &v }
	postings := []models.JobPosting{
		{
			ID:             "job-1",
			Title:          "Senior Go Engineer",
			Company:        "Acme",
			Location:       "Berlin, Germany",
			Description:    "Backend services in Go",
			RequiredSkills: []string{"Go", "SQL", "Kubernetes"},
			SalaryMin:      salary(120000),
			SalaryMax:      salary(150000),
			SalaryCurrency: "EUR",
			EmploymentType: models.EmploymentFullTime,
			RemoteType:     models.RemoteFully,
			PostedAt:       testNow.Add(-2 * 24 * time.Hour),
		},
		{
			ID:             "job-2",
			Title:          "Frontend Developer",
			Company:        "Globex",
			Location:       "Hamburg, Germany",
			Description:    "React dashboards",
			RequiredSkills: []string{"React", "TypeScript"},
			SalaryMin:      salary(80000),
			EmploymentType: models.EmploymentFullTime,
			RemoteType:     models.RemoteHybrid,
			PostedAt:       testNow.Add(-10 * 24 * time.Hour),
		},
		{
			ID:             "job-3",
			Title:          "Go Contractor",
			Company:        "Initech",
			Location:       "Remote",
			Description:    "Short-term Go tooling work",
			RequiredSkills: []string{"Go"},
			EmploymentType: models.EmploymentContract,
			RemoteType:     models.RemoteFully,
			PostedAt:       testNow.Add(-1 * 24 * time.Hour),
		},
	}
	if err := db.Create(&postings).Error; err != nil {
		t.Fatalf("seed postings: %v", err)
	}
}

func TestSearchNoFilterReturnsAll(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Search(Filter{}, nil)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if res.Total != 3 {
		t.Fatalf("total = %d, want 3", res.Total)
	}
	if res.TotalPages != 1 || res.Page != 1 {
		t.Fatalf("pages = %d/%d, want page 1 of 1", res.Page, res.TotalPages)
	}
	// Relevance order is the stable store order (id ascending).
	if res.Jobs[0].ID != "job-1" || res.Jobs[2].ID != "job-3" {
		t.Fatalf("unexpected relevance order: %s..%s", res.Jobs[0].ID, res.Jobs[2].ID)
	}
}

func TestSearchFreeTextMatchesTitleOrDescription(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Search(Filter{Query: "go"}, nil)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	// "go" appears in job-1 title/description and job-3 title; not in job-2.
	if res.Total != 2 {
		t.Fatalf("total = %d, want 2", res.Total)
	}
	for _, job := range res.Jobs {
		if job.ID == "job-2" {
			t.Fatalf("job-2 should not match query 'go'")
		}
	}
}

func TestSearchLocationSubstringCaseInsensitive(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Search(Filter{Location: "gErMaNy"}, nil)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if res.Total != 2 {
		t.Fatalf("total = %d, want 2", res.Total)
	}
}

func TestSearchCombinedPredicates(t *testing.T) {
	svc := newTestService(t)

	minSalary := int64(100000)
	postedWithin := 7
	res, err := svc.Search(Filter{
		EmploymentTypes:  []models.EmploymentType{models.EmploymentFullTime},
		MinSalary:        &minSalary,
		PostedWithinDays: &postedWithin,
	}, nil)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if res.Total != 1 || res.TotalPages != 1 {
		t.Fatalf("total = %d totalPages = %d, want 1/1", res.Total, res.TotalPages)
	}
	if res.Jobs[0].ID != "job-1" {
		t.Fatalf("got %s, want job-1", res.Jobs[0].ID)
	}
}

func TestSearchMinSalaryExcludesSalarylessPostings(t *testing.T) {
	svc := newTestService(t)

	minSalary := int64(1)
	res, err := svc.Search(Filter{MinSalary: &minSalary}, nil)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	for _, job := range res.Jobs {
		if job.ID == "job-3" {
			t.Fatalf("salary-less job-3 must be excluded when min_salary is set")
		}
	}
	if res.Total != 2 {
		t.Fatalf("total = %d, want 2", res.Total)
	}
}

func TestSearchSortByDate(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Search(Filter{SortBy: SortDate}, nil)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	for i := 1; i < len(res.Jobs); i++ {
		if res.Jobs[i].PostedAt.After(res.Jobs[i-1].PostedAt) {
			t.Fatalf("posted_at not non-increasing at index %d", i)
		}
	}
	if res.Jobs[0].ID != "job-3" {
		t.Fatalf("newest first: got %s, want job-3", res.Jobs[0].ID)
	}
}

func TestSearchSortBySalaryNullsLast(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Search(Filter{SortBy: SortSalary}, nil)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(res.Jobs) != 3 {
		t.Fatalf("len = %d, want 3", len(res.Jobs))
	}
	if res.Jobs[0].ID != "job-1" || res.Jobs[1].ID != "job-2" {
		t.Fatalf("salary order wrong: %s, %s", res.Jobs[0].ID, res.Jobs[1].ID)
	}
	if res.Jobs[2].ID != "job-3" {
		t.Fatalf("salary-less posting must sort last, got %s", res.Jobs[2].ID)
	}
}

func TestSearchPagination(t *testing.T) {
	svc := newTestService(t)

	// Seed past one page.
	db := svc.repo.(*gormRepository).db
	extra := make([]models.JobPosting, 0, 12)
	for i := 0; i < 12; i++ {
		extra = append(extra, models.JobPosting{
			Title:          "Data Engineer",
			Company:        "Umbrella",
			Location:       "Munich",
			EmploymentType: models.EmploymentFullTime,
			RemoteType:     models.RemoteOnSite,
			PostedAt:       testNow.Add(-time.Duration(i+1) * time.Hour),
		})
	}
	if err := db.Create(&extra).Error; err != nil {
		t.Fatalf("seed extra: %v", err)
	}

	page1, err := svc.Search(Filter{Page: 1}, nil)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if page1.Total != 15 || page1.TotalPages != 2 || len(page1.Jobs) != PageSize {
		t.Fatalf("page1 total=%d pages=%d len=%d", page1.Total, page1.TotalPages, len(page1.Jobs))
	}

	page2, err := svc.Search(Filter{Page: 2}, nil)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if page2.Total != 15 || len(page2.Jobs) != 5 {
		t.Fatalf("page2 total=%d len=%d", page2.Total, len(page2.Jobs))
	}
}

func TestSearchEmptyResult(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Search(Filter{Query: "zzz-no-such-job"}, nil)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if res.Total != 0 || res.TotalPages != 0 || len(res.Jobs) != 0 {
		t.Fatalf("empty search: total=%d pages=%d len=%d", res.Total, res.TotalPages, len(res.Jobs))
	}
}

func TestSearchInvalidFilter(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Search(Filter{EmploymentTypes: []models.EmploymentType{"WEEKENDS_ONLY"}}, nil); err == nil {
		t.Fatal("expected validation error for unknown employment type")
	}
	bad := int64(-5)
	if _, err := svc.Search(Filter{MinSalary: &bad}, nil); err == nil {
		t.Fatal("expected validation error for negative min salary")
	}
}

func TestSearchAnnotatesSkills(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Search(Filter{Query: "Senior Go"}, []string{"Go", "Terraform"})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if res.Total != 1 {
		t.Fatalf("total = %d, want 1", res.Total)
	}
	match := res.Jobs[0].SkillsMatch
	if match == nil {
		t.Fatal("expected skills annotation")
	}
	if len(match.Matching) != 1 || match.Matching[0] != "Go" {
		t.Fatalf("matching = %v", match.Matching)
	}
	if len(match.Missing) != 2 {
		t.Fatalf("missing = %v", match.Missing)
	}
}

func TestGetPosting(t *testing.T) {
	svc := newTestService(t)

	posting, err := svc.GetPosting("job-2")
	if err != nil {
		t.Fatalf("GetPosting error: %v", err)
	}
	if posting.Company != "Globex" {
		t.Fatalf("company = %q", posting.Company)
	}

	if _, err := svc.GetPosting("missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
