package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/matchpro/platform/app/models"
	"github.com/matchpro/platform/app/repository"
	"github.com/matchpro/platform/internal/pkg/cache"
	"github.com/matchpro/platform/internal/pkg/database"
	"github.com/matchpro/platform/internal/pkg/entitlements"
	"github.com/matchpro/platform/internal/pkg/jobsearch"
	"github.com/matchpro/platform/internal/pkg/metrics/counter"
	"github.com/matchpro/platform/internal/pkg/subscription"
)

const jobDetailCacheTTL = 5 * time.Minute

// searchFilterFromQuery builds the search filter from the request's query
// string. Repeatable parameters arrive as multiple occurrences of the same
// key.
func searchFilterFromQuery(c *fiber.Ctx) (jobsearch.Filter, error) {
	filter := jobsearch.Filter{
		Query:    c.Query("query"),
		Location: c.Query("location"),
		SortBy:   jobsearch.SortKey(c.Query("sort_by")),
	}

	for _, v := range queryMulti(c, "employment_type") {
		filter.EmploymentTypes = append(filter.EmploymentTypes, models.EmploymentType(v))
	}
	for _, v := range queryMulti(c, "remote_type") {
		filter.RemoteTypes = append(filter.RemoteTypes, models.RemoteType(v))
	}

	if v, ok := queryInt(c, "min_salary"); !ok {
		return filter, errors.New("min_salary must be an integer")
	} else if v != nil {
		salary := int64(*v)
		filter.MinSalary = &salary
	}
	if v, ok := queryInt(c, "posted_within"); !ok {
		return filter, errors.New("posted_within must be an integer")
	} else if v != nil {
		filter.PostedWithinDays = v
	}
	if v, ok := queryInt(c, "page"); !ok {
		return filter, errors.New("page must be an integer")
	} else if v != nil {
		filter.Page = *v
	}

	return filter, nil
}

// resumeSkills loads the caller's most recent resume skills. No resume means
// no annotation, not an error; store failures are logged and also degrade to
// an unannotated search instead of failing the request.
func resumeSkills(userID string) []string {
	resume, err := repository.GetGlobalRepositories().Resume.GetLatestByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("resume skills lookup failed: %v", err)
		}
		return nil
	}
	return resume.Skills
}

// HandleJobSearch runs a filtered, paginated posting search. Passing match=1
// annotates every posting with the caller's skills partition.
func HandleJobSearch(c *fiber.Ctx) error {
	filter, err := searchFilterFromQuery(c)
	if err != nil {
		return badRequest(c, err)
	}

	var candidateSkills []string
	if c.QueryBool("match") {
		candidateSkills = resumeSkills(currentUserID(c))
	}

	svc := jobsearch.NewServiceFromDB(database.GetDB())
	result, err := svc.Search(filter, candidateSkills)
	if err != nil {
		if errors.Is(err, jobsearch.ErrSearchFailed) {
			log.Printf("job search failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "search_failed"})
		}
		return badRequest(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// HandleJobMatches is the skills-first search: postings annotated against the
// caller's resume, gated by the job matching entitlement.
func HandleJobMatches(c *fiber.Ctx) error {
	userID := currentUserID(c)

	subs := subscription.NewServiceFromDB(database.GetDB())
	check, err := subs.CheckStatus(c.Context(), userID)
	if err != nil && !errors.Is(err, subscription.ErrNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "status_check_failed"})
	}
	if !entitlements.CanUse(check, entitlements.FeatureJobMatching) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "feature_locked", "feature": entitlements.FeatureJobMatching})
	}

	resume, err := repository.GetGlobalRepositories().Resume.GetLatestByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "resume_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "resume_lookup_failed"})
	}

	filter, err := searchFilterFromQuery(c)
	if err != nil {
		return badRequest(c, err)
	}

	svc := jobsearch.NewServiceFromDB(database.GetDB())
	result, err := svc.Search(filter, resume.Skills)
	if err != nil {
		if errors.Is(err, jobsearch.ErrSearchFailed) {
			log.Printf("job match search failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "search_failed"})
		}
		return badRequest(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// HandleJobDetails returns a single posting, served from the cache when warm.
func HandleJobDetails(c *fiber.Ctx) error {
	id := c.Params("id")

	cacheKey := "job:detail:" + id
	if cached, err := cache.Get(cacheKey); err == nil && cached != "" {
		_ = counter.AddJobView(id)
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(fiber.StatusOK).SendString(cached)
	}

	svc := jobsearch.NewServiceFromDB(database.GetDB())
	posting, err := svc.GetPosting(id)
	if err != nil {
		if errors.Is(err, jobsearch.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job_not_found"})
		}
		log.Printf("job lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "job_lookup_failed"})
	}

	_ = counter.AddJobView(id)

	if body, err := json.Marshal(posting); err == nil {
		if err := cache.Set(cacheKey, string(body), jobDetailCacheTTL); err != nil {
			log.Printf("Warning: could not cache job detail: %v", err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(posting)
}

// HandleSaveJob bookmarks a posting for the caller. Saving twice returns the
// same success shape with created=false.
func HandleSaveJob(c *fiber.Ctx) error {
	userID := currentUserID(c)
	jobID := c.Params("id")

	svc := jobsearch.NewServiceFromDB(database.GetDB())
	if _, err := svc.GetPosting(jobID); err != nil {
		if errors.Is(err, jobsearch.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "job_lookup_failed"})
	}

	created, err := repository.GetGlobalRepositories().SavedJob.Save(userID, jobID)
	if err != nil {
		log.Printf("save job failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "save_failed"})
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"ok": true, "created": created})
}

// HandleUnsaveJob drops the caller's bookmark for a posting.
func HandleUnsaveJob(c *fiber.Ctx) error {
	userID := currentUserID(c)
	jobID := c.Params("id")

	removed, err := repository.GetGlobalRepositories().SavedJob.Remove(userID, jobID)
	if err != nil {
		log.Printf("unsave job failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "unsave_failed"})
	}
	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "saved_job_not_found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListSavedJobs returns the caller's bookmarks, newest first.
func HandleListSavedJobs(c *fiber.Ctx) error {
	userID := currentUserID(c)

	repos := repository.GetGlobalRepositories()
	saved, err := repos.SavedJob.ListByUserID(userID)
	if err != nil {
		log.Printf("saved jobs lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "saved_jobs_lookup_failed"})
	}
	total, err := repos.SavedJob.CountByUserID(userID)
	if err != nil {
		log.Printf("saved jobs count failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "saved_jobs_lookup_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"saved_jobs": saved,
		"total":      total,
	})
}
