package repository

import (
	"github.com/matchpro/platform/app/models"
	"gorm.io/gorm"
)

// ResumeRepository defines the interface for resume-related database
// operations. Lookups and deletes are scoped to the owning user.
type ResumeRepository interface {
	Create(resume *models.Resume) error
	GetForUser(id, userID string) (*models.Resume, error)
	GetLatestByUserID(userID string) (*models.Resume, error)
	ListByUserID(userID string) ([]models.Resume, error)
	DeleteForUser(id, userID string) (bool, error)
}

// SavedJobRepository defines the interface for saved-job bookmarks
type SavedJobRepository interface {
	Save(userID, jobID string) (created bool, err error)
	Remove(userID, jobID string) (bool, error)
	ListByUserID(userID string) ([]models.SavedJob, error)
	CountByUserID(userID string) (int64, error)
}

// ApplicationRepository defines the interface for the job-applications
// tracker. Every operation is scoped to the owning user.
type ApplicationRepository interface {
	Create(application *models.JobApplication) error
	GetForUser(id, userID string) (*models.JobApplication, error)
	ListByUserID(userID string) ([]models.JobApplication, error)
	UpdateStatusForUser(id, userID string, status models.ApplicationStatus) (bool, error)
	DeleteForUser(id, userID string) (bool, error)
}

// Repositories holds all repository instances
type Repositories struct {
	Resume      ResumeRepository
	SavedJob    SavedJobRepository
	Application ApplicationRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Resume:      NewResumeRepository(db),
		SavedJob:    NewSavedJobRepository(db),
		Application: NewApplicationRepository(db),
	}
}
