package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "PENDING"
	ApplicationSubmitted ApplicationStatus = "SUBMITTED"
	ApplicationViewed    ApplicationStatus = "VIEWED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
	ApplicationAccepted  ApplicationStatus = "ACCEPTED"
)

// ValidApplicationStatus reports whether s is one of the tracked lifecycle
// states.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationPending, ApplicationSubmitted, ApplicationViewed,
		ApplicationRejected, ApplicationAccepted:
		return true
	}
	return false
}

// JobApplication tracks one user's application to a posting, submitted with
// one of their resumes.
type JobApplication struct {
	ID          string            `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      string            `gorm:"type:char(36);not null;index" json:"user_id"`
	JobID       string            `gorm:"type:char(36);not null;index" json:"job_id"`
	ResumeID    string            `gorm:"type:char(36);not null;index" json:"resume_id"`
	CoverLetter string            `gorm:"type:text" json:"cover_letter,omitempty"`
	Status      ApplicationStatus `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *JobApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = ApplicationPending
	}
	return nil
}
