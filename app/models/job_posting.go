package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "FULL_TIME"
	EmploymentPartTime   EmploymentType = "PART_TIME"
	EmploymentContract   EmploymentType = "CONTRACT"
	EmploymentInternship EmploymentType = "INTERNSHIP"
)

type RemoteType string

const (
	RemoteFully  RemoteType = "REMOTE"
	RemoteHybrid RemoteType = "HYBRID"
	RemoteOnSite RemoteType = "ON_SITE"
)

// JobPosting is a listing record. Postings are immutable once created; the
// listings source owns them and this service only reads.
type JobPosting struct {
	ID             string                      `gorm:"type:char(36);primaryKey" json:"id"`
	Title          string                      `gorm:"type:varchar(255);not null" json:"title"`
	Company        string                      `gorm:"type:varchar(255);not null" json:"company"`
	Location       string                      `gorm:"type:varchar(255);index" json:"location"`
	Description    string                      `gorm:"type:text" json:"description"`
	RequiredSkills datatypes.JSONSlice[string] `gorm:"column:required_skills" json:"required_skills"`
	SalaryMin      *int64                      `gorm:"index" json:"salary_min,omitempty"`
	SalaryMax      *int64                      `json:"salary_max,omitempty"`
	SalaryCurrency string                      `gorm:"type:varchar(3)" json:"salary_currency,omitempty"`
	EmploymentType EmploymentType              `gorm:"type:varchar(20);not null;index" json:"employment_type"`
	RemoteType     RemoteType                  `gorm:"type:varchar(20);not null;index" json:"remote_type"`
	ApplicationURL string                      `gorm:"type:varchar(500)" json:"application_url"`
	ViewCount      int64                       `gorm:"not null;default:0" json:"view_count"`
	PostedAt       time.Time                   `gorm:"not null;index" json:"posted_at"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time                   `gorm:"autoUpdateTime" json:"-"`
}

func (p *JobPosting) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// HasSalary reports whether the posting carries a salary range. Postings
// without one are excluded by the minimum-salary filter and sort last under
// the salary sort.
func (p *JobPosting) HasSalary() bool {
	return p.SalaryMin != nil
}
