package models

import "time"

// SavedJob bookmarks a posting for a user. The unique (user, job) index makes
// repeated saves idempotent.
type SavedJob struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);not null;index:ux_saved_jobs_user_job,unique,priority:1" json:"user_id"`
	JobID     string    `gorm:"type:char(36);not null;index:ux_saved_jobs_user_job,unique,priority:2" json:"job_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
