package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Resume holds the extracted skill list for one uploaded resume. Text
// extraction happens upstream; this service only consumes the skills.
type Resume struct {
	ID        string                      `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string                      `gorm:"type:char(36);not null;index" json:"user_id"`
	Title     string                      `gorm:"type:varchar(255)" json:"title"`
	Skills    datatypes.JSONSlice[string] `json:"skills"`
	CreatedAt time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Resume) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
