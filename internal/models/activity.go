package model

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"activity-tracker.com/activity-tracker/internal/constants"
)

type Activity struct {
	ID         string                   `gorm:"primaryKey;size:36" json:"id"`
	Activity   string                   `gorm:"type:text;not null" json:"activity"`
	StatusID   constants.ActivityStatus `gorm:"not null;index" json:"status_id"`
	Status     *Status                  `gorm:"foreignKey:StatusID" json:"-"`
	IsPaused   bool                     `gorm:"not null;default:false" json:"is_paused"`
	IsArchived bool                     `gorm:"column:is_archieved;not null;default:false" json:"is_archieved"`
	IsDeleted  bool                     `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt  time.Time                `gorm:"not null;index" json:"created_at"`
	UpdatedAt  time.Time                `gorm:"not null" json:"updated_at"`

	// SearchText is Activity folded to lower case. SQL LOWER() only folds
	// ASCII on SQLite, so searches run against this column instead.
	SearchText string `gorm:"column:activity_search;type:text;not null;default:''" json:"-"`
}

func (a Activity) IsCompleted() bool {
	return a.StatusID == constants.StatusCompleted
}

func SearchText(content string) string {
	return strings.ToLower(content)
}

func (a *Activity) BeforeSave(*gorm.DB) error {
	a.SearchText = SearchText(a.Activity)
	return nil
}
