package model

import (
	"time"

	"activity-tracker.com/activity-tracker/internal/constants"
)

type Status struct {
	ID         constants.ActivityStatus `gorm:"primaryKey;autoIncrement:false" json:"id"`
	StatusName string                   `gorm:"size:64;not null;uniqueIndex" json:"status_name"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
}
