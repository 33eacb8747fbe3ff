package dto

import "activity-tracker.com/activity-tracker/internal/constants"

// StoreActivitiesRequest pairs each task with the status at the same index.
type StoreActivitiesRequest struct {
	Tasks     []string                   `json:"tasks" form:"tasks"`
	StatusIDs []constants.ActivityStatus `json:"status_id" form:"status_id"`
}

type RenameActivityRequest struct {
	Activity string `json:"activity" form:"activity"`
}

type ChangeStatusRequest struct {
	StatusID *constants.ActivityStatus `json:"statusId" form:"statusId"`
}

type ReviveActivityRequest struct {
	StatusID *constants.ActivityStatus `json:"status_id" form:"status_id"`
}

type ListQuery struct {
	Search       string `query:"search"`
	Page         int    `query:"page"`
	ItemsPerPage int    `query:"itemsPerPage"`
	AllPages     bool   `query:"allPages"`
}
