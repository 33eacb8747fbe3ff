package validators

import (
	"strings"

	dto "activity-tracker.com/activity-tracker/internal/data_models"
	apperrors "activity-tracker.com/activity-tracker/internal/errors"
)

// Content length and status existence are checked by the service; these
// only reject requests that are missing required fields.

func ValidateStoreActivitiesRequest(r *dto.StoreActivitiesRequest) error {
	if len(r.Tasks) == 0 {
		return apperrors.ErrValidation.WithMessage("tasks is required")
	}
	return nil
}

func ValidateRenameActivityRequest(r *dto.RenameActivityRequest) error {
	if strings.TrimSpace(r.Activity) == "" {
		return apperrors.ErrValidation.WithMessage("activity is required")
	}
	return nil
}

func ValidateChangeStatusRequest(r *dto.ChangeStatusRequest) error {
	if r.StatusID == nil {
		return apperrors.ErrValidation.WithMessage("statusId is required")
	}
	return nil
}

func ValidateReviveActivityRequest(r *dto.ReviveActivityRequest) error {
	if r.StatusID == nil {
		return apperrors.ErrValidation.WithMessage("status_id is required")
	}
	return nil
}
