package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"activity-tracker.com/activity-tracker/internal/constants"
	model "activity-tracker.com/activity-tracker/internal/models"
)

type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

func (r *StatusRepository) Exists(ctx context.Context, status constants.ActivityStatus) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Status{}).Where("id = ?", status).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("lookup status %d: %w", status, err)
	}
	return count > 0, nil
}

func (r *StatusRepository) List(ctx context.Context) ([]model.Status, error) {
	var statuses []model.Status
	err := r.db.WithContext(ctx).Order("id asc").Find(&statuses).Error
	return statuses, err
}

func (r *StatusRepository) Create(ctx context.Context, id constants.ActivityStatus, name string) (*model.Status, error) {
	status := &model.Status{ID: id, StatusName: name}
	if err := r.db.WithContext(ctx).Create(status).Error; err != nil {
		return nil, fmt.Errorf("create status %q: %w", name, err)
	}
	return status, nil
}
