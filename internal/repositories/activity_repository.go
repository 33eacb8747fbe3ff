package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"activity-tracker.com/activity-tracker/internal/constants"
	apperrors "activity-tracker.com/activity-tracker/internal/errors"
	model "activity-tracker.com/activity-tracker/internal/models"
)

type ActivityRepository struct {
	db  *gorm.DB
	now func() time.Time
}

type NewActivity struct {
	Content string
	Status  constants.ActivityStatus
}

type updateOptions struct {
	touch bool
}

type UpdateOption func(*updateOptions)

// WithoutTouch keeps UpdatedAt as it was.
func WithoutTouch() UpdateOption {
	return func(o *updateOptions) { o.touch = false }
}

func NewActivityRepository(db *gorm.DB, now func() time.Time) *ActivityRepository {
	if now == nil {
		now = time.Now
	}
	return &ActivityRepository{db: db, now: now}
}

func (r *ActivityRepository) Create(ctx context.Context, content string, status constants.ActivityStatus) (*model.Activity, error) {
	created, err := r.CreateBatch(ctx, []NewActivity{{Content: content, Status: status}})
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

// CreateBatch inserts every entry in one transaction; either all rows are
// written or none are.
func (r *ActivityRepository) CreateBatch(ctx context.Context, entries []NewActivity) ([]model.Activity, error) {
	now := r.now().UTC()
	activities := make([]model.Activity, 0, len(entries))
	for _, entry := range entries {
		activities = append(activities, model.Activity{
			ID:        uuid.NewString(),
			Activity:  entry.Content,
			StatusID:  entry.Status,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if len(activities) == 0 {
		return activities, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Status").Create(&activities).Error
	})
	if err != nil {
		return nil, fmt.Errorf("insert activities: %w", err)
	}

	return activities, nil
}

func (r *ActivityRepository) FindByID(ctx context.Context, id string) (*model.Activity, error) {
	return findByID(r.db.WithContext(ctx), id)
}

func findByID(db *gorm.DB, id string) (*model.Activity, error) {
	var activity model.Activity
	err := db.First(&activity, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find activity %s: %w", id, err)
	}
	return &activity, nil
}

func (r *ActivityRepository) List(ctx context.Context, filter Filter) ([]model.Activity, error) {
	order, err := filter.order()
	if err != nil {
		return nil, err
	}

	activities := []model.Activity{}
	query := filter.paginate(filter.apply(r.db.WithContext(ctx).Model(&model.Activity{}))).Order(order)
	if err := query.Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

// Count ignores the sort and pagination parts of filter.
func (r *ActivityRepository) Count(ctx context.Context, filter Filter) (int64, error) {
	var total int64
	if err := filter.apply(r.db.WithContext(ctx).Model(&model.Activity{})).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count activities: %w", err)
	}
	return total, nil
}

// Update loads the activity, applies mutate and writes every mutable column
// back inside one transaction. A mutate error aborts without writing.
func (r *ActivityRepository) Update(ctx context.Context, id string, mutate func(*model.Activity) error, opts ...UpdateOption) (*model.Activity, error) {
	options := updateOptions{touch: true}
	for _, opt := range opts {
		opt(&options)
	}

	var updated *model.Activity
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		activity, err := findByID(tx, id)
		if err != nil {
			return err
		}

		if err := mutate(activity); err != nil {
			return err
		}
		activity.ID = id
		activity.SearchText = model.SearchText(activity.Activity)
		if options.touch {
			activity.UpdatedAt = r.now().UTC()
		}

		res := tx.Model(&model.Activity{}).Where("id = ?", id).UpdateColumns(map[string]interface{}{
			"activity":        activity.Activity,
			"activity_search": activity.SearchText,
			"status_id":       activity.StatusID,
			"is_paused":       activity.IsPaused,
			"is_archieved":    activity.IsArchived,
			"is_deleted":      activity.IsDeleted,
			"updated_at":      activity.UpdatedAt,
		})
		if res.Error != nil {
			return fmt.Errorf("update activity %s: %w", id, res.Error)
		}

		updated = activity
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Activity{})
	if res.Error != nil {
		return fmt.Errorf("delete activity %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrActivityNotFound
	}
	return nil
}

// BulkDeleteWhere permanently removes every activity matching filter and
// returns how many rows went away. Sort and pagination are ignored.
func (r *ActivityRepository) BulkDeleteWhere(ctx context.Context, filter Filter) (int64, error) {
	query := filter.apply(r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}))
	res := query.Delete(&model.Activity{})
	if res.Error != nil {
		return 0, fmt.Errorf("bulk delete activities: %w", res.Error)
	}
	return res.RowsAffected, nil
}
