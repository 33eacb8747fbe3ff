package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"activity-tracker.com/activity-tracker/internal/constants"
	dto "activity-tracker.com/activity-tracker/internal/data_models"
	apperrors "activity-tracker.com/activity-tracker/internal/errors"
	model "activity-tracker.com/activity-tracker/internal/models"
	repository "activity-tracker.com/activity-tracker/internal/repositories"
)

type ActivityStore interface {
	CreateBatch(ctx context.Context, entries []repository.NewActivity) ([]model.Activity, error)
	FindByID(ctx context.Context, id string) (*model.Activity, error)
	List(ctx context.Context, filter repository.Filter) ([]model.Activity, error)
	Count(ctx context.Context, filter repository.Filter) (int64, error)
	Update(ctx context.Context, id string, mutate func(*model.Activity) error, opts ...repository.UpdateOption) (*model.Activity, error)
	Delete(ctx context.Context, id string) error
	BulkDeleteWhere(ctx context.Context, filter repository.Filter) (int64, error)
}

type StatusStore interface {
	Exists(ctx context.Context, status constants.ActivityStatus) (bool, error)
	List(ctx context.Context) ([]model.Status, error)
}

type ActivityServiceConfig struct {
	PageSize int
	// Location decides which calendar day "today" is.
	Location *time.Location
	Clock    func() time.Time
}

type ActivityService struct {
	activities ActivityStore
	statuses   StatusStore
	logger     *log.Logger
	pageSize   int
	location   *time.Location
	clock      func() time.Time
}

type ListOptions struct {
	Search  string
	Page    int
	PerPage int
}

func NewActivityService(activities ActivityStore, statuses StatusStore, logger *log.Logger, cfg ActivityServiceConfig) *ActivityService {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = constants.DefaultPageSize
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return &ActivityService{
		activities: activities,
		statuses:   statuses,
		logger:     logger,
		pageSize:   cfg.PageSize,
		location:   cfg.Location,
		clock:      cfg.Clock,
	}
}

// CreateBatch stores one activity per (content, status) pair. Blank contents
// are dropped together with their status; any other invalid entry rejects
// the whole batch.
func (s *ActivityService) CreateBatch(ctx context.Context, contents []string, statuses []constants.ActivityStatus) ([]model.Activity, error) {
	if len(contents) != len(statuses) {
		return nil, apperrors.ErrBatchMismatch
	}

	entries := make([]repository.NewActivity, 0, len(contents))
	seen := make(map[constants.ActivityStatus]struct{})
	for i, raw := range contents {
		content := strings.TrimSpace(raw)
		if content == "" {
			continue
		}
		if err := validateContent(content); err != nil {
			return nil, apperrors.ErrContentTooShort.WithMessage(
				fmt.Sprintf("Task %d must be at least %d characters long.", i+1, constants.MinContentLength),
			)
		}
		if _, ok := seen[statuses[i]]; !ok {
			if err := s.ensureStatus(ctx, statuses[i]); err != nil {
				return nil, err
			}
			seen[statuses[i]] = struct{}{}
		}
		entries = append(entries, repository.NewActivity{Content: content, Status: statuses[i]})
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNoActivities
	}

	created, err := s.activities.CreateBatch(ctx, entries)
	if err != nil {
		return nil, err
	}

	s.logger.Info("activities created", "count", len(created))
	return created, nil
}

func (s *ActivityService) Find(ctx context.Context, id string) (*model.Activity, error) {
	if !validID(id) {
		return nil, apperrors.ErrActivityNotFound
	}
	return s.activities.FindByID(ctx, id)
}

// Show loads an activity together with the page that presents it.
func (s *ActivityService) Show(ctx context.Context, id string) (*model.Activity, View, error) {
	activity, err := s.Find(ctx, id)
	if err != nil {
		return nil, ViewError, err
	}
	return activity, ShowView(*activity), nil
}

// Present is the read-only counterpart of Unarchive.
func (s *ActivityService) Present(ctx context.Context, id string, p Presentation) (*model.Activity, View, error) {
	activity, err := s.Find(ctx, id)
	if err != nil {
		return nil, ViewError, err
	}
	if p == PresentReview {
		return activity, ReviewView(*activity), nil
	}
	return activity, DetailView(*activity), nil
}

func (s *ActivityService) Statuses(ctx context.Context) ([]model.Status, error) {
	return s.statuses.List(ctx)
}

// Index lists every activity that is not soft-deleted, newest first, one
// page at a time.
func (s *ActivityService) Index(ctx context.Context, opts ListOptions) (dto.ActivityPage, error) {
	if opts.Page <= 0 {
		opts.Page = 1
	}
	return s.Search(ctx, opts, false)
}

// Search is Index for API clients: allPages returns the full result without
// pagination meta.
func (s *ActivityService) Search(ctx context.Context, opts ListOptions, allPages bool) (dto.ActivityPage, error) {
	filter := repository.Filter{
		Search:  opts.Search,
		Deleted: repository.Bool(false),
		Sort:    repository.Sort{Field: repository.SortCreatedAt, Desc: true},
	}

	if allPages {
		activities, err := s.activities.List(ctx, filter)
		if err != nil {
			return dto.ActivityPage{}, err
		}
		return dto.ActivityPage{Data: activities}, nil
	}

	filter.Page = max(opts.Page, 1)
	filter.PerPage = s.perPage(opts.PerPage)

	total, err := s.activities.Count(ctx, filter)
	if err != nil {
		return dto.ActivityPage{}, err
	}
	activities, err := s.activities.List(ctx, filter)
	if err != nil {
		return dto.ActivityPage{}, err
	}

	return dto.ActivityPage{
		Data: activities,
		Meta: dto.NewPaginationMeta(total, filter.Page, filter.PerPage),
	}, nil
}

// Today lists activities created on the current calendar day.
func (s *ActivityService) Today(ctx context.Context) ([]model.Activity, error) {
	today := s.clock().In(s.location)
	return s.activities.List(ctx, repository.Filter{
		CreatedOn: &today,
		Deleted:   repository.Bool(false),
		Sort:      repository.Sort{Field: repository.SortCreatedAt, Desc: true},
	})
}

// ListView returns the activities shown on one of the filtered listing
// pages, optionally narrowed by search.
func (s *ActivityService) ListView(ctx context.Context, view View, search string) ([]model.Activity, error) {
	filter, ok := viewFilters[view]
	if !ok {
		return nil, fmt.Errorf("no listing for view %q", view)
	}
	filter.Search = search
	return s.activities.List(ctx, filter)
}

var viewFilters = map[View]repository.Filter{
	ViewCompleted: {
		Status:  repository.Status(constants.StatusCompleted),
		Deleted: repository.Bool(false),
		Sort:    repository.Sort{Field: repository.SortActivity},
	},
	ViewPending: {
		Status:  repository.Status(constants.StatusPending),
		Deleted: repository.Bool(false),
		Sort:    repository.Sort{Field: repository.SortActivity},
	},
	ViewPaused: {
		Paused:  repository.Bool(true),
		Deleted: repository.Bool(false),
		Sort:    repository.Sort{Field: repository.SortCreatedAt, Desc: true},
	},
	ViewArchived: {
		Archived: repository.Bool(true),
		Deleted:  repository.Bool(false),
		Sort:     repository.Sort{Field: repository.SortActivity},
	},
	ViewDeleted: {
		Deleted: repository.Bool(true),
		Sort:    repository.Sort{Field: repository.SortCreatedAt, Desc: true},
	},
}

// Rename validates content before touching storage, so a short name never
// mutates the record.
func (s *ActivityService) Rename(ctx context.Context, id, content string) (*model.Activity, error) {
	content = strings.TrimSpace(content)
	if err := validateContent(content); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, "renamed", func(a *model.Activity) error {
		a.Activity = content
		return nil
	})
}

func (s *ActivityService) SetStatus(ctx context.Context, id string, status constants.ActivityStatus) (*model.Activity, error) {
	if err := s.ensureStatus(ctx, status); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, "status changed", func(a *model.Activity) error {
		a.StatusID = status
		return nil
	})
}

func (s *ActivityService) Pause(ctx context.Context, id string) (*model.Activity, error) {
	return s.mutate(ctx, id, "paused", func(a *model.Activity) error {
		a.IsPaused = true
		return nil
	})
}

func (s *ActivityService) Resume(ctx context.Context, id string) (*model.Activity, error) {
	return s.mutate(ctx, id, "resumed", func(a *model.Activity) error {
		a.IsPaused = false
		return nil
	})
}

func (s *ActivityService) Archive(ctx context.Context, id string) (*model.Activity, error) {
	return s.mutate(ctx, id, "archived", func(a *model.Activity) error {
		a.IsArchived = true
		return nil
	})
}

// ArchivePaused archives the activity only if it is currently paused.
func (s *ActivityService) ArchivePaused(ctx context.Context, id string) (*model.Activity, error) {
	return s.mutate(ctx, id, "archived", func(a *model.Activity) error {
		if !a.IsPaused {
			return apperrors.ErrActivityNotPaused
		}
		a.IsArchived = true
		return nil
	})
}

// Unarchive clears the archived flag and reports which page should present
// the result.
func (s *ActivityService) Unarchive(ctx context.Context, id string) (*model.Activity, View, error) {
	activity, err := s.mutate(ctx, id, "unarchived", func(a *model.Activity) error {
		a.IsArchived = false
		return nil
	})
	if err != nil {
		return nil, ViewError, err
	}
	return activity, ReviewView(*activity), nil
}

// Revive moves an archived activity back into play with a new status.
func (s *ActivityService) Revive(ctx context.Context, id string, status constants.ActivityStatus) (*model.Activity, error) {
	if err := s.ensureStatus(ctx, status); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, "revived", func(a *model.Activity) error {
		a.StatusID = status
		a.IsArchived = false
		return nil
	})
}

func (s *ActivityService) SoftDelete(ctx context.Context, id string) (*model.Activity, error) {
	return s.mutate(ctx, id, "deleted", func(a *model.Activity) error {
		a.IsDeleted = true
		return nil
	})
}

func (s *ActivityService) Restore(ctx context.Context, id string) (*model.Activity, error) {
	return s.mutate(ctx, id, "restored", func(a *model.Activity) error {
		a.IsDeleted = false
		return nil
	})
}

// Erase removes the activity permanently.
func (s *ActivityService) Erase(ctx context.Context, id string) error {
	if !validID(id) {
		return apperrors.ErrActivityNotFound
	}
	if err := s.activities.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("activity erased", "activity_id", id)
	return nil
}

// PurgeDeleted permanently removes every soft-deleted activity.
func (s *ActivityService) PurgeDeleted(ctx context.Context) (int64, error) {
	count, err := s.activities.BulkDeleteWhere(ctx, repository.Filter{Deleted: repository.Bool(true)})
	if err != nil {
		return 0, err
	}
	s.logger.Info("deleted activities purged", "count", count)
	return count, nil
}

func (s *ActivityService) mutate(ctx context.Context, id, action string, fn func(*model.Activity) error) (*model.Activity, error) {
	if !validID(id) {
		return nil, apperrors.ErrActivityNotFound
	}
	activity, err := s.activities.Update(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("activity "+action, "activity_id", id, "status", activity.StatusID.String())
	return activity, nil
}

func (s *ActivityService) ensureStatus(ctx context.Context, status constants.ActivityStatus) error {
	ok, err := s.statuses.Exists(ctx, status)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrUnknownStatus
	}
	return nil
}

func (s *ActivityService) perPage(requested int) int {
	if requested <= 0 {
		return s.pageSize
	}
	return min(requested, constants.MaxPageSize)
}

func validateContent(content string) error {
	if utf8.RuneCountInString(content) < constants.MinContentLength {
		return apperrors.ErrContentTooShort
	}
	return nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
