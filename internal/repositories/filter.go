package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"activity-tracker.com/activity-tracker/internal/constants"
	apperrors "activity-tracker.com/activity-tracker/internal/errors"
	model "activity-tracker.com/activity-tracker/internal/models"
)

type SortField string

const (
	SortCreatedAt SortField = "created_at"
	SortUpdatedAt SortField = "updated_at"
	SortActivity  SortField = "activity"
	SortStatus    SortField = "status_id"
)

var sortableFields = map[SortField]struct{}{
	SortCreatedAt: {},
	SortUpdatedAt: {},
	SortActivity:  {},
	SortStatus:    {},
}

type Sort struct {
	Field SortField
	Desc  bool
}

// Filter is a conjunction of predicates. Nil pointers and empty strings do
// not constrain the query. Page 0 disables pagination.
type Filter struct {
	Search    string
	Status    *constants.ActivityStatus
	Paused    *bool
	Archived  *bool
	Deleted   *bool
	CreatedOn *time.Time

	Sort    Sort
	Page    int
	PerPage int
}

func Bool(v bool) *bool { return &v }

func Status(s constants.ActivityStatus) *constants.ActivityStatus { return &s }

// '!' is the LIKE escape character; backslash is not portable to MySQL.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (f Filter) apply(q *gorm.DB) *gorm.DB {
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(model.SearchText(search)) + "%"
		q = q.Where("activity_search LIKE ? ESCAPE '!'", pattern)
	}
	if f.Status != nil {
		q = q.Where("status_id = ?", *f.Status)
	}
	if f.Paused != nil {
		q = q.Where("is_paused = ?", *f.Paused)
	}
	if f.Archived != nil {
		q = q.Where("is_archieved = ?", *f.Archived)
	}
	if f.Deleted != nil {
		q = q.Where("is_deleted = ?", *f.Deleted)
	}
	if f.CreatedOn != nil {
		day := *f.CreatedOn
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 0, 1)
		q = q.Where("created_at >= ? AND created_at < ?", start.UTC(), end.UTC())
	}
	return q
}

func (f Filter) order() (string, error) {
	field := f.Sort.Field
	if field == "" {
		field = SortCreatedAt
	}
	if _, ok := sortableFields[field]; !ok {
		return "", apperrors.ErrInvalidSort
	}
	dir := "asc"
	if f.Sort.Desc {
		dir = "desc"
	}
	// id breaks ties so pages are stable.
	return string(field) + " " + dir + ", id " + dir, nil
}

func (f Filter) paginate(q *gorm.DB) *gorm.DB {
	if f.Page <= 0 {
		return q
	}
	perPage := f.PerPage
	if perPage <= 0 {
		perPage = constants.DefaultPageSize
	}
	if perPage > constants.MaxPageSize {
		perPage = constants.MaxPageSize
	}
	return q.Offset((f.Page - 1) * perPage).Limit(perPage)
}
