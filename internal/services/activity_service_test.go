package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	config "activity-tracker.com/activity-tracker/internal/configs"
	"activity-tracker.com/activity-tracker/internal/constants"
	apperrors "activity-tracker.com/activity-tracker/internal/errors"
	model "activity-tracker.com/activity-tracker/internal/models"
	repository "activity-tracker.com/activity-tracker/internal/repositories"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.NewDatabase(config.DriverSQLite, filepath.Join(t.TempDir(), "activities.db"))
	require.NoError(t, err)
	require.NoError(t, config.Migrate(context.Background(), db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTestService(db *gorm.DB) (*ActivityService, *repository.ActivityRepository) {
	clock := func() time.Time { return testNow }
	repo := repository.NewActivityRepository(db, clock)
	service := NewActivityService(repo, repository.NewStatusRepository(db), nil, ActivityServiceConfig{
		Location: time.UTC,
		Clock:    clock,
	})
	return service, repo
}

func setupService(t *testing.T) (*ActivityService, *repository.ActivityRepository) {
	t.Helper()
	return newTestService(setupTestDB(t))
}

func createOne(t *testing.T, s *ActivityService, content string, status constants.ActivityStatus) model.Activity {
	t.Helper()
	created, err := s.CreateBatch(context.Background(), []string{content}, []constants.ActivityStatus{status})
	require.NoError(t, err)
	require.Len(t, created, 1)
	return created[0]
}

func activityNames(activities []model.Activity) []string {
	names := make([]string, 0, len(activities))
	for _, a := range activities {
		names = append(names, a.Activity)
	}
	return names
}

func TestActivityService_CreateBatchThenListByStatus(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	created, err := s.CreateBatch(ctx,
		[]string{"Buy milk", "Call bank"},
		[]constants.ActivityStatus{constants.StatusPending, constants.StatusCompleted},
	)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "Buy milk", created[0].Activity)
	assert.Equal(t, constants.StatusPending, created[0].StatusID)
	assert.Equal(t, "Call bank", created[1].Activity)
	assert.Equal(t, constants.StatusCompleted, created[1].StatusID)

	completed, err := s.ListView(ctx, ViewCompleted, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Call bank"}, activityNames(completed))

	pending, err := s.ListView(ctx, ViewPending, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Buy milk"}, activityNames(pending))
}

func TestActivityService_CreateBatchRejections(t *testing.T) {
	tests := []struct {
		name     string
		contents []string
		statuses []constants.ActivityStatus
		wantErr  error
	}{
		{
			name:     "count mismatch",
			contents: []string{"Buy milk", "Call bank"},
			statuses: []constants.ActivityStatus{constants.StatusPending},
			wantErr:  apperrors.ErrBatchMismatch,
		},
		{
			name:     "one short entry rejects everything",
			contents: []string{"Buy milk", "hi"},
			statuses: []constants.ActivityStatus{constants.StatusPending, constants.StatusPending},
			wantErr:  apperrors.ErrContentTooShort,
		},
		{
			name:     "unknown status",
			contents: []string{"Buy milk"},
			statuses: []constants.ActivityStatus{42},
			wantErr:  apperrors.ErrUnknownStatus,
		},
		{
			name:     "only blanks",
			contents: []string{"  ", ""},
			statuses: []constants.ActivityStatus{constants.StatusPending, constants.StatusPending},
			wantErr:  apperrors.ErrNoActivities,
		},
		{
			name:     "empty batch",
			contents: nil,
			statuses: nil,
			wantErr:  apperrors.ErrNoActivities,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo := setupService(t)
			ctx := context.Background()

			_, err := s.CreateBatch(ctx, tt.contents, tt.statuses)
			assert.ErrorIs(t, err, tt.wantErr)

			total, err := repo.Count(ctx, repository.Filter{})
			require.NoError(t, err)
			assert.Zero(t, total)
		})
	}
}

func TestActivityService_CreateBatchDropsBlankEntries(t *testing.T) {
	s, _ := setupService(t)

	created, err := s.CreateBatch(context.Background(),
		[]string{"  Buy milk  ", "   ", "Call bank"},
		[]constants.ActivityStatus{constants.StatusPending, constants.StatusCompleted, constants.StatusCompleted},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"Buy milk", "Call bank"}, activityNames(created))
	assert.Equal(t, constants.StatusCompleted, created[1].StatusID)
}

func TestActivityService_RenameTooShortLeavesRecord(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	a := createOne(t, s, "Buy milk", constants.StatusPending)

	_, err := s.Rename(ctx, a.ID, "hi")
	assert.ErrorIs(t, err, apperrors.ErrContentTooShort)

	_, err = s.Rename(ctx, a.ID, "  abcd  ")
	assert.ErrorIs(t, err, apperrors.ErrContentTooShort)

	found, err := s.Find(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", found.Activity)

	renamed, err := s.Rename(ctx, a.ID, "Buy oat milk")
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", renamed.Activity)
}

func TestActivityService_RenameCountsRunes(t *testing.T) {
	s, _ := setupService(t)
	a := createOne(t, s, "Buy milk", constants.StatusPending)

	_, err := s.Rename(context.Background(), a.ID, "café")
	assert.ErrorIs(t, err, apperrors.ErrContentTooShort)

	_, err = s.Rename(context.Background(), a.ID, "cafés")
	assert.NoError(t, err)
}

func TestActivityService_NotFound(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	missing := "3f1c1a8e-2b5e-4f53-9a57-8d2f7f0b6c11"

	ops := map[string]func(id string) error{
		"rename":    func(id string) error { _, err := s.Rename(ctx, id, "Long enough"); return err },
		"status":    func(id string) error { _, err := s.SetStatus(ctx, id, constants.StatusCompleted); return err },
		"pause":     func(id string) error { _, err := s.Pause(ctx, id); return err },
		"resume":    func(id string) error { _, err := s.Resume(ctx, id); return err },
		"archive":   func(id string) error { _, err := s.Archive(ctx, id); return err },
		"unarchive": func(id string) error { _, _, err := s.Unarchive(ctx, id); return err },
		"delete":    func(id string) error { _, err := s.SoftDelete(ctx, id); return err },
		"restore":   func(id string) error { _, err := s.Restore(ctx, id); return err },
		"erase":     func(id string) error { return s.Erase(ctx, id) },
		"find":      func(id string) error { _, err := s.Find(ctx, id); return err },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, op(missing), apperrors.ErrActivityNotFound)
			assert.ErrorIs(t, op("not-a-uuid"), apperrors.ErrActivityNotFound)
		})
	}
}

func TestActivityService_FlagToggles(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	a := createOne(t, s, "Buy milk", constants.StatusPending)

	paused, err := s.Pause(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, paused.IsPaused)

	archived, err := s.Archive(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)
	assert.True(t, archived.IsPaused, "flags are independent")

	resumed, err := s.Resume(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, resumed.IsPaused)
	assert.True(t, resumed.IsArchived)

	changed, err := s.SetStatus(ctx, a.ID, constants.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusCompleted, changed.StatusID)

	_, err = s.SetStatus(ctx, a.ID, 99)
	assert.ErrorIs(t, err, apperrors.ErrUnknownStatus)
}

func TestActivityService_ArchivePaused(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	a := createOne(t, s, "Buy milk", constants.StatusPending)

	_, err := s.ArchivePaused(ctx, a.ID)
	assert.ErrorIs(t, err, apperrors.ErrActivityNotPaused)

	found, err := s.Find(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, found.IsArchived)

	_, err = s.Pause(ctx, a.ID)
	require.NoError(t, err)
	archived, err := s.ArchivePaused(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)
}

func TestActivityService_UnarchiveChoosesView(t *testing.T) {
	tests := []struct {
		status constants.ActivityStatus
		want   View
	}{
		{status: constants.StatusCompleted, want: ViewReview},
		{status: constants.StatusPending, want: ViewView},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			s, _ := setupService(t)
			ctx := context.Background()
			a := createOne(t, s, "Water plants", tt.status)

			_, err := s.Archive(ctx, a.ID)
			require.NoError(t, err)

			activity, view, err := s.Unarchive(ctx, a.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, view)
			assert.False(t, activity.IsArchived)
		})
	}
}

func TestActivityService_Revive(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	a := createOne(t, s, "Water plants", constants.StatusCompleted)

	_, err := s.Archive(ctx, a.ID)
	require.NoError(t, err)

	revived, err := s.Revive(ctx, a.ID, constants.StatusPending)
	require.NoError(t, err)
	assert.False(t, revived.IsArchived)
	assert.Equal(t, constants.StatusPending, revived.StatusID)
}

func TestActivityService_SoftDeleteRestoreErase(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	a := createOne(t, s, "Buy milk", constants.StatusPending)

	_, err := s.SoftDelete(ctx, a.ID)
	require.NoError(t, err)

	page, err := s.Index(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, page.Data)

	deleted, err := s.ListView(ctx, ViewDeleted, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Buy milk"}, activityNames(deleted))

	_, err = s.Restore(ctx, a.ID)
	require.NoError(t, err)

	page, err = s.Index(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Buy milk"}, activityNames(page.Data))

	require.NoError(t, s.Erase(ctx, a.ID))
	_, err = s.Find(ctx, a.ID)
	assert.ErrorIs(t, err, apperrors.ErrActivityNotFound)
}

func TestActivityService_PurgeDeleted(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	keep := createOne(t, s, "Keep this one", constants.StatusPending)
	var trashed []string
	for _, content := range []string{"Trash one", "Trash two", "Trash three"} {
		a := createOne(t, s, content, constants.StatusCompleted)
		_, err := s.SoftDelete(ctx, a.ID)
		require.NoError(t, err)
		trashed = append(trashed, a.ID)
	}

	count, err := s.PurgeDeleted(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	for _, id := range trashed {
		_, err := s.Find(ctx, id)
		assert.ErrorIs(t, err, apperrors.ErrActivityNotFound)
	}
	found, err := s.Find(ctx, keep.ID)
	require.NoError(t, err)
	assert.False(t, found.IsDeleted)

	count, err = s.PurgeDeleted(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestActivityService_SearchAndPagination(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	_, err := s.CreateBatch(ctx,
		[]string{"Buy milk", "Call bank", "Buy MILK powder", "Walk the dog"},
		[]constants.ActivityStatus{constants.StatusPending, constants.StatusPending, constants.StatusCompleted, constants.StatusPending},
	)
	require.NoError(t, err)

	page, err := s.Index(ctx, ListOptions{Search: "Milk"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Buy milk", "Buy MILK powder"}, activityNames(page.Data))
	require.NotNil(t, page.Meta)
	assert.EqualValues(t, 2, page.Meta.Total)

	page, err = s.Index(ctx, ListOptions{Search: ""})
	require.NoError(t, err)
	assert.Len(t, page.Data, 4)

	page, err = s.Index(ctx, ListOptions{Page: 2, PerPage: 3})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, 2, page.Meta.LastPage)
	assert.Equal(t, 2, page.Meta.CurrentPage)

	all, err := s.Search(ctx, ListOptions{}, true)
	require.NoError(t, err)
	assert.Len(t, all.Data, 4)
	assert.Nil(t, all.Meta)

	completed, err := s.ListView(ctx, ViewCompleted, "powder")
	require.NoError(t, err)
	assert.Equal(t, []string{"Buy MILK powder"}, activityNames(completed))
}

func TestActivityService_Today(t *testing.T) {
	db := setupTestDB(t)
	s, _ := newTestService(db)
	ctx := context.Background()

	createOne(t, s, "Created today", constants.StatusPending)

	yesterday := repository.NewActivityRepository(db, func() time.Time { return testNow.AddDate(0, 0, -1) })
	_, err := yesterday.CreateBatch(ctx, []repository.NewActivity{{Content: "Created yesterday", Status: constants.StatusPending}})
	require.NoError(t, err)

	today, err := s.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Created today"}, activityNames(today))
}

func TestActivityService_ListViewUnknown(t *testing.T) {
	s, _ := setupService(t)

	_, err := s.ListView(context.Background(), ViewEdit, "")
	assert.Error(t, err)
}

type failingStore struct {
	ActivityStore
	err error
}

func (f failingStore) Update(context.Context, string, func(*model.Activity) error, ...repository.UpdateOption) (*model.Activity, error) {
	return nil, f.err
}

func TestActivityService_StorageErrorsPropagate(t *testing.T) {
	boom := errors.New("database is locked")
	s := NewActivityService(failingStore{err: boom}, nil, nil, ActivityServiceConfig{})

	_, err := s.Pause(context.Background(), "3f1c1a8e-2b5e-4f53-9a57-8d2f7f0b6c11")
	assert.ErrorIs(t, err, boom)
	assert.False(t, apperrors.IsExpected(err))
}

func TestActivityService_ShowAndPresent(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	pending := createOne(t, s, "Write report", constants.StatusPending)
	completed := createOne(t, s, "Water plants", constants.StatusCompleted)

	_, view, err := s.Show(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, ViewShowPending, view)

	_, err = s.Pause(ctx, pending.ID)
	require.NoError(t, err)
	_, view, err = s.Show(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, ViewShowPaused, view)

	_, view, err = s.Present(ctx, completed.ID, PresentReview)
	require.NoError(t, err)
	assert.Equal(t, ViewReview, view)

	_, view, err = s.Present(ctx, pending.ID, PresentView)
	require.NoError(t, err)
	assert.Equal(t, ViewView, view)

	_, view, err = s.Present(ctx, "missing", PresentView)
	assert.ErrorIs(t, err, apperrors.ErrActivityNotFound)
	assert.Equal(t, ViewError, view)

	// presenting never writes
	found, err := s.Find(ctx, completed.ID)
	require.NoError(t, err)
	assert.True(t, found.UpdatedAt.Equal(completed.UpdatedAt))
}

func TestActivityService_Statuses(t *testing.T) {
	s, _ := setupService(t)

	statuses, err := s.Statuses(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, constants.StatusCompleted, statuses[0].ID)
	assert.Equal(t, constants.StatusPending, statuses[1].ID)
}

func TestActivityService_SearchIgnoresCaseBeyondASCII(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	_, err := s.CreateBatch(ctx,
		[]string{"ÄPFEL kaufen", "Öl wechseln"},
		[]constants.ActivityStatus{constants.StatusPending, constants.StatusPending},
	)
	require.NoError(t, err)

	page, err := s.Index(ctx, ListOptions{Search: "äpfel"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ÄPFEL kaufen"}, activityNames(page.Data))

	oil, err := s.ListView(ctx, ViewPending, "öL")
	require.NoError(t, err)
	assert.Equal(t, []string{"Öl wechseln"}, activityNames(oil))
}
