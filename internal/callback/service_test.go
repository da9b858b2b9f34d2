package callback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	records map[uint]*CallbackRequest
	nextID  uint
	agg     *Aggregates
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		records: map[uint]*CallbackRequest{},
		nextID:  1,
		agg:     &Aggregates{StatusCounts: map[string]int64{}},
	}
}

func (f *fakeRepo) Create(_ context.Context, req *CallbackRequest) error {
	req.ID = f.nextID
	f.nextID++
	req.CreatedAt = time.Now()
	clone := *req
	f.records[req.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uint) (*CallbackRequest, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeRepo) List(_ context.Context, _ Filter) ([]CallbackRequest, int64, error) {
	var out []CallbackRequest
	for _, rec := range f.records {
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Update(_ context.Context, req *CallbackRequest) error {
	clone := *req
	f.records[req.ID] = &clone
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uint) error {
	delete(f.records, id)
	return nil
}

func (f *fakeRepo) Aggregates(_ context.Context) (*Aggregates, error) {
	return f.agg, nil
}

func newTestService() (*Service, *fakeRepo, *time.Time) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)
	now := time.Date(2025, 5, 20, 14, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, repo, &now
}

func TestCreatePendingRequest(t *testing.T) {
	svc, _, _ := newTestService()

	rec, err := svc.Create(context.Background(), CreateRequest{
		Name:  "Ayşe Yılmaz",
		Phone: "+90 (555) 123-45-67",
		Notes: "prefers afternoons",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, rec.Status)
	assert.Equal(t, SourceWebsite, rec.Source)
	assert.Equal(t, "905551234567", rec.Phone)
	assert.Equal(t, 3, rec.Priority)
}

func TestCreateRejectsShortPhone(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateRequest{Name: "A", Phone: "123"})
	var violations ValidationErrors
	require.ErrorAs(t, err, &violations)
	assert.Len(t, violations, 1)
}

func TestUpdateStampsCalledAtOnce(t *testing.T) {
	svc, _, now := newTestService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, CreateRequest{Name: "Mehmet", Phone: "05551234567"})
	require.NoError(t, err)
	require.Nil(t, rec.CalledAt)

	called := StatusCalled
	updated, err := svc.Update(ctx, rec.ID, UpdateRequest{Status: &called}, "10.0.0.1", "dev")
	require.NoError(t, err)
	require.NotNil(t, updated.CalledAt)
	firstStamp := *updated.CalledAt

	// A second transition to the same status must not move the stamp.
	*now = now.Add(2 * time.Hour)
	updated, err = svc.Update(ctx, rec.ID, UpdateRequest{Status: &called}, "10.0.0.1", "dev")
	require.NoError(t, err)
	require.NotNil(t, updated.CalledAt)
	assert.True(t, updated.CalledAt.Equal(firstStamp))
}

func TestUpdateStampsCompletedAtOnce(t *testing.T) {
	svc, _, now := newTestService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, CreateRequest{Name: "Mehmet", Phone: "05551234567"})
	require.NoError(t, err)

	completed := StatusCompleted
	updated, err := svc.Update(ctx, rec.ID, UpdateRequest{Status: &completed}, "", "")
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	first := *updated.CompletedAt

	*now = now.Add(time.Hour)
	updated, err = svc.Update(ctx, rec.ID, UpdateRequest{Status: &completed}, "", "")
	require.NoError(t, err)
	assert.True(t, updated.CompletedAt.Equal(first))
}

func TestUpdateCollectsAllViolations(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, CreateRequest{Name: "Mehmet", Phone: "05551234567"})
	require.NoError(t, err)

	badPhone := "123"
	badPriority := 9
	_, err = svc.Update(ctx, rec.ID, UpdateRequest{
		Phone:    &badPhone,
		Priority: &badPriority,
	}, "", "")

	var violations ValidationErrors
	require.ErrorAs(t, err, &violations)
	assert.Len(t, violations, 2)
}

func TestUpdateSchedulingRequiresTimestamp(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, CreateRequest{Name: "Mehmet", Phone: "05551234567"})
	require.NoError(t, err)

	scheduled := StatusScheduled
	_, err = svc.Update(ctx, rec.ID, UpdateRequest{Status: &scheduled}, "", "")
	var violations ValidationErrors
	require.ErrorAs(t, err, &violations)

	when := "2025-06-01T10:00:00Z"
	updated, err := svc.Update(ctx, rec.ID, UpdateRequest{Status: &scheduled, ScheduledAt: &when}, "", "")
	require.NoError(t, err)
	require.NotNil(t, updated.ScheduledAt)
	assert.Equal(t, StatusScheduled, updated.Status)
}

func TestUpdateMissingRecord(t *testing.T) {
	svc, _, _ := newTestService()

	called := StatusCalled
	_, err := svc.Update(context.Background(), 42, UpdateRequest{Status: &called}, "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteReturnsIdentifyingFields(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, CreateRequest{Name: "Mehmet", Phone: "05551234567"})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, rec.ID, "", "")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, deleted.ID)
	assert.Equal(t, "Mehmet", deleted.Name)
	assert.Empty(t, repo.records)

	_, err = svc.Delete(ctx, rec.ID, "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatsAssembly(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.agg = &Aggregates{
		StatusCounts: map[string]int64{
			StatusPending:   3,
			StatusCalled:    2,
			StatusCompleted: 1,
			StatusScheduled: 1,
		},
		TodayTotal:       4,
		TodayPending:     2,
		HighPriority:     1,
		AvgResponseHours: 2.5,
	}

	_, stats, _, err := svc.List(context.Background(), Filter{Limit: 20, Page: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(7), stats.Total)
	assert.Equal(t, int64(3), stats.Pending)
	assert.Equal(t, int64(2), stats.Called)
	assert.Equal(t, int64(1), stats.Scheduled)
	assert.Equal(t, int64(0), stats.Cancelled)
	assert.Equal(t, 2.5, stats.AvgResponseHours)
}

func TestAdvisoryTransitionTable(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusCalled))
	assert.True(t, CanTransition(StatusPending, StatusScheduled))
	assert.True(t, CanTransition(StatusCalled, StatusCompleted))
	assert.True(t, CanTransition(StatusScheduled, StatusCompleted))
	assert.True(t, CanTransition(StatusCompleted, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusPending))
	assert.True(t, CanTransition(StatusPending, StatusPending))
}
