package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	nextID  uint
	records map[uint]*Review
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, records: make(map[uint]*Review)}
}

func (f *fakeRepo) Create(_ context.Context, rv *Review) error {
	rv.ID = f.nextID
	f.nextID++
	cp := *rv
	f.records[rv.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uint) (*Review, error) {
	rv, ok := f.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rv
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, approvedOnly bool, limit, offset int) ([]Review, int64, error) {
	var out []Review
	for _, rv := range f.records {
		if approvedOnly && !rv.IsApproved {
			continue
		}
		out = append(out, *rv)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) ApprovedSummary(_ context.Context) (*RatingSummary, error) {
	var sum, count int64
	for _, rv := range f.records {
		if rv.IsApproved {
			sum += int64(rv.Rating)
			count++
		}
	}
	s := &RatingSummary{Total: count}
	if count > 0 {
		s.Average = float64(sum) / float64(count)
	}
	return s, nil
}

func (f *fakeRepo) Update(_ context.Context, rv *Review) error {
	cp := *rv
	f.records[rv.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uint) error {
	delete(f.records, id)
	return nil
}

func TestSubmitLandsUnapproved(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)

	rv, err := svc.Submit(context.Background(), SubmitRequest{
		PatientName: "Ayşe K.",
		Rating:      5,
		Comment:     "Harika bir deneyimdi",
	})
	require.NoError(t, err)
	assert.False(t, rv.IsApproved)
	assert.Nil(t, rv.ApprovedAt)

	approved, _, err := svc.List(context.Background(), true, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, approved, "unapproved review must stay off the public list")
}

func TestSubmitRejectsOutOfRangeRating(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Submit(context.Background(), SubmitRequest{PatientName: "X", Rating: rating})
		var violations ValidationErrors
		require.ErrorAs(t, err, &violations, "rating %d", rating)
	}
}

func TestModerateApprovalStampsOnce(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	rv, err := svc.Submit(context.Background(), SubmitRequest{PatientName: "Mehmet Y.", Rating: 4})
	require.NoError(t, err)

	yes := true
	rv, err = svc.Moderate(context.Background(), rv.ID, ModerateRequest{IsApproved: &yes}, "", "")
	require.NoError(t, err)
	require.NotNil(t, rv.ApprovedAt)
	firstStamp := *rv.ApprovedAt

	// Unapprove, advance the clock, approve again: the stamp stays put.
	no := false
	_, err = svc.Moderate(context.Background(), rv.ID, ModerateRequest{IsApproved: &no}, "", "")
	require.NoError(t, err)

	now = now.Add(48 * time.Hour)
	rv, err = svc.Moderate(context.Background(), rv.ID, ModerateRequest{IsApproved: &yes}, "", "")
	require.NoError(t, err)
	assert.Equal(t, firstStamp, *rv.ApprovedAt)
}

func TestApprovedSummary(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)

	yes := true
	for _, rating := range []int{5, 4, 3} {
		rv, err := svc.Submit(context.Background(), SubmitRequest{PatientName: "P", Rating: rating})
		require.NoError(t, err)
		if rating >= 4 {
			_, err = svc.Moderate(context.Background(), rv.ID, ModerateRequest{IsApproved: &yes}, "", "")
			require.NoError(t, err)
		}
	}

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Total)
	assert.InDelta(t, 4.5, summary.Average, 0.001)
}

func TestModerateMissingReview(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)
	yes := true
	_, err := svc.Moderate(context.Background(), 99, ModerateRequest{IsApproved: &yes}, "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}
