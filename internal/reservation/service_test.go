package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	Repository
	statuses map[string]Status
	listed   []Filter
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	if _, ok := f.statuses[id]; !ok {
		return ErrNotFound
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	f.listed = append(f.listed, filter)
	return []*Reservation{{ID: "r-1"}}, 1, nil
}

func TestUpdateStatus(t *testing.T) {
	repo := &fakeRepo{statuses: map[string]Status{"r-1": StatusPending}}
	svc := NewService(repo)

	require.NoError(t, svc.UpdateStatus(context.Background(), "r-1", StatusPaid))
	assert.Equal(t, StatusPaid, repo.statuses["r-1"])

	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), "r-1", "confirmed"), ErrInvalidStatus)
	assert.Equal(t, StatusPaid, repo.statuses["r-1"])

	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), "r-2", StatusPaid), ErrNotFound)
}

func TestListValidatesStatuses(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, _, err := svc.List(context.Background(), Filter{Statuses: []Status{StatusPaid, "bogus"}})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Empty(t, repo.listed)

	items, total, err := svc.List(context.Background(), Filter{Statuses: OccupyingStatuses, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, items, 1)
	require.Len(t, repo.listed, 1)
	assert.Equal(t, 10, repo.listed[0].Limit)
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC) }
	r := &Reservation{CheckInDate: day(10), CheckOutDate: day(12)}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"same window", day(10), day(12), true},
		{"ends on arrival", day(8), day(10), false},
		{"starts on departure", day(12), day(14), false},
		{"inside", day(11), day(12), true},
		{"spans", day(1), day(20), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Overlaps(tt.start, tt.end))
		})
	}
}

func TestCoversAndOccupying(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC) }
	r := &Reservation{CheckInDate: day(10), CheckOutDate: day(12)}

	assert.True(t, r.Covers(day(10)))
	assert.True(t, r.Covers(day(11)))
	assert.False(t, r.Covers(day(12)))
	assert.False(t, r.Covers(day(9)))

	assert.True(t, StatusCheckedIn.Occupying())
	assert.False(t, StatusCheckedOut.Occupying())
	assert.False(t, StatusCancelled.Occupying())
}
