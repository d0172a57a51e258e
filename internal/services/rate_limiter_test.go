package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invisifeed/internal/models/db_models"
)

func TestReserveDailySlot_FreshOwner(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	owner := &db_models.Owner{}

	rle := reserveDailySlot(owner, now, 3)
	require.Nil(t, rle)

	assert.Equal(t, 1, owner.DailyUploads)
	assert.Equal(t, int64(1), owner.InvoiceCount)
	assert.Equal(t, now.Unix(), owner.LastDailyReset)
}

func TestReserveDailySlot_LimitReached(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	owner := &db_models.Owner{
		DailyUploads:   3,
		InvoiceCount:   3,
		LastDailyReset: now.Add(-2 * time.Hour).Unix(),
	}

	rle := reserveDailySlot(owner, now, 3)
	require.NotNil(t, rle)

	// 2h into the window leaves 22h; counters untouched.
	assert.Equal(t, 22, rle.HoursRemaining)
	assert.Equal(t, 3, owner.DailyUploads)
	assert.Equal(t, int64(3), owner.InvoiceCount)
}

func TestReserveDailySlot_PartialHourRoundsUp(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	owner := &db_models.Owner{
		DailyUploads:   3,
		LastDailyReset: now.Add(-90 * time.Minute).Unix(),
	}

	rle := reserveDailySlot(owner, now, 3)
	require.NotNil(t, rle)

	// 22.5h remaining reports as 23 whole hours.
	assert.Equal(t, 23, rle.HoursRemaining)
}

func TestReserveDailySlot_WindowResetsAfter24h(t *testing.T) {
	now := time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)
	owner := &db_models.Owner{
		DailyUploads:   3,
		InvoiceCount:   3,
		LastDailyReset: now.Add(-25 * time.Hour).Unix(),
	}

	rle := reserveDailySlot(owner, now, 3)
	require.Nil(t, rle)

	// Stale window cleared, then this request consumed the first slot.
	assert.Equal(t, 1, owner.DailyUploads)
	assert.Equal(t, int64(4), owner.InvoiceCount)
	assert.Equal(t, now.Unix(), owner.LastDailyReset)
}

func TestReserveDailySlot_HigherPlanLimit(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	owner := &db_models.Owner{
		DailyUploads:   3,
		LastDailyReset: now.Add(-time.Hour).Unix(),
	}

	rle := reserveDailySlot(owner, now, 100)
	require.Nil(t, rle)
	assert.Equal(t, 4, owner.DailyUploads)
}

func TestRemainingQuota(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		owner       *db_models.Owner
		limit       int
		wantUploads int
		wantHours   int
	}{
		{
			name:        "slots remain",
			owner:       &db_models.Owner{DailyUploads: 1, LastDailyReset: now.Add(-time.Hour).Unix()},
			limit:       3,
			wantUploads: 1,
			wantHours:   0,
		},
		{
			name:        "limit hit",
			owner:       &db_models.Owner{DailyUploads: 3, LastDailyReset: now.Add(-2 * time.Hour).Unix()},
			limit:       3,
			wantUploads: 3,
			wantHours:   22,
		},
		{
			name:        "stale window reads as empty",
			owner:       &db_models.Owner{DailyUploads: 3, LastDailyReset: now.Add(-25 * time.Hour).Unix()},
			limit:       3,
			wantUploads: 0,
			wantHours:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploads, hours := remainingQuota(tt.owner, now, tt.limit)
			assert.Equal(t, tt.wantUploads, uploads)
			assert.Equal(t, tt.wantHours, hours)
		})
	}
}
