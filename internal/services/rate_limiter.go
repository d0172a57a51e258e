package services

import (
	"math"
	"time"

	"invisifeed/internal/models/db_models"
	"invisifeed/pkg/utils"
)

// reserveDailySlot applies the daily invoice quota to an owner record that
// the caller holds under a row lock. The 24h window resets before the limit
// check so a legitimately new day is never starved. On success the daily
// and lifetime counters are incremented in place; the caller persists the
// owner as part of its transaction.
func reserveDailySlot(owner *db_models.Owner, now time.Time, dailyLimit int) *utils.RateLimitError {
	hoursSinceReset := now.Sub(time.Unix(owner.LastDailyReset, 0)).Hours()

	if hoursSinceReset >= 24 {
		owner.DailyUploads = 0
		owner.LastDailyReset = now.Unix()
		hoursSinceReset = 0
	}

	if owner.DailyUploads >= dailyLimit {
		return &utils.RateLimitError{
			HoursRemaining: int(math.Ceil(24 - hoursSinceReset)),
		}
	}

	owner.DailyUploads++
	owner.InvoiceCount++
	return nil
}

// remainingQuota reports the state of an owner's daily window without
// consuming a slot, for the upload-count query.
func remainingQuota(owner *db_models.Owner, now time.Time, dailyLimit int) (dailyUploads, hoursLeft int) {
	hoursSinceReset := now.Sub(time.Unix(owner.LastDailyReset, 0)).Hours()
	if hoursSinceReset >= 24 {
		return 0, 0
	}
	if owner.DailyUploads >= dailyLimit {
		return owner.DailyUploads, int(math.Ceil(24 - hoursSinceReset))
	}
	return owner.DailyUploads, 0
}
