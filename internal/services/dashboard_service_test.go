package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	resp "invisifeed/internal/models/response_models"
	"invisifeed/internal/repositories"
)

type fakeDashboardRepo struct {
	invoices  int64
	feedback  int64
	anonymous int64
	issued    int64
	redeemed  int64
	averages  repositories.RatingAveragesRow
	buckets   []repositories.BucketSum
	trend     []repositories.RatingBucket
	recent    []repositories.RecentFeedbackRow
}

func (r *fakeDashboardRepo) CountInvoices(context.Context, string) (int64, error) {
	return r.invoices, nil
}

func (r *fakeDashboardRepo) CountInvoicesInPeriod(context.Context, string, time.Time, time.Time) (int64, error) {
	return r.invoices, nil
}

func (r *fakeDashboardRepo) CountFeedback(context.Context, string) (int64, error) {
	return r.feedback, nil
}

func (r *fakeDashboardRepo) CountFeedbackInPeriod(context.Context, string, time.Time, time.Time) (int64, error) {
	return r.feedback, nil
}

func (r *fakeDashboardRepo) CountAnonymousFeedback(context.Context, string) (int64, error) {
	return r.anonymous, nil
}

func (r *fakeDashboardRepo) CountCoupons(_ context.Context, _ string, usedOnly bool) (int64, error) {
	if usedOnly {
		return r.redeemed, nil
	}
	return r.issued, nil
}

func (r *fakeDashboardRepo) RatingAverages(context.Context, string, time.Time, time.Time) (*repositories.RatingAveragesRow, error) {
	return &r.averages, nil
}

func (r *fakeDashboardRepo) InvoiceSeries(context.Context, string, time.Time, time.Time, string, string) ([]repositories.BucketSum, error) {
	return r.buckets, nil
}

func (r *fakeDashboardRepo) FeedbackSeries(context.Context, string, time.Time, time.Time, string, string) ([]repositories.BucketSum, error) {
	return r.buckets, nil
}

func (r *fakeDashboardRepo) RatingTrend(context.Context, string, time.Time, time.Time, string, string) ([]repositories.RatingBucket, error) {
	return r.trend, nil
}

func (r *fakeDashboardRepo) RecentFeedback(context.Context, string, int) ([]repositories.RecentFeedbackRow, error) {
	return r.recent, nil
}

func TestNormalizeRange(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		out := normalizeRange(resp.TimeRange{})
		assert.Equal(t, "day", out.Interval)
		assert.False(t, out.End.IsZero())
		assert.Equal(t, out.End.AddDate(0, 0, -30), out.Start)
	})

	t.Run("swapped bounds reordered", func(t *testing.T) {
		start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		out := normalizeRange(resp.TimeRange{Start: start, End: end, Interval: "week"})
		assert.True(t, out.Start.Before(out.End))
		assert.Equal(t, "week", out.Interval)
	})
}

func TestBuildDashboard(t *testing.T) {
	bucket := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeDashboardRepo{
		invoices:  40,
		feedback:  10,
		anonymous: 4,
		issued:    12,
		redeemed:  5,
		averages:  repositories.RatingAveragesRow{Overall: 4.2, Quality: 4.0, Communication: 4.5},
		buckets:   []repositories.BucketSum{{Bucket: bucket, Sum: 7}},
		trend:     []repositories.RatingBucket{{Bucket: bucket, Avg: 4.2, Count: 7}},
		recent: []repositories.RecentFeedbackRow{
			{InvoiceNumber: "INV-001", OverallRating: 5, Comment: "Great work", CreatedAt: bucket.Unix()},
		},
	}

	svc := NewDashboardService(repo)
	report, err := svc.BuildDashboard(context.Background(), "owner-1", resp.TimeRange{})
	require.NoError(t, err)

	assert.Equal(t, int64(40), report.KPIs.TotalInvoices)
	assert.Equal(t, int64(10), report.KPIs.TotalFeedback)
	assert.Equal(t, int64(4), report.KPIs.AnonymousFeedback)
	assert.Equal(t, int64(12), report.KPIs.CouponsIssued)
	assert.Equal(t, int64(5), report.KPIs.CouponsRedeemed)
	assert.InDelta(t, 4.2, report.KPIs.AvgOverallRating, 1e-9)
	assert.InDelta(t, 25.0, report.KPIs.FeedbackRatioPct, 1e-9)

	require.Len(t, report.Invoices.Points, 1)
	assert.Equal(t, int64(7), report.Invoices.Points[0].Value)
	require.Len(t, report.RatingTrend.Points, 1)
	assert.InDelta(t, 4.2, report.RatingTrend.Points[0].Avg, 1e-9)
	require.Len(t, report.RecentFeedback, 1)
	assert.Equal(t, "INV-001", report.RecentFeedback[0].InvoiceNumber)
}
