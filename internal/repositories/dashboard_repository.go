package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	dbm "invisifeed/internal/models/db_models"
)

type DashboardRepository interface {
	// KPIs / counts
	CountInvoices(ctx context.Context, ownerID string) (int64, error)
	CountInvoicesInPeriod(ctx context.Context, ownerID string, start, end time.Time) (int64, error)
	CountFeedback(ctx context.Context, ownerID string) (int64, error)
	CountFeedbackInPeriod(ctx context.Context, ownerID string, start, end time.Time) (int64, error)
	CountAnonymousFeedback(ctx context.Context, ownerID string) (int64, error)
	CountCoupons(ctx context.Context, ownerID string, usedOnly bool) (int64, error)

	RatingAverages(ctx context.Context, ownerID string, start, end time.Time) (*RatingAveragesRow, error)

	// Time series
	InvoiceSeries(ctx context.Context, ownerID string, start, end time.Time, interval, tz string) ([]BucketSum, error)
	FeedbackSeries(ctx context.Context, ownerID string, start, end time.Time, interval, tz string) ([]BucketSum, error)
	RatingTrend(ctx context.Context, ownerID string, start, end time.Time, interval, tz string) ([]RatingBucket, error)

	RecentFeedback(ctx context.Context, ownerID string, limit int) ([]RecentFeedbackRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type BucketSum struct {
	Bucket time.Time `gorm:"column:bucket"`
	Sum    int64     `gorm:"column:sum"`
}

type RatingBucket struct {
	Bucket time.Time `gorm:"column:bucket"`
	Avg    float64   `gorm:"column:avg"`
	Count  int64     `gorm:"column:count"`
}

type RatingAveragesRow struct {
	Overall       float64 `gorm:"column:overall"`
	Quality       float64 `gorm:"column:quality"`
	Communication float64 `gorm:"column:communication"`
}

type RecentFeedbackRow struct {
	InvoiceNumber string `gorm:"column:invoice_number"`
	OverallRating int    `gorm:"column:overall_rating"`
	Comment       string `gorm:"column:comment"`
	IsAnonymous   bool   `gorm:"column:is_anonymous"`
	CreatedAt     int64  `gorm:"column:created_at"`
}

// ---------- Helpers ----------
func dateTrunc(interval, tz string, unixColumn string) string {
	// unixColumn holds UNIX seconds; convert to timestamptz before truncating.
	if tz == "" {
		return "date_trunc(?, to_timestamp(" + unixColumn + "))"
	}
	return "date_trunc(?, timezone(?, to_timestamp(" + unixColumn + ")))"
}

func (r *dashboardRepository) seriesArgs(interval, tz string) []interface{} {
	if tz == "" {
		return []interface{}{interval}
	}
	return []interface{}{interval, tz}
}

// ---------- Counts ----------
func (r *dashboardRepository) CountInvoices(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Invoice{}).
		Where("owner_id = ?", ownerID).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountInvoicesInPeriod(ctx context.Context, ownerID string, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Invoice{}).
		Where("owner_id = ?", ownerID).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountFeedback(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Feedback{}).
		Where("owner_id = ?", ownerID).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountFeedbackInPeriod(ctx context.Context, ownerID string, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Feedback{}).
		Where("owner_id = ?", ownerID).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountAnonymousFeedback(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Feedback{}).
		Where("owner_id = ? AND is_anonymous = TRUE", ownerID).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountCoupons(ctx context.Context, ownerID string, usedOnly bool) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).
		Table("coupons c").
		Joins("JOIN invoices i ON i.id = c.invoice_id").
		Where("i.owner_id = ?", ownerID).
		Where("c.deleted_at IS NULL")
	if usedOnly {
		tx = tx.Where("c.is_used = TRUE")
	}
	err := tx.Count(&n).Error
	return n, err
}

func (r *dashboardRepository) RatingAverages(ctx context.Context, ownerID string, start, end time.Time) (*RatingAveragesRow, error) {
	var row RatingAveragesRow
	err := r.db.WithContext(ctx).
		Model(&dbm.Feedback{}).
		Select(`COALESCE(AVG(overall_rating), 0) AS overall,
		        COALESCE(AVG(NULLIF(quality_rating, 0)), 0) AS quality,
		        COALESCE(AVG(NULLIF(communication_rating, 0)), 0) AS communication`).
		Where("owner_id = ?", ownerID).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ---------- Series ----------
func (r *dashboardRepository) InvoiceSeries(ctx context.Context, ownerID string, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	var rows []BucketSum
	truncExpr := dateTrunc(interval, tz, "created_at")
	tx := r.db.WithContext(ctx).
		Table("invoices").
		Select(truncExpr+" AS bucket, COUNT(*) AS sum", r.seriesArgs(interval, tz)...).
		Where("owner_id = ?", ownerID).
		Where("deleted_at IS NULL").
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Group("bucket").
		Order("bucket ASC")
	err := tx.Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) FeedbackSeries(ctx context.Context, ownerID string, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	var rows []BucketSum
	truncExpr := dateTrunc(interval, tz, "created_at")
	tx := r.db.WithContext(ctx).
		Table("feedbacks").
		Select(truncExpr+" AS bucket, COUNT(*) AS sum", r.seriesArgs(interval, tz)...).
		Where("owner_id = ?", ownerID).
		Where("deleted_at IS NULL").
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Group("bucket").
		Order("bucket ASC")
	err := tx.Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) RatingTrend(ctx context.Context, ownerID string, start, end time.Time, interval, tz string) ([]RatingBucket, error) {
	var rows []RatingBucket
	truncExpr := dateTrunc(interval, tz, "created_at")
	tx := r.db.WithContext(ctx).
		Table("feedbacks").
		Select(truncExpr+" AS bucket, AVG(overall_rating) AS avg, COUNT(*) AS count", r.seriesArgs(interval, tz)...).
		Where("owner_id = ?", ownerID).
		Where("deleted_at IS NULL").
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Group("bucket").
		Order("bucket ASC")
	err := tx.Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) RecentFeedback(ctx context.Context, ownerID string, limit int) ([]RecentFeedbackRow, error) {
	var rows []RecentFeedbackRow
	err := r.db.WithContext(ctx).
		Table("feedbacks f").
		Select(`i.invoice_number, f.overall_rating, f.comment, f.is_anonymous, f.created_at`).
		Joins("JOIN invoices i ON i.id = f.invoice_id").
		Where("f.owner_id = ?", ownerID).
		Where("f.deleted_at IS NULL").
		Order("f.created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
