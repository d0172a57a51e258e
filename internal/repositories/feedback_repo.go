package repositories

import (
	"context"
	"errors"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"invisifeed/internal/models/db_models"
)

type FeedbackRepositoryInterface interface {
	CreateFeedback(ctx context.Context, feedback *db_models.Feedback) error
	RecordSubmission(ctx context.Context, feedback *db_models.Feedback, redeemCouponID string) (closed bool, redeemed bool, err error)
	FindByInvoice(ctx context.Context, invoiceID string) (*db_models.Feedback, error)
	ListByOwner(ctx context.Context, ownerID string, page, pageSize int) ([]db_models.Feedback, error)
	ListSimilar(ctx context.Context, ownerID string, vector pgvector.Vector, limit int) ([]SimilarFeedbackRow, error)
}

type SimilarFeedbackRow struct {
	InvoiceID     string
	Comment       string
	OverallRating int
	Distance      float64
}

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) CreateFeedback(ctx context.Context, feedback *db_models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

// RecordSubmission closes the invoice and stores the feedback in one
// transaction. closed=false means another submission already claimed the
// invoice and nothing was written. When redeemCouponID is non-empty the
// coupon is retired in the same transaction; redeemed=false means it was
// no longer live by the time the write ran.
func (r *FeedbackRepository) RecordSubmission(ctx context.Context, feedback *db_models.Feedback, redeemCouponID string) (bool, bool, error) {
	var closed, redeemed bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.Invoice{}).
			Where("id = ? AND is_feedback_submitted = FALSE", feedback.InvoiceID).
			Update("is_feedback_submitted", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		closed = true

		if err := tx.Create(feedback).Error; err != nil {
			return err
		}

		if redeemCouponID != "" {
			res := tx.Model(&db_models.Coupon{}).
				Where("id = ? AND is_used = FALSE", redeemCouponID).
				Update("is_used", true)
			if res.Error != nil {
				return res.Error
			}
			redeemed = res.RowsAffected == 1
		}

		return nil
	})

	return closed, redeemed, err
}

func (r *FeedbackRepository) FindByInvoice(ctx context.Context, invoiceID string) (*db_models.Feedback, error) {
	var feedback db_models.Feedback
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		First(&feedback).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &feedback, nil
}

func (r *FeedbackRepository) ListByOwner(ctx context.Context, ownerID string, page, pageSize int) ([]db_models.Feedback, error) {
	var feedbacks []db_models.Feedback
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Order("created_at DESC").
		Find(&feedbacks).Error
	return feedbacks, err
}

// ListSimilar orders an owner's non-anonymous feedback by cosine distance
// to the query vector. Rows with no stored embedding are skipped.
func (r *FeedbackRepository) ListSimilar(ctx context.Context, ownerID string, vector pgvector.Vector, limit int) ([]SimilarFeedbackRow, error) {
	var rows []SimilarFeedbackRow
	err := r.db.WithContext(ctx).
		Raw(`SELECT f.invoice_id AS invoice_id,
		            f.comment AS comment,
		            f.overall_rating AS overall_rating,
		            f.embedding <=> ? AS distance
		     FROM feedbacks f
		     WHERE f.owner_id = ?
		       AND f.is_anonymous = FALSE
		       AND f.embedding IS NOT NULL
		       AND f.deleted_at IS NULL
		     ORDER BY distance ASC
		     LIMIT ?`, vector, ownerID, limit).
		Scan(&rows).Error
	return rows, err
}
