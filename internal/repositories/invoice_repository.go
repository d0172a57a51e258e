package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"invisifeed/internal/models/db_models"
)

type InvoiceRepository interface {
	FindByOwnerAndNumber(ctx context.Context, ownerID, invoiceNumber string) (*db_models.Invoice, error)
	FindNumberByID(ctx context.Context, invoiceID string) (string, error)
	ListByOwner(ctx context.Context, ownerID string, page, pageSize int) ([]db_models.Invoice, error)
	Update(ctx context.Context, invoice *db_models.Invoice) error
	ConsumeAssistUse(ctx context.Context, invoiceID string, maxUses int) (bool, error)
	FindCouponByInvoice(ctx context.Context, invoiceID string) (*db_models.Coupon, error)
	MarkCouponUsed(ctx context.Context, couponID string) error
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) FindByOwnerAndNumber(ctx context.Context, ownerID, invoiceNumber string) (*db_models.Invoice, error) {
	var invoice db_models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Coupon").
		Where("owner_id = ? AND invoice_number = ?", ownerID, invoiceNumber).
		First(&invoice).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &invoice, nil
}

func (r *invoiceRepository) FindNumberByID(ctx context.Context, invoiceID string) (string, error) {
	var invoice db_models.Invoice
	err := r.db.WithContext(ctx).
		Select("invoice_number").
		First(&invoice, "id = ?", invoiceID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	return invoice.InvoiceNumber, nil
}

func (r *invoiceRepository) ListByOwner(ctx context.Context, ownerID string, page, pageSize int) ([]db_models.Invoice, error) {
	var invoices []db_models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Coupon").
		Where("owner_id = ?", ownerID).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *db_models.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// ConsumeAssistUse increments the invoice's AI counter unless the cap is
// already reached. Reports whether a use was granted.
func (r *invoiceRepository) ConsumeAssistUse(ctx context.Context, invoiceID string, maxUses int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&db_models.Invoice{}).
		Where("id = ? AND ai_use_count < ?", invoiceID, maxUses).
		Update("ai_use_count", gorm.Expr("ai_use_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *invoiceRepository) FindCouponByInvoice(ctx context.Context, invoiceID string) (*db_models.Coupon, error) {
	var coupon db_models.Coupon
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		First(&coupon).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &coupon, nil
}

func (r *invoiceRepository) MarkCouponUsed(ctx context.Context, couponID string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Coupon{}).
		Where("id = ?", couponID).
		Update("is_used", true).Error
}
