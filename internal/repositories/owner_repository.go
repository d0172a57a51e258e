package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"invisifeed/internal/models/db_models"
)

type OwnerRepository interface {
	Insert(ctx context.Context, owner *db_models.Owner) error
	FindById(ctx context.Context, id string) (*db_models.Owner, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Owner, error)
	FindByUserName(ctx context.Context, username string) (*db_models.Owner, error)
	Update(ctx context.Context, owner *db_models.Owner) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	// ResetData removes all invoices, coupons and feedback for the owner
	// and zeroes the counters, in one transaction.
	ResetData(ctx context.Context, ownerID string) error
}

type ownerRepository struct {
	db *gorm.DB
}

func NewOwnerRepository(db *gorm.DB) OwnerRepository {
	return &ownerRepository{
		db: db,
	}
}

func (o *ownerRepository) Insert(ctx context.Context, owner *db_models.Owner) error {
	return o.db.WithContext(ctx).Create(owner).Error
}

func (o *ownerRepository) FindById(ctx context.Context, id string) (*db_models.Owner, error) {
	var owner db_models.Owner
	err := o.db.WithContext(ctx).First(&owner, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &owner, nil
}

func (o *ownerRepository) FindByEmail(ctx context.Context, email string) (*db_models.Owner, error) {
	var owner db_models.Owner
	err := o.db.WithContext(ctx).First(&owner, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &owner, nil
}

func (o *ownerRepository) FindByUserName(ctx context.Context, username string) (*db_models.Owner, error) {
	var owner db_models.Owner
	err := o.db.WithContext(ctx).First(&owner, "user_name = ?", username).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &owner, nil
}

func (o *ownerRepository) Update(ctx context.Context, owner *db_models.Owner) error {
	return o.db.WithContext(ctx).Save(owner).Error
}

func (o *ownerRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	return o.db.WithContext(ctx).
		Model(&db_models.Owner{}).
		Where("email = ?", email).
		Update("password_hash", passwordHash).Error
}

func (o *ownerRepository) ResetData(ctx context.Context, ownerID string) error {
	return o.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoiceIDs []string
		if err := tx.Model(&db_models.Invoice{}).
			Where("owner_id = ?", ownerID).
			Pluck("id", &invoiceIDs).Error; err != nil {
			return err
		}

		if len(invoiceIDs) > 0 {
			if err := tx.Where("invoice_id IN ?", invoiceIDs).
				Delete(&db_models.Coupon{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("owner_id = ?", ownerID).
			Delete(&db_models.Feedback{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", ownerID).
			Delete(&db_models.Invoice{}).Error; err != nil {
			return err
		}

		// InvoiceSeq is deliberately left alone so future coupon codes
		// cannot collide with ones already printed on old documents.
		return tx.Model(&db_models.Owner{}).
			Where("id = ?", ownerID).
			Updates(map[string]interface{}{
				"invoice_count":    0,
				"daily_uploads":    0,
				"last_daily_reset": 0,
			}).Error
	})
}
