package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbm "invisifeed/internal/models/db_models"
	"invisifeed/internal/models/request_models"
	"invisifeed/internal/models/response_models"
	"invisifeed/internal/repositories"
	"invisifeed/pkg/config"
	"invisifeed/pkg/utils"
)

type InvoiceServiceInterface interface {
	CreateInvoice(ctx context.Context, ownerID string, req request_models.CreateInvoiceRequest) (*response_models.CreateInvoiceResponse, error)
	GetUploadCount(ctx context.Context, ownerID string) (*response_models.UploadCountResponse, error)
	ListInvoices(ctx context.Context, ownerID string, page, pageSize int) ([]response_models.InvoiceSummary, error)
	DeleteCoupon(ctx context.Context, ownerID, invoiceNumber string) error
	ResetData(ctx context.Context, ownerID string) error
}

type InvoiceService struct {
	db          *gorm.DB
	ownerRepo   repositories.OwnerRepository
	invoiceRepo repositories.InvoiceRepository
	renderer    PDFRenderer
	storage     ObjectStorage
	cfg         *config.Config
}

func NewInvoiceService(
	db *gorm.DB,
	ownerRepo repositories.OwnerRepository,
	invoiceRepo repositories.InvoiceRepository,
	renderer PDFRenderer,
	storage ObjectStorage,
	cfg *config.Config,
) InvoiceServiceInterface {
	return &InvoiceService{
		db:          db,
		ownerRepo:   ownerRepo,
		invoiceRepo: invoiceRepo,
		renderer:    renderer,
		storage:     storage,
		cfg:         cfg,
	}
}

// CreateInvoice runs the whole creation sequence under a per-owner row lock
// so concurrent requests cannot over-admit past the daily quota or collide
// on the coupon ordinal. Render and upload happen inside the same scope; if
// the final save fails after the upload succeeded, the uploaded object is
// orphaned and a reconciliation log entry is emitted.
func (s *InvoiceService) CreateInvoice(ctx context.Context, ownerID string, req request_models.CreateInvoiceRequest) (*response_models.CreateInvoiceResponse, error) {
	now := time.Now()
	var resp response_models.CreateInvoiceResponse
	var uploadedKey string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner dbm.Owner
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&owner, "id = ?", ownerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrOwnerNotFound
			}
			return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}

		limit := s.cfg.Limits.DailyInvoiceLimit(string(owner.PlanName))
		if rle := reserveDailySlot(&owner, now, limit); rle != nil {
			return rle
		}

		invoiceNumber := req.InvoiceNumber
		if invoiceNumber == "" {
			invoiceNumber = fmt.Sprintf("INV-%d", now.UnixMilli())
		}

		var dup int64
		if err := tx.Model(&dbm.Invoice{}).
			Where("owner_id = ? AND invoice_number = ?", owner.ID, invoiceNumber).
			Count(&dup).Error; err != nil {
			return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if dup > 0 {
			return utils.ErrDuplicateInvoiceId
		}

		// Every invoice consumes one ordinal; coupon forms are derived
		// before the append so the code embedded into the QR matches the
		// one persisted with the invoice.
		owner.InvoiceSeq++
		var coupon *dbm.Coupon
		var qrCouponForm string
		if req.AddCoupon && req.Coupon != nil {
			code, err := utils.DeriveCouponCode(req.Coupon.Code, owner.InvoiceSeq)
			if err != nil {
				return err
			}
			qrCouponForm = code.QRForm
			coupon = &dbm.Coupon{
				Code:        code.DBForm,
				Description: req.Coupon.Description,
				ExpiresAt:   utils.CouponExpiry(now, req.Coupon.ExpiryDays),
			}
		}

		totals := ComputeTotals(req.Items, req.TaxRate)

		var qrPNG []byte
		if req.IncludeFeedbackForm {
			payload := utils.BuildFeedbackURL(s.cfg.App.BaseURL, owner.UserName, invoiceNumber, qrCouponForm)
			png, err := utils.EncodeQRPNG(payload)
			if err != nil {
				return fmt.Errorf("encode feedback qr: %w", err)
			}
			qrPNG = png
		}

		doc := buildDocument(req, invoiceNumber, totals, qrPNG)
		if coupon != nil {
			doc.CouponBanner = fmt.Sprintf("Leave feedback and unlock: %s", req.Coupon.Description)
		}

		pdfBytes, err := s.renderer.Render(doc)
		if err != nil {
			return fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
		}

		key := fmt.Sprintf("%s/%s.pdf", owner.UserName, invoiceNumber)
		url, err := s.storage.UploadPDF(ctx, key, pdfBytes)
		if err != nil {
			return fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
		}
		uploadedKey = key

		meta, _ := json.Marshal(map[string]string{
			"customer_name":  req.CustomerName,
			"customer_email": req.CustomerEmail,
			"business_name":  req.BusinessName,
		})

		invoice := dbm.Invoice{
			OwnerID:       owner.ID,
			InvoiceNumber: invoiceNumber,
			MergedPdfURL:  url,
			Subtotal:      Round2(totals.Subtotal),
			DiscountTotal: Round2(totals.DiscountTotal),
			TaxTotal:      Round2(totals.TaxTotal),
			GrandTotal:    Round2(totals.GrandTotal),
			Metadata:      meta,
			Coupon:        coupon,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}

		if err := tx.Save(&owner).Error; err != nil {
			return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}

		resp = response_models.CreateInvoiceResponse{
			InvoiceNumber: invoiceNumber,
			URL:           url,
		}
		return nil
	})

	if err != nil {
		if uploadedKey != "" {
			// Persist failed after the object landed; flag for cleanup.
			log.Printf("reconcile: orphaned invoice document %q for owner %s: %v", uploadedKey, ownerID, err)
		}
		return nil, err
	}

	return &resp, nil
}

func buildDocument(req request_models.CreateInvoiceRequest, invoiceNumber string, totals InvoiceTotals, qrPNG []byte) InvoiceDocument {
	return InvoiceDocument{
		InvoiceNumber: invoiceNumber,
		InvoiceDate:   req.InvoiceDate,
		DueDate:       req.DueDate,
		PaymentTerms:  req.PaymentTerms,

		BusinessName:    req.BusinessName,
		BusinessEmail:   req.BusinessEmail,
		BusinessPhone:   req.BusinessPhone,
		BusinessAddress: req.BusinessAddress,

		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,

		Items:    req.Items,
		TaxRate:  req.TaxRate,
		Totals:   totals,
		Currency: "INR",

		BankDetails:         req.BankDetails,
		PaymentMethod:       req.PaymentMethod,
		PaymentInstructions: req.PaymentInstructions,
		Notes:               req.Notes,

		QRPNG: qrPNG,
	}
}

func (s *InvoiceService) GetUploadCount(ctx context.Context, ownerID string) (*response_models.UploadCountResponse, error) {
	owner, err := s.ownerRepo.FindById(ctx, ownerID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if owner == nil {
		return nil, utils.ErrOwnerNotFound
	}

	limit := s.cfg.Limits.DailyInvoiceLimit(string(owner.PlanName))
	daily, hoursLeft := remainingQuota(owner, time.Now(), limit)

	return &response_models.UploadCountResponse{
		DailyUploads: daily,
		TimeLeft:     hoursLeft,
		DailyLimit:   limit,
	}, nil
}

func (s *InvoiceService) ListInvoices(ctx context.Context, ownerID string, page, pageSize int) ([]response_models.InvoiceSummary, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	invoices, err := s.invoiceRepo.ListByOwner(ctx, ownerID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	summaries := make([]response_models.InvoiceSummary, 0, len(invoices))
	for _, inv := range invoices {
		summary := response_models.InvoiceSummary{
			ID:                  inv.ID.String(),
			InvoiceNumber:       inv.InvoiceNumber,
			MergedPdfURL:        inv.MergedPdfURL,
			GrandTotal:          inv.GrandTotal,
			Currency:            inv.Currency,
			IsFeedbackSubmitted: inv.IsFeedbackSubmitted,
			CreatedAt:           inv.CreatedAt,
		}
		if inv.Coupon != nil {
			summary.CouponCode = inv.Coupon.Code
			summary.CouponUsed = inv.Coupon.IsUsed
			summary.CouponExpiresAt = inv.Coupon.ExpiresAt
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// DeleteCoupon irreversibly retires an invoice's coupon. The used flag is
// the same one redemption sets, so a retired coupon can never be revealed.
func (s *InvoiceService) DeleteCoupon(ctx context.Context, ownerID, invoiceNumber string) error {
	invoice, err := s.invoiceRepo.FindByOwnerAndNumber(ctx, ownerID, invoiceNumber)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if invoice == nil {
		return utils.ErrInvalidInvoice
	}
	if invoice.Coupon == nil {
		return utils.ErrCouponNotFound
	}

	return s.invoiceRepo.MarkCouponUsed(ctx, invoice.Coupon.ID.String())
}

func (s *InvoiceService) ResetData(ctx context.Context, ownerID string) error {
	owner, err := s.ownerRepo.FindById(ctx, ownerID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if owner == nil {
		return utils.ErrOwnerNotFound
	}

	if err := s.ownerRepo.ResetData(ctx, ownerID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
