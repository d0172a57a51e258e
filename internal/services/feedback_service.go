package services

import (
	"context"
	"fmt"
	"log"
	"time"

	dbm "invisifeed/internal/models/db_models"
	"invisifeed/internal/models/request_models"
	"invisifeed/internal/models/response_models"
	"invisifeed/internal/repositories"
	"invisifeed/pkg/config"
	"invisifeed/pkg/utils"
)

type FeedbackServiceInterface interface {
	GetFeedbackForm(ctx context.Context, username, invoiceNumber string) (*response_models.FeedbackFormResponse, error)
	SubmitFeedback(ctx context.Context, username string, req request_models.SubmitFeedbackRequest) (*response_models.SubmitFeedbackResponse, error)
	AssistFeedback(ctx context.Context, username string, req request_models.AssistFeedbackRequest) (*response_models.AssistFeedbackResponse, error)
	FindSimilar(ctx context.Context, ownerID, query string, limit int) ([]response_models.SimilarFeedbackItem, error)
}

type FeedbackService struct {
	ownerRepo    repositories.OwnerRepository
	invoiceRepo  repositories.InvoiceRepository
	feedbackRepo repositories.FeedbackRepositoryInterface
	assist       AssistClient
	mail         IMailService
	cfg          *config.Config
}

func NewFeedbackService(
	ownerRepo repositories.OwnerRepository,
	invoiceRepo repositories.InvoiceRepository,
	feedbackRepo repositories.FeedbackRepositoryInterface,
	assist AssistClient,
	mail IMailService,
	cfg *config.Config,
) FeedbackServiceInterface {
	return &FeedbackService{
		ownerRepo:    ownerRepo,
		invoiceRepo:  invoiceRepo,
		feedbackRepo: feedbackRepo,
		assist:       assist,
		mail:         mail,
		cfg:          cfg,
	}
}

func (s *FeedbackService) resolveInvoice(ctx context.Context, username, invoiceNumber string) (*dbm.Owner, *dbm.Invoice, error) {
	owner, err := s.ownerRepo.FindByUserName(ctx, username)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if owner == nil {
		return nil, nil, utils.ErrOwnerNotFound
	}

	invoice, err := s.invoiceRepo.FindByOwnerAndNumber(ctx, owner.ID.String(), invoiceNumber)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if invoice == nil {
		return nil, nil, utils.ErrInvalidInvoice
	}

	return owner, invoice, nil
}

func (s *FeedbackService) GetFeedbackForm(ctx context.Context, username, invoiceNumber string) (*response_models.FeedbackFormResponse, error) {
	owner, invoice, err := s.resolveInvoice(ctx, username, invoiceNumber)
	if err != nil {
		return nil, err
	}

	return &response_models.FeedbackFormResponse{
		OrganizationName: owner.OrganizationName,
		InvoiceNumber:    invoice.InvoiceNumber,
		AlreadySubmitted: invoice.IsFeedbackSubmitted,
		HasCoupon:        invoice.Coupon != nil && !invoice.Coupon.IsUsed,
	}, nil
}

// SubmitFeedback accepts exactly one submission per invoice and closes it.
// A valid coupon token revealed alongside the first submission is marked
// used in the same transaction; an invalid token downgrades to a no-coupon
// success, never a failure.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, username string, req request_models.SubmitFeedbackRequest) (*response_models.SubmitFeedbackResponse, error) {
	owner, invoice, err := s.resolveInvoice(ctx, username, req.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	if invoice.IsFeedbackSubmitted {
		return nil, utils.ErrAlreadySubmitted
	}

	feedback := &dbm.Feedback{
		OwnerID:             owner.ID,
		InvoiceID:           invoice.ID,
		OverallRating:       req.OverallRating,
		QualityRating:       req.QualityRating,
		CommunicationRating: req.CommunicationRating,
		Comment:             req.Comment,
		Suggestions:         req.Suggestions,
		Highlights:          req.Highlights,
		IsAnonymous:         req.IsAnonymous,
	}
	if req.IsAnonymous {
		// The closed state survives; the content does not.
		feedback.Comment = ""
		feedback.Suggestions = ""
	} else if req.Comment != "" && s.assist != nil {
		if vec, embErr := s.assist.Embed(ctx, req.Comment); embErr == nil {
			feedback.Embedding = vec
		} else {
			log.Printf("feedback embedding skipped: %v", embErr)
		}
	}

	redeemCouponID := ""
	if req.CouponCode != "" && invoice.Coupon != nil &&
		utils.CouponRedeemable(invoice.Coupon.Code, req.CouponCode, invoice.Coupon.ExpiresAt, invoice.Coupon.IsUsed, time.Now()) {
		redeemCouponID = invoice.Coupon.ID.String()
	}

	closed, redeemed, err := s.feedbackRepo.RecordSubmission(ctx, feedback, redeemCouponID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !closed {
		// Lost the race to a concurrent duplicate.
		return nil, utils.ErrAlreadySubmitted
	}

	var reveal *response_models.CouponRevealResponse
	switch {
	case redeemed:
		reveal = &response_models.CouponRevealResponse{
			Code:        invoice.Coupon.Code,
			Description: invoice.Coupon.Description,
			ExpiresAt:   invoice.Coupon.ExpiresAt,
		}
	case req.CouponCode != "":
		// Mismatched token, or the coupon was retired between the read
		// and the write. Non-fatal: the submission still counts.
		log.Printf("%v for invoice %s", utils.ErrCouponRedemption, invoice.InvoiceNumber)
	}

	if s.mail != nil && owner.Email != "" {
		go func(email, invoiceNumber string, rating int) {
			if mailErr := s.mail.SendFeedbackNotification(email, invoiceNumber, rating); mailErr != nil {
				log.Printf("feedback notification mail to %s skipped: %v", email, mailErr)
			}
		}(owner.Email, invoice.InvoiceNumber, req.OverallRating)
	}

	return &response_models.SubmitFeedbackResponse{Coupon: reveal}, nil
}

// AssistFeedback gates AI drafting help behind the per-invoice counter.
// The counter is consumed with a conditional increment so concurrent calls
// cannot exceed the cap.
func (s *FeedbackService) AssistFeedback(ctx context.Context, username string, req request_models.AssistFeedbackRequest) (*response_models.AssistFeedbackResponse, error) {
	_, invoice, err := s.resolveInvoice(ctx, username, req.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	if invoice.IsFeedbackSubmitted {
		return nil, utils.ErrAlreadySubmitted
	}

	maxUses := s.cfg.Limits.AIAssistPerInvoice
	granted, err := s.invoiceRepo.ConsumeAssistUse(ctx, invoice.ID.String(), maxUses)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if !granted {
		return nil, utils.ErrAIAssistLimit
	}

	draft, err := s.assist.ImproveDraft(ctx, req.Draft, req.Tone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}

	remaining := maxUses - invoice.AIUseCount - 1
	if remaining < 0 {
		remaining = 0
	}
	return &response_models.AssistFeedbackResponse{
		Draft:         draft,
		UsesRemaining: remaining,
	}, nil
}

func (s *FeedbackService) FindSimilar(ctx context.Context, ownerID, query string, limit int) ([]response_models.SimilarFeedbackItem, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	vec, err := s.assist.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}

	rows, err := s.feedbackRepo.ListSimilar(ctx, ownerID, vec, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	items := make([]response_models.SimilarFeedbackItem, 0, len(rows))
	for _, row := range rows {
		invoiceNumber := ""
		if inv, invErr := s.invoiceRepo.FindNumberByID(ctx, row.InvoiceID); invErr == nil {
			invoiceNumber = inv
		}
		items = append(items, response_models.SimilarFeedbackItem{
			InvoiceNumber: invoiceNumber,
			Comment:       row.Comment,
			OverallRating: row.OverallRating,
			Distance:      row.Distance,
		})
	}
	return items, nil
}
