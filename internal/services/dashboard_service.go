package services

import (
	"context"
	"time"

	resp "invisifeed/internal/models/response_models"
	"invisifeed/internal/repositories"
)

type DashboardService interface {
	BuildDashboard(ctx context.Context, ownerID string, rng resp.TimeRange) (*resp.DashboardReport, error)
}

type dashboardService struct {
	repo repositories.DashboardRepository
}

func NewDashboardService(repo repositories.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

const recentFeedbackLimit = 10

// normalizeRange ensures sane defaults and ordering
func normalizeRange(r resp.TimeRange) resp.TimeRange {
	out := r
	if out.Interval == "" {
		out.Interval = "day"
	}
	if out.End.IsZero() {
		out.End = time.Now().UTC()
	}
	if out.Start.IsZero() {
		out.Start = out.End.AddDate(0, 0, -30) // last 30 days default
	}
	if out.Start.After(out.End) {
		out.Start, out.End = out.End, out.Start
	}
	return out
}

func (s *dashboardService) BuildDashboard(ctx context.Context, ownerID string, rng resp.TimeRange) (*resp.DashboardReport, error) {
	rng = normalizeRange(rng)

	// ---------- Core counts ----------
	totalInvoices, err := s.repo.CountInvoices(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	invoicesInPeriod, err := s.repo.CountInvoicesInPeriod(ctx, ownerID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	totalFeedback, err := s.repo.CountFeedback(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	feedbackInPeriod, err := s.repo.CountFeedbackInPeriod(ctx, ownerID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	anonymousFeedback, err := s.repo.CountAnonymousFeedback(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	couponsIssued, err := s.repo.CountCoupons(ctx, ownerID, false)
	if err != nil {
		return nil, err
	}
	couponsRedeemed, err := s.repo.CountCoupons(ctx, ownerID, true)
	if err != nil {
		return nil, err
	}

	averages, err := s.repo.RatingAverages(ctx, ownerID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	// ---------- Series ----------
	invoiceRows, err := s.repo.InvoiceSeries(ctx, ownerID, rng.Start, rng.End, rng.Interval, rng.Timezone)
	if err != nil {
		return nil, err
	}
	var invoicePoints []resp.SeriesPoint
	for _, r := range invoiceRows {
		invoicePoints = append(invoicePoints, resp.SeriesPoint{Bucket: r.Bucket, Value: r.Sum})
	}

	feedbackRows, err := s.repo.FeedbackSeries(ctx, ownerID, rng.Start, rng.End, rng.Interval, rng.Timezone)
	if err != nil {
		return nil, err
	}
	var feedbackPoints []resp.SeriesPoint
	for _, r := range feedbackRows {
		feedbackPoints = append(feedbackPoints, resp.SeriesPoint{Bucket: r.Bucket, Value: r.Sum})
	}

	trendRows, err := s.repo.RatingTrend(ctx, ownerID, rng.Start, rng.End, rng.Interval, rng.Timezone)
	if err != nil {
		return nil, err
	}
	var trendPoints []resp.RatingPoint
	for _, r := range trendRows {
		trendPoints = append(trendPoints, resp.RatingPoint{Bucket: r.Bucket, Avg: r.Avg, Count: r.Count})
	}

	recentRows, err := s.repo.RecentFeedback(ctx, ownerID, recentFeedbackLimit)
	if err != nil {
		return nil, err
	}
	var recent []resp.RecentFeedbackItem
	for _, r := range recentRows {
		recent = append(recent, resp.RecentFeedbackItem{
			InvoiceNumber: r.InvoiceNumber,
			OverallRating: r.OverallRating,
			Comment:       r.Comment,
			IsAnonymous:   r.IsAnonymous,
			CreatedAt:     r.CreatedAt,
		})
	}

	var feedbackRatio float64
	if totalInvoices > 0 {
		feedbackRatio = float64(totalFeedback) / float64(totalInvoices) * 100
	}

	return &resp.DashboardReport{
		Range: rng,
		KPIs: resp.KPIBlock{
			TotalInvoices:          totalInvoices,
			InvoicesInPeriod:       invoicesInPeriod,
			TotalFeedback:          totalFeedback,
			FeedbackInPeriod:       feedbackInPeriod,
			AnonymousFeedback:      anonymousFeedback,
			CouponsIssued:          couponsIssued,
			CouponsRedeemed:        couponsRedeemed,
			AvgOverallRating:       averages.Overall,
			AvgQualityRating:       averages.Quality,
			AvgCommunicationRating: averages.Communication,
			FeedbackRatioPct:       feedbackRatio,
		},
		Invoices:       resp.CountSeries{Points: invoicePoints},
		Feedback:       resp.CountSeries{Points: feedbackPoints},
		RatingTrend:    resp.RatingSeries{Points: trendPoints},
		RecentFeedback: recent,
	}, nil
}
