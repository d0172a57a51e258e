package feedback_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"invisifeed/internal/repositories"
	"invisifeed/internal/services"
	"invisifeed/pkg/config"
)

var Module = fx.Provide(
	provideFeedbackService, provideFeedbackRepo)

func provideFeedbackRepo(db *gorm.DB) repositories.FeedbackRepositoryInterface {
	return repositories.NewFeedbackRepository(db)
}

func provideFeedbackService(
	ownerRepo repositories.OwnerRepository,
	invoiceRepo repositories.InvoiceRepository,
	feedbackRepo repositories.FeedbackRepositoryInterface,
	assist services.AssistClient,
	mail services.IMailService,
	cfg *config.Config,
) services.FeedbackServiceInterface {
	return services.NewFeedbackService(ownerRepo, invoiceRepo, feedbackRepo, assist, mail, cfg)
}
