package payment_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"invisifeed/internal/services"
	"invisifeed/pkg/config"
)

var Module = fx.Provide(providePaymentService)

func providePaymentService(db *gorm.DB, cfg *config.Config) (services.PaymentService, error) {
	return services.NewPaymentService(db, services.PayOSConfig{
		ClientID:    cfg.PayOS.ClientID,
		ApiKey:      cfg.PayOS.ApiKey,
		ChecksumKey: cfg.PayOS.ChecksumKey,
		ReturnURL:   cfg.PayOS.ReturnURL,
		CancelURL:   cfg.PayOS.CancelURL,
	})
}
