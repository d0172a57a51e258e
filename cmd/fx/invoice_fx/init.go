package invoice_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"invisifeed/internal/repositories"
	"invisifeed/internal/services"
	"invisifeed/pkg/config"
)

var Module = fx.Provide(
	provideInvoiceService, provideInvoiceRepo, services.NewPDFRenderer)

func provideInvoiceRepo(db *gorm.DB) repositories.InvoiceRepository {
	return repositories.NewInvoiceRepository(db)
}

func provideInvoiceService(
	db *gorm.DB,
	ownerRepo repositories.OwnerRepository,
	invoiceRepo repositories.InvoiceRepository,
	renderer services.PDFRenderer,
	storage services.ObjectStorage,
	cfg *config.Config,
) services.InvoiceServiceInterface {
	return services.NewInvoiceService(db, ownerRepo, invoiceRepo, renderer, storage, cfg)
}
