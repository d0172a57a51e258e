package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"invisifeed/internal/repositories"
	"invisifeed/internal/services"
	"invisifeed/pkg/config"
	mem "invisifeed/pkg/memcache"
)

var Module = fx.Provide(
	provideAccountService, provideOwnerRepo, services.NewGSTINVerifier)

func provideOwnerRepo(db *gorm.DB) repositories.OwnerRepository {
	return repositories.NewOwnerRepository(db)
}

func provideAccountService(ownerRepo repositories.OwnerRepository, mailService services.IMailService, memcache mem.ResetTokenStore, gstin services.GSTINVerifier, cfg *config.Config) services.AccountServiceInterface {
	return services.NewAccountService(ownerRepo, mailService, memcache, gstin, []byte(cfg.JWT.Secret))
}
