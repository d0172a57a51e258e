package dashboard_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"invisifeed/internal/repositories"
	"invisifeed/internal/services"
)

var Module = fx.Provide(
	provideDashboardService, provideDashboardRepo)

func provideDashboardRepo(db *gorm.DB) repositories.DashboardRepository {
	return repositories.NewDashboardRepository(db)
}

func provideDashboardService(repo repositories.DashboardRepository) services.DashboardService {
	return services.NewDashboardService(repo)
}
