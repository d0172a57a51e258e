package storage_fx

import (
	"go.uber.org/fx"

	"invisifeed/internal/services"
)

var Module = fx.Provide(services.NewS3Storage)
