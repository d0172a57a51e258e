package config_fx

import (
	"go.uber.org/fx"

	"invisifeed/pkg/config"
)

var Module = fx.Provide(config.Load)
