package assist_fx

import (
	"go.uber.org/fx"

	"invisifeed/internal/services"
)

var Module = fx.Provide(services.NewAssistClient)
