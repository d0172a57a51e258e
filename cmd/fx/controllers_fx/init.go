package controllers_fx

import (
	"go.uber.org/fx"

	"invisifeed/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewInvoiceController),
	fx.Provide(controllers.NewFeedbackController),
	fx.Provide(controllers.NewDashboardController),
	fx.Provide(controllers.NewPaymentController))
