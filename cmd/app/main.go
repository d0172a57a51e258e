package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"invisifeed/cmd/fx/account_fx"
	"invisifeed/cmd/fx/assist_fx"
	"invisifeed/cmd/fx/config_fx"
	"invisifeed/cmd/fx/controllers_fx"
	"invisifeed/cmd/fx/dashboard_fx"
	"invisifeed/cmd/fx/db_fx"
	"invisifeed/cmd/fx/feedback_fx"
	"invisifeed/cmd/fx/invoice_fx"
	"invisifeed/cmd/fx/mail_fx"
	"invisifeed/cmd/fx/memcache_fx"
	"invisifeed/cmd/fx/payment_fx"
	"invisifeed/cmd/fx/storage_fx"
	"invisifeed/internal/api/controllers"
	"invisifeed/pkg/config"
	"invisifeed/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		storage_fx.Module,
		assist_fx.Module,

		account_fx.Module,
		invoice_fx.Module,
		feedback_fx.Module,
		dashboard_fx.Module,
		payment_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				addr := fmt.Sprintf(":%d", cfg.App.Port)
				log.Printf("Starting HTTP server at %s", addr)
				if err := engine.Run(addr); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	accountController *controllers.AccountController,
	invoiceController *controllers.InvoiceController,
	feedbackController *controllers.FeedbackController,
	dashboardController *controllers.DashboardController,
	paymentController *controllers.PaymentController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	auth := middleware.JWTAuthMiddleware([]byte(cfg.JWT.Secret))
	RegisterRoutes(r, auth, accountController, invoiceController, feedbackController, dashboardController, paymentController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	auth gin.HandlerFunc,
	accountController *controllers.AccountController,
	invoiceController *controllers.InvoiceController,
	feedbackController *controllers.FeedbackController,
	dashboardController *controllers.DashboardController,
	paymentController *controllers.PaymentController) {

	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)
	accounts.POST("/forgot-password", accountController.RequestPasswordReset)
	accounts.POST("/verify-otp", accountController.VerifyOtp)
	accounts.POST("/reset-password", accountController.ResetPassword)

	accountsAuth := accounts.Group("", auth)
	accountsAuth.GET("/profile", accountController.GetProfile)
	accountsAuth.PUT("/profile", accountController.UpdateProfile)

	// Public endpoints reached from the QR code on a printed invoice.
	feedback := r.Group("/feedback")
	feedback.GET("/:username", feedbackController.GetFeedbackForm)
	feedback.POST("/:username", feedbackController.SubmitFeedback)
	feedback.POST("/:username/assist", feedbackController.AssistFeedback)

	feedbackAuth := r.Group("/feedback-search", auth)
	feedbackAuth.GET("/similar", feedbackController.FindSimilar)

	invoices := r.Group("/invoices", auth)
	invoices.POST("/create", invoiceController.CreateInvoice)
	invoices.GET("", invoiceController.ListInvoices)
	invoices.GET("/upload-count", invoiceController.GetUploadCount)
	invoices.DELETE("/:invoiceNumber/coupon", invoiceController.DeleteCoupon)
	invoices.POST("/reset", invoiceController.ResetData)

	dashboard := r.Group("/dashboard", auth)
	dashboard.GET("", dashboardController.GetDashboard)

	payments := r.Group("/payments")
	payments.POST("/checkout", auth, paymentController.CreateCheckout)
	payments.POST("/webhook", paymentController.Webhook)
}
