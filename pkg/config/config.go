package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"invisifeed"`
		Port int    `envconfig:"PORT" default:"8080"`
		// Public base URL embedded into feedback QR codes.
		BaseURL string `envconfig:"APP_URL" default:"http://localhost:8080"`
	}

	DB struct {
		URL string `envconfig:"POSTGRES_URL" required:"true"`
	}

	JWT struct {
		Secret string `envconfig:"JWT_SECRET" required:"true"`
	}

	Limits PlanLimits

	SMTP struct {
		Host     string `envconfig:"SMTP_HOST"`
		Port     int    `envconfig:"SMTP_PORT" default:"587"`
		Username string `envconfig:"SMTP_USERNAME"`
		Password string `envconfig:"SMTP_PASSWORD"`
		From     string `envconfig:"SMTP_FROM"`
		FromName string `envconfig:"SMTP_FROM_NAME" default:"InvisiFeed"`
		UseSSL   bool   `envconfig:"SMTP_USE_SSL" default:"false"`
	}

	Storage struct {
		Endpoint  string `envconfig:"S3_ENDPOINT"`
		AccessKey string `envconfig:"S3_ACCESS_KEY"`
		SecretKey string `envconfig:"S3_SECRET_KEY"`
		Bucket    string `envconfig:"S3_BUCKET" default:"invoices"`
		UseSSL    bool   `envconfig:"S3_USE_SSL" default:"true"`
		// Public URL prefix for uploaded objects, e.g. a CDN origin.
		PublicBaseURL string `envconfig:"S3_PUBLIC_BASE_URL"`
	}

	PayOS struct {
		ClientID    string `envconfig:"PAYOS_CLIENT_ID"`
		ApiKey      string `envconfig:"PAYOS_API_KEY"`
		ChecksumKey string `envconfig:"PAYOS_CHECKSUM_KEY"`
		ReturnURL   string `envconfig:"PAYOS_RETURN_URL"`
		CancelURL   string `envconfig:"PAYOS_CANCEL_URL"`
	}

	AI struct {
		OpenAIKey   string `envconfig:"OPENAI_API_KEY"`
		GeminiKey   string `envconfig:"GEMINI_API_KEY"`
		GeminiModel string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	}

	GSTIN struct {
		VerifyURL string `envconfig:"GSTIN_VERIFY_URL"`
		ApiKey    string `envconfig:"GSTIN_API_KEY"`
	}
}

// PlanLimits hoists the per-plan quotas out of scattered literals so the
// rate limiter and feedback gate take them as explicit inputs.
type PlanLimits struct {
	FreeDailyInvoices  int `envconfig:"FREE_DAILY_INVOICES" default:"3"`
	ProDailyInvoices   int `envconfig:"PRO_DAILY_INVOICES" default:"100"`
	AIAssistPerInvoice int `envconfig:"AI_ASSIST_PER_INVOICE" default:"3"`
}

// DailyInvoiceLimit resolves the quota for a plan name.
func (p PlanLimits) DailyInvoiceLimit(plan string) int {
	switch plan {
	case "pro", "pro-trial":
		return p.ProDailyInvoices
	default:
		return p.FreeDailyInvoices
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
