package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFeedbackURL(t *testing.T) {
	tests := []struct {
		name          string
		baseURL       string
		username      string
		invoiceNumber string
		coupon        string
		want          string
	}{
		{
			name:          "plain",
			baseURL:       "https://app.invisifeed.in",
			username:      "acme",
			invoiceNumber: "INV-001",
			want:          "https://app.invisifeed.in/feedback/acme?invoiceNo=INV-001",
		},
		{
			name:          "trailing slash trimmed",
			baseURL:       "https://app.invisifeed.in/",
			username:      "acme",
			invoiceNumber: "INV-001",
			want:          "https://app.invisifeed.in/feedback/acme?invoiceNo=INV-001",
		},
		{
			name:          "invoice number with reserved chars",
			baseURL:       "https://app.invisifeed.in",
			username:      "acme",
			invoiceNumber: "INV 2025/07&x",
			want:          "https://app.invisifeed.in/feedback/acme?invoiceNo=INV+2025%2F07%26x",
		},
		{
			name:          "username with space",
			baseURL:       "https://app.invisifeed.in",
			username:      "acme corp",
			invoiceNumber: "INV-001",
			want:          "https://app.invisifeed.in/feedback/acme%20corp?invoiceNo=INV-001",
		},
		{
			name:          "coupon token appended",
			baseURL:       "https://app.invisifeed.in",
			username:      "acme",
			invoiceNumber: "INV-001",
			coupon:        "X9K2SAVE1",
			want:          "https://app.invisifeed.in/feedback/acme?invoiceNo=INV-001&cpcd=X9K2SAVE1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildFeedbackURL(tt.baseURL, tt.username, tt.invoiceNumber, tt.coupon)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeQRPNG(t *testing.T) {
	png, err := EncodeQRPNG("https://app.invisifeed.in/feedback/acme?invoiceNo=INV-001")
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
