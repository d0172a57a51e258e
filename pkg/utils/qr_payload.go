package utils

import (
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Pixel width of the QR raster embedded into the invoice document.
const qrImageSize = 256

// BuildFeedbackURL builds the feedback-form URL encoded into an invoice's
// QR code:
//
//	{baseURL}/feedback/{username}?invoiceNo={invoiceNumber}[&cpcd={qrCouponForm}]
//
// Username and invoice number are URL-encoded. The coupon token is appended
// as-is: its alphabet is restricted to A-Z0-9 plus the owner-chosen
// alphanumeric base code, so it never needs escaping.
func BuildFeedbackURL(baseURL, username, invoiceNumber, qrCouponForm string) string {
	u := fmt.Sprintf("%s/feedback/%s?invoiceNo=%s",
		strings.TrimRight(baseURL, "/"),
		url.PathEscape(username),
		url.QueryEscape(invoiceNumber),
	)
	if qrCouponForm != "" {
		u += "&cpcd=" + qrCouponForm
	}
	return u
}

// EncodeQRPNG renders the payload URL into a PNG of fixed width.
func EncodeQRPNG(payload string) ([]byte, error) {
	return qrcode.Encode(payload, qrcode.Medium, qrImageSize)
}
