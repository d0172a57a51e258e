package services

import (
	"math"

	"invisifeed/internal/models/request_models"
)

// InvoiceTotals carries the pricing aggregates at full float precision.
// Rounding to two decimals happens only when a value is rendered.
type InvoiceTotals struct {
	Subtotal      float64
	DiscountTotal float64
	TaxTotal      float64
	GrandTotal    float64
}

// ComputeTotals walks the line items once, accumulating the amount and
// per-item discount, then applies the invoice-level tax rate on the
// discounted subtotal.
func ComputeTotals(items []request_models.InvoiceItemRequest, taxRatePct float64) InvoiceTotals {
	var t InvoiceTotals
	for _, it := range items {
		amount := it.Quantity * it.Rate
		t.Subtotal += amount
		t.DiscountTotal += amount * it.Discount / 100
	}
	t.TaxTotal = (t.Subtotal - t.DiscountTotal) * taxRatePct / 100
	t.GrandTotal = t.Subtotal - t.DiscountTotal + t.TaxTotal
	return t
}

// Round2 is the render-time rounding helper; internal arithmetic keeps
// full precision so the subtraction chain does not compound error.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
