package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invisifeed/internal/models/request_models"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name       string
		items      []request_models.InvoiceItemRequest
		taxRatePct float64
		want       InvoiceTotals
	}{
		{
			name: "single item with discount and tax",
			items: []request_models.InvoiceItemRequest{
				{Description: "Consulting", Quantity: 10, Rate: 100, Discount: 10},
			},
			taxRatePct: 18,
			want: InvoiceTotals{
				Subtotal:      1000,
				DiscountTotal: 100,
				TaxTotal:      162,
				GrandTotal:    1062,
			},
		},
		{
			name: "multiple items mixed discounts",
			items: []request_models.InvoiceItemRequest{
				{Description: "Design", Quantity: 2, Rate: 250, Discount: 0},
				{Description: "Hosting", Quantity: 1, Rate: 500, Discount: 20},
			},
			taxRatePct: 0,
			want: InvoiceTotals{
				Subtotal:      1000,
				DiscountTotal: 100,
				TaxTotal:      0,
				GrandTotal:    900,
			},
		},
		{
			name: "fractional quantity",
			items: []request_models.InvoiceItemRequest{
				{Description: "Hourly", Quantity: 1.5, Rate: 99.99, Discount: 0},
			},
			taxRatePct: 18,
			want: InvoiceTotals{
				Subtotal:      149.985,
				DiscountTotal: 0,
				TaxTotal:      26.9973,
				GrandTotal:    176.9823,
			},
		},
		{
			name:       "no items",
			items:      nil,
			taxRatePct: 18,
			want:       InvoiceTotals{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.items, tt.taxRatePct)
			assert.InDelta(t, tt.want.Subtotal, got.Subtotal, 1e-9)
			assert.InDelta(t, tt.want.DiscountTotal, got.DiscountTotal, 1e-9)
			assert.InDelta(t, tt.want.TaxTotal, got.TaxTotal, 1e-9)
			assert.InDelta(t, tt.want.GrandTotal, got.GrandTotal, 1e-9)
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 176.98, Round2(176.9823))
	assert.Equal(t, 26.97, Round2(26.9673))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 1062.0, Round2(1062))
}
