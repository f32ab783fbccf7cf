package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nguyentranbao-ct/storefront-core/internal/config"
	"github.com/nguyentranbao-ct/storefront-core/internal/models"
)

func defaultCalculator() *Calculator {
	return NewCalculator(&config.PricingConfig{
		FreeShippingThreshold: 50,
		TaxRate:               0.08,
	})
}

func linesWithSubtotal(subtotal float64) []models.CartLine {
	return []models.CartLine{
		{
			ID:       "1",
			Product:  &models.Product{ID: "p1", Name: "item", Price: models.Money(subtotal)},
			Quantity: 1,
		},
	}
}

func TestQuoteBelowFreeShippingThreshold(t *testing.T) {
	quote := defaultCalculator().Quote(linesWithSubtotal(40), DefaultMethodID)

	assert.InDelta(t, 40, float64(quote.Subtotal), 1e-9)
	assert.InDelta(t, 5.99, float64(quote.ShippingCost), 1e-9)
	assert.InDelta(t, 3.20, float64(quote.Tax), 1e-9)
	assert.InDelta(t, 49.19, float64(quote.Total), 1e-9)
}

func TestQuoteAboveFreeShippingThreshold(t *testing.T) {
	quote := defaultCalculator().Quote(linesWithSubtotal(60), DefaultMethodID)

	assert.InDelta(t, 60, float64(quote.Subtotal), 1e-9)
	assert.Zero(t, float64(quote.ShippingCost))
	assert.InDelta(t, 4.80, float64(quote.Tax), 1e-9)
	assert.InDelta(t, 64.80, float64(quote.Total), 1e-9)
}

func TestQuoteAtThresholdStillChargesShipping(t *testing.T) {
	// Free shipping requires subtotal strictly above the threshold.
	quote := defaultCalculator().Quote(linesWithSubtotal(50), DefaultMethodID)
	assert.InDelta(t, 5.99, float64(quote.ShippingCost), 1e-9)
}

func TestQuoteExpressSurcharge(t *testing.T) {
	quote := defaultCalculator().Quote(linesWithSubtotal(40), "express")
	assert.InDelta(t, 12.99, float64(quote.ShippingCost), 1e-9)
	assert.InDelta(t, 40+12.99+3.20, float64(quote.Total), 1e-9)
}

func TestQuoteTaxAppliesToSubtotalOnly(t *testing.T) {
	quote := defaultCalculator().Quote(linesWithSubtotal(40), "overnight")
	// 24.99 shipping must not be taxed.
	assert.InDelta(t, 40*0.08, float64(quote.Tax), 1e-9)
}

func TestQuoteUnknownMethodFallsBackToStandard(t *testing.T) {
	quote := defaultCalculator().Quote(linesWithSubtotal(10), "carrier-pigeon")
	assert.InDelta(t, 5.99, float64(quote.ShippingCost), 1e-9)
}

func TestQuoteSkipsMissingProductPrice(t *testing.T) {
	lines := []models.CartLine{
		{ID: "1", Product: nil, Quantity: 3},
		{ID: "2", Product: &models.Product{ID: "p", Price: 10}, Quantity: 2},
	}
	quote := defaultCalculator().Quote(lines, DefaultMethodID)
	assert.InDelta(t, 20, float64(quote.Subtotal), 1e-9)
}

func TestMethodByID(t *testing.T) {
	assert.Equal(t, "express", MethodByID("express").ID)
	assert.Equal(t, "standard", MethodByID("nope").ID)
	assert.Len(t, ShippingMethods(), 3)
}
