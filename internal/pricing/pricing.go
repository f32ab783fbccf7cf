// Package pricing derives shipping, tax and order totals from cart
// contents. It holds no state beyond the business rules it was constructed
// with; every quote is recomputed from scratch.
package pricing

import (
	"github.com/nguyentranbao-ct/storefront-core/internal/config"
	"github.com/nguyentranbao-ct/storefront-core/internal/models"
)

// DefaultMethodID is the shipping method assumed when the caller has not
// picked one.
const DefaultMethodID = "standard"

var shippingMethods = []models.ShippingMethod{
	{ID: "standard", Name: "Standard Shipping", Price: 5.99, EstimatedDays: "3-5 business days"},
	{ID: "express", Name: "Express Shipping", Price: 12.99, EstimatedDays: "1-2 business days"},
	{ID: "overnight", Name: "Overnight Shipping", Price: 24.99, EstimatedDays: "Next business day"},
}

// Breakdown is the derived pricing of a cart. Values are full precision;
// rounding happens only at display time via models.Money.Format.
type Breakdown struct {
	Subtotal     models.Money
	ShippingCost models.Money
	Tax          models.Money
	Total        models.Money
}

type Calculator struct {
	freeShippingThreshold float64
	taxRate               float64
}

func NewCalculator(cfg *config.PricingConfig) *Calculator {
	return &Calculator{
		freeShippingThreshold: cfg.FreeShippingThreshold,
		taxRate:               cfg.TaxRate,
	}
}

// Quote prices the given cart lines with the selected shipping method.
// Shipping is free strictly above the threshold; tax applies to the
// subtotal only.
func (c *Calculator) Quote(lines []models.CartLine, methodID string) Breakdown {
	var subtotal float64
	for _, line := range lines {
		subtotal += float64(line.LineTotal())
	}

	shipping := 0.0
	if subtotal <= c.freeShippingThreshold {
		shipping = float64(MethodByID(methodID).Price)
	}

	tax := subtotal * c.taxRate

	return Breakdown{
		Subtotal:     models.Money(subtotal),
		ShippingCost: models.Money(shipping),
		Tax:          models.Money(tax),
		Total:        models.Money(subtotal + shipping + tax),
	}
}

// ShippingMethods lists the available delivery options.
func ShippingMethods() []models.ShippingMethod {
	methods := make([]models.ShippingMethod, len(shippingMethods))
	copy(methods, shippingMethods)
	return methods
}

// MethodByID resolves a shipping method, falling back to standard for
// unknown ids.
func MethodByID(id string) models.ShippingMethod {
	for _, method := range shippingMethods {
		if method.ID == id {
			return method
		}
	}
	return shippingMethods[0]
}
