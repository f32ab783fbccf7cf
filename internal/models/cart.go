package models

import "time"

// CartLine is one entry in a cart, unique per product. The id is
// server-assigned once the line is persisted remotely; guest lines carry a
// client-generated token with no durability across restarts.
type CartLine struct {
	ID         ID        `json:"id"`
	Product    *Product  `json:"product"`
	Quantity   int       `json:"quantity"`
	TotalPrice Money     `json:"total_price,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// LineTotal derives the line amount from the product price. A missing
// product counts as zero rather than failing.
func (l CartLine) LineTotal() Money {
	if l.Product == nil {
		return 0
	}
	return Money(float64(l.Product.Price) * float64(l.Quantity))
}

// AddToCartRequest is the payload of POST /cart/.
type AddToCartRequest struct {
	Product  ID  `json:"product" validate:"required"`
	Quantity int `json:"quantity" validate:"required,min=1,max=10"`
}

// UpdateQuantityRequest is the payload of POST /cart/{id}/update_quantity/.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=10"`
}

// CartTotal is the server-computed aggregate of GET /cart/total/. The client
// derives pricing locally; this exists for parity with the backend contract.
type CartTotal struct {
	TotalItems int   `json:"total_items"`
	TotalPrice Money `json:"total_price"`
}
