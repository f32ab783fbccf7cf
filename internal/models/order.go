package models

import "time"

type Order struct {
	ID        ID          `json:"id"`
	Status    string      `json:"status"`
	Items     []OrderItem `json:"items"`
	Total     Money       `json:"total"`
	CreatedAt time.Time   `json:"created_at,omitempty"`
}

type OrderItem struct {
	ID       ID       `json:"id"`
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
	Price    Money    `json:"price"`
}

// OrderRequest is the checkout payload for creating an order from the
// current cart. Address fields are required client-side before the request
// is issued.
type OrderRequest struct {
	Email          string `json:"email" validate:"required,email"`
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Address        string `json:"address" validate:"required"`
	City           string `json:"city" validate:"required"`
	PostalCode     string `json:"postal_code" validate:"required"`
	Country        string `json:"country" validate:"required"`
	ShippingMethod string `json:"shipping_method" validate:"required"`
}

type WishlistItem struct {
	ID        ID        `json:"id"`
	Product   *Product  `json:"product"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ShippingMethod is one of the checkout delivery options.
type ShippingMethod struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         Money  `json:"price"`
	EstimatedDays string `json:"estimated_days"`
}
