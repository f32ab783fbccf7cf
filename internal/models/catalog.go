package models

import (
	"strconv"
	"time"
)

type Product struct {
	ID                 ID       `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description,omitempty"`
	Price              Money    `json:"price"`
	OriginalPrice      *Money   `json:"original_price,omitempty"`
	Discount           *float64 `json:"discount,omitempty"`
	DiscountPercentage float64  `json:"discount_percentage,omitempty"`
	Rating             float64  `json:"rating,omitempty"`
	ReviewsCount       int      `json:"reviews_count,omitempty"`
	SKU                string   `json:"sku,omitempty"`
	Category           ID       `json:"category,omitempty"`
	CategoryName       string   `json:"category_name,omitempty"`
	Image              string   `json:"image,omitempty"`
	Stock              int      `json:"stock,omitempty"`
	IsFeatured         bool     `json:"is_featured,omitempty"`
}

type Category struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

type Review struct {
	ID        ID        `json:"id"`
	User      ID        `json:"user"`
	UserName  string    `json:"user_name,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ReviewRequest is the payload of POST /products/{id}/add_review/.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ProductQuery holds the filter, sort and pagination parameters of the
// product listing endpoint. Zero values are omitted from the query string.
type ProductQuery struct {
	Page     int
	PageSize int
	Category ID
	SortBy   string
	Search   string
	MinPrice *float64
	MaxPrice *float64
}

// Params flattens the query into URL parameters.
func (q ProductQuery) Params() map[string]string {
	params := make(map[string]string)
	if q.Page > 0 {
		params["page"] = strconv.Itoa(q.Page)
	}
	if q.PageSize > 0 {
		params["page_size"] = strconv.Itoa(q.PageSize)
	}
	if q.Category != "" {
		params["category"] = q.Category.String()
	}
	if q.SortBy != "" {
		params["sort_by"] = q.SortBy
	}
	if q.Search != "" {
		params["search"] = q.Search
	}
	if q.MinPrice != nil {
		params["min_price"] = strconv.FormatFloat(*q.MinPrice, 'f', -1, 64)
	}
	if q.MaxPrice != nil {
		params["max_price"] = strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64)
	}
	return params
}
