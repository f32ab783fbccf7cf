package mockapi

import (
	"github.com/nguyentranbao-ct/storefront-core/internal/models"
	"github.com/nguyentranbao-ct/storefront-core/pkg/util"
)

func seedCategories() []models.Category {
	return []models.Category{
		{ID: "1", Name: "Electronics", Description: "Gadgets and devices"},
		{ID: "2", Name: "Clothing", Description: "Apparel and accessories"},
		{ID: "3", Name: "Books", Description: "Paper and digital reads"},
	}
}

func seedProducts() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Wireless Headphones", Description: "Over-ear, noise cancelling", Price: 89.99, OriginalPrice: util.Ptr(models.Money(119.99)), DiscountPercentage: 25, Rating: 4.5, ReviewsCount: 120, SKU: "ELEC-001", Category: "1", CategoryName: "Electronics", Stock: 34, IsFeatured: true},
		{ID: "2", Name: "Smart Watch", Description: "Fitness tracking, 7 day battery", Price: 149.99, Rating: 4.2, ReviewsCount: 87, SKU: "ELEC-002", Category: "1", CategoryName: "Electronics", Stock: 18, IsFeatured: true},
		{ID: "3", Name: "USB-C Cable", Description: "2m braided cable", Price: 9.99, Rating: 4.8, ReviewsCount: 412, SKU: "ELEC-003", Category: "1", CategoryName: "Electronics", Stock: 240},
		{ID: "4", Name: "Cotton T-Shirt", Description: "Plain crew neck", Price: 14.99, Rating: 3.9, ReviewsCount: 53, SKU: "CLTH-001", Category: "2", CategoryName: "Clothing", Stock: 75},
		{ID: "5", Name: "Denim Jacket", Description: "Classic fit", Price: 59.99, OriginalPrice: util.Ptr(models.Money(79.99)), DiscountPercentage: 25, Rating: 4.1, ReviewsCount: 29, SKU: "CLTH-002", Category: "2", CategoryName: "Clothing", Stock: 12},
		{ID: "6", Name: "Running Shoes", Description: "Lightweight trainers", Price: 74.99, Rating: 4.6, ReviewsCount: 198, SKU: "CLTH-003", Category: "2", CategoryName: "Clothing", Stock: 40, IsFeatured: true},
		{ID: "7", Name: "The Go Programming Language", Description: "Donovan & Kernighan", Price: 39.99, Rating: 4.9, ReviewsCount: 530, SKU: "BOOK-001", Category: "3", CategoryName: "Books", Stock: 60, IsFeatured: true},
		{ID: "8", Name: "Designing Data-Intensive Applications", Description: "Kleppmann", Price: 44.99, Rating: 4.8, ReviewsCount: 441, SKU: "BOOK-002", Category: "3", CategoryName: "Books", Stock: 55},
		{ID: "9", Name: "Notebook Set", Description: "3 ruled notebooks", Price: 7.99, Rating: 4.0, ReviewsCount: 67, SKU: "BOOK-003", Category: "3", CategoryName: "Books", Stock: 300},
		{ID: "10", Name: "Bluetooth Speaker", Description: "Waterproof, 12h playtime", Price: 34.99, Rating: 4.3, ReviewsCount: 156, SKU: "ELEC-004", Category: "1", CategoryName: "Electronics", Stock: 48},
		{ID: "11", Name: "Wool Beanie", Description: "One size", Price: 11.99, Rating: 3.7, ReviewsCount: 21, SKU: "CLTH-004", Category: "2", CategoryName: "Clothing", Stock: 90},
		{ID: "12", Name: "Mechanical Keyboard", Description: "Hot-swappable switches", Price: 99.99, Rating: 4.7, ReviewsCount: 203, SKU: "ELEC-005", Category: "1", CategoryName: "Electronics", Stock: 25},
		{ID: "13", Name: "Linen Shirt", Description: "Summer weight", Price: 29.99, Rating: 4.0, ReviewsCount: 34, SKU: "CLTH-005", Category: "2", CategoryName: "Clothing", Stock: 28},
	}
}
