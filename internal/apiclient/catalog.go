package apiclient

import (
	"context"
	"fmt"

	"github.com/nguyentranbao-ct/storefront-core/internal/models"
)

// ListProducts fetches the product listing with the given filters. The
// result is shape-normalized whether or not the backend paginates.
func (c *Client) ListProducts(ctx context.Context, query models.ProductQuery) (Results[models.Product], error) {
	raw, err := c.getList(ctx, "/products/", query.Params())
	if err != nil {
		return Results[models.Product]{}, fmt.Errorf("list products: %w", err)
	}
	return DecodeResults[models.Product](raw)
}

func (c *Client) GetProduct(ctx context.Context, id models.ID) (*models.Product, error) {
	var product models.Product
	if err := c.get(ctx, fmt.Sprintf("/products/%s/", id), nil, &product); err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &product, nil
}

func (c *Client) FeaturedProducts(ctx context.Context) ([]models.Product, error) {
	raw, err := c.getList(ctx, "/products/featured/", nil)
	if err != nil {
		return nil, fmt.Errorf("featured products: %w", err)
	}
	results, err := DecodeResults[models.Product](raw)
	if err != nil {
		return nil, err
	}
	return results.Items, nil
}

func (c *Client) RelatedProducts(ctx context.Context, productID models.ID) ([]models.Product, error) {
	raw, err := c.getList(ctx, "/products/related/", map[string]string{"product_id": productID.String()})
	if err != nil {
		return nil, fmt.Errorf("related products: %w", err)
	}
	results, err := DecodeResults[models.Product](raw)
	if err != nil {
		return nil, err
	}
	return results.Items, nil
}

func (c *Client) AddProductReview(ctx context.Context, productID models.ID, review models.ReviewRequest) (*models.Review, error) {
	var created models.Review
	if err := c.post(ctx, fmt.Sprintf("/products/%s/add_review/", productID), review, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	raw, err := c.getList(ctx, "/categories/", nil)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	results, err := DecodeResults[models.Category](raw)
	if err != nil {
		return nil, err
	}
	return results.Items, nil
}

func (c *Client) GetCategory(ctx context.Context, id models.ID) (*models.Category, error) {
	var category models.Category
	if err := c.get(ctx, fmt.Sprintf("/categories/%s/", id), nil, &category); err != nil {
		return nil, fmt.Errorf("get category %s: %w", id, err)
	}
	return &category, nil
}

func (c *Client) CategoryProducts(ctx context.Context, categoryID models.ID) ([]models.Product, error) {
	raw, err := c.getList(ctx, fmt.Sprintf("/categories/%s/products/", categoryID), nil)
	if err != nil {
		return nil, fmt.Errorf("category products: %w", err)
	}
	results, err := DecodeResults[models.Product](raw)
	if err != nil {
		return nil, err
	}
	return results.Items, nil
}
