package apiclient

import (
	"context"
	"fmt"

	"github.com/nguyentranbao-ct/storefront-core/internal/models"
)

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	raw, err := c.getList(ctx, "/orders/", nil)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	results, err := DecodeResults[models.Order](raw)
	if err != nil {
		return nil, err
	}
	return results.Items, nil
}

func (c *Client) CreateOrder(ctx context.Context, order models.OrderRequest) (*models.Order, error) {
	var created models.Order
	if err := c.post(ctx, "/orders/", order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateOrderFromCart turns the current server cart into an order.
func (c *Client) CreateOrderFromCart(ctx context.Context, order models.OrderRequest) (*models.Order, error) {
	var created models.Order
	if err := c.post(ctx, "/orders/create_from_cart/", order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetWishlist(ctx context.Context) ([]models.WishlistItem, error) {
	raw, err := c.getList(ctx, "/wishlist/", nil)
	if err != nil {
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	results, err := DecodeResults[models.WishlistItem](raw)
	if err != nil {
		return nil, err
	}
	return results.Items, nil
}

func (c *Client) AddToWishlist(ctx context.Context, productID models.ID) error {
	body := map[string]models.ID{"product": productID}
	return c.post(ctx, "/wishlist/", body, nil)
}

func (c *Client) RemoveFromWishlist(ctx context.Context, itemID models.ID) error {
	return c.delete(ctx, fmt.Sprintf("/wishlist/%s/", itemID))
}

// ToggleWishlist adds the product when absent and removes it when present.
func (c *Client) ToggleWishlist(ctx context.Context, productID models.ID) error {
	body := map[string]models.ID{"product_id": productID}
	return c.post(ctx, "/wishlist/toggle/", body, nil)
}
