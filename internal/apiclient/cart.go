package apiclient

import (
	"context"
	"fmt"

	"github.com/nguyentranbao-ct/storefront-core/internal/models"
)

// GetCart fetches the full server cart for the authenticated session.
func (c *Client) GetCart(ctx context.Context) ([]models.CartLine, error) {
	raw, err := c.getList(ctx, "/cart/", nil)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	results, err := DecodeResults[models.CartLine](raw)
	if err != nil {
		return nil, err
	}
	return results.Items, nil
}

func (c *Client) AddToCart(ctx context.Context, productID models.ID, quantity int) error {
	body := models.AddToCartRequest{
		Product:  productID,
		Quantity: quantity,
	}
	return c.post(ctx, "/cart/", body, nil)
}

func (c *Client) UpdateCartLine(ctx context.Context, lineID models.ID, quantity int) error {
	body := models.UpdateQuantityRequest{Quantity: quantity}
	return c.post(ctx, fmt.Sprintf("/cart/%s/update_quantity/", lineID), body, nil)
}

func (c *Client) RemoveCartLine(ctx context.Context, lineID models.ID) error {
	return c.delete(ctx, fmt.Sprintf("/cart/%s/", lineID))
}

// CartTotal returns the server-side aggregate. The stores never rely on it;
// derived pricing is always computed locally.
func (c *Client) CartTotal(ctx context.Context) (*models.CartTotal, error) {
	var total models.CartTotal
	if err := c.get(ctx, "/cart/total/", nil, &total); err != nil {
		return nil, fmt.Errorf("cart total: %w", err)
	}
	return &total, nil
}
