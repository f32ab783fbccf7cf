package cart

import (
	"context"
	"fmt"

	"github.com/nguyentranbao-ct/storefront-core/internal/models"
)

// MergeStrategy decides what happens to guest cart lines when the user
// authenticates.
type MergeStrategy string

const (
	// MergeDiscardLocal drops the guest cart and loads the server cart.
	MergeDiscardLocal MergeStrategy = "discard-local"
	// MergeUnionByProduct pushes guest lines into the server cart, summing
	// quantities (clamped) for products present on both sides.
	MergeUnionByProduct MergeStrategy = "union-by-product"
	// MergePreferServer pushes only products the server cart lacks; server
	// quantities win for common products.
	MergePreferServer MergeStrategy = "prefer-server"
)

func ParseMergeStrategy(s string) (MergeStrategy, error) {
	switch MergeStrategy(s) {
	case MergeDiscardLocal, MergeUnionByProduct, MergePreferServer:
		return MergeStrategy(s), nil
	case "":
		return MergeDiscardLocal, nil
	default:
		return "", fmt.Errorf("unknown merge strategy %q", s)
	}
}

// mergeAndLoad runs on the guest-to-authenticated transition: it takes the
// guest lines out of the store, applies the configured merge strategy
// against the server cart, and finishes with a wholesale load.
func (s *store) mergeAndLoad(ctx context.Context) {
	s.mu.Lock()
	guest := s.lines
	s.epoch++
	s.setLines(nil)
	s.mu.Unlock()

	if s.strategy != MergeDiscardLocal && len(guest) > 0 {
		s.pushGuestLines(ctx, guest)
	}

	if err := s.Load(ctx); err != nil {
		s.log.Warnw("cart load on login failed", "error", err)
	}
}

func (s *store) pushGuestLines(ctx context.Context, guest []models.CartLine) {
	server, err := s.api.GetCart(ctx)
	if err != nil {
		s.log.Warnw("merge: fetching server cart failed, guest lines dropped", "error", err)
		return
	}

	byProduct := make(map[models.ID]models.CartLine, len(server))
	for _, line := range server {
		if line.Product != nil {
			byProduct[line.Product.ID] = line
		}
	}

	for _, line := range guest {
		if line.Product == nil {
			continue
		}
		existing, ok := byProduct[line.Product.ID]
		if !ok {
			if err := s.api.AddToCart(ctx, line.Product.ID, line.Quantity); err != nil {
				s.log.Warnw("merge: push guest line failed", "product_id", line.Product.ID, "error", err)
			}
			continue
		}
		if s.strategy != MergeUnionByProduct {
			continue
		}
		merged := clampQuantity(existing.Quantity + line.Quantity)
		if merged == existing.Quantity {
			continue
		}
		if err := s.api.UpdateCartLine(ctx, existing.ID, merged); err != nil {
			s.log.Warnw("merge: update quantity failed", "line_id", existing.ID, "error", err)
		}
	}
}
