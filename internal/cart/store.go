// Package cart holds the authoritative in-memory cart. Guest mutations are
// pure local updates; authenticated mutations go through the backend with a
// wholesale refetch on success and a local fallback on failure, so a user
// action is never silently lost.
package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/carousell/ct-go/pkg/logger"
	"github.com/google/uuid"

	"github.com/nguyentranbao-ct/storefront-core/internal/config"
	"github.com/nguyentranbao-ct/storefront-core/internal/models"
)

const (
	MinLineQuantity = 1
	MaxLineQuantity = 10
)

// API is the slice of the gateway client the store needs.
type API interface {
	GetCart(ctx context.Context) ([]models.CartLine, error)
	AddToCart(ctx context.Context, productID models.ID, quantity int) error
	UpdateCartLine(ctx context.Context, lineID models.ID, quantity int) error
	RemoveCartLine(ctx context.Context, lineID models.ID) error
}

// SessionState is the read-only view of the session provider the store keys
// off. The store never mutates session state.
type SessionState interface {
	Authenticated() bool
	Subscribe(fn func(authenticated bool))
}

type Store interface {
	// AddLine upserts a line for the product: an existing line's quantity
	// is incremented (clamped to MaxLineQuantity), otherwise a new line is
	// appended. Only validation can fail; network errors fall back to the
	// local path.
	AddLine(ctx context.Context, product *models.Product, quantity int) error
	RemoveLine(ctx context.Context, lineID models.ID) error
	UpdateQuantity(ctx context.Context, lineID models.ID, quantity int) error
	// Clear empties the cart. Authenticated carts are cleared line by line
	// against the backend, but the local cart is emptied regardless of
	// individual call outcomes.
	Clear(ctx context.Context)
	// Load fetches the server cart and replaces local state wholesale.
	Load(ctx context.Context) error

	Lines() []models.CartLine
	TotalQuantity() int
	Subtotal() models.Money
}

type store struct {
	mu       sync.Mutex
	api      API
	session  SessionState
	strategy MergeStrategy
	log      *logger.Logger

	lines     []models.CartLine
	byProduct map[models.ID]int
	// epoch fences wholesale state changes: a refetch or fallback issued
	// before a clear/auth transition must not land after it.
	epoch uint64
}

func NewStore(cfg *config.CartConfig, api API, session SessionState) (Store, error) {
	strategy, err := ParseMergeStrategy(cfg.MergeStrategy)
	if err != nil {
		return nil, fmt.Errorf("cart store: %w", err)
	}

	s := &store{
		api:       api,
		session:   session,
		strategy:  strategy,
		log:       logger.MustNamed("cart"),
		byProduct: make(map[models.ID]int),
	}
	session.Subscribe(s.handleAuthChange)
	return s, nil
}

func (s *store) handleAuthChange(authenticated bool) {
	if !authenticated {
		// Logged out: drop everything. The next login loads fresh.
		s.clearLocal()
		return
	}
	s.mergeAndLoad(context.Background())
}

func (s *store) AddLine(ctx context.Context, product *models.Product, quantity int) error {
	if product == nil {
		return models.NewValidationError("product", "required")
	}
	if quantity < MinLineQuantity || quantity > MaxLineQuantity {
		return models.NewValidationError("quantity", fmt.Sprintf("must be between %d and %d", MinLineQuantity, MaxLineQuantity))
	}

	if !s.session.Authenticated() {
		s.upsertLocal(product, quantity, s.currentEpoch())
		return nil
	}

	epoch := s.currentEpoch()
	if err := s.api.AddToCart(ctx, product.ID, quantity); err != nil {
		// Fall back to the local upsert so the action is not lost; the
		// divergence self-heals on the next successful load.
		s.log.Warnw("add to cart failed, applying locally", "product_id", product.ID, "error", err)
		s.upsertLocal(product, quantity, epoch)
		return nil
	}
	if err := s.loadEpoch(ctx, epoch); err != nil {
		s.log.Warnw("cart reload after add failed", "error", err)
	}
	return nil
}

func (s *store) RemoveLine(ctx context.Context, lineID models.ID) error {
	if !s.session.Authenticated() {
		s.removeLocal(lineID, s.currentEpoch())
		return nil
	}

	epoch := s.currentEpoch()
	if err := s.api.RemoveCartLine(ctx, lineID); err != nil {
		s.log.Warnw("remove cart line failed, applying locally", "line_id", lineID, "error", err)
		s.removeLocal(lineID, epoch)
		return nil
	}
	if err := s.loadEpoch(ctx, epoch); err != nil {
		s.log.Warnw("cart reload after remove failed", "error", err)
	}
	return nil
}

func (s *store) UpdateQuantity(ctx context.Context, lineID models.ID, quantity int) error {
	if quantity < MinLineQuantity || quantity > MaxLineQuantity {
		return models.NewValidationError("quantity", fmt.Sprintf("must be between %d and %d", MinLineQuantity, MaxLineQuantity))
	}

	if !s.session.Authenticated() {
		s.updateLocal(lineID, quantity, s.currentEpoch())
		return nil
	}

	epoch := s.currentEpoch()
	if err := s.api.UpdateCartLine(ctx, lineID, quantity); err != nil {
		s.log.Warnw("update quantity failed, applying locally", "line_id", lineID, "error", err)
		s.updateLocal(lineID, quantity, epoch)
		return nil
	}
	if err := s.loadEpoch(ctx, epoch); err != nil {
		s.log.Warnw("cart reload after update failed", "error", err)
	}
	return nil
}

func (s *store) Clear(ctx context.Context) {
	if s.session.Authenticated() {
		// No bulk-clear endpoint; delete line by line and empty the local
		// cart even under partial failure.
		for _, line := range s.Lines() {
			if err := s.api.RemoveCartLine(ctx, line.ID); err != nil {
				s.log.Warnw("clear: remove cart line failed", "line_id", line.ID, "error", err)
			}
		}
	}
	s.clearLocal()
}

func (s *store) Load(ctx context.Context) error {
	return s.loadEpoch(ctx, s.currentEpoch())
}

// loadEpoch refetches the server cart and applies it only if no wholesale
// state change happened since epoch was captured.
func (s *store) loadEpoch(ctx context.Context, epoch uint64) error {
	lines, err := s.api.GetCart(ctx)
	if err != nil {
		s.log.Warnw("load cart failed", "error", err)
		return fmt.Errorf("load cart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		// The cart was cleared (logout or explicit clear) while this fetch
		// was in flight; the response belongs to a previous state.
		s.log.Infow("discarding stale cart response", "epoch", epoch, "current", s.epoch)
		return nil
	}
	s.setLines(lines)
	return nil
}

func (s *store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]models.CartLine, len(s.lines))
	copy(lines, s.lines)
	return lines
}

func (s *store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

func (s *store) Subtotal() models.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	var subtotal float64
	for _, line := range s.lines {
		subtotal += float64(line.LineTotal())
	}
	return models.Money(subtotal)
}

func (s *store) currentEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// setLines replaces the cart wholesale and rebuilds the product index.
// Callers hold the lock.
func (s *store) setLines(lines []models.CartLine) {
	s.lines = lines
	s.byProduct = make(map[models.ID]int, len(lines))
	for i, line := range lines {
		if line.Product != nil {
			s.byProduct[line.Product.ID] = i
		}
	}
}

func (s *store) clearLocal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.setLines(nil)
}

func (s *store) upsertLocal(product *models.Product, quantity int, epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return
	}
	if i, ok := s.byProduct[product.ID]; ok {
		s.lines[i].Quantity = clampQuantity(s.lines[i].Quantity + quantity)
		return
	}
	s.lines = append(s.lines, models.CartLine{
		ID:       models.ID(uuid.NewString()),
		Product:  product,
		Quantity: clampQuantity(quantity),
	})
	s.byProduct[product.ID] = len(s.lines) - 1
}

func (s *store) removeLocal(lineID models.ID, epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return
	}
	kept := s.lines[:0]
	for _, line := range s.lines {
		if line.ID != lineID {
			kept = append(kept, line)
		}
	}
	s.setLines(kept)
}

func (s *store) updateLocal(lineID models.ID, quantity int, epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return
	}
	for i := range s.lines {
		if s.lines[i].ID == lineID {
			s.lines[i].Quantity = quantity
			return
		}
	}
}

func clampQuantity(quantity int) int {
	if quantity > MaxLineQuantity {
		return MaxLineQuantity
	}
	if quantity < MinLineQuantity {
		return MinLineQuantity
	}
	return quantity
}
