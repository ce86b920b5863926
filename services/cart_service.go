package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"quickbite/models"
	"quickbite/repositories"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type CartStore interface {
	Get(ctx context.Context, owner string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, owner string) error
}

type CartService struct {
	store       CartStore
	catalog     Catalog
	deliveryFee decimal.Decimal
	serviceFee  decimal.Decimal
	now         func() time.Time

	// serializes read-modify-write cycles on the store
	mu sync.Mutex
}

func NewCartService(store CartStore, catalog Catalog, deliveryFee, serviceFee decimal.Decimal) *CartService {
	return &CartService{
		store:       store,
		catalog:     catalog,
		deliveryFee: deliveryFee,
		serviceFee:  serviceFee,
		now:         time.Now,
	}
}

func (s *CartService) GetCart(ctx context.Context, owner string) (*models.CartView, error) {
	cart, err := s.store.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

// AddToCart always appends a new line, even when an identical item with the
// same customizations is already in the cart.
func (s *CartService) AddToCart(ctx context.Context, owner, menuItemID string, customizations []models.Customization, quantity int) (*models.CartView, error) {
	if quantity < 1 {
		quantity = 1
	}

	item, err := s.availableItem(menuItemID)
	if err != nil {
		return nil, err
	}
	resolved, err := resolveCustomizations(item, customizations)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.store.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	s.appendLine(cart, item, resolved, quantity)

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

// AddReorderToCart puts previously ordered items back into the cart, priced
// from the current catalog.
func (s *CartService) AddReorderToCart(ctx context.Context, owner string, items []models.ReorderItem) (*models.CartView, error) {
	type pending struct {
		item           models.MenuItem
		customizations []models.Customization
		quantity       int
	}
	batch := make([]pending, 0, len(items))
	for _, ri := range items {
		item, err := s.availableItem(ri.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ri.Name, err)
		}
		resolved, err := resolveCustomizations(item, ri.Customizations)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ri.Name, err)
		}
		batch = append(batch, pending{item: item, customizations: resolved, quantity: max(ri.Quantity, 1)})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.store.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	for _, p := range batch {
		s.appendLine(cart, p.item, p.customizations, p.quantity)
	}
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

// UpdateQuantity sets a line's quantity and reprices it. A quantity of zero
// or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, owner, lineID string, quantity int) (*models.CartView, error) {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, owner, lineID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.store.Get(ctx, owner)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Lines {
		line := &cart.Lines[i]
		if line.ID != lineID {
			continue
		}
		line.Quantity = quantity
		line.TotalPrice = LineTotal(line.MenuItem.Price, line.Customizations, quantity)
		found = true
		break
	}
	if !found {
		return nil, ErrCartLineNotFound
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

// RemoveFromCart is a no-op for unknown line ids.
func (s *CartService) RemoveFromCart(ctx context.Context, owner, lineID string) (*models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.store.Get(ctx, owner)
	if err != nil {
		return nil, err
	}

	kept := cart.Lines[:0]
	for _, l := range cart.Lines {
		if l.ID != lineID {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(cart.Lines) {
		return s.view(cart), nil
	}
	cart.Lines = kept

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

func (s *CartService) ClearCart(ctx context.Context, owner string) (*models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, owner); err != nil {
		log.Error().Err(err).Str("owner", owner).Msg("failed to clear cart")
		return nil, err
	}
	return s.view(&models.Cart{Owner: owner, Lines: []models.CartLine{}}), nil
}

func (s *CartService) availableItem(id string) (models.MenuItem, error) {
	item, err := s.catalog.MenuItem(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.MenuItem{}, ErrMenuItemNotFound
	}
	if err != nil {
		return models.MenuItem{}, err
	}
	if !item.IsAvailable {
		return models.MenuItem{}, ErrItemUnavailable
	}
	return item, nil
}

func (s *CartService) appendLine(cart *models.Cart, item models.MenuItem, customizations []models.Customization, quantity int) {
	now := s.now()
	cart.Lines = append(cart.Lines, models.CartLine{
		ID:             uniqueLineID(cart.Lines, item.ID, now),
		MenuItem:       item,
		Customizations: customizations,
		Quantity:       quantity,
		TotalPrice:     LineTotal(item.Price, customizations, quantity),
		AddedAt:        now,
	})
}

func (s *CartService) save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = s.now()
	if err := s.store.Save(ctx, cart); err != nil {
		log.Error().Err(err).Str("owner", cart.Owner).Msg("failed to save cart")
		return err
	}
	return nil
}

// view derives the cart totals. Fees only apply to a non-empty cart.
func (s *CartService) view(cart *models.Cart) *models.CartView {
	lines := cart.Lines
	if lines == nil {
		lines = []models.CartLine{}
	}
	v := &models.CartView{
		Lines:       lines,
		Subtotal:    CartSubtotal(lines),
		ItemCount:   CartItemCount(lines),
		DeliveryFee: decimal.Zero,
		ServiceFee:  decimal.Zero,
		Total:       decimal.Zero,
	}
	if len(lines) > 0 {
		v.DeliveryFee = s.deliveryFee
		v.ServiceFee = s.serviceFee
		v.Total = OrderTotals(v.Subtotal, s.deliveryFee, s.serviceFee, decimal.Zero)
	}
	return v
}

// uniqueLineID builds "<menuItemId>-<unix millis>", bumping the timestamp
// until it no longer collides with a line already in the cart.
func uniqueLineID(lines []models.CartLine, itemID string, at time.Time) string {
	ms := at.UnixMilli()
	for {
		id := fmt.Sprintf("%s-%d", itemID, ms)
		taken := false
		for _, l := range lines {
			if l.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		ms++
	}
}

// resolveCustomizations matches requested options by name against the ones
// the item offers and takes their price from the catalog.
func resolveCustomizations(item models.MenuItem, requested []models.Customization) ([]models.Customization, error) {
	out := make([]models.Customization, 0, len(requested))
	for _, req := range requested {
		matched := false
		for _, offered := range item.Customizations {
			if strings.EqualFold(offered.Name, req.Name) {
				out = append(out, offered)
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("%q: %w", req.Name, ErrUnknownCustomization)
		}
	}
	return out, nil
}

// CheckoutCart hands the owner's stored lines to place and empties the cart
// once place succeeds. The cart stays locked throughout, so lines added
// concurrently are neither ordered nor lost.
func (s *CartService) CheckoutCart(ctx context.Context, owner string, place func(lines []models.CartLine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.store.Get(ctx, owner)
	if err != nil {
		return err
	}
	if err := place(cart.Lines); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, owner); err != nil {
		log.Error().Err(err).Str("owner", owner).Msg("order placed but cart was not cleared")
	}
	return nil
}
