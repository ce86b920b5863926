package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"quickbite/models"
	"quickbite/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByCustomer(ctx context.Context, customerID string) ([]models.Order, error)
	UpdateStatusGuard(ctx context.Context, id string, from, to models.OrderStatus, at time.Time) (bool, error)
	DeleteByCustomer(ctx context.Context, customerID string) error
}

// OrderMailer sends the confirmation for a freshly placed order.
type OrderMailer interface {
	SendOrderConfirmation(to string, order models.Order) error
}

type OrderServiceOptions struct {
	Orders            OrderRepository
	Carts             *CartService
	Catalog           Catalog
	Promotions        *PromotionService
	Hub               *OrderHub
	Publisher         OrderEventPublisher
	Mailer            OrderMailer
	DeliveryFee       decimal.Decimal
	ServiceFee        decimal.Decimal
	StatusDelays      []time.Duration
	EstimatedDelivery time.Duration
}

type OrderService struct {
	orders            OrderRepository
	carts             *CartService
	catalog           Catalog
	promotions        *PromotionService
	hub               *OrderHub
	publisher         OrderEventPublisher
	mailer            OrderMailer
	progressor        *OrderProgressor
	deliveryFee       decimal.Decimal
	serviceFee        decimal.Decimal
	estimatedDelivery time.Duration
	now               func() time.Time
}

func NewOrderService(opts OrderServiceOptions) *OrderService {
	s := &OrderService{
		orders:            opts.Orders,
		carts:             opts.Carts,
		catalog:           opts.Catalog,
		promotions:        opts.Promotions,
		hub:               opts.Hub,
		publisher:         opts.Publisher,
		mailer:            opts.Mailer,
		deliveryFee:       opts.DeliveryFee,
		serviceFee:        opts.ServiceFee,
		estimatedDelivery: opts.EstimatedDelivery,
		now:               time.Now,
	}
	if s.hub == nil {
		s.hub = NewOrderHub()
	}
	if s.publisher == nil {
		s.publisher = NoopPublisher{}
	}
	s.progressor = NewOrderProgressor(opts.Orders, opts.StatusDelays, s.notify)
	return s
}

func (s *OrderService) Hub() *OrderHub { return s.hub }

// Shutdown stops status progression and closes the event publisher.
func (s *OrderService) Shutdown() {
	if n := s.progressor.Pending(); n > 0 {
		log.Info().Int("pending_orders", n).Msg("stopping order progression")
	}
	s.progressor.Stop()
	if err := s.publisher.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close order event publisher")
	}
}

// Checkout turns the owner's cart into a pending order and empties the cart.
func (s *OrderService) Checkout(ctx context.Context, owner, email string, req models.CheckoutRequest) (*models.Order, error) {
	var order *models.Order
	err := s.carts.CheckoutCart(ctx, owner, func(lines []models.CartLine) error {
		placed, err := s.placeOrder(ctx, owner, email, lines, req.DeliveryAddress, req.Notes, req.PromoCode)
		order = placed
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CreateOrder places an order from an explicit item list priced from the
// catalog. The new order always starts as pending.
func (s *OrderService) CreateOrder(ctx context.Context, owner, email string, req models.CreateOrderRequest) (*models.Order, error) {
	now := s.now()
	lines := make([]models.CartLine, 0, len(req.Items))
	for _, in := range req.Items {
		item, err := s.carts.availableItem(in.ID)
		if err != nil {
			return nil, err
		}
		customizations, err := resolveCustomizations(item, in.Customizations)
		if err != nil {
			return nil, err
		}
		quantity := max(in.Quantity, 1)
		lines = append(lines, models.CartLine{
			ID:             uniqueLineID(lines, item.ID, now),
			MenuItem:       item,
			Customizations: customizations,
			Quantity:       quantity,
			TotalPrice:     LineTotal(item.Price, customizations, quantity),
			AddedAt:        now,
		})
	}
	return s.placeOrder(ctx, owner, email, lines, req.DeliveryAddress, req.Notes, req.PromoCode)
}

func (s *OrderService) placeOrder(ctx context.Context, owner, email string, lines []models.CartLine, address, notes, promoCode string) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	restaurantID := lines[0].MenuItem.RestaurantID
	for _, l := range lines[1:] {
		if l.MenuItem.RestaurantID != restaurantID {
			return nil, ErrMixedRestaurants
		}
	}
	restaurant, err := s.catalog.Restaurant(restaurantID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}

	subtotal := CartSubtotal(lines)
	if subtotal.LessThan(restaurant.MinimumOrder) {
		return nil, fmt.Errorf("%w: minimum is $%s", ErrBelowMinimumOrder, restaurant.MinimumOrder.StringFixed(2))
	}

	discount := decimal.Zero
	var promo *models.AppliedPromotion
	if code := strings.TrimSpace(promoCode); code != "" {
		promo, err = s.promotions.Quote(ctx, owner, code, subtotal, restaurantID, s.deliveryFee)
		if err != nil {
			return nil, err
		}
		discount = promo.Discount
	}

	now := s.now()
	order := &models.Order{
		ID:                    newOrderID(now),
		CustomerID:            owner,
		RestaurantID:          restaurant.ID,
		RestaurantName:        restaurant.Name,
		Items:                 snapshotItems(lines),
		Subtotal:              subtotal,
		DeliveryFee:           s.deliveryFee,
		ServiceFee:            s.serviceFee,
		Discount:              discount,
		Total:                 OrderTotals(subtotal, s.deliveryFee, s.serviceFee, discount),
		DeliveryAddress:       address,
		Notes:                 notes,
		Status:                models.StatusPending,
		CreatedAt:             now,
		UpdatedAt:             now,
		EstimatedDeliveryTime: now.Add(s.estimatedDelivery),
	}
	if promo != nil {
		order.PromoCode = promo.Promotion.Code
	}

	if err := s.orders.Create(ctx, order); err != nil {
		log.Error().Err(err).Str("owner", owner).Msg("failed to create order")
		return nil, err
	}
	if promo != nil {
		s.promotions.RecordUsage(ctx, owner, promo.Promotion.Code)
	}

	log.Info().Str("order_id", order.ID).Str("owner", owner).Str("total", order.Total.StringFixed(2)).Msg("order placed")

	s.notify(models.OrderEvent{OrderID: order.ID, CustomerID: owner, Status: order.Status, UpdatedAt: now})
	s.progressor.Start(*order)
	s.sendConfirmation(email, *order)

	return order, nil
}

func (s *OrderService) sendConfirmation(email string, order models.Order) {
	if s.mailer == nil || email == "" {
		return
	}
	go func() {
		if err := s.mailer.SendOrderConfirmation(email, order); err != nil {
			log.Error().Err(err).Str("order_id", order.ID).Msg("failed to send order confirmation")
		}
	}()
}

func (s *OrderService) notify(event models.OrderEvent) {
	s.hub.Broadcast(event)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Error().Err(err).Str("order_id", event.OrderID).Msg("failed to publish order event")
	}
}

// GetOrders lists the owner's orders, newest first.
func (s *OrderService) GetOrders(ctx context.Context, owner string) ([]models.Order, error) {
	return s.orders.FindByCustomer(ctx, owner)
}

func (s *OrderService) GetOrderByID(ctx context.Context, owner, id string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.CustomerID != owner {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateOrderStatus moves an order forward along the status sequence, or
// cancels it while that is still allowed.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, owner, id string, status models.OrderStatus) (*models.Order, error) {
	if status == models.StatusCancelled {
		return s.CancelOrder(ctx, owner, id)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
	}

	order, err := s.GetOrderByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, order.Status, status)
	}

	if err := s.transition(ctx, order, status); err != nil {
		if errors.Is(err, errStatusChanged) {
			return nil, fmt.Errorf("%w: order status changed concurrently", ErrInvalidTransition)
		}
		return nil, err
	}
	if status.Terminal() {
		s.progressor.Forget(id)
	}
	return order, nil
}

// cancelAttempts bounds how often CancelOrder re-reads an order whose status
// moved between the read and the guarded write.
const cancelAttempts = 3

// CancelOrder is only allowed while the order is pending or confirmed. A
// pending order that the progression timer confirms mid-cancel is still
// cancelled.
func (s *OrderService) CancelOrder(ctx context.Context, owner, id string) (*models.Order, error) {
	var order *models.Order
	for attempt := 1; ; attempt++ {
		current, err := s.GetOrderByID(ctx, owner, id)
		if err != nil {
			return nil, err
		}
		if !current.Status.Cancellable() {
			return nil, fmt.Errorf("%w: order is %s", ErrOrderNotCancellable, current.Status)
		}

		err = s.transition(ctx, current, models.StatusCancelled)
		if err == nil {
			order = current
			break
		}
		if !errors.Is(err, errStatusChanged) {
			return nil, err
		}
		if attempt == cancelAttempts {
			return nil, fmt.Errorf("%w: order status changed concurrently", ErrOrderNotCancellable)
		}
	}
	s.progressor.Forget(id)

	log.Info().Str("order_id", id).Str("owner", owner).Msg("order cancelled")
	return order, nil
}

var errStatusChanged = errors.New("order status changed")

func (s *OrderService) transition(ctx context.Context, order *models.Order, to models.OrderStatus) error {
	at := s.now()
	moved, err := s.orders.UpdateStatusGuard(ctx, order.ID, order.Status, to, at)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("order_id", order.ID).Msg("failed to update order status")
		return err
	}
	if !moved {
		return errStatusChanged
	}

	order.Status = to
	order.UpdatedAt = at
	s.notify(models.OrderEvent{OrderID: order.ID, CustomerID: order.CustomerID, Status: to, UpdatedAt: at})
	return nil
}

func (s *OrderService) GetOrderStats(ctx context.Context, owner string) (*models.OrderStats, error) {
	orders, err := s.orders.FindByCustomer(ctx, owner)
	if err != nil {
		return nil, err
	}
	return computeOrderStats(orders), nil
}

// computeOrderStats expects orders newest first; ties for the favourite
// restaurant go to the one ordered from most recently.
func computeOrderStats(orders []models.Order) *models.OrderStats {
	stats := &models.OrderStats{
		TotalOrders:       len(orders),
		TotalSpent:        decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}

	all := decimal.Zero
	counts := map[string]int{}
	var seen []string
	for _, o := range orders {
		all = all.Add(o.Total)
		switch {
		case o.Status == models.StatusDelivered:
			stats.CompletedOrders++
			stats.TotalSpent = stats.TotalSpent.Add(o.Total)
		case o.Status == models.StatusCancelled:
			stats.CancelledOrders++
		case o.Status.Active():
			stats.ActiveOrders++
		}
		if counts[o.RestaurantName] == 0 {
			seen = append(seen, o.RestaurantName)
		}
		counts[o.RestaurantName]++
	}

	stats.TotalSpent = models.Money(stats.TotalSpent)
	if len(orders) > 0 {
		stats.AverageOrderValue = models.Money(all.Div(decimal.NewFromInt(int64(len(orders)))))
		best := seen[0]
		for _, name := range seen[1:] {
			if counts[name] > counts[best] {
				best = name
			}
		}
		stats.FavoriteRestaurant = &best
	}
	return stats
}

func (s *OrderService) FilterOrders(ctx context.Context, owner string, filter models.OrderFilter) ([]models.Order, error) {
	orders, err := s.orders.FindByCustomer(ctx, owner)
	if err != nil {
		return nil, err
	}
	return filterOrders(orders, filter), nil
}

func filterOrders(orders []models.Order, f models.OrderFilter) []models.Order {
	out := []models.Order{}
	for _, o := range orders {
		if f.Status != "" && f.Status != "all" && string(o.Status) != f.Status {
			continue
		}
		if f.RestaurantID != "" && o.RestaurantID != f.RestaurantID {
			continue
		}
		if f.StartDate != nil && o.CreatedAt.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && o.CreatedAt.After(*f.EndDate) {
			continue
		}
		if f.MinTotal != nil && o.Total.LessThan(*f.MinTotal) {
			continue
		}
		if f.MaxTotal != nil && o.Total.GreaterThan(*f.MaxTotal) {
			continue
		}
		out = append(out, o)
	}

	switch f.SortBy {
	case "newest":
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case "oldest":
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	case "total-high":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	case "total-low":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Total.LessThan(out[j].Total) })
	}
	return out
}

// ReorderItems re-expresses an order's items so they can go back into a cart.
func (s *OrderService) ReorderItems(ctx context.Context, owner, id string) ([]models.ReorderItem, error) {
	order, err := s.GetOrderByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	items := make([]models.ReorderItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, models.ReorderItem{
			ID:             it.ID,
			Name:           it.Name,
			Price:          it.Price,
			Quantity:       it.Quantity,
			Customizations: it.Customizations,
			RestaurantID:   order.RestaurantID,
			RestaurantName: order.RestaurantName,
		})
	}
	return items, nil
}

func (s *OrderService) AddReorderToCart(ctx context.Context, owner, id string) (*models.CartView, error) {
	items, err := s.ReorderItems(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return s.carts.AddReorderToCart(ctx, owner, items)
}

// ClearAllOrders drops every order of the owner along with pending timers.
func (s *OrderService) ClearAllOrders(ctx context.Context, owner string) error {
	orders, err := s.orders.FindByCustomer(ctx, owner)
	if err != nil {
		return err
	}
	for _, o := range orders {
		s.progressor.Forget(o.ID)
	}
	return s.orders.DeleteByCustomer(ctx, owner)
}

func snapshotItems(lines []models.CartLine) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			ID:             l.MenuItem.ID,
			Name:           l.MenuItem.Name,
			Price:          l.MenuItem.Price,
			Quantity:       l.Quantity,
			Customizations: append([]models.Customization(nil), l.Customizations...),
			TotalPrice:     l.TotalPrice,
		})
	}
	return items
}

// newOrderID yields "order_<unix millis>_<9 random chars>".
func newOrderID(at time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("order_%d_%s", at.UnixMilli(), suffix)
}
