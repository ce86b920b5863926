package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"quickbite/models"
	"quickbite/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.OrderEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e models.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) statuses() []models.OrderStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.OrderStatus, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Status)
	}
	return out
}

type recordingMailer struct {
	sent chan string
}

func (m *recordingMailer) SendOrderConfirmation(to string, order models.Order) error {
	m.sent <- to + " " + order.ID
	return nil
}

type orderFixture struct {
	orders    *OrderService
	carts     *CartService
	repo      *repositories.MemoryOrderRepository
	publisher *recordingPublisher
}

func newOrderFixture(t *testing.T, delays []time.Duration, mailer OrderMailer) *orderFixture {
	t.Helper()
	carts := NewCartService(repositories.NewMemoryCartStore(), testCatalog(), testFees, testServiceFee)
	repo := repositories.NewMemoryOrderRepository()
	publisher := &recordingPublisher{}
	svc := newTestOrderService(t, repo, carts, publisher, mailer, delays)
	return &orderFixture{orders: svc, carts: carts, repo: repo, publisher: publisher}
}

func newTestOrderService(t *testing.T, repo OrderRepository, carts *CartService, publisher OrderEventPublisher, mailer OrderMailer, delays []time.Duration) *OrderService {
	t.Helper()
	svc := NewOrderService(OrderServiceOptions{
		Orders:            repo,
		Carts:             carts,
		Catalog:           testCatalog(),
		Promotions:        newTestPromotionService(),
		Publisher:         publisher,
		Mailer:            mailer,
		DeliveryFee:       testFees,
		ServiceFee:        testServiceFee,
		StatusDelays:      delays,
		EstimatedDelivery: 30 * time.Minute,
	})
	t.Cleanup(svc.Shutdown)
	return svc
}

func slowDelays() []time.Duration {
	return []time.Duration{time.Hour, time.Hour, time.Hour, time.Hour}
}

func (f *orderFixture) fillCart(t *testing.T, owner string) {
	t.Helper()
	_, err := f.carts.AddToCart(context.Background(), owner, "burger", []models.Customization{{Name: "Extra Cheese"}}, 2)
	require.NoError(t, err)
}

func TestCheckoutPlacesPendingOrder(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, slowDelays(), nil)
	f.fillCart(t, "guest-1")

	order, err := f.orders.Checkout(ctx, "guest-1", "", models.CheckoutRequest{DeliveryAddress: "1 Main St"})
	require.NoError(t, err)

	assert.Regexp(t, `^order_\d+_[0-9a-f]{9}$`, order.ID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, "guest-1", order.CustomerID)
	assert.Equal(t, "r1", order.RestaurantID)
	assert.Equal(t, "Burger Palace", order.RestaurantName)
	assert.True(t, dec("23.00").Equal(order.Subtotal))
	assert.True(t, dec("27.49").Equal(order.Total))
	assert.Equal(t, order.CreatedAt.Add(30*time.Minute), order.EstimatedDeliveryTime)
	assert.Equal(t, "1 Main St", order.DeliveryAddress)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "burger", order.Items[0].ID)
	assert.Equal(t, 2, order.Items[0].Quantity)

	cart, err := f.carts.GetCart(ctx, "guest-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)

	stored, err := f.orders.GetOrderByID(ctx, "guest-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, stored.ID)
	assert.Equal(t, []models.OrderStatus{models.StatusPending}, f.publisher.statuses())
}

func TestCheckoutRejectsInvalidCarts(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, slowDelays(), nil)

	_, err := f.orders.Checkout(ctx, "guest-1", "", models.CheckoutRequest{})
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = f.carts.AddToCart(ctx, "guest-1", "fries", nil, 1)
	require.NoError(t, err)
	_, err = f.orders.Checkout(ctx, "guest-1", "", models.CheckoutRequest{})
	assert.ErrorIs(t, err, ErrBelowMinimumOrder)

	_, err = f.carts.AddToCart(ctx, "guest-1", "margherita", nil, 2)
	require.NoError(t, err)
	_, err = f.orders.Checkout(ctx, "guest-1", "", models.CheckoutRequest{})
	assert.ErrorIs(t, err, ErrMixedRestaurants)

	cart, err := f.carts.GetCart(ctx, "guest-1")
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 2)
}

func TestCheckoutWithPromotion(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, slowDelays(), nil)
	f.fillCart(t, "guest-1")

	order, err := f.orders.Checkout(ctx, "guest-1", "", models.CheckoutRequest{PromoCode: "burger20"})
	require.NoError(t, err)
	assert.Equal(t, "BURGER20", order.PromoCode)
	assert.True(t, dec("4.60").Equal(order.Discount))
	assert.True(t, dec("22.89").Equal(order.Total))

	f.fillCart(t, "guest-1")
	_, err = f.orders.Checkout(ctx, "guest-1", "", models.CheckoutRequest{PromoCode: "BURGER20"})
	assert.ErrorIs(t, err, ErrPromotionUsageExhausted)
}

func TestCheckoutSendsConfirmation(t *testing.T) {
	mailer := &recordingMailer{sent: make(chan string, 1)}
	f := newOrderFixture(t, slowDelays(), mailer)
	f.fillCart(t, "user-7")

	order, err := f.orders.Checkout(context.Background(), "user-7", "jane@example.com", models.CheckoutRequest{})
	require.NoError(t, err)

	select {
	case got := <-mailer.sent:
		assert.Equal(t, "jane@example.com "+order.ID, got)
	case <-time.After(time.Second):
		t.Fatal("confirmation was not sent")
	}
}

// addDuringCheckoutStore adds a line from another goroutine the first time
// checkout reads the cart.
type addDuringCheckoutStore struct {
	CartStore
	once  sync.Once
	carts *CartService
	added chan error
}

func (s *addDuringCheckoutStore) Get(ctx context.Context, owner string) (*models.Cart, error) {
	s.once.Do(func() {
		go func() {
			_, err := s.carts.AddToCart(context.Background(), owner, "fries", nil, 1)
			s.added <- err
		}()
	})
	return s.CartStore.Get(ctx, owner)
}

func TestCheckoutKeepsLinesAddedConcurrently(t *testing.T) {
	ctx := context.Background()
	carts := NewCartService(repositories.NewMemoryCartStore(), testCatalog(), testFees, testServiceFee)
	_, err := carts.AddToCart(ctx, "guest-1", "burger", []models.Customization{{Name: "Extra Cheese"}}, 2)
	require.NoError(t, err)

	store := &addDuringCheckoutStore{CartStore: carts.store, carts: carts, added: make(chan error, 1)}
	carts.store = store
	svc := newTestOrderService(t, repositories.NewMemoryOrderRepository(), carts, &recordingPublisher{}, nil, slowDelays())

	order, err := svc.Checkout(ctx, "guest-1", "", models.CheckoutRequest{})
	require.NoError(t, err)
	require.NoError(t, <-store.added)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "burger", order.Items[0].ID)

	cart, err := carts.GetCart(ctx, "guest-1")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "fries", cart.Lines[0].MenuItem.ID)
}

func TestCreateOrderFromItems(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, slowDelays(), nil)

	order, err := f.orders.CreateOrder(ctx, "guest-1", "", models.CreateOrderRequest{
		Items: []models.CreateOrderItem{
			{ID: "burger", Quantity: 1, Customizations: []models.Customization{{Name: "Bacon"}}},
			{ID: "fries", Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.True(t, dec("17.25").Equal(order.Subtotal))
	assert.Len(t, order.Items, 2)

	_, err = f.orders.CreateOrder(ctx, "guest-1", "", models.CreateOrderRequest{
		Items: []models.CreateOrderItem{{ID: "shake", Quantity: 5}},
	})
	assert.ErrorIs(t, err, ErrItemUnavailable)
}

func TestOrdersAreScopedToOwner(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, slowDelays(), nil)
	f.fillCart(t, "guest-1")

	order, err := f.orders.Checkout(ctx, "guest-1", "", models.CheckoutRequest{})
	require.NoError(t, err)

	_, err = f.orders.GetOrderByID(ctx, "guest-2", order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = f.orders.CancelOrder(ctx, "guest-2", order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	others, err := f.orders.GetOrders(ctx, "guest-2")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, slowDelays(), nil)
	f.fillCart(t, "guest-1")

	order, err := f.orders.Checkout(ctx, "guest-1", "", models.CheckoutRequest{})
	require.NoError(t, err)

	cancelled, err := f.orders.CancelOrder(ctx, "guest-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, 0, f.orders.progressor.Pending())

	_, err = f.orders.CancelOrder(ctx, "guest-1", order.ID)
	assert.ErrorIs(t, err, ErrOrderNotCancellable)
}

// racingOrderRepository lets the progression timer win the first guarded
// write by confirming a pending order just before it.
type racingOrderRepository struct {
	*repositories.MemoryOrderRepository
	races int
}

func (r *racingOrderRepository) UpdateStatusGuard(ctx context.Context, id string, from, to models.OrderStatus, at time.Time) (bool, error) {
	if r.races > 0 && from == models.StatusPending {
		r.races--
		if _, err := r.MemoryOrderRepository.UpdateStatusGuard(ctx, id, models.StatusPending, models.StatusConfirmed, at); err != nil {
			return false, err
		}
	}
	return r.MemoryOrderRepository.UpdateStatusGuard(ctx, id, from, to, at)
}

func TestCancelOrderRetriesWhenTimerConfirms(t *testing.T) {
	ctx := context.Background()
	carts := NewCartService(repositories.NewMemoryCartStore(), testCatalog(), testFees, testServiceFee)
	repo := &racingOrderRepository{MemoryOrderRepository: repositories.NewMemoryOrderRepository()}
	svc := newTestOrderService(t, repo, carts, &recordingPublisher{}, nil, slowDelays())

	_, err := carts.AddToCart(ctx, "guest-1", "burger", []models.Customization{{Name: "Extra Cheese"}}, 2)
	require.NoError(t, err)
	order, err := svc.Checkout(ctx, "guest-1", "", models.CheckoutRequest{})
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, order.Status)

	repo.races = 1
	cancelled, err := svc.CancelOrder(ctx, "guest-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Zero(t, repo.races)

	stored, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)
}

func TestStatusOnlyMovesForward(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, slowDelays(), nil)
	f.fillCart(t, "guest-1")

	order, err := f.orders.Checkout(ctx, "guest-1", "", models.CheckoutRequest{})
	require.NoError(t, err)

	moved, err := f.orders.UpdateOrderStatus(ctx, "guest-1", order.ID, models.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, moved.Status)

	_, err = f.orders.UpdateOrderStatus(ctx, "guest-1", order.ID, models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.orders.UpdateOrderStatus(ctx, "guest-1", order.ID, models.StatusCancelled)
	assert.ErrorIs(t, err, ErrOrderNotCancellable)

	_, err = f.orders.UpdateOrderStatus(ctx, "guest-1", order.ID, "teleported")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	done, err := f.orders.UpdateOrderStatus(ctx, "guest-1", order.ID, models.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, done.Status)
	assert.Equal(t, 0, f.orders.progressor.Pending())
}

func TestOrderProgressesToDelivered(t *testing.T) {
	ctx := context.Background()
	delay := 20 * time.Millisecond
	f := newOrderFixture(t, []time.Duration{delay, delay, delay, delay}, nil)
	f.fillCart(t, "guest-1")

	order, err := f.orders.Checkout(ctx, "guest-1", "", models.CheckoutRequest{})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		o, err := f.orders.GetOrderByID(ctx, "guest-1", order.ID)
		return err == nil && o.Status == models.StatusDelivered
	}, 2*time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return len(f.publisher.statuses()) == 5 && f.orders.progressor.Pending() == 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	}, f.publisher.statuses())
}

func TestCancelStopsProgression(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, []time.Duration{30 * time.Millisecond, time.Millisecond, time.Millisecond, time.Millisecond}, nil)
	f.fillCart(t, "guest-1")

	order, err := f.orders.Checkout(ctx, "guest-1", "", models.CheckoutRequest{})
	require.NoError(t, err)
	_, err = f.orders.CancelOrder(ctx, "guest-1", order.ID)
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	o, err := f.orders.GetOrderByID(ctx, "guest-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, o.Status)
}

func TestHubReceivesProgression(t *testing.T) {
	ctx := context.Background()
	delay := 20 * time.Millisecond
	f := newOrderFixture(t, []time.Duration{delay, delay, delay, delay}, nil)
	f.fillCart(t, "guest-1")

	order, err := f.orders.Checkout(ctx, "guest-1", "", models.CheckoutRequest{})
	require.NoError(t, err)

	events, unsubscribe := f.orders.Hub().Subscribe(order.ID)
	defer unsubscribe()

	var seen []models.OrderStatus
	timeout := time.After(2 * time.Second)
	for len(seen) == 0 || seen[len(seen)-1] != models.StatusDelivered {
		select {
		case e := <-events:
			assert.Equal(t, order.ID, e.OrderID)
			seen = append(seen, e.Status)
		case <-timeout:
			t.Fatalf("order did not reach delivered, saw %v", seen)
		}
	}
	assert.Equal(t, models.StatusDelivered, seen[len(seen)-1])
}

func TestReorderAndClear(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, slowDelays(), nil)
	f.fillCart(t, "guest-1")

	order, err := f.orders.Checkout(ctx, "guest-1", "", models.CheckoutRequest{})
	require.NoError(t, err)

	items, err := f.orders.ReorderItems(ctx, "guest-1", order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "r1", items[0].RestaurantID)
	assert.Equal(t, "Extra Cheese", items[0].Customizations[0].Name)

	cart, err := f.orders.AddReorderToCart(ctx, "guest-1", order.ID)
	require.NoError(t, err)
	assert.True(t, dec("23.00").Equal(cart.Subtotal))

	require.NoError(t, f.orders.ClearAllOrders(ctx, "guest-1"))
	orders, err := f.orders.GetOrders(ctx, "guest-1")
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, 0, f.orders.progressor.Pending())
}

func TestComputeOrderStats(t *testing.T) {
	orders := []models.Order{
		{RestaurantName: "Pizza Corner", Status: models.StatusDelivered, Total: dec("20.00")},
		{RestaurantName: "Burger Palace", Status: models.StatusCancelled, Total: dec("10.00")},
		{RestaurantName: "Burger Palace", Status: models.StatusPreparing, Total: dec("15.00")},
		{RestaurantName: "Pizza Corner", Status: models.StatusDelivered, Total: dec("5.50")},
		{RestaurantName: "Sushi Express", Status: models.StatusPending, Total: dec("30.00")},
	}

	stats := computeOrderStats(orders)
	assert.Equal(t, 5, stats.TotalOrders)
	assert.Equal(t, 2, stats.CompletedOrders)
	assert.Equal(t, 1, stats.CancelledOrders)
	assert.Equal(t, 2, stats.ActiveOrders)
	assert.True(t, dec("25.50").Equal(stats.TotalSpent))
	assert.True(t, dec("16.10").Equal(stats.AverageOrderValue))
	require.NotNil(t, stats.FavoriteRestaurant)
	assert.Equal(t, "Pizza Corner", *stats.FavoriteRestaurant)

	empty := computeOrderStats(nil)
	assert.Equal(t, 0, empty.TotalOrders)
	assert.True(t, empty.AverageOrderValue.IsZero())
	assert.Nil(t, empty.FavoriteRestaurant)
}

func TestFilterOrders(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, time.March, d, 12, 0, 0, 0, time.UTC) }
	orders := []models.Order{
		{ID: "c", RestaurantID: "r2", Status: models.StatusDelivered, Total: dec("40"), CreatedAt: day(3)},
		{ID: "b", RestaurantID: "r1", Status: models.StatusCancelled, Total: dec("10"), CreatedAt: day(2)},
		{ID: "a", RestaurantID: "r1", Status: models.StatusDelivered, Total: dec("25"), CreatedAt: day(1)},
	}
	ids := func(os []models.Order) []string {
		out := []string{}
		for _, o := range os {
			out = append(out, o.ID)
		}
		return out
	}
	start, end := day(2), day(3)
	minTotal, maxTotal := dec("20"), decimal.NewFromInt(30)

	tests := []struct {
		name   string
		filter models.OrderFilter
		want   []string
	}{
		{"all", models.OrderFilter{Status: "all"}, []string{"c", "b", "a"}},
		{"status", models.OrderFilter{Status: "delivered"}, []string{"c", "a"}},
		{"restaurant", models.OrderFilter{RestaurantID: "r1"}, []string{"b", "a"}},
		{"date range", models.OrderFilter{StartDate: &start, EndDate: &end}, []string{"c", "b"}},
		{"total range", models.OrderFilter{MinTotal: &minTotal, MaxTotal: &maxTotal}, []string{"a"}},
		{"oldest", models.OrderFilter{SortBy: "oldest"}, []string{"a", "b", "c"}},
		{"total high", models.OrderFilter{SortBy: "total-high"}, []string{"c", "a", "b"}},
		{"total low", models.OrderFilter{SortBy: "total-low"}, []string{"b", "a", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(filterOrders(orders, tt.filter)))
		})
	}
}
