package services

import (
	"context"
	"testing"

	"quickbite/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartPricesCustomizations(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService()

	view, err := svc.AddToCart(ctx, "guest-1", "burger", []models.Customization{{Name: "extra cheese"}}, 2)
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	line := view.Lines[0]
	assert.True(t, dec("23.00").Equal(line.TotalPrice))
	assert.Equal(t, "Extra Cheese", line.Customizations[0].Name)
	assert.True(t, dec("1.50").Equal(line.Customizations[0].Delta()))
	assert.Regexp(t, `^burger-\d+$`, line.ID)

	assert.True(t, dec("23.00").Equal(view.Subtotal))
	assert.Equal(t, 2, view.ItemCount)
	assert.True(t, dec("27.49").Equal(view.Total))
}

func TestAddToCartNeverMerges(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService()

	_, err := svc.AddToCart(ctx, "guest-1", "fries", nil, 1)
	require.NoError(t, err)
	view, err := svc.AddToCart(ctx, "guest-1", "fries", nil, 1)
	require.NoError(t, err)

	require.Len(t, view.Lines, 2)
	assert.NotEqual(t, view.Lines[0].ID, view.Lines[1].ID)
	assert.Equal(t, 2, view.ItemCount)
	assert.True(t, dec("10.50").Equal(view.Subtotal))
}

func TestAddToCartDefaultsQuantity(t *testing.T) {
	view, err := newTestCartService().AddToCart(context.Background(), "guest-1", "fries", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Lines[0].Quantity)
}

func TestAddToCartErrors(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService()

	_, err := svc.AddToCart(ctx, "guest-1", "missing", nil, 1)
	assert.ErrorIs(t, err, ErrMenuItemNotFound)

	_, err = svc.AddToCart(ctx, "guest-1", "shake", nil, 1)
	assert.ErrorIs(t, err, ErrItemUnavailable)

	_, err = svc.AddToCart(ctx, "guest-1", "burger", []models.Customization{{Name: "Truffle"}}, 1)
	assert.ErrorIs(t, err, ErrUnknownCustomization)

	view, err := svc.GetCart(ctx, "guest-1")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService()

	view, err := svc.AddToCart(ctx, "guest-1", "burger", []models.Customization{{Name: "Bacon"}}, 1)
	require.NoError(t, err)
	lineID := view.Lines[0].ID

	view, err = svc.UpdateQuantity(ctx, "guest-1", lineID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Lines[0].Quantity)
	assert.True(t, dec("36.00").Equal(view.Lines[0].TotalPrice))
	assert.Equal(t, 3, view.ItemCount)

	_, err = svc.UpdateQuantity(ctx, "guest-1", "nope", 2)
	assert.ErrorIs(t, err, ErrCartLineNotFound)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService()

	_, err := svc.AddToCart(ctx, "guest-1", "fries", nil, 2)
	require.NoError(t, err)
	view, err := svc.AddToCart(ctx, "guest-1", "burger", nil, 1)
	require.NoError(t, err)
	friesID := view.Lines[0].ID

	view, err = svc.UpdateQuantity(ctx, "guest-1", friesID, 0)
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	assert.Equal(t, "burger", view.Lines[0].MenuItem.ID)
	assert.Equal(t, 1, view.ItemCount)
	assert.True(t, dec("10.00").Equal(view.Subtotal))
}

func TestRemoveFromCartUnknownLineIsNoop(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService()

	_, err := svc.AddToCart(ctx, "guest-1", "fries", nil, 1)
	require.NoError(t, err)

	view, err := svc.RemoveFromCart(ctx, "guest-1", "does-not-exist")
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService()

	_, err := svc.AddToCart(ctx, "guest-1", "fries", nil, 2)
	require.NoError(t, err)

	view, err := svc.ClearCart(ctx, "guest-1")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.True(t, view.Subtotal.IsZero())
	assert.Equal(t, 0, view.ItemCount)
	assert.True(t, view.Total.IsZero())

	view, err = svc.GetCart(ctx, "guest-1")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartsAreIsolatedPerOwner(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService()

	_, err := svc.AddToCart(ctx, "guest-1", "fries", nil, 1)
	require.NoError(t, err)

	view, err := svc.GetCart(ctx, "guest-2")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.True(t, view.DeliveryFee.IsZero())
}

func TestAddReorderToCart(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService()

	view, err := svc.AddReorderToCart(ctx, "guest-1", []models.ReorderItem{
		{ID: "burger", Name: "Classic Burger", Quantity: 2, Customizations: []models.Customization{{Name: "Extra Cheese"}}},
		{ID: "fries", Name: "Loaded Fries", Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)
	assert.True(t, dec("28.25").Equal(view.Subtotal))

	_, err = svc.AddReorderToCart(ctx, "guest-1", []models.ReorderItem{{ID: "shake", Name: "Vanilla Shake", Quantity: 1}})
	assert.ErrorIs(t, err, ErrItemUnavailable)
}

func TestUniqueLineID(t *testing.T) {
	at := fixedTime()
	lines := []models.CartLine{{ID: uniqueLineID(nil, "fries", at)}}
	next := uniqueLineID(lines, "fries", at)

	assert.NotEqual(t, lines[0].ID, next)
	assert.Equal(t, "fries-1700000000001", next)
}
