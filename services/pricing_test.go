package services

import (
	"testing"

	"quickbite/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func priced(name, price string) models.Customization {
	p := dec(price)
	return models.Customization{Name: name, Price: &p}
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name           string
		price          string
		customizations []models.Customization
		quantity       int
		want           string
	}{
		{"plain item", "10.00", nil, 1, "10.00"},
		{"quantity multiplies", "4.75", nil, 3, "14.25"},
		{"customization delta per unit", "10.00", []models.Customization{priced("Extra Cheese", "1.50")}, 2, "23.00"},
		{"missing price adds nothing", "10.00", []models.Customization{{Name: "No Pickles"}}, 2, "20.00"},
		{"several deltas", "11.00", []models.Customization{priced("Large", "3.00"), priced("Extra Mozzarella", "1.75")}, 1, "15.75"},
		{"float-unfriendly values", "0.10", []models.Customization{priced("Dip", "0.20")}, 3, "0.90"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineTotal(dec(tt.price), tt.customizations, tt.quantity)
			assert.True(t, dec(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestLineTotalMatchesFormula(t *testing.T) {
	prices := []string{"0", "0.99", "7.25", "12.50"}
	deltas := [][]string{nil, {"0.50"}, {"1.00", "0.25"}}

	for _, p := range prices {
		for _, ds := range deltas {
			for q := 1; q <= 4; q++ {
				var customizations []models.Customization
				unit := dec(p)
				for _, d := range ds {
					customizations = append(customizations, priced("opt", d))
					unit = unit.Add(dec(d))
				}
				want := unit.Mul(decimal.NewFromInt(int64(q)))
				got := LineTotal(dec(p), customizations, q)
				assert.True(t, want.Equal(got), "price %s deltas %v qty %d: want %s got %s", p, ds, q, want, got)
			}
		}
	}
}

func TestCartSubtotalAndItemCount(t *testing.T) {
	lines := []models.CartLine{
		{Quantity: 2, TotalPrice: dec("23.00")},
		{Quantity: 1, TotalPrice: dec("5.25")},
	}

	assert.True(t, dec("28.25").Equal(CartSubtotal(lines)))
	assert.Equal(t, 3, CartItemCount(lines))
	assert.True(t, CartSubtotal(nil).IsZero())
	assert.Equal(t, 0, CartItemCount(nil))
}

func TestOrderTotals(t *testing.T) {
	assert.True(t, dec("27.49").Equal(OrderTotals(dec("23.00"), dec("2.99"), dec("1.50"), decimal.Zero)))
	assert.True(t, dec("22.49").Equal(OrderTotals(dec("23.00"), dec("2.99"), dec("1.50"), dec("5.00"))))
	assert.True(t, OrderTotals(dec("5.00"), dec("0"), dec("0"), dec("10.00")).IsZero())
}
