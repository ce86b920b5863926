package services

import (
	"quickbite/models"

	"github.com/shopspring/decimal"
)

// LineTotal prices one cart line: (unitPrice + sum of customization deltas)
// times quantity, rounded to cents. A customization without a price adds 0.
func LineTotal(unitPrice decimal.Decimal, customizations []models.Customization, quantity int) decimal.Decimal {
	unit := unitPrice
	for _, c := range customizations {
		unit = unit.Add(c.Delta())
	}
	return models.Money(unit.Mul(decimal.NewFromInt(int64(quantity))))
}

func CartSubtotal(lines []models.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.TotalPrice)
	}
	return models.Money(sum)
}

func CartItemCount(lines []models.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// OrderTotals returns subtotal + fees - discount, never below zero.
func OrderTotals(subtotal, deliveryFee, serviceFee, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Add(deliveryFee).Add(serviceFee).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return models.Money(total)
}
