package models

import "github.com/shopspring/decimal"

// CurrencyPlaces is the number of decimal places prices are rounded to.
const CurrencyPlaces = 2

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Money rounds d to currency precision.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}
