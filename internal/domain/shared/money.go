package shared

import "github.com/shopspring/decimal"

// IVARate is the Mexican value added tax applied to quotations
var IVARate = decimal.RequireFromString("0.16")

// MoneyPlaces is the number of decimal places stored for monetary amounts
const MoneyPlaces int32 = 2

// RoundMoney rounds an amount half away from zero to two decimal places
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// LineTotal returns price x quantity
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// WithIVA returns subtotal x 1.16 rounded to cents
func WithIVA(subtotal decimal.Decimal) decimal.Decimal {
	return RoundMoney(subtotal.Mul(decimal.NewFromInt(1).Add(IVARate)))
}
