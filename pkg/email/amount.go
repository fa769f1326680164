package email

import (
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbols = map[string]string{
	"gbp": "£",
	"usd": "$",
	"eur": "€",
}

// FormatAmount renders an amount in minor units (pence, cents) as major units
// with two decimals, e.g. 4500 gbp -> "£45.00".
func FormatAmount(minor int64, currency string) string {
	value := decimal.New(minor, -2).StringFixed(2)

	cur := strings.ToLower(currency)
	if sym, ok := currencySymbols[cur]; ok {
		return sym + value
	}
	if cur == "" {
		return value
	}
	return strings.ToUpper(cur) + " " + value
}
