// Package format renders prices and dates for templates.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Price formats a decimal amount with two fraction digits and grouping.
// Example: Price(decimal.RequireFromString("1299.5"), "USD") => "$1,299.50"
func Price(amount decimal.Decimal, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	places := int32(2)
	if currency == "JPY" {
		places = 0
	}
	neg := amount.IsNegative()
	s := amount.Abs().StringFixed(places)
	whole, frac, _ := strings.Cut(s, ".")
	body := thousandSep(whole)
	if frac != "" {
		body += "." + frac
	}
	sign := ""
	if neg {
		sign = "-"
	}
	switch currency {
	case "", "USD":
		return sign + "$" + body
	case "JPY":
		return sign + "¥" + body
	default:
		return sign + currency + " " + body
	}
}

// Amount is the bare machine-readable price ("299.99") used in structured data.
func Amount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func thousandSep(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Date formats time in a locale-friendly short form.
func Date(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(lang) {
	case "ja":
		return t.Format("2006-01-02")
	default:
		return t.Format("Jan 2, 2006")
	}
}
