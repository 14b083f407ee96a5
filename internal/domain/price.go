package domain

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParsePrice parses a formatted price string such as "₹2,499" or "₹2,499.50"
// into a decimal amount in major currency units.
func ParsePrice(s string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) || r == '.' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("no numeric value in price %q", s)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return d, nil
}

// CartTotal sums price*quantity over all items in major currency units.
// Items with an unparseable price contribute zero rather than failing the
// whole cart.
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		price, err := ParsePrice(item.Price)
		if err != nil {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// ToPaise converts a major-unit amount to paise (minor units, x100)
func ToPaise(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
