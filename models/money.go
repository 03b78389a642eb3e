package models

import "fmt"

// BaseCurrency is the canonical currency every stored amount is expressed in.
// Display conversion never mutates stored values.
const BaseCurrency = "USD"

const nanosMod = 1_000_000_000

// Money is a fixed-point amount in the canonical currency: Units whole units
// plus Nanos billionths of a unit. After every operation 0 <= Nanos < 1e9.
type Money struct {
	Units int64 `json:"units"`
	Nanos int32 `json:"nanos"`
}

// Zero is the zero amount.
func Zero() Money { return Money{} }

// IsZero reports whether m represents no money at all.
func (m Money) IsZero() bool { return m.Units == 0 && m.Nanos == 0 }

// IsValid reports whether m is normalized and non-negative. Cart totals only
// ever deal in non-negative amounts.
func (m Money) IsValid() bool {
	return m.Units >= 0 && m.Nanos >= 0 && m.Nanos < nanosMod
}

// normalize carries nanos overflow into units.
func normalize(units int64, nanos int64) Money {
	units += nanos / nanosMod
	nanos = nanos % nanosMod
	return Money{Units: units, Nanos: int32(nanos)}
}

// Sum adds two amounts, carrying nanos overflow into units.
func Sum(a, b Money) Money {
	return normalize(a.Units+b.Units, int64(a.Nanos)+int64(b.Nanos))
}

// Multiply scales an amount by a non-negative quantity.
func Multiply(m Money, quantity uint32) Money {
	return normalize(m.Units*int64(quantity), int64(m.Nanos)*int64(quantity))
}

// ToDecimal converts m to a float64. Presentation boundary only: results are
// never fed back into Money arithmetic.
func (m Money) ToDecimal() float64 {
	return float64(m.Units) + float64(m.Nanos)/float64(nanosMod)
}

// currencySymbols maps supported display currencies to their symbols.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"CAD": "C$",
	"JPY": "¥",
	"GBP": "£",
	"TRY": "₺",
}

// FormatMoney renders an amount for display. When converted is non-nil it is
// a display-currency value produced by the conversion rate and is formatted
// with two decimals; otherwise the canonical amount is rendered directly from
// units and the first two digits of the zero-padded nanos, so no float ever
// touches the canonical value.
func FormatMoney(m Money, currencyCode string, converted *float64) string {
	symbol, ok := currencySymbols[currencyCode]
	if !ok {
		symbol = "$"
	}
	if converted != nil {
		return fmt.Sprintf("%s%.2f", symbol, *converted)
	}
	cents := fmt.Sprintf("%09d", m.Nanos)[:2]
	return fmt.Sprintf("%s%d.%s", symbol, m.Units, cents)
}
