package entities

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// microsPerUnit matches the advertising API's micros convention.
const microsPerUnit = 6

var maxMicros = decimal.NewFromInt(math.MaxInt64)

// Money is a currency amount in micros (1 unit = 1,000,000 micros).
type Money int64

// MoneyFromMicros wraps a raw micros value.
func MoneyFromMicros(micros int64) Money {
	return Money(micros)
}

// ParseMoney parses values such as "$1.50", "1.5" or "$1,234.00".
// Amounts finer than one micro are rounded.
func ParseMoney(s string) (Money, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "$")
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return 0, fmt.Errorf("%w: empty money value", ErrInvalidChange)
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: parsing money %q: %v", ErrInvalidChange, s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: negative money value %q", ErrInvalidChange, s)
	}

	micros := d.Shift(microsPerUnit).Round(0)
	if micros.GreaterThan(maxMicros) {
		return 0, fmt.Errorf("%w: money value %q out of range", ErrInvalidChange, s)
	}
	return Money(micros.IntPart()), nil
}

// Micros returns the amount in micros.
func (m Money) Micros() int64 {
	return int64(m)
}

// Float returns the amount in whole units. Use only for display and thresholds.
func (m Money) Float() float64 {
	return decimal.New(int64(m), -microsPerUnit).InexactFloat64()
}

// String formats the amount the way it is stored in the ledger, e.g. "$1.50".
func (m Money) String() string {
	return "$" + decimal.New(int64(m), -microsPerUnit).StringFixed(2)
}
