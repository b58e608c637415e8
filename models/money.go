package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Money is an amount in cents. Prices are summed as integers so that
// aggregates never pick up floating point drift.
type Money int64

// MaxMoney bounds a single amount at 1,000,000,000.00 so that sums over any
// realistic catalog stay far from int64 overflow.
const MaxMoney Money = 100_000_000_000

var ErrMoneyOutOfRange = errors.New("amount out of range")

func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	cents := math.Round(f * 100)
	if math.Abs(cents) > float64(MaxMoney) {
		return 0, fmt.Errorf("amount %q: %w", s, ErrMoneyOutOfRange)
	}

	return Money(cents), nil
}

func Cents(c int64) Money {
	return Money(c)
}

func (m Money) Cents() int64 {
	return int64(m)
}

// Add returns m+o and false when the sum overflows int64.
func (m Money) Add(o Money) (Money, bool) {
	sum := m + o
	if (o > 0 && sum < m) || (o < 0 && sum > m) {
		return 0, false
	}
	return sum, true
}

// String renders the amount with exactly two decimals, e.g. "77.43".
func (m Money) String() string {
	sign := ""
	c := uint64(m)
	if m < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	parsed, err := ParseMoney(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m *Money) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseMoney(value.Value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
