package models

import "github.com/shopspring/decimal"

// Amount is a monetary value in AUD. It scans from Postgres numeric columns
// and encodes to JSON as a bare number carrying the exact decimal digits.
type Amount struct {
	decimal.Decimal
}

// NewAmount parses a decimal string such as "1234.56".
func NewAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{Decimal: d}, nil
}

// MustAmount is NewAmount for literals known to be valid.
func MustAmount(s string) Amount {
	a, err := NewAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{Decimal: a.Decimal.Add(b.Decimal)}
}

// MarshalJSON writes the amount without quotes so clients receive a number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// UnmarshalJSON accepts both quoted and bare numbers.
func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}
