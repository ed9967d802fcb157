package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money is an amount rounded to cents. It is always rendered with two decimals
// in JSON, e.g. "4000.00".
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

func (m Money) Add(o Money) Money {
	return Money{Decimal: m.Decimal.Add(o.Decimal)}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.StringFixed(2))
}
