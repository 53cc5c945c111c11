package domain

import "github.com/shopspring/decimal"

// Summary is a read-only statistics snapshot over a scope of transactions.
// It carries no identity: every query computes a fresh one, and an empty
// scope yields all-zero fields, never nulls.
type Summary struct {
	GoldCount           int64           `json:"gold_count"`
	CurrencyCount       int64           `json:"currency_count"`
	AvgCurrencyAmount   decimal.Decimal `json:"avg_currency_amount"`
	HighValueCount      int64           `json:"high_value_count"`
	TotalGoldAmount     decimal.Decimal `json:"total_gold_amount"`
	TotalCurrencyAmount decimal.Decimal `json:"total_currency_amount"`
}

func (s *Summary) TotalAmount() decimal.Decimal {
	return s.TotalGoldAmount.Add(s.TotalCurrencyAmount)
}
