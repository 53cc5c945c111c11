package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionForm is the flat input record submitted for add and edit. The
// variant fields are required exactly when Kind selects them.
type TransactionForm struct {
	Code      string          `json:"code"`
	Date      time.Time       `json:"date"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Kind      TransactionKind `json:"kind"`

	GoldType     string          `json:"gold_type,omitempty"`
	CurrencyCode string          `json:"currency_code,omitempty"`
	ExchangeRate decimal.Decimal `json:"exchange_rate,omitempty"`
}

// NewTransactionFromForm validates the form and constructs the variant its
// Kind selects. There is no partially constructed state: the first failing
// rule aborts with a ValidationError.
func NewTransactionFromForm(form TransactionForm) (*Transaction, error) {
	switch form.Kind {
	case KindGold:
		return NewGoldTransaction(form.Code, form.Date, form.UnitPrice, form.Quantity, form.GoldType)
	case KindCurrency:
		return NewCurrencyTransaction(form.Code, form.Date, form.UnitPrice, form.Quantity, form.CurrencyCode, form.ExchangeRate)
	default:
		return nil, NewValidationError("kind", "kind must be VANG or TIEN_TE")
	}
}
