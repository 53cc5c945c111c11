package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindGold     TransactionKind = "VANG"
	KindCurrency TransactionKind = "TIEN_TE"
)

func (k TransactionKind) Valid() bool {
	return k == KindGold || k == KindCurrency
}

const (
	maxCodeLen     = 20
	maxGoldTypeLen = 50
)

var (
	// HighValueThreshold is the unit price above which a transaction counts
	// as high-value (one billion in the base currency unit).
	HighValueThreshold = decimal.NewFromInt(1_000_000_000)

	goldVATRate = decimal.RequireFromString("0.10")

	exchangeRateMin = decimal.RequireFromString("0.01")
	exchangeRateMax = decimal.NewFromInt(100_000)

	currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Transaction is a recorded gold purchase or currency exchange. The two
// variants are closed over Kind; GoldType is set only for KindGold,
// CurrencyCode and ExchangeRate only for KindCurrency. Instances are built
// through the validating constructors and never mutated afterwards: an edit
// rebuilds the whole record from the submitted form.
type Transaction struct {
	Code      string          `json:"code"`
	Date      time.Time       `json:"date"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Kind      TransactionKind `json:"kind"`

	GoldType     string          `json:"gold_type,omitempty"`
	CurrencyCode string          `json:"currency_code,omitempty"`
	ExchangeRate decimal.Decimal `json:"exchange_rate,omitempty"`
}

// NormalizeCode applies the identity normalization used everywhere a code is
// compared: trimmed and upper-cased.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DateOnly strips the time-of-day component, anchoring the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func validateCommon(code string, date time.Time, unitPrice decimal.Decimal, quantity int) (string, time.Time, error) {
	normalized := NormalizeCode(code)
	if err := MaxLen(normalized, maxCodeLen, "code"); err != nil {
		return "", time.Time{}, err
	}

	if date.IsZero() {
		return "", time.Time{}, NewValidationError("date", "date must not be empty")
	}
	day := DateOnly(date)
	if day.After(DateOnly(time.Now())) {
		return "", time.Time{}, NewValidationError("date", "date must not be in the future")
	}

	if err := Positive(unitPrice, "unit_price"); err != nil {
		return "", time.Time{}, err
	}
	if err := PositiveInt(quantity, "quantity"); err != nil {
		return "", time.Time{}, err
	}

	return normalized, day, nil
}

func NewGoldTransaction(code string, date time.Time, unitPrice decimal.Decimal, quantity int, goldType string) (*Transaction, error) {
	normalized, day, err := validateCommon(code, date, unitPrice, quantity)
	if err != nil {
		return nil, err
	}

	goldType = strings.TrimSpace(goldType)
	if err := MaxLen(goldType, maxGoldTypeLen, "gold_type"); err != nil {
		return nil, err
	}

	return &Transaction{
		Code:      normalized,
		Date:      day,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		Kind:      KindGold,
		GoldType:  goldType,
	}, nil
}

func NewCurrencyTransaction(code string, date time.Time, unitPrice decimal.Decimal, quantity int, currencyCode string, exchangeRate decimal.Decimal) (*Transaction, error) {
	normalized, day, err := validateCommon(code, date, unitPrice, quantity)
	if err != nil {
		return nil, err
	}

	cleanCurrency := strings.ToUpper(strings.TrimSpace(currencyCode))
	if !currencyCodePattern.MatchString(cleanCurrency) {
		return nil, NewValidationError("currency_code", "currency_code must be a 3-letter code (e.g. USD, EUR)")
	}

	if err := Positive(exchangeRate, "exchange_rate"); err != nil {
		return nil, err
	}
	if exchangeRate.LessThan(exchangeRateMin) || exchangeRate.GreaterThan(exchangeRateMax) {
		return nil, NewValidationError("exchange_rate", "exchange_rate must be between 0.01 and 100000")
	}

	return &Transaction{
		Code:         normalized,
		Date:         day,
		UnitPrice:    unitPrice,
		Quantity:     quantity,
		Kind:         KindCurrency,
		CurrencyCode: cleanCurrency,
		ExchangeRate: exchangeRate.Round(4),
	}, nil
}

// Amount is the derived total value of the transaction. Gold is exact
// price×quantity. Currency rounds half-up to 2 decimals; VND ignores the
// stored exchange rate in the formula.
func (t *Transaction) Amount() decimal.Decimal {
	qty := decimal.NewFromInt(int64(t.Quantity))
	switch t.Kind {
	case KindGold:
		return t.UnitPrice.Mul(qty)
	case KindCurrency:
		base := t.UnitPrice.Mul(qty)
		if t.CurrencyCode == "VND" {
			return base.Round(2)
		}
		return base.Mul(t.ExchangeRate).Round(2)
	default:
		return decimal.Zero
	}
}

// IsHighValue reports whether the unit price exceeds one billion.
func (t *Transaction) IsHighValue() bool {
	return t.UnitPrice.GreaterThan(HighValueThreshold)
}

// IsHighGrade applies to gold transactions: 24K and 999 grades qualify.
func (t *Transaction) IsHighGrade() bool {
	if t.Kind != KindGold {
		return false
	}
	return strings.Contains(t.GoldType, "24K") || strings.Contains(t.GoldType, "999")
}

// VATAmount is the 10% VAT on a gold transaction's amount.
func (t *Transaction) VATAmount() decimal.Decimal {
	if t.Kind != KindGold {
		return decimal.Zero
	}
	return t.Amount().Mul(goldVATRate)
}

// IsMainCurrency reports whether a currency transaction uses USD, EUR or VND.
func (t *Transaction) IsMainCurrency() bool {
	if t.Kind != KindCurrency {
		return false
	}
	switch t.CurrencyCode {
	case "USD", "EUR", "VND":
		return true
	}
	return false
}

// ForeignValue is the original value of a currency transaction in the foreign
// currency, before the exchange rate is applied.
func (t *Transaction) ForeignValue() decimal.Decimal {
	if t.Kind != KindCurrency {
		return decimal.Zero
	}
	return t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
}

// Equal compares the identity code plus the kind-specific fields. Records of
// different kinds are never equal, even under the same code.
func (t *Transaction) Equal(other *Transaction) bool {
	if other == nil || t.Kind != other.Kind || t.Code != other.Code {
		return false
	}
	switch t.Kind {
	case KindGold:
		return t.GoldType == other.GoldType
	case KindCurrency:
		return t.CurrencyCode == other.CurrencyCode && t.ExchangeRate.Equal(other.ExchangeRate)
	default:
		return false
	}
}
