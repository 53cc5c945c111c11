package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDate() time.Time {
	return time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewGoldTransaction_Valid(t *testing.T) {
	tx, err := NewGoldTransaction(" gd001 ", testDate(), dec("2000000000"), 2, " 24K ")

	require.NoError(t, err)
	assert.Equal(t, "GD001", tx.Code)
	assert.Equal(t, KindGold, tx.Kind)
	assert.Equal(t, "24K", tx.GoldType)
	assert.True(t, tx.Date.Equal(testDate()))
	assert.Equal(t, 2, tx.Quantity)
}

func TestNewGoldTransaction_AmountIsExactProduct(t *testing.T) {
	tx, err := NewGoldTransaction("GD001", testDate(), dec("2000000000"), 2, "24K")
	require.NoError(t, err)

	assert.True(t, tx.Amount().Equal(dec("4000000000")), "amount = %s", tx.Amount())
}

func TestNewGoldTransaction_InvalidFields(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		date      time.Time
		unitPrice decimal.Decimal
		quantity  int
		goldType  string
		wantField string
	}{
		{"empty code", "  ", testDate(), dec("100"), 1, "24K", "code"},
		{"code too long", "ABCDEFGHIJKLMNOPQRSTU", testDate(), dec("100"), 1, "24K", "code"},
		{"zero date", "GD001", time.Time{}, dec("100"), 1, "24K", "date"},
		{"future date", "GD001", time.Now().AddDate(0, 0, 1), dec("100"), 1, "24K", "date"},
		{"zero unit price", "GD001", testDate(), dec("0"), 1, "24K", "unit_price"},
		{"negative unit price", "GD001", testDate(), dec("-5"), 1, "24K", "unit_price"},
		{"zero quantity", "GD001", testDate(), dec("100"), 0, "24K", "quantity"},
		{"empty gold type", "GD001", testDate(), dec("100"), 1, "   ", "gold_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGoldTransaction(tt.code, tt.date, tt.unitPrice, tt.quantity, tt.goldType)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestNewGoldTransaction_GoldTypeTooLong(t *testing.T) {
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'A'
	}

	_, err := NewGoldTransaction("GD001", testDate(), dec("100"), 1, string(long))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "gold_type", validationErr.Field)
}

func TestNewCurrencyTransaction_Valid(t *testing.T) {
	tx, err := NewCurrencyTransaction("CT001", testDate(), dec("100"), 10, " usd ", dec("26000"))

	require.NoError(t, err)
	assert.Equal(t, KindCurrency, tx.Kind)
	assert.Equal(t, "USD", tx.CurrencyCode)
	assert.True(t, tx.ExchangeRate.Equal(dec("26000")))
}

func TestNewCurrencyTransaction_AmountWithRate(t *testing.T) {
	tx, err := NewCurrencyTransaction("CT001", testDate(), dec("100"), 10, "USD", dec("26000"))
	require.NoError(t, err)

	assert.True(t, tx.Amount().Equal(dec("26000000")), "amount = %s", tx.Amount())
}

func TestNewCurrencyTransaction_AmountRoundsHalfUp(t *testing.T) {
	tx, err := NewCurrencyTransaction("CT001", testDate(), dec("1.005"), 1, "USD", dec("1"))
	require.NoError(t, err)

	assert.True(t, tx.Amount().Equal(dec("1.01")), "amount = %s", tx.Amount())
}

func TestNewCurrencyTransaction_VNDIgnoresRate(t *testing.T) {
	tx, err := NewCurrencyTransaction("CT002", testDate(), dec("10.555"), 1, "VND", dec("25000"))
	require.NoError(t, err)

	// Rate is stored but plays no part in the VND formula.
	assert.True(t, tx.ExchangeRate.Equal(dec("25000")))
	assert.True(t, tx.Amount().Equal(dec("10.56")), "amount = %s", tx.Amount())
}

func TestNewCurrencyTransaction_RateRoundedToFourDecimals(t *testing.T) {
	tx, err := NewCurrencyTransaction("CT003", testDate(), dec("100"), 1, "USD", dec("1.23456"))
	require.NoError(t, err)

	assert.True(t, tx.ExchangeRate.Equal(dec("1.2346")), "rate = %s", tx.ExchangeRate)
}

func TestNewCurrencyTransaction_RateBounds(t *testing.T) {
	tests := []struct {
		name string
		rate decimal.Decimal
		ok   bool
	}{
		{"below minimum", dec("0.009"), false},
		{"at minimum", dec("0.01"), true},
		{"at maximum", dec("100000"), true},
		{"above maximum", dec("100000.01"), false},
		{"zero", dec("0"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCurrencyTransaction("CT001", testDate(), dec("100"), 1, "USD", tt.rate)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, "exchange_rate", validationErr.Field)
			}
		})
	}
}

func TestNewCurrencyTransaction_CurrencyCodePattern(t *testing.T) {
	for _, bad := range []string{"", "US", "USDD", "US1", "U$D"} {
		_, err := NewCurrencyTransaction("CT001", testDate(), dec("100"), 1, bad, dec("1"))

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr, "currency code %q", bad)
		assert.Equal(t, "currency_code", validationErr.Field)
	}
}

func TestNewTransactionFromForm_SelectsVariant(t *testing.T) {
	goldForm := TransactionForm{
		Code: "GD001", Date: testDate(), UnitPrice: dec("100"), Quantity: 1,
		Kind: KindGold, GoldType: "999",
	}
	gold, err := NewTransactionFromForm(goldForm)
	require.NoError(t, err)
	assert.Equal(t, KindGold, gold.Kind)

	currencyForm := TransactionForm{
		Code: "CT001", Date: testDate(), UnitPrice: dec("100"), Quantity: 1,
		Kind: KindCurrency, CurrencyCode: "EUR", ExchangeRate: dec("27000"),
	}
	currency, err := NewTransactionFromForm(currencyForm)
	require.NoError(t, err)
	assert.Equal(t, KindCurrency, currency.Kind)
}

func TestNewTransactionFromForm_UnknownKind(t *testing.T) {
	_, err := NewTransactionFromForm(TransactionForm{
		Code: "GD001", Date: testDate(), UnitPrice: dec("100"), Quantity: 1,
		Kind: "CRYPTO",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "kind", validationErr.Field)
}

func TestIsHighValue_StrictThreshold(t *testing.T) {
	atThreshold, err := NewGoldTransaction("GD001", testDate(), dec("1000000000"), 1, "24K")
	require.NoError(t, err)
	assert.False(t, atThreshold.IsHighValue())

	above, err := NewGoldTransaction("GD002", testDate(), dec("1000000000.01"), 1, "24K")
	require.NoError(t, err)
	assert.True(t, above.IsHighValue())
}

func TestIsHighGrade(t *testing.T) {
	tests := []struct {
		goldType string
		want     bool
	}{
		{"24K", true},
		{"SJC 999", true},
		{"18K", false},
		{"9999", true},
	}

	for _, tt := range tests {
		tx, err := NewGoldTransaction("GD001", testDate(), dec("100"), 1, tt.goldType)
		require.NoError(t, err)
		assert.Equal(t, tt.want, tx.IsHighGrade(), "gold type %q", tt.goldType)
	}
}

func TestVATAmount(t *testing.T) {
	tx, err := NewGoldTransaction("GD001", testDate(), dec("1000"), 3, "24K")
	require.NoError(t, err)

	assert.True(t, tx.VATAmount().Equal(dec("300")), "vat = %s", tx.VATAmount())
}

func TestIsMainCurrency(t *testing.T) {
	for code, want := range map[string]bool{"USD": true, "EUR": true, "VND": true, "JPY": false} {
		tx, err := NewCurrencyTransaction("CT001", testDate(), dec("100"), 1, code, dec("1"))
		require.NoError(t, err)
		assert.Equal(t, want, tx.IsMainCurrency(), "currency %s", code)
	}
}

func TestForeignValue(t *testing.T) {
	tx, err := NewCurrencyTransaction("CT001", testDate(), dec("100"), 10, "USD", dec("26000"))
	require.NoError(t, err)

	assert.True(t, tx.ForeignValue().Equal(dec("1000")))
}

func TestEqual(t *testing.T) {
	gold1, err := NewGoldTransaction("GD001", testDate(), dec("100"), 1, "24K")
	require.NoError(t, err)
	gold2, err := NewGoldTransaction("GD001", testDate(), dec("999"), 7, "24K")
	require.NoError(t, err)
	gold3, err := NewGoldTransaction("GD001", testDate(), dec("100"), 1, "18K")
	require.NoError(t, err)
	currency, err := NewCurrencyTransaction("GD001", testDate(), dec("100"), 1, "USD", dec("1"))
	require.NoError(t, err)

	assert.True(t, gold1.Equal(gold2), "identity is code plus kind fields, not price")
	assert.False(t, gold1.Equal(gold3))
	assert.False(t, gold1.Equal(currency), "different kinds are never equal")
	assert.False(t, gold1.Equal(nil))
}
