package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhvdo/goldfx-be/internal/domain"
	"github.com/thanhvdo/goldfx-be/pkg/logger"
)

func TestWriteTransactions_ColumnOrder(t *testing.T) {
	gold, err := domain.NewGoldTransaction("GD001", day(2024, 5, 10), dec("1000"), 2, "24K")
	require.NoError(t, err)
	currency, err := domain.NewCurrencyTransaction("CT001", day(2024, 5, 11), dec("100"), 10, "USD", dec("26000"))
	require.NoError(t, err)

	svc := NewExportService(logger.NewNop())
	var buf bytes.Buffer
	require.NoError(t, svc.WriteTransactions(context.Background(), &buf, []domain.Transaction{*gold, *currency}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"code", "date", "unit_price", "quantity", "kind", "detail", "amount"}, records[0])
	assert.Equal(t, []string{"GD001", "2024-05-10", "1000", "2", "VANG", "24K", "2000"}, records[1])
	assert.Equal(t, []string{"CT001", "2024-05-11", "100", "10", "TIEN_TE", "USD @ 26000", "26000000"}, records[2])
}

func TestWriteTransactions_EmptyListStillWritesHeader(t *testing.T) {
	svc := NewExportService(logger.NewNop())
	var buf bytes.Buffer

	require.NoError(t, svc.WriteTransactions(context.Background(), &buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestWriteSummary_LabelValuePairs(t *testing.T) {
	summary := &domain.Summary{
		GoldCount:           1,
		CurrencyCount:       1,
		AvgCurrencyAmount:   dec("26000000"),
		HighValueCount:      1,
		TotalGoldAmount:     dec("4000000000"),
		TotalCurrencyAmount: dec("26000000"),
	}

	svc := NewExportService(logger.NewNop())
	var buf bytes.Buffer
	require.NoError(t, svc.WriteSummary(context.Background(), &buf, summary))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7)

	assert.Equal(t, []string{"gold_count", "1"}, records[0])
	assert.Equal(t, []string{"currency_count", "1"}, records[1])
	assert.Equal(t, []string{"avg_currency_amount", "26000000"}, records[2])
	assert.Equal(t, []string{"high_value_count", "1"}, records[3])
	assert.Equal(t, []string{"total_gold_amount", "4000000000"}, records[4])
	assert.Equal(t, []string{"total_currency_amount", "26000000"}, records[5])
	assert.Equal(t, []string{"total_amount", "4026000000"}, records[6])
}
