package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/thanhvdo/goldfx-be/internal/domain"
	"github.com/thanhvdo/goldfx-be/pkg/logger"
)

// ExportService renders transactions and summaries as delimited text. The
// column order is fixed: code, date, unit price, quantity, kind, type detail,
// amount.
type ExportService interface {
	WriteTransactions(ctx context.Context, w io.Writer, transactions []domain.Transaction) error
	WriteSummary(ctx context.Context, w io.Writer, summary *domain.Summary) error
}

type exportService struct {
	logger *logger.Logger
}

func NewExportService(log *logger.Logger) ExportService {
	return &exportService{logger: log}
}

func (s *exportService) WriteTransactions(ctx context.Context, w io.Writer, transactions []domain.Transaction) error {
	writer := csv.NewWriter(w)

	header := []string{"code", "date", "unit_price", "quantity", "kind", "detail", "amount"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range transactions {
		tx := &transactions[i]
		record := []string{
			tx.Code,
			tx.Date.Format(time.DateOnly),
			tx.UnitPrice.String(),
			strconv.Itoa(tx.Quantity),
			string(tx.Kind),
			detailColumn(tx),
			tx.Amount().String(),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	s.logger.Info(ctx, "Exported transactions",
		"count", len(transactions),
	)

	return nil
}

func (s *exportService) WriteSummary(ctx context.Context, w io.Writer, summary *domain.Summary) error {
	writer := csv.NewWriter(w)

	rows := [][]string{
		{"gold_count", strconv.FormatInt(summary.GoldCount, 10)},
		{"currency_count", strconv.FormatInt(summary.CurrencyCount, 10)},
		{"avg_currency_amount", summary.AvgCurrencyAmount.String()},
		{"high_value_count", strconv.FormatInt(summary.HighValueCount, 10)},
		{"total_gold_amount", summary.TotalGoldAmount.String()},
		{"total_currency_amount", summary.TotalCurrencyAmount.String()},
		{"total_amount", summary.TotalAmount().String()},
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write summary row %q: %w", row[0], err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	s.logger.Info(ctx, "Exported summary")

	return nil
}

func detailColumn(tx *domain.Transaction) string {
	switch tx.Kind {
	case domain.KindGold:
		return tx.GoldType
	case domain.KindCurrency:
		return fmt.Sprintf("%s @ %s", tx.CurrencyCode, tx.ExchangeRate.String())
	default:
		return ""
	}
}
