package service

import (
	"context"
	"time"

	"github.com/thanhvdo/goldfx-be/internal/domain"
	"github.com/thanhvdo/goldfx-be/pkg/logger"
)

// StatisticsService computes read-only summaries over a scope of
// transactions. Every call recomputes from the store; nothing is cached.
type StatisticsService interface {
	Summarize(ctx context.Context) (*domain.Summary, error)
	SummarizeRange(ctx context.Context, from, to time.Time) (*domain.Summary, error)
	SummarizeToday(ctx context.Context) (*domain.Summary, error)
	SummarizeMonth(ctx context.Context, year int, month time.Month) (*domain.Summary, error)
}

type statisticsService struct {
	store  domain.Store
	logger *logger.Logger
}

func NewStatisticsService(store domain.Store, log *logger.Logger) StatisticsService {
	return &statisticsService{
		store:  store,
		logger: log,
	}
}

func (s *statisticsService) Summarize(ctx context.Context) (*domain.Summary, error) {
	s.logger.Debug(ctx, "Computing all-time summary")

	summary := &domain.Summary{}
	var err error

	if summary.GoldCount, err = s.store.CountByKind(ctx, domain.KindGold); err != nil {
		return nil, err
	}
	if summary.CurrencyCount, err = s.store.CountByKind(ctx, domain.KindCurrency); err != nil {
		return nil, err
	}
	if summary.AvgCurrencyAmount, err = s.store.AvgAmountByKind(ctx, domain.KindCurrency); err != nil {
		return nil, err
	}
	if summary.TotalGoldAmount, err = s.store.SumAmountByKind(ctx, domain.KindGold); err != nil {
		return nil, err
	}
	if summary.TotalCurrencyAmount, err = s.store.SumAmountByKind(ctx, domain.KindCurrency); err != nil {
		return nil, err
	}

	highValue, err := s.store.FindByUnitPriceGreaterThan(ctx, domain.HighValueThreshold)
	if err != nil {
		return nil, err
	}
	summary.HighValueCount = int64(len(highValue))

	return summary, nil
}

func (s *statisticsService) SummarizeRange(ctx context.Context, from, to time.Time) (*domain.Summary, error) {
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	if from.After(to) {
		return nil, domain.NewBusinessError(domain.ErrCodeInvalidDateRange,
			"from date must not be after to date")
	}

	s.logger.Debug(ctx, "Computing range summary",
		"from", from.Format(time.DateOnly),
		"to", to.Format(time.DateOnly),
	)

	summary := &domain.Summary{}
	var err error

	if summary.GoldCount, err = s.store.CountByKindInRange(ctx, domain.KindGold, from, to); err != nil {
		return nil, err
	}
	if summary.CurrencyCount, err = s.store.CountByKindInRange(ctx, domain.KindCurrency, from, to); err != nil {
		return nil, err
	}
	if summary.AvgCurrencyAmount, err = s.store.AvgAmountByKindInRange(ctx, domain.KindCurrency, from, to); err != nil {
		return nil, err
	}
	if summary.TotalGoldAmount, err = s.store.SumAmountByKindInRange(ctx, domain.KindGold, from, to); err != nil {
		return nil, err
	}
	if summary.TotalCurrencyAmount, err = s.store.SumAmountByKindInRange(ctx, domain.KindCurrency, from, to); err != nil {
		return nil, err
	}

	inScope, err := s.store.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for i := range inScope {
		if inScope[i].IsHighValue() {
			summary.HighValueCount++
		}
	}

	return summary, nil
}

func (s *statisticsService) SummarizeToday(ctx context.Context) (*domain.Summary, error) {
	today := domain.DateOnly(time.Now())
	return s.SummarizeRange(ctx, today, today)
}

func (s *statisticsService) SummarizeMonth(ctx context.Context, year int, month time.Month) (*domain.Summary, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return s.SummarizeRange(ctx, first, last)
}
