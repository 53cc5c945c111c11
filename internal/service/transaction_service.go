package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thanhvdo/goldfx-be/internal/domain"
	"github.com/thanhvdo/goldfx-be/pkg/logger"
)

// TransactionService layers the business invariants over the raw store:
// uniqueness of code on add, existence on edit and remove, kind immutability
// per record, and valid date ranges. Validation and business checks always
// run before any write; each call issues at most one store write.
type TransactionService interface {
	Add(ctx context.Context, form domain.TransactionForm) (*domain.Transaction, error)
	Edit(ctx context.Context, code string, form domain.TransactionForm) (*domain.Transaction, error)
	Remove(ctx context.Context, code string) (bool, error)
	FindByCode(ctx context.Context, code string) (*domain.Transaction, error)
	GetAll(ctx context.Context) ([]domain.Transaction, error)
	FindByKind(ctx context.Context, kind domain.TransactionKind) ([]domain.Transaction, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error)
	FindByUnitPriceGreaterThan(ctx context.Context, threshold decimal.Decimal) ([]domain.Transaction, error)
	GetHighValueTransactions(ctx context.Context) ([]domain.Transaction, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	TotalTransactionCount(ctx context.Context) (int64, error)
}

type transactionService struct {
	store  domain.Store
	logger *logger.Logger
}

func NewTransactionService(store domain.Store, log *logger.Logger) TransactionService {
	return &transactionService{
		store:  store,
		logger: log,
	}
}

func (s *transactionService) Add(ctx context.Context, form domain.TransactionForm) (*domain.Transaction, error) {
	code := domain.NormalizeCode(form.Code)
	ctx = logger.WithTxCode(ctx, code)

	exists, err := s.store.Exists(ctx, code)
	if err != nil {
		s.logger.Error(ctx, "Failed to check code existence",
			"error", err,
		)
		return nil, err
	}
	if exists {
		return nil, domain.NewBusinessError(domain.ErrCodeDuplicateID,
			fmt.Sprintf("transaction code already exists: %s", code))
	}

	tx, err := domain.NewTransactionFromForm(form)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, tx); err != nil {
		s.logger.Error(ctx, "Failed to save transaction",
			"error", err,
		)
		return nil, err
	}

	s.logger.Info(ctx, "Transaction added",
		"kind", tx.Kind,
	)

	return tx, nil
}

func (s *transactionService) Edit(ctx context.Context, code string, form domain.TransactionForm) (*domain.Transaction, error) {
	code = domain.NormalizeCode(code)
	ctx = logger.WithTxCode(ctx, code)

	existing, err := s.store.FindByCode(ctx, code)
	if err != nil {
		s.logger.Error(ctx, "Failed to look up transaction",
			"error", err,
		)
		return nil, err
	}
	if existing == nil {
		return nil, domain.NewBusinessError(domain.ErrCodeNotFound,
			fmt.Sprintf("transaction not found: %s", code))
	}

	// A record never changes kind; converting gold to currency (or back)
	// requires deleting and re-adding under a new record.
	if form.Kind != existing.Kind {
		return nil, domain.NewBusinessError(domain.ErrCodeKindMismatch,
			fmt.Sprintf("transaction %s is %s and cannot become %s", code, existing.Kind, form.Kind))
	}

	form.Code = code
	tx, err := domain.NewTransactionFromForm(form)
	if err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, tx); err != nil {
		s.logger.Error(ctx, "Failed to update transaction",
			"error", err,
		)
		return nil, err
	}

	s.logger.Info(ctx, "Transaction updated",
		"kind", tx.Kind,
	)

	return tx, nil
}

func (s *transactionService) Remove(ctx context.Context, code string) (bool, error) {
	code = domain.NormalizeCode(code)
	ctx = logger.WithTxCode(ctx, code)

	exists, err := s.store.Exists(ctx, code)
	if err != nil {
		s.logger.Error(ctx, "Failed to check code existence",
			"error", err,
		)
		return false, err
	}
	if !exists {
		return false, domain.NewBusinessError(domain.ErrCodeNotFound,
			fmt.Sprintf("transaction not found: %s", code))
	}

	deleted, err := s.store.Delete(ctx, code)
	if err != nil {
		s.logger.Error(ctx, "Failed to delete transaction",
			"error", err,
		)
		return false, err
	}
	if !deleted {
		return false, domain.NewBusinessError(domain.ErrCodeDeleteFailed,
			fmt.Sprintf("could not delete transaction: %s", code))
	}

	s.logger.Info(ctx, "Transaction removed")

	return true, nil
}

func (s *transactionService) FindByCode(ctx context.Context, code string) (*domain.Transaction, error) {
	return s.store.FindByCode(ctx, domain.NormalizeCode(code))
}

func (s *transactionService) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	return s.store.FindAll(ctx)
}

func (s *transactionService) FindByKind(ctx context.Context, kind domain.TransactionKind) ([]domain.Transaction, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("kind", "kind must be VANG or TIEN_TE")
	}
	return s.store.FindByKind(ctx, kind)
}

func (s *transactionService) FindByDateRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	if from.After(to) {
		return nil, domain.NewBusinessError(domain.ErrCodeInvalidDateRange,
			"from date must not be after to date")
	}
	return s.store.FindByDateRange(ctx, from, to)
}

func (s *transactionService) FindByUnitPriceGreaterThan(ctx context.Context, threshold decimal.Decimal) ([]domain.Transaction, error) {
	return s.store.FindByUnitPriceGreaterThan(ctx, threshold)
}

func (s *transactionService) GetHighValueTransactions(ctx context.Context) ([]domain.Transaction, error) {
	s.logger.Debug(ctx, "Listing high-value transactions",
		"threshold", domain.HighValueThreshold,
	)
	return s.store.FindByUnitPriceGreaterThan(ctx, domain.HighValueThreshold)
}

func (s *transactionService) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	goldTotal, err := s.store.SumAmountByKind(ctx, domain.KindGold)
	if err != nil {
		return decimal.Zero, err
	}
	currencyTotal, err := s.store.SumAmountByKind(ctx, domain.KindCurrency)
	if err != nil {
		return decimal.Zero, err
	}
	return goldTotal.Add(currencyTotal), nil
}

func (s *transactionService) TotalTransactionCount(ctx context.Context) (int64, error) {
	goldCount, err := s.store.CountByKind(ctx, domain.KindGold)
	if err != nil {
		return 0, err
	}
	currencyCount, err := s.store.CountByKind(ctx, domain.KindCurrency)
	if err != nil {
		return 0, err
	}
	return goldCount + currencyCount, nil
}
