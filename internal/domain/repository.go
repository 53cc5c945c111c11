package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Store is the persistence contract for transactions, keyed by code.
// Implementations surface storage failures as *DataAccessError; a write that
// affects zero rows is an error, never a silent success. Date-range bounds
// are inclusive on both ends.
type Store interface {
	Save(ctx context.Context, tx *Transaction) error
	Update(ctx context.Context, tx *Transaction) error
	Delete(ctx context.Context, code string) (bool, error)
	FindByCode(ctx context.Context, code string) (*Transaction, error)
	FindAll(ctx context.Context) ([]Transaction, error)
	Exists(ctx context.Context, code string) (bool, error)

	FindByKind(ctx context.Context, kind TransactionKind) ([]Transaction, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]Transaction, error)
	FindByUnitPriceGreaterThan(ctx context.Context, threshold decimal.Decimal) ([]Transaction, error)

	CountByKind(ctx context.Context, kind TransactionKind) (int64, error)
	SumAmountByKind(ctx context.Context, kind TransactionKind) (decimal.Decimal, error)
	AvgAmountByKind(ctx context.Context, kind TransactionKind) (decimal.Decimal, error)

	CountByKindInRange(ctx context.Context, kind TransactionKind, from, to time.Time) (int64, error)
	SumAmountByKindInRange(ctx context.Context, kind TransactionKind, from, to time.Time) (decimal.Decimal, error)
	AvgAmountByKindInRange(ctx context.Context, kind TransactionKind, from, to time.Time) (decimal.Decimal, error)
}
