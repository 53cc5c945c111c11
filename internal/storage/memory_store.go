package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thanhvdo/goldfx-be/internal/domain"
)

// MemoryStore is an RWMutex-guarded in-memory Store. It backs the service in
// tests and development, and doubles as the default backend when no database
// is configured.
type MemoryStore struct {
	transactions map[string]domain.Transaction
	mu           sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[string]domain.Transaction),
	}
}

func (s *MemoryStore) Save(ctx context.Context, tx *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactions[tx.Code]; exists {
		return domain.NewBusinessError(domain.ErrCodeSaveFailed, "could not save transaction: code already stored")
	}

	s.transactions[tx.Code] = *tx
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, tx *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactions[tx.Code]; !exists {
		return domain.NewBusinessError(domain.ErrCodeUpdateFailed, "could not update transaction: no such code")
	}

	s.transactions[tx.Code] = *tx
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactions[code]; !exists {
		return false, nil
	}

	delete(s.transactions, code)
	return true, nil
}

func (s *MemoryStore) FindByCode(ctx context.Context, code string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, exists := s.transactions[code]
	if !exists {
		return nil, nil
	}

	copied := tx
	return &copied, nil
}

func (s *MemoryStore) FindAll(ctx context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(domain.Transaction) bool { return true }), nil
}

func (s *MemoryStore) Exists(ctx context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.transactions[code]
	return exists, nil
}

func (s *MemoryStore) FindByKind(ctx context.Context, kind domain.TransactionKind) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(tx domain.Transaction) bool { return tx.Kind == kind }), nil
}

func (s *MemoryStore) FindByDateRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(tx domain.Transaction) bool { return inRange(tx.Date, from, to) }), nil
}

func (s *MemoryStore) FindByUnitPriceGreaterThan(ctx context.Context, threshold decimal.Decimal) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(tx domain.Transaction) bool { return tx.UnitPrice.GreaterThan(threshold) }), nil
}

func (s *MemoryStore) CountByKind(ctx context.Context, kind domain.TransactionKind) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.count(func(tx domain.Transaction) bool { return tx.Kind == kind }), nil
}

func (s *MemoryStore) SumAmountByKind(ctx context.Context, kind domain.TransactionKind) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum, _ := s.sumAmount(func(tx domain.Transaction) bool { return tx.Kind == kind })
	return sum, nil
}

func (s *MemoryStore) AvgAmountByKind(ctx context.Context, kind domain.TransactionKind) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.avgAmount(func(tx domain.Transaction) bool { return tx.Kind == kind }), nil
}

func (s *MemoryStore) CountByKindInRange(ctx context.Context, kind domain.TransactionKind, from, to time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.count(func(tx domain.Transaction) bool {
		return tx.Kind == kind && inRange(tx.Date, from, to)
	}), nil
}

func (s *MemoryStore) SumAmountByKindInRange(ctx context.Context, kind domain.TransactionKind, from, to time.Time) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum, _ := s.sumAmount(func(tx domain.Transaction) bool {
		return tx.Kind == kind && inRange(tx.Date, from, to)
	})
	return sum, nil
}

func (s *MemoryStore) AvgAmountByKindInRange(ctx context.Context, kind domain.TransactionKind, from, to time.Time) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.avgAmount(func(tx domain.Transaction) bool {
		return tx.Kind == kind && inRange(tx.Date, from, to)
	}), nil
}

// collect returns matching transactions ordered by date descending, code
// ascending as the tiebreak, mirroring the relational backend's ordering.
// Callers must hold at least a read lock.
func (s *MemoryStore) collect(match func(domain.Transaction) bool) []domain.Transaction {
	result := []domain.Transaction{}
	for _, tx := range s.transactions {
		if match(tx) {
			result = append(result, tx)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].Code < result[j].Code
	})

	return result
}

func (s *MemoryStore) count(match func(domain.Transaction) bool) int64 {
	var n int64
	for _, tx := range s.transactions {
		if match(tx) {
			n++
		}
	}
	return n
}

func (s *MemoryStore) sumAmount(match func(domain.Transaction) bool) (decimal.Decimal, int64) {
	sum := decimal.Zero
	var n int64
	for _, tx := range s.transactions {
		if match(tx) {
			sum = sum.Add(tx.Amount())
			n++
		}
	}
	return sum, n
}

func (s *MemoryStore) avgAmount(match func(domain.Transaction) bool) decimal.Decimal {
	sum, n := s.sumAmount(match)
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(n))
}

func inRange(date, from, to time.Time) bool {
	return !date.Before(from) && !date.After(to)
}
