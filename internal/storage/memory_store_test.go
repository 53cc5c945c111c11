package storage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhvdo/goldfx-be/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustGold(t *testing.T, code string, date time.Time, unitPrice string, quantity int) *domain.Transaction {
	t.Helper()
	tx, err := domain.NewGoldTransaction(code, date, dec(unitPrice), quantity, "24K")
	require.NoError(t, err)
	return tx
}

func mustCurrency(t *testing.T, code string, date time.Time, unitPrice string, quantity int, currency, rate string) *domain.Transaction {
	t.Helper()
	tx, err := domain.NewCurrencyTransaction(code, date, dec(unitPrice), quantity, currency, dec(rate))
	require.NoError(t, err)
	return tx
}

func TestMemoryStore_SaveAndFindByCode(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tx := mustGold(t, "GD001", day(2024, 5, 10), "1000", 2)
	require.NoError(t, store.Save(ctx, tx))

	found, err := store.FindByCode(ctx, "GD001")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, tx.Equal(found))
	assert.True(t, found.UnitPrice.Equal(dec("1000")))

	exists, err := store.Exists(ctx, "GD001")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryStore_FindByCode_Missing(t *testing.T) {
	store := NewMemoryStore()

	found, err := store.FindByCode(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemoryStore_Save_DuplicateFails(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tx := mustGold(t, "GD001", day(2024, 5, 10), "1000", 2)
	require.NoError(t, store.Save(ctx, tx))

	err := store.Save(ctx, tx)

	var businessErr *domain.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, domain.ErrCodeSaveFailed, businessErr.Code)
}

func TestMemoryStore_Update(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, mustGold(t, "GD001", day(2024, 5, 10), "1000", 2)))

	updated := mustGold(t, "GD001", day(2024, 5, 11), "2000", 3)
	require.NoError(t, store.Update(ctx, updated))

	found, err := store.FindByCode(ctx, "GD001")
	require.NoError(t, err)
	assert.True(t, found.UnitPrice.Equal(dec("2000")))
	assert.Equal(t, 3, found.Quantity)
}

func TestMemoryStore_Update_MissingFails(t *testing.T) {
	store := NewMemoryStore()

	err := store.Update(context.Background(), mustGold(t, "GD001", day(2024, 5, 10), "1000", 2))

	var businessErr *domain.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, domain.ErrCodeUpdateFailed, businessErr.Code)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, mustGold(t, "GD001", day(2024, 5, 10), "1000", 2)))

	deleted, err := store.Delete(ctx, "GD001")
	require.NoError(t, err)
	assert.True(t, deleted)

	found, err := store.FindByCode(ctx, "GD001")
	require.NoError(t, err)
	assert.Nil(t, found)

	deleted, err = store.Delete(ctx, "GD001")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemoryStore_FindAll_OrderedByDateDesc(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, mustGold(t, "GD001", day(2024, 5, 10), "1000", 1)))
	require.NoError(t, store.Save(ctx, mustGold(t, "GD002", day(2024, 5, 12), "1000", 1)))
	require.NoError(t, store.Save(ctx, mustCurrency(t, "CT001", day(2024, 5, 11), "100", 1, "USD", "25000")))

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "GD002", all[0].Code)
	assert.Equal(t, "CT001", all[1].Code)
	assert.Equal(t, "GD001", all[2].Code)
}

func TestMemoryStore_FindByKind(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, mustGold(t, "GD001", day(2024, 5, 10), "1000", 1)))
	require.NoError(t, store.Save(ctx, mustCurrency(t, "CT001", day(2024, 5, 11), "100", 1, "USD", "25000")))

	gold, err := store.FindByKind(ctx, domain.KindGold)
	require.NoError(t, err)
	require.Len(t, gold, 1)
	assert.Equal(t, "GD001", gold[0].Code)

	currency, err := store.FindByKind(ctx, domain.KindCurrency)
	require.NoError(t, err)
	require.Len(t, currency, 1)
	assert.Equal(t, "CT001", currency[0].Code)
}

func TestMemoryStore_FindByDateRange_InclusiveBounds(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, mustGold(t, "GD001", day(2024, 5, 10), "1000", 1)))
	require.NoError(t, store.Save(ctx, mustGold(t, "GD002", day(2024, 5, 12), "1000", 1)))
	require.NoError(t, store.Save(ctx, mustGold(t, "GD003", day(2024, 5, 14), "1000", 1)))

	found, err := store.FindByDateRange(ctx, day(2024, 5, 10), day(2024, 5, 12))
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "GD002", found[0].Code)
	assert.Equal(t, "GD001", found[1].Code)
}

func TestMemoryStore_FindByUnitPriceGreaterThan_Strict(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, mustGold(t, "GD001", day(2024, 5, 10), "1000", 1)))
	require.NoError(t, store.Save(ctx, mustGold(t, "GD002", day(2024, 5, 11), "1001", 1)))

	found, err := store.FindByUnitPriceGreaterThan(ctx, dec("1000"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "GD002", found[0].Code)
}

func TestMemoryStore_Aggregates(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// gold: 1000*2 = 2000; currency: 100*10*25000 = 25000000 and 200*1*25000 = 5000000
	require.NoError(t, store.Save(ctx, mustGold(t, "GD001", day(2024, 5, 10), "1000", 2)))
	require.NoError(t, store.Save(ctx, mustCurrency(t, "CT001", day(2024, 5, 11), "100", 10, "USD", "25000")))
	require.NoError(t, store.Save(ctx, mustCurrency(t, "CT002", day(2024, 5, 20), "200", 1, "EUR", "25000")))

	goldCount, err := store.CountByKind(ctx, domain.KindGold)
	require.NoError(t, err)
	assert.Equal(t, int64(1), goldCount)

	currencySum, err := store.SumAmountByKind(ctx, domain.KindCurrency)
	require.NoError(t, err)
	assert.True(t, currencySum.Equal(dec("30000000")), "sum = %s", currencySum)

	currencyAvg, err := store.AvgAmountByKind(ctx, domain.KindCurrency)
	require.NoError(t, err)
	assert.True(t, currencyAvg.Equal(dec("15000000")), "avg = %s", currencyAvg)

	rangeCount, err := store.CountByKindInRange(ctx, domain.KindCurrency, day(2024, 5, 11), day(2024, 5, 11))
	require.NoError(t, err)
	assert.Equal(t, int64(1), rangeCount)

	rangeSum, err := store.SumAmountByKindInRange(ctx, domain.KindCurrency, day(2024, 5, 11), day(2024, 5, 11))
	require.NoError(t, err)
	assert.True(t, rangeSum.Equal(dec("25000000")), "sum = %s", rangeSum)

	rangeAvg, err := store.AvgAmountByKindInRange(ctx, domain.KindCurrency, day(2024, 5, 11), day(2024, 5, 11))
	require.NoError(t, err)
	assert.True(t, rangeAvg.Equal(dec("25000000")), "avg = %s", rangeAvg)
}

func TestMemoryStore_Aggregates_EmptyScopeIsZero(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sum, err := store.SumAmountByKind(ctx, domain.KindGold)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())

	avg, err := store.AvgAmountByKind(ctx, domain.KindCurrency)
	require.NoError(t, err)
	assert.True(t, avg.IsZero())

	count, err := store.CountByKindInRange(ctx, domain.KindGold, day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
