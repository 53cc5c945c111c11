package storage

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/thanhvdo/goldfx-be/internal/domain"
)

const statementTimeout = 5 * time.Second

// amountSQL computes the kind-specific derived amount in SQL: gold is exact
// price*quantity, currency rounds to 2 decimals and ignores the rate for VND.
const amountSQL = `CASE WHEN kind = 'VANG' THEN unit_price * quantity
	WHEN currency_code = 'VND' THEN ROUND(unit_price * quantity, 2)
	ELSE ROUND(unit_price * quantity * exchange_rate, 2) END`

const selectColumns = `code, tx_date, unit_price, quantity, kind, gold_type, currency_code, exchange_rate`

// PostgresStore implements domain.Store against a single transactions table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens the connection, verifies it with a ping and ensures
// the schema exists.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, domain.NewDataAccessError("open", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return nil, domain.NewDataAccessError("ping", err)
	}

	store := &PostgresStore{db: db}
	if err := store.ensureSchema(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *PostgresStore) ensureSchema() error {
	schemaSQL := `
CREATE TABLE IF NOT EXISTS transactions (
    code VARCHAR(20) PRIMARY KEY,
    tx_date DATE NOT NULL,
    unit_price NUMERIC(24,4) NOT NULL CHECK (unit_price > 0),
    quantity INTEGER NOT NULL CHECK (quantity > 0),
    kind VARCHAR(10) NOT NULL CHECK (kind IN ('VANG', 'TIEN_TE')),
    gold_type VARCHAR(50),
    currency_code CHAR(3),
    exchange_rate NUMERIC(12,4)
);

CREATE INDEX IF NOT EXISTS idx_transactions_tx_date ON transactions (tx_date);
CREATE INDEX IF NOT EXISTS idx_transactions_kind ON transactions (kind);
`

	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return domain.NewDataAccessError("ensure schema", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Save(ctx context.Context, tx *domain.Transaction) error {
	insertSQL := `INSERT INTO transactions (` + selectColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	ctx, cancel := context.WithTimeout(ctx, statementTimeout)
	defer cancel()

	result, err := s.db.ExecContext(ctx, insertSQL,
		tx.Code, tx.Date, tx.UnitPrice, tx.Quantity, tx.Kind,
		nullableString(tx.GoldType), nullableString(tx.CurrencyCode), nullableRate(tx))
	if err != nil {
		return domain.NewDataAccessError("save", err)
	}

	return checkRowsAffected(result, domain.ErrCodeSaveFailed, "could not save transaction")
}

func (s *PostgresStore) Update(ctx context.Context, tx *domain.Transaction) error {
	updateSQL := `UPDATE transactions
		SET tx_date = $1, unit_price = $2, quantity = $3, kind = $4, gold_type = $5, currency_code = $6, exchange_rate = $7
		WHERE code = $8`

	ctx, cancel := context.WithTimeout(ctx, statementTimeout)
	defer cancel()

	result, err := s.db.ExecContext(ctx, updateSQL,
		tx.Date, tx.UnitPrice, tx.Quantity, tx.Kind,
		nullableString(tx.GoldType), nullableString(tx.CurrencyCode), nullableRate(tx), tx.Code)
	if err != nil {
		return domain.NewDataAccessError("update", err)
	}

	return checkRowsAffected(result, domain.ErrCodeUpdateFailed, "could not update transaction")
}

func (s *PostgresStore) Delete(ctx context.Context, code string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, statementTimeout)
	defer cancel()

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE code = $1`, code)
	if err != nil {
		return false, domain.NewDataAccessError("delete", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, domain.NewDataAccessError("delete", err)
	}
	return affected > 0, nil
}

func (s *PostgresStore) FindByCode(ctx context.Context, code string) (*domain.Transaction, error) {
	querySQL := `SELECT ` + selectColumns + ` FROM transactions WHERE code = $1`

	ctx, cancel := context.WithTimeout(ctx, statementTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx, querySQL, code)
	tx, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewDataAccessError("find by code", err)
	}
	return tx, nil
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]domain.Transaction, error) {
	querySQL := `SELECT ` + selectColumns + ` FROM transactions ORDER BY tx_date DESC, code ASC`
	return s.queryTransactions(ctx, "find all", querySQL)
}

func (s *PostgresStore) Exists(ctx context.Context, code string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, statementTimeout)
	defer cancel()

	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM transactions WHERE code = $1`, code).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, domain.NewDataAccessError("exists", err)
	}
	return true, nil
}

func (s *PostgresStore) FindByKind(ctx context.Context, kind domain.TransactionKind) ([]domain.Transaction, error) {
	querySQL := `SELECT ` + selectColumns + ` FROM transactions WHERE kind = $1 ORDER BY tx_date DESC, code ASC`
	return s.queryTransactions(ctx, "find by kind", querySQL, kind)
}

func (s *PostgresStore) FindByDateRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	querySQL := `SELECT ` + selectColumns + ` FROM transactions WHERE tx_date BETWEEN $1 AND $2 ORDER BY tx_date DESC, code ASC`
	return s.queryTransactions(ctx, "find by date range", querySQL, from, to)
}

func (s *PostgresStore) FindByUnitPriceGreaterThan(ctx context.Context, threshold decimal.Decimal) ([]domain.Transaction, error) {
	querySQL := `SELECT ` + selectColumns + ` FROM transactions WHERE unit_price > $1 ORDER BY unit_price DESC, code ASC`
	return s.queryTransactions(ctx, "find by unit price", querySQL, threshold)
}

func (s *PostgresStore) CountByKind(ctx context.Context, kind domain.TransactionKind) (int64, error) {
	return s.queryCount(ctx, "count by kind",
		`SELECT COUNT(*) FROM transactions WHERE kind = $1`, kind)
}

func (s *PostgresStore) SumAmountByKind(ctx context.Context, kind domain.TransactionKind) (decimal.Decimal, error) {
	return s.queryDecimal(ctx, "sum amount by kind",
		`SELECT COALESCE(SUM(`+amountSQL+`), 0) FROM transactions WHERE kind = $1`, kind)
}

func (s *PostgresStore) AvgAmountByKind(ctx context.Context, kind domain.TransactionKind) (decimal.Decimal, error) {
	return s.queryDecimal(ctx, "avg amount by kind",
		`SELECT COALESCE(AVG(`+amountSQL+`), 0) FROM transactions WHERE kind = $1`, kind)
}

func (s *PostgresStore) CountByKindInRange(ctx context.Context, kind domain.TransactionKind, from, to time.Time) (int64, error) {
	return s.queryCount(ctx, "count by kind in range",
		`SELECT COUNT(*) FROM transactions WHERE kind = $1 AND tx_date BETWEEN $2 AND $3`, kind, from, to)
}

func (s *PostgresStore) SumAmountByKindInRange(ctx context.Context, kind domain.TransactionKind, from, to time.Time) (decimal.Decimal, error) {
	return s.queryDecimal(ctx, "sum amount by kind in range",
		`SELECT COALESCE(SUM(`+amountSQL+`), 0) FROM transactions WHERE kind = $1 AND tx_date BETWEEN $2 AND $3`, kind, from, to)
}

func (s *PostgresStore) AvgAmountByKindInRange(ctx context.Context, kind domain.TransactionKind, from, to time.Time) (decimal.Decimal, error) {
	return s.queryDecimal(ctx, "avg amount by kind in range",
		`SELECT COALESCE(AVG(`+amountSQL+`), 0) FROM transactions WHERE kind = $1 AND tx_date BETWEEN $2 AND $3`, kind, from, to)
}

func (s *PostgresStore) queryTransactions(ctx context.Context, op, querySQL string, args ...interface{}) ([]domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, statementTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, querySQL, args...)
	if err != nil {
		return nil, domain.NewDataAccessError(op, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, domain.NewDataAccessError(op, err)
		}
		transactions = append(transactions, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewDataAccessError(op, err)
	}

	return transactions, nil
}

func (s *PostgresStore) queryCount(ctx context.Context, op, querySQL string, args ...interface{}) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, statementTimeout)
	defer cancel()

	var count int64
	if err := s.db.QueryRowContext(ctx, querySQL, args...).Scan(&count); err != nil {
		return 0, domain.NewDataAccessError(op, err)
	}
	return count, nil
}

func (s *PostgresStore) queryDecimal(ctx context.Context, op, querySQL string, args ...interface{}) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, statementTimeout)
	defer cancel()

	var value decimal.Decimal
	if err := s.db.QueryRowContext(ctx, querySQL, args...).Scan(&value); err != nil {
		return decimal.Zero, domain.NewDataAccessError(op, err)
	}
	return value, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var tx domain.Transaction
	var goldType, currencyCode sql.NullString
	var exchangeRate decimal.NullDecimal

	err := row.Scan(&tx.Code, &tx.Date, &tx.UnitPrice, &tx.Quantity, &tx.Kind,
		&goldType, &currencyCode, &exchangeRate)
	if err != nil {
		return nil, err
	}

	tx.Date = domain.DateOnly(tx.Date)
	switch tx.Kind {
	case domain.KindGold:
		tx.GoldType = goldType.String
	case domain.KindCurrency:
		tx.CurrencyCode = currencyCode.String
		tx.ExchangeRate = exchangeRate.Decimal
	}

	return &tx, nil
}

func checkRowsAffected(result sql.Result, code, message string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.NewDataAccessError("rows affected", err)
	}
	if affected == 0 {
		return domain.NewBusinessError(code, message)
	}
	return nil
}

func nullableString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func nullableRate(tx *domain.Transaction) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: tx.ExchangeRate, Valid: tx.Kind == domain.KindCurrency}
}
