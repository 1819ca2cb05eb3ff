package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"shield-data-lab/internal/domain"
	"shield-data-lab/internal/storage"
)

// TransactionStore implements storage.TransactionStore using PostgreSQL.
type TransactionStore struct {
	pool *Pool
}

// NewTransactionStore creates a new TransactionStore.
func NewTransactionStore(pool *Pool) *TransactionStore {
	return &TransactionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TransactionStore = (*TransactionStore)(nil)

// ImportBulk loads transaction rows via COPY. detection_delay_days is NULL
// on legitimate rows.
func (s *TransactionStore) ImportBulk(ctx context.Context, txns []*domain.Transaction) (int64, error) {
	if len(txns) == 0 {
		return 0, nil
	}

	rows := make([][]any, len(txns))
	for i, tx := range txns {
		rows[i] = []any{
			tx.TransactionID, tx.CustomerID, tx.MerchantID, tx.Timestamp,
			tx.Amount, tx.Currency, tx.CategoryCode, tx.MerchantCountry,
			tx.MerchantCity, string(tx.Channel), tx.IsInternational,
			tx.IsFraud, string(tx.FraudType), tx.DetectionDelayDays,
			string(tx.Status), string(tx.RiskCategory),
		}
	}

	n, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"transactions"},
		[]string{
			"transaction_id", "customer_id", "merchant_id", "transaction_timestamp",
			"amount", "currency", "merchant_category_code", "merchant_country",
			"merchant_city", "channel", "is_international",
			"is_fraud", "fraud_type", "detection_delay_days", "status", "risk_category",
		},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, storage.ErrDuplicateKey
		}
		return 0, fmt.Errorf("import transactions: %w", err)
	}
	return n, nil
}

// GetByID retrieves a transaction by id. Returns ErrNotFound if not exists.
func (s *TransactionStore) GetByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT transaction_id, customer_id, merchant_id, transaction_timestamp,
		       amount, currency, merchant_category_code, merchant_country,
		       merchant_city, channel, is_international, is_fraud, fraud_type,
		       detection_delay_days, status, risk_category
		FROM transactions
		WHERE transaction_id = $1
	`

	var tx domain.Transaction
	var channel, fraudType, status, risk string
	err := s.pool.QueryRow(ctx, query, transactionID).Scan(
		&tx.TransactionID, &tx.CustomerID, &tx.MerchantID, &tx.Timestamp,
		&tx.Amount, &tx.Currency, &tx.CategoryCode, &tx.MerchantCountry,
		&tx.MerchantCity, &channel, &tx.IsInternational, &tx.IsFraud,
		&fraudType, &tx.DetectionDelayDays, &status, &risk,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get transaction by id: %w", err)
	}
	tx.Channel = domain.Channel(channel)
	tx.FraudType = domain.FraudType(fraudType)
	tx.Status = domain.Status(status)
	tx.RiskCategory = domain.RiskCategory(risk)
	return &tx, nil
}

// Count returns the number of staged transaction rows.
func (s *TransactionStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}
