package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"shield-data-lab/internal/domain"
	"shield-data-lab/internal/storage"
)

// AlertStore implements storage.AlertStore using PostgreSQL.
type AlertStore struct {
	pool *Pool
}

// NewAlertStore creates a new AlertStore.
func NewAlertStore(pool *Pool) *AlertStore {
	return &AlertStore{pool: pool}
}

// Compile-time interface check.
var _ storage.AlertStore = (*AlertStore)(nil)

// ImportBulk loads alert rows via COPY. fraud_type is NULL on false
// positives.
func (s *AlertStore) ImportBulk(ctx context.Context, alerts []*domain.Alert) (int64, error) {
	if len(alerts) == 0 {
		return 0, nil
	}

	rows := make([][]any, len(alerts))
	for i, a := range alerts {
		var fraudType *string
		if a.FraudType != "" {
			ft := string(a.FraudType)
			fraudType = &ft
		}
		rows[i] = []any{
			a.AlertID, a.TransactionID, a.CustomerID, a.AlertDate,
			string(a.AlertType), a.AlertScore, a.IsConfirmedFraud, fraudType,
			a.ResponseTimeMinutes, a.Reviewer, string(a.Resolution),
			a.ConfirmationDate,
		}
	}

	n, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"fraud_alerts_history"},
		[]string{
			"alert_id", "transaction_id", "customer_id", "alert_date",
			"alert_type", "alert_score", "is_confirmed_fraud", "fraud_type",
			"response_time_minutes", "reviewed_by", "resolution",
			"confirmation_date",
		},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, storage.ErrDuplicateKey
		}
		return 0, fmt.Errorf("import alerts: %w", err)
	}
	return n, nil
}

// Count returns the number of staged alert rows.
func (s *AlertStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM fraud_alerts_history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count alerts: %w", err)
	}
	return n, nil
}
