package postgres

import (
	"context"
	"fmt"

	"shield-data-lab/internal/storage"
)

// QualityChecker runs the post-import relational checks against the staging
// schema. It duplicates the in-memory dataset validation on purpose: the
// staging copy is what analysts query, so it is verified independently.
type QualityChecker struct {
	pool *Pool
}

// NewQualityChecker creates a new QualityChecker.
func NewQualityChecker(pool *Pool) *QualityChecker {
	return &QualityChecker{pool: pool}
}

// Compile-time interface check.
var _ storage.QualityChecker = (*QualityChecker)(nil)

// Check runs every staging quality query and collects the counters.
func (q *QualityChecker) Check(ctx context.Context) (*storage.QualityReport, error) {
	r := &storage.QualityReport{}

	counts := []struct {
		query string
		dst   *int64
	}{
		{`SELECT count(*) FROM customer_profile`, &r.Customers},
		{`SELECT count(*) FROM merchant_registry`, &r.Merchants},
		{`SELECT count(*) FROM transactions`, &r.Transactions},
		{`SELECT count(*) FROM device_fingerprinting`, &r.Devices},
		{`SELECT count(*) FROM fraud_alerts_history`, &r.Alerts},
		{
			`SELECT count(*) FROM transactions t
			 LEFT JOIN customer_profile c ON c.customer_id = t.customer_id
			 LEFT JOIN merchant_registry m ON m.merchant_id = t.merchant_id
			 WHERE c.customer_id IS NULL OR m.merchant_id IS NULL`,
			&r.OrphanTransactions,
		},
		{
			`SELECT count(*) FROM device_fingerprinting d
			 LEFT JOIN transactions t ON t.transaction_id = d.transaction_id
			 WHERE t.transaction_id IS NULL`,
			&r.OrphanDevices,
		},
		{
			`SELECT count(*) FROM fraud_alerts_history a
			 LEFT JOIN transactions t ON t.transaction_id = a.transaction_id
			 WHERE t.transaction_id IS NULL`,
			&r.OrphanAlerts,
		},
		{
			`SELECT count(*) FROM transactions
			 WHERE is_fraud <> (fraud_type <> 'legit')
			    OR (is_fraud AND detection_delay_days IS NULL)
			    OR (NOT is_fraud AND detection_delay_days IS NOT NULL)`,
			&r.LabelMismatches,
		},
		{`SELECT count(*) FROM transactions WHERE is_fraud`, &r.FraudCount},
	}

	for _, c := range counts {
		if err := q.pool.QueryRow(ctx, c.query).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("quality check: %w", err)
		}
	}

	if r.Transactions > 0 {
		r.FraudRate = float64(r.FraudCount) / float64(r.Transactions)
	}
	return r, nil
}
