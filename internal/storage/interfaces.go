// Package storage defines the persistence interfaces of the generator.
// Postgres backs the staging schema the quality checks run against;
// ClickHouse backs the analytics tables.
package storage

import (
	"context"

	"shield-data-lab/internal/domain"
)

// CustomerStore persists the customer profile table.
type CustomerStore interface {
	ImportBulk(ctx context.Context, customers []*domain.Customer) (int64, error)
	GetByID(ctx context.Context, customerID string) (*domain.Customer, error)
	Count(ctx context.Context) (int64, error)
}

// MerchantStore persists the merchant registry.
type MerchantStore interface {
	ImportBulk(ctx context.Context, merchants []*domain.Merchant) (int64, error)
	GetByID(ctx context.Context, merchantID string) (*domain.Merchant, error)
	Count(ctx context.Context) (int64, error)
}

// TransactionStore persists the transaction table.
type TransactionStore interface {
	ImportBulk(ctx context.Context, txns []*domain.Transaction) (int64, error)
	GetByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	Count(ctx context.Context) (int64, error)
}

// DeviceStore persists the device fingerprint table.
type DeviceStore interface {
	ImportBulk(ctx context.Context, devices []*domain.Device) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// AlertStore persists the alert history.
type AlertStore interface {
	ImportBulk(ctx context.Context, alerts []*domain.Alert) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// QualityReport is the result of the post-import staging checks. A clean
// import has every violation counter at zero.
type QualityReport struct {
	Customers    int64
	Merchants    int64
	Transactions int64
	Devices      int64
	Alerts       int64

	OrphanTransactions int64 // transactions without a valid customer or merchant
	OrphanDevices      int64
	OrphanAlerts       int64
	LabelMismatches    int64 // is_fraud disagreeing with fraud_type
	FraudCount         int64
	FraudRate          float64
}

// Clean reports whether the staging import passed every check.
func (r *QualityReport) Clean() bool {
	return r.OrphanTransactions == 0 && r.OrphanDevices == 0 &&
		r.OrphanAlerts == 0 && r.LabelMismatches == 0
}

// QualityChecker runs relational checks against an imported dataset.
type QualityChecker interface {
	Check(ctx context.Context) (*QualityReport, error)
}
