package postgres

import (
	"context"
	"fmt"

	"shield-data-lab/internal/dataset"
	"shield-data-lab/internal/observability"
	"shield-data-lab/internal/storage"
)

// Importer loads a complete generated dataset into the staging schema and
// verifies the copy.
type Importer struct {
	pool *Pool

	customers    *CustomerStore
	merchants    *MerchantStore
	transactions *TransactionStore
	devices      *DeviceStore
	alerts       *AlertStore
	quality      *QualityChecker
}

// NewImporter creates an Importer over one pool.
func NewImporter(pool *Pool) *Importer {
	return &Importer{
		pool:         pool,
		customers:    NewCustomerStore(pool),
		merchants:    NewMerchantStore(pool),
		transactions: NewTransactionStore(pool),
		devices:      NewDeviceStore(pool),
		alerts:       NewAlertStore(pool),
		quality:      NewQualityChecker(pool),
	}
}

// Import truncates the staging schema, loads the tables in foreign-key
// order and runs the quality checks. A report with violations means the
// import is unusable and the caller should treat the run as failed.
func (im *Importer) Import(ctx context.Context, d *dataset.Dataset) (*storage.QualityReport, error) {
	if err := im.Truncate(ctx); err != nil {
		return nil, err
	}

	loads := []struct {
		table string
		run   func() (int64, error)
	}{
		{"customer_profile", func() (int64, error) { return im.customers.ImportBulk(ctx, d.Customers) }},
		{"merchant_registry", func() (int64, error) { return im.merchants.ImportBulk(ctx, d.Merchants) }},
		{"transactions", func() (int64, error) { return im.transactions.ImportBulk(ctx, d.Transactions) }},
		{"device_fingerprinting", func() (int64, error) { return im.devices.ImportBulk(ctx, d.Devices) }},
		{"fraud_alerts_history", func() (int64, error) { return im.alerts.ImportBulk(ctx, d.Alerts) }},
	}
	for _, load := range loads {
		n, err := load.run()
		if err != nil {
			return nil, err
		}
		observability.RecordRowsStaged(load.table, n)
	}

	report, err := im.quality.Check(ctx)
	if err != nil {
		return nil, err
	}
	if report.OrphanTransactions > 0 {
		observability.RecordQualityCheckFailure("orphan_transactions")
	}
	if report.OrphanDevices > 0 {
		observability.RecordQualityCheckFailure("orphan_devices")
	}
	if report.OrphanAlerts > 0 {
		observability.RecordQualityCheckFailure("orphan_alerts")
	}
	if report.LabelMismatches > 0 {
		observability.RecordQualityCheckFailure("label_mismatches")
	}
	return report, nil
}

// Truncate empties all staging tables. Child tables first is not needed
// with CASCADE but the order documents the dependency chain.
func (im *Importer) Truncate(ctx context.Context) error {
	_, err := im.pool.Exec(ctx, `
		TRUNCATE fraud_alerts_history, device_fingerprinting, transactions,
		         merchant_registry, customer_profile CASCADE
	`)
	if err != nil {
		return fmt.Errorf("truncate staging schema: %w", err)
	}
	return nil
}
