// Package dataset ties the five generated tables together and checks their
// cross-table invariants before anything downstream consumes them.
package dataset

import (
	"errors"
	"fmt"

	"shield-data-lab/internal/domain"
)

// Validation errors.
var (
	ErrOrphanRow       = errors.New("row references a missing parent")
	ErrLabelMismatch   = errors.New("fraud labels disagree")
	ErrCardinality     = errors.New("table cardinality mismatch")
	ErrDuplicateID     = errors.New("duplicate primary key")
	ErrInvalidAlertMix = errors.New("alert resolution disagrees with ground truth")
	ErrNegativeAmount  = errors.New("non-positive amount")
	ErrMissingDelay    = errors.New("detection delay missing on fraud row")
	ErrUnexpectedDelay = errors.New("detection delay set on legitimate row")
)

// Dataset is one complete generated ecosystem. The slices keep generation
// order: customers and merchants by id, transactions by draw index, devices
// one-to-one with transactions, alerts by alert id.
type Dataset struct {
	Seed         int64
	Customers    []*domain.Customer
	Merchants    []*domain.Merchant
	Transactions []*domain.Transaction
	Devices      []*domain.Device
	Alerts       []*domain.Alert
}

// Validate checks referential integrity and label consistency across all
// five tables. The first violation is returned; a valid run has none, so any
// error means the generator itself regressed.
func (d *Dataset) Validate() error {
	customerIDs := make(map[string]bool, len(d.Customers))
	for _, c := range d.Customers {
		if customerIDs[c.CustomerID] {
			return fmt.Errorf("%w: customer %s", ErrDuplicateID, c.CustomerID)
		}
		customerIDs[c.CustomerID] = true
	}

	merchantIDs := make(map[string]bool, len(d.Merchants))
	for _, m := range d.Merchants {
		if merchantIDs[m.MerchantID] {
			return fmt.Errorf("%w: merchant %s", ErrDuplicateID, m.MerchantID)
		}
		merchantIDs[m.MerchantID] = true
	}

	txnByID := make(map[string]*domain.Transaction, len(d.Transactions))
	for _, tx := range d.Transactions {
		if _, dup := txnByID[tx.TransactionID]; dup {
			return fmt.Errorf("%w: transaction %s", ErrDuplicateID, tx.TransactionID)
		}
		txnByID[tx.TransactionID] = tx

		if !customerIDs[tx.CustomerID] {
			return fmt.Errorf("%w: transaction %s -> customer %s", ErrOrphanRow, tx.TransactionID, tx.CustomerID)
		}
		if !merchantIDs[tx.MerchantID] {
			return fmt.Errorf("%w: transaction %s -> merchant %s", ErrOrphanRow, tx.TransactionID, tx.MerchantID)
		}
		if tx.Amount <= 0 {
			return fmt.Errorf("%w: transaction %s amount %f", ErrNegativeAmount, tx.TransactionID, tx.Amount)
		}
		if tx.IsFraud != (tx.FraudType != domain.FraudLegit) {
			return fmt.Errorf("%w: transaction %s is_fraud=%v fraud_type=%q",
				ErrLabelMismatch, tx.TransactionID, tx.IsFraud, tx.FraudType)
		}
		if tx.IsFraud && tx.DetectionDelayDays == nil {
			return fmt.Errorf("%w: transaction %s", ErrMissingDelay, tx.TransactionID)
		}
		if !tx.IsFraud && tx.DetectionDelayDays != nil {
			return fmt.Errorf("%w: transaction %s", ErrUnexpectedDelay, tx.TransactionID)
		}
	}

	if len(d.Devices) != len(d.Transactions) {
		return fmt.Errorf("%w: %d fingerprints for %d transactions",
			ErrCardinality, len(d.Devices), len(d.Transactions))
	}
	for _, dev := range d.Devices {
		if _, ok := txnByID[dev.TransactionID]; !ok {
			return fmt.Errorf("%w: fingerprint -> transaction %s", ErrOrphanRow, dev.TransactionID)
		}
	}

	for _, a := range d.Alerts {
		tx, ok := txnByID[a.TransactionID]
		if !ok {
			return fmt.Errorf("%w: alert %s -> transaction %s", ErrOrphanRow, a.AlertID, a.TransactionID)
		}
		if a.CustomerID != tx.CustomerID {
			return fmt.Errorf("%w: alert %s customer %s vs transaction customer %s",
				ErrOrphanRow, a.AlertID, a.CustomerID, tx.CustomerID)
		}
		if a.IsConfirmedFraud != tx.IsFraud {
			return fmt.Errorf("%w: alert %s confirmed=%v but transaction is_fraud=%v",
				ErrInvalidAlertMix, a.AlertID, a.IsConfirmedFraud, tx.IsFraud)
		}
		if a.IsConfirmedFraud && a.FraudType != tx.FraudType {
			return fmt.Errorf("%w: alert %s fraud_type %q vs transaction %q",
				ErrLabelMismatch, a.AlertID, a.FraudType, tx.FraudType)
		}
	}

	return nil
}
