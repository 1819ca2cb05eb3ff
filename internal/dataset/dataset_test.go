package dataset

import (
	"errors"
	"testing"
	"time"

	"shield-data-lab/internal/domain"
)

func validDataset() *Dataset {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	delay := 5
	return &Dataset{
		Seed: 42,
		Customers: []*domain.Customer{
			{CustomerID: "CUST_00000001"},
			{CustomerID: "CUST_00000002"},
		},
		Merchants: []*domain.Merchant{
			{MerchantID: "MERCH_0000001"},
		},
		Transactions: []*domain.Transaction{
			{
				TransactionID: "TXN_0000000001", CustomerID: "CUST_00000001",
				MerchantID: "MERCH_0000001", Timestamp: ts, Amount: 42.50,
				FraudType: domain.FraudLegit,
			},
			{
				TransactionID: "TXN_0000000002", CustomerID: "CUST_00000002",
				MerchantID: "MERCH_0000001", Timestamp: ts, Amount: 1200,
				IsFraud: true, FraudType: domain.FraudAccountTakeover,
				DetectionDelayDays: &delay,
			},
		},
		Devices: []*domain.Device{
			{TransactionID: "TXN_0000000001", DeviceID: "DEV_00000000"},
			{TransactionID: "TXN_0000000002", DeviceID: "DEV_FRAUD_00000"},
		},
		Alerts: []*domain.Alert{
			{
				AlertID: "ALERT_00000001", TransactionID: "TXN_0000000002",
				CustomerID: "CUST_00000002", IsConfirmedFraud: true,
				FraudType: domain.FraudAccountTakeover,
			},
		},
	}
}

func TestValidate_CleanDataset(t *testing.T) {
	if err := validDataset().Validate(); err != nil {
		t.Fatalf("valid dataset rejected: %v", err)
	}
}

func TestValidate_OrphanTransaction(t *testing.T) {
	d := validDataset()
	d.Transactions[0].CustomerID = "CUST_99999999"
	if err := d.Validate(); !errors.Is(err, ErrOrphanRow) {
		t.Fatalf("expected ErrOrphanRow, got %v", err)
	}
}

func TestValidate_LabelMismatch(t *testing.T) {
	d := validDataset()
	d.Transactions[1].IsFraud = false
	d.Transactions[1].DetectionDelayDays = nil
	if err := d.Validate(); !errors.Is(err, ErrLabelMismatch) {
		t.Fatalf("expected ErrLabelMismatch, got %v", err)
	}
}

func TestValidate_MissingDelay(t *testing.T) {
	d := validDataset()
	d.Transactions[1].DetectionDelayDays = nil
	if err := d.Validate(); !errors.Is(err, ErrMissingDelay) {
		t.Fatalf("expected ErrMissingDelay, got %v", err)
	}
}

func TestValidate_DelayOnLegitRow(t *testing.T) {
	d := validDataset()
	delay := 3
	d.Transactions[0].DetectionDelayDays = &delay
	if err := d.Validate(); !errors.Is(err, ErrUnexpectedDelay) {
		t.Fatalf("expected ErrUnexpectedDelay, got %v", err)
	}
}

func TestValidate_DeviceCardinality(t *testing.T) {
	d := validDataset()
	d.Devices = d.Devices[:1]
	if err := d.Validate(); !errors.Is(err, ErrCardinality) {
		t.Fatalf("expected ErrCardinality, got %v", err)
	}
}

func TestValidate_DuplicateTransactionID(t *testing.T) {
	d := validDataset()
	d.Transactions[1].TransactionID = d.Transactions[0].TransactionID
	if err := d.Validate(); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestValidate_AlertDisagreesWithGroundTruth(t *testing.T) {
	d := validDataset()
	d.Alerts[0].IsConfirmedFraud = false
	if err := d.Validate(); !errors.Is(err, ErrInvalidAlertMix) {
		t.Fatalf("expected ErrInvalidAlertMix, got %v", err)
	}
}

func TestValidate_AlertOrphan(t *testing.T) {
	d := validDataset()
	d.Alerts[0].TransactionID = "TXN_9999999999"
	if err := d.Validate(); !errors.Is(err, ErrOrphanRow) {
		t.Fatalf("expected ErrOrphanRow, got %v", err)
	}
}

func TestValidate_NonPositiveAmount(t *testing.T) {
	d := validDataset()
	d.Transactions[0].Amount = 0
	if err := d.Validate(); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}
