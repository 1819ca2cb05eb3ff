package stats

import (
	"testing"
	"time"

	"shield-data-lab/internal/dataset"
	"shield-data-lab/internal/domain"
)

func TestCompute(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	delay := 5

	d := &dataset.Dataset{
		Seed: 42,
		Customers: []*domain.Customer{
			{CustomerID: "CUST_00000001", Segment: domain.SegmentBasic},
			{CustomerID: "CUST_00000002", Segment: domain.SegmentBasic},
			{CustomerID: "CUST_00000003", Segment: domain.SegmentPremium},
		},
		Merchants: []*domain.Merchant{
			{MerchantID: "MERCH_0000001"},
			{MerchantID: "MERCH_0000002", IsCompromised: true},
		},
		Transactions: []*domain.Transaction{
			{
				TransactionID: "TXN_0000000001", CustomerID: "CUST_00000001",
				MerchantID: "MERCH_0000001", Timestamp: ts, Amount: 100,
				FraudType: domain.FraudLegit, Status: domain.StatusApproved,
			},
			{
				TransactionID: "TXN_0000000002", CustomerID: "CUST_00000002",
				MerchantID: "MERCH_0000002", Timestamp: ts, Amount: 50,
				FraudType: domain.FraudLegit, Status: domain.StatusDeclined,
				IsInternational: true,
			},
			{
				TransactionID: "TXN_0000000003", CustomerID: "CUST_00000003",
				MerchantID: "MERCH_0000002", Timestamp: ts, Amount: 2000,
				IsFraud: true, FraudType: domain.FraudAccountTakeover,
				DetectionDelayDays: &delay, Status: domain.StatusApproved,
			},
		},
		Devices: []*domain.Device{
			{TransactionID: "TXN_0000000001", DeviceID: "DEV_00000000", DeviceUserCount: 1},
			{TransactionID: "TXN_0000000002", DeviceID: "DEV_00000001", DeviceUserCount: 1},
			{TransactionID: "TXN_0000000003", DeviceID: "DEV_FRAUD_00000", DeviceUserCount: 5},
		},
		Alerts: []*domain.Alert{
			{AlertID: "ALERT_00000001", TransactionID: "TXN_0000000003", CustomerID: "CUST_00000003", IsConfirmedFraud: true, FraudType: domain.FraudAccountTakeover},
			{AlertID: "ALERT_00000002", TransactionID: "TXN_0000000001", CustomerID: "CUST_00000001"},
		},
	}

	s := Compute(d)

	if s.Customers != 3 || s.Merchants != 2 || s.Transactions != 3 {
		t.Fatalf("bad cardinalities: %+v", s)
	}
	if s.CustomersBySeg[domain.SegmentBasic] != 2 || s.CustomersBySeg[domain.SegmentPremium] != 1 {
		t.Errorf("bad segment mix: %v", s.CustomersBySeg)
	}
	if s.Compromised != 1 {
		t.Errorf("compromised merchants = %d, want 1", s.Compromised)
	}
	if s.FraudCount != 1 || s.FraudByType[domain.FraudAccountTakeover] != 1 {
		t.Errorf("bad fraud counts: %d, %v", s.FraudCount, s.FraudByType)
	}
	if s.FraudRate < 0.33 || s.FraudRate > 0.34 {
		t.Errorf("fraud rate = %f, want 1/3", s.FraudRate)
	}
	if s.TotalAmount != 2150 || s.FraudAmount != 2000 {
		t.Errorf("amounts = %f / %f, want 2150 / 2000", s.TotalAmount, s.FraudAmount)
	}
	if s.DeclinedCount != 1 || s.International != 1 {
		t.Errorf("declined = %d, international = %d", s.DeclinedCount, s.International)
	}
	if s.UniqueDevices != 3 || s.SharedDevices != 1 {
		t.Errorf("devices = %d unique, %d shared", s.UniqueDevices, s.SharedDevices)
	}
	if s.Alerts != 2 || s.ConfirmedFraud != 1 || s.AlertPrecision != 0.5 {
		t.Errorf("alerts = %d, confirmed = %d, precision = %f", s.Alerts, s.ConfirmedFraud, s.AlertPrecision)
	}
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(&dataset.Dataset{})
	if s.FraudRate != 0 || s.AlertPrecision != 0 {
		t.Fatalf("empty dataset must not divide by zero: %+v", s)
	}
}
