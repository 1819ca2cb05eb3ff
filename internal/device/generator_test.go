package device

import (
	"strings"
	"testing"
	"time"

	"shield-data-lab/internal/domain"
	"shield-data-lab/internal/randx"
)

func legitTxn(id, customer string) *domain.Transaction {
	return &domain.Transaction{
		TransactionID: id,
		CustomerID:    customer,
		Timestamp:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		FraudType:     domain.FraudLegit,
	}
}

func takeoverTxn(id, customer string) *domain.Transaction {
	tx := legitTxn(id, customer)
	tx.IsFraud = true
	tx.FraudType = domain.FraudAccountTakeover
	return tx
}

func TestGenerate_OneRowPerTransaction(t *testing.T) {
	txns := []*domain.Transaction{
		legitTxn("TXN_0000000001", "CUST_00000001"),
		legitTxn("TXN_0000000002", "CUST_00000002"),
		legitTxn("TXN_0000000003", "CUST_00000001"),
	}

	devices := NewGenerator(randx.New(42)).Generate(txns)
	if len(devices) != len(txns) {
		t.Fatalf("expected %d fingerprints, got %d", len(txns), len(devices))
	}
	for i, d := range devices {
		if d.TransactionID != txns[i].TransactionID {
			t.Fatalf("row %d: fingerprint for %s, want %s", i, d.TransactionID, txns[i].TransactionID)
		}
	}
}

func TestGenerate_DeviceContinuity(t *testing.T) {
	// With churn at 5%, a customer's consecutive rows mostly share a device.
	var txns []*domain.Transaction
	for i := 0; i < 50; i++ {
		txns = append(txns, legitTxn("TXN_00000000"+string(rune('0'+i%10)), "CUST_00000001"))
	}

	devices := NewGenerator(randx.New(42)).Generate(txns)

	same := 0
	for i := 1; i < len(devices); i++ {
		if devices[i].DeviceID == devices[i-1].DeviceID {
			same++
		}
	}
	if same < 30 {
		t.Fatalf("expected mostly stable device ids, got %d of %d unchanged", same, len(devices)-1)
	}

	// The flag marks the row after which the device changed.
	for i := 1; i < len(devices); i++ {
		if devices[i].DeviceID != devices[i-1].DeviceID && !devices[i-1].DeviceChanged {
			t.Fatalf("row %d switched device without the previous row flagging it", i)
		}
	}
}

func TestGenerate_RingDevicesShared(t *testing.T) {
	// Many takeover rows across distinct customers must produce at least one
	// shared ring device.
	var txns []*domain.Transaction
	for i := 0; i < 200; i++ {
		customer := "CUST_" + strings.Repeat("0", 7) + string(rune('A'+i%26))
		txns = append(txns, takeoverTxn("TXN_0000000001", customer))
	}

	devices := NewGenerator(randx.New(42)).Generate(txns)

	ringRows := 0
	shared := false
	for _, d := range devices {
		if strings.HasPrefix(d.DeviceID, "DEV_FRAUD_") {
			ringRows++
			if d.DeviceUserCount > 1 {
				shared = true
			}
		}
	}
	if ringRows == 0 {
		t.Fatal("expected some takeover rows on ring devices")
	}
	if !shared {
		t.Fatal("expected at least one ring device shared across customers")
	}
}

func TestGenerate_EmulatorOnlyOnFraud(t *testing.T) {
	var txns []*domain.Transaction
	for i := 0; i < 300; i++ {
		txns = append(txns, legitTxn("TXN_0000000001", "CUST_00000001"))
	}

	for _, d := range NewGenerator(randx.New(42)).Generate(txns) {
		if d.IsEmulator {
			t.Fatal("legitimate traffic must never flag an emulator")
		}
	}
}

func TestGenerate_VPNRateSkew(t *testing.T) {
	var fraud, legit []*domain.Transaction
	for i := 0; i < 500; i++ {
		fraud = append(fraud, takeoverTxn("TXN_0000000001", "CUST_00000001"))
		legit = append(legit, legitTxn("TXN_0000000001", "CUST_00000002"))
	}

	count := func(ds []*domain.Device) int {
		n := 0
		for _, d := range ds {
			if d.IsVPN {
				n++
			}
		}
		return n
	}

	fraudVPN := count(NewGenerator(randx.New(1)).Generate(fraud))
	legitVPN := count(NewGenerator(randx.New(1)).Generate(legit))

	if fraudVPN < 250 {
		t.Errorf("fraud VPN rate too low: %d of 500", fraudVPN)
	}
	if legitVPN > 90 {
		t.Errorf("legit VPN rate too high: %d of 500", legitVPN)
	}
}

func TestGenerate_UserCountMatchesDistinctCustomers(t *testing.T) {
	txns := []*domain.Transaction{
		legitTxn("TXN_0000000001", "CUST_00000001"),
		legitTxn("TXN_0000000002", "CUST_00000002"),
	}

	devices := NewGenerator(randx.New(42)).Generate(txns)

	counts := map[string]map[string]bool{}
	for i, d := range devices {
		if counts[d.DeviceID] == nil {
			counts[d.DeviceID] = map[string]bool{}
		}
		counts[d.DeviceID][txns[i].CustomerID] = true
	}
	for _, d := range devices {
		if d.DeviceUserCount != len(counts[d.DeviceID]) {
			t.Fatalf("device %s user count %d, want %d", d.DeviceID, d.DeviceUserCount, len(counts[d.DeviceID]))
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	txns := []*domain.Transaction{
		legitTxn("TXN_0000000001", "CUST_00000001"),
		takeoverTxn("TXN_0000000002", "CUST_00000002"),
		legitTxn("TXN_0000000003", "CUST_00000001"),
	}

	a := NewGenerator(randx.New(7)).Generate(txns)
	b := NewGenerator(randx.New(7)).Generate(txns)
	for i := range a {
		if *a[i] != *b[i] {
			t.Fatalf("fingerprint %d diverged between identically seeded runs", i)
		}
	}
}
