package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shield-data-lab/internal/dataset"
	"shield-data-lab/internal/domain"
	"shield-data-lab/internal/storage"
)

func stagingFixture() *dataset.Dataset {
	ts := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	return &dataset.Dataset{
		Seed: 42,
		Customers: []*domain.Customer{
			{
				CustomerID: "CUST_00000001", Name: "Marie Dubois",
				Email: "marie.dubois@example.fr", Segment: domain.SegmentPremium,
				AccountAgeDays: 400, CreditScore: 720, AvgTransactionAmount: 310.50,
				IsPEP: false, ActiveCards: 2, AnnualIncome: 95000,
				AccountOpeningDate: ts.AddDate(0, 0, -400),
				SpendingVelocity:   domain.VelocityMedium, RiskTolerance: 0.5,
				PreferredHours: domain.DayPartEvening, AvgTransactionsPerWeek: 6,
			},
			{
				CustomerID: "CUST_00000002", Name: "Jean Martin",
				Email: "jean.martin@example.fr", Segment: domain.SegmentBasic,
				AccountAgeDays: 90, CreditScore: 640, AvgTransactionAmount: 45,
				ActiveCards: 1, AnnualIncome: 28000,
				AccountOpeningDate: ts.AddDate(0, 0, -90),
				SpendingVelocity:   domain.VelocityLow, RiskTolerance: 0.8,
				PreferredHours: domain.DayPartLunch, AvgTransactionsPerWeek: 3,
			},
		},
		Merchants: []*domain.Merchant{
			{
				MerchantID: "MERCH_0000001", Name: "Apex Retail SARL",
				CategoryCode: "5411", CategoryLabel: "Supermarket",
				RiskCategory: domain.RiskLow, ChargebackRate30d: 0.25,
				City: "Lyon", Country: "FR", AvgMonthlyVolume: 120000,
				RegistrationDate: ts.AddDate(-2, 0, 0),
			},
		},
		Transactions: []*domain.Transaction{
			{
				TransactionID: "TXN_0000000001", CustomerID: "CUST_00000001",
				MerchantID: "MERCH_0000001", Timestamp: ts, Amount: 42.50,
				Currency: "EUR", CategoryCode: "5411", MerchantCountry: "FR",
				MerchantCity: "Lyon", Channel: domain.ChannelContactless,
				FraudType: domain.FraudLegit, Status: domain.StatusApproved,
				RiskCategory: domain.RiskLow,
			},
			{
				TransactionID: "TXN_0000000002", CustomerID: "CUST_00000002",
				MerchantID: "MERCH_0000001", Timestamp: ts.Add(time.Hour),
				Amount: 2400, Currency: "EUR", CategoryCode: "5411",
				MerchantCountry: "FR", MerchantCity: "Lyon",
				Channel: domain.ChannelOnline, IsFraud: true,
				FraudType: domain.FraudAccountTakeover, DetectionDelayDays: ptr(7),
				Status: domain.StatusApproved, RiskCategory: domain.RiskLow,
			},
		},
		Devices: []*domain.Device{
			{
				TransactionID: "TXN_0000000001", DeviceID: "DEV_00000000",
				DeviceType: domain.DeviceMobile, OS: "iOS", Browser: "Safari",
				IPAddress: "82.64.12.9", ScreenResolution: "375x667",
				Language: "fr-FR", Timezone: "Europe/Paris",
				UserAgent: "Mozilla/5.0 (iOS) Safari", DeviceUserCount: 1,
			},
			{
				TransactionID: "TXN_0000000002", DeviceID: "DEV_FRAUD_00000",
				DeviceType: domain.DeviceDesktop, OS: "Windows", Browser: "Chrome",
				IPAddress: "5.188.10.44", IsVPN: true, ScreenResolution: "1920x1080",
				Language: "fr-FR", Timezone: "Europe/Paris",
				UserAgent: "Mozilla/5.0 (Windows) Chrome", DeviceUserCount: 3,
			},
		},
		Alerts: []*domain.Alert{
			{
				AlertID: "ALERT_00000001", TransactionID: "TXN_0000000002",
				CustomerID: "CUST_00000002", AlertDate: ts.Add(time.Hour),
				AlertType: domain.AlertAmountThreshold, AlertScore: 91.5,
				IsConfirmedFraud: true, FraudType: domain.FraudAccountTakeover,
				ResponseTimeMinutes: 38, Reviewer: "ANALYST_04",
				Resolution:       domain.ResolutionFraudConfirmed,
				ConfirmationDate: ts.Add(time.Hour).AddDate(0, 0, 7),
			},
		},
	}
}

func TestImporter_ImportAndQualityCheck(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	report, err := NewImporter(pool).Import(ctx, stagingFixture())
	require.NoError(t, err)

	require.EqualValues(t, 2, report.Customers)
	require.EqualValues(t, 1, report.Merchants)
	require.EqualValues(t, 2, report.Transactions)
	require.EqualValues(t, 2, report.Devices)
	require.EqualValues(t, 1, report.Alerts)
	require.EqualValues(t, 1, report.FraudCount)
	require.True(t, report.Clean(), "expected a clean quality report: %+v", report)
}

func TestImporter_ReimportTruncatesFirst(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	im := NewImporter(pool)

	_, err := im.Import(ctx, stagingFixture())
	require.NoError(t, err)

	// A second import of the same dataset must not hit duplicate keys.
	report, err := im.Import(ctx, stagingFixture())
	require.NoError(t, err)
	require.EqualValues(t, 2, report.Transactions)
}

func TestTransactionStore_RoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	d := stagingFixture()
	_, err := NewImporter(pool).Import(ctx, d)
	require.NoError(t, err)

	store := NewTransactionStore(pool)

	tx, err := store.GetByID(ctx, "TXN_0000000002")
	require.NoError(t, err)
	require.Equal(t, "CUST_00000002", tx.CustomerID)
	require.True(t, tx.IsFraud)
	require.Equal(t, domain.FraudAccountTakeover, tx.FraudType)
	require.NotNil(t, tx.DetectionDelayDays)
	require.Equal(t, 7, *tx.DetectionDelayDays)

	legit, err := store.GetByID(ctx, "TXN_0000000001")
	require.NoError(t, err)
	require.False(t, legit.IsFraud)
	require.Nil(t, legit.DetectionDelayDays)

	_, err = store.GetByID(ctx, "TXN_9999999999")
	require.ErrorIs(t, err, storage.ErrNotFound)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}

func TestCustomerStore_RoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	d := stagingFixture()

	store := NewCustomerStore(pool)
	n, err := store.ImportBulk(ctx, d.Customers)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	c, err := store.GetByID(ctx, "CUST_00000001")
	require.NoError(t, err)
	require.Equal(t, domain.SegmentPremium, c.Segment)
	require.Equal(t, domain.VelocityMedium, c.SpendingVelocity)
	require.Equal(t, domain.DayPartEvening, c.PreferredHours)
	require.Equal(t, 720, c.CreditScore)

	_, err = store.GetByID(ctx, "CUST_99999999")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCustomerStore_DuplicateImport(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	d := stagingFixture()

	store := NewCustomerStore(pool)
	_, err := store.ImportBulk(ctx, d.Customers)
	require.NoError(t, err)

	_, err = store.ImportBulk(ctx, d.Customers)
	require.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestQualityChecker_DetectsLabelMismatch(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	d := stagingFixture()
	_, err := NewImporter(pool).Import(ctx, d)
	require.NoError(t, err)

	// Corrupt one row directly: fraud flag without a fraud type.
	_, err = pool.Exec(ctx,
		`UPDATE transactions SET fraud_type = 'legit' WHERE transaction_id = 'TXN_0000000002'`)
	require.NoError(t, err)

	report, err := NewQualityChecker(pool).Check(ctx)
	require.NoError(t, err)
	require.False(t, report.Clean())
	require.EqualValues(t, 1, report.LabelMismatches)
}
