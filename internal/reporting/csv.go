// Package reporting renders the generated tables as CSV exports, one file
// per table, matching the layout the downstream fraud models train on.
package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shield-data-lab/internal/dataset"
	"shield-data-lab/internal/domain"
)

// timeLayout is the timestamp format of all exported datetime columns.
const timeLayout = "2006-01-02 15:04:05"

// Export file names, one per table.
const (
	CustomersFile    = "customer_profile.csv"
	MerchantsFile    = "merchant_registry.csv"
	TransactionsFile = "transactions.csv"
	DevicesFile      = "device_fingerprinting.csv"
	AlertsFile       = "fraud_alerts_history.csv"
)

// Export writes all five tables into dir, creating it if needed.
func Export(dir string, d *dataset.Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	files := map[string]string{
		CustomersFile:    RenderCustomersCSV(d.Customers),
		MerchantsFile:    RenderMerchantsCSV(d.Merchants),
		TransactionsFile: RenderTransactionsCSV(d.Transactions),
		DevicesFile:      RenderDevicesCSV(d.Devices),
		AlertsFile:       RenderAlertsCSV(d.Alerts),
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

// RenderCustomersCSV renders the customer profile table.
func RenderCustomersCSV(customers []*domain.Customer) string {
	var sb strings.Builder

	sb.WriteString("customer_id,name,email,customer_segment,account_age_days,credit_score,")
	sb.WriteString("avg_transaction_amount,is_pep,active_cards,annual_income,account_opening_date,")
	sb.WriteString("spending_velocity,risk_tolerance,preferred_hours,avg_transactions_per_week\n")

	for _, c := range customers {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%d,%d,%.2f,%s,%d,%d,%s,%s,%.2f,%s,%d\n",
			c.CustomerID,
			c.Name,
			c.Email,
			c.Segment,
			c.AccountAgeDays,
			c.CreditScore,
			c.AvgTransactionAmount,
			boolCol(c.IsPEP),
			c.ActiveCards,
			c.AnnualIncome,
			c.AccountOpeningDate.Format("2006-01-02"),
			c.SpendingVelocity,
			c.RiskTolerance,
			c.PreferredHours,
			c.AvgTransactionsPerWeek,
		))
	}
	return sb.String()
}

// RenderMerchantsCSV renders the merchant registry.
func RenderMerchantsCSV(merchants []*domain.Merchant) string {
	var sb strings.Builder

	sb.WriteString("merchant_id,name,merchant_category_code,category_label,risk_category,")
	sb.WriteString("chargeback_rate_30d,city,country,avg_monthly_volume,registration_date,is_compromised\n")

	for _, m := range merchants {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%.2f,%s,%s,%d,%s,%s\n",
			m.MerchantID,
			m.Name,
			m.CategoryCode,
			m.CategoryLabel,
			m.RiskCategory,
			m.ChargebackRate30d,
			m.City,
			m.Country,
			m.AvgMonthlyVolume,
			m.RegistrationDate.Format("2006-01-02"),
			boolCol(m.IsCompromised),
		))
	}
	return sb.String()
}

// RenderTransactionsCSV renders the transaction table. detection_delay_days
// is empty on legitimate rows.
func RenderTransactionsCSV(txns []*domain.Transaction) string {
	var sb strings.Builder

	sb.WriteString("transaction_id,customer_id,merchant_id,transaction_timestamp,amount,currency,")
	sb.WriteString("merchant_category_code,merchant_country,merchant_city,channel,is_international,")
	sb.WriteString("is_fraud,fraud_type,detection_delay_days,status,risk_category\n")

	for _, tx := range txns {
		delay := ""
		if tx.DetectionDelayDays != nil {
			delay = fmt.Sprintf("%d", *tx.DetectionDelayDays)
		}
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%.2f,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s\n",
			tx.TransactionID,
			tx.CustomerID,
			tx.MerchantID,
			tx.Timestamp.Format(timeLayout),
			tx.Amount,
			tx.Currency,
			tx.CategoryCode,
			tx.MerchantCountry,
			tx.MerchantCity,
			tx.Channel,
			boolCol(tx.IsInternational),
			boolCol(tx.IsFraud),
			tx.FraudType,
			delay,
			tx.Status,
			tx.RiskCategory,
		))
	}
	return sb.String()
}

// RenderDevicesCSV renders the device fingerprint table.
func RenderDevicesCSV(devices []*domain.Device) string {
	var sb strings.Builder

	sb.WriteString("transaction_id,device_id,device_type,os,browser,ip_address,is_vpn,is_emulator,")
	sb.WriteString("device_change_24h,screen_resolution,language,timezone,user_agent,device_user_count\n")

	for _, d := range devices {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%d\n",
			d.TransactionID,
			d.DeviceID,
			d.DeviceType,
			d.OS,
			d.Browser,
			d.IPAddress,
			boolCol(d.IsVPN),
			boolCol(d.IsEmulator),
			boolCol(d.DeviceChanged),
			d.ScreenResolution,
			d.Language,
			d.Timezone,
			quoteCol(d.UserAgent),
			d.DeviceUserCount,
		))
	}
	return sb.String()
}

// RenderAlertsCSV renders the alert history. fraud_type is empty on false
// positives.
func RenderAlertsCSV(alerts []*domain.Alert) string {
	var sb strings.Builder

	sb.WriteString("alert_id,transaction_id,customer_id,alert_date,alert_type,alert_score,")
	sb.WriteString("is_confirmed_fraud,fraud_type,response_time_minutes,reviewed_by,resolution,confirmation_date\n")

	for _, a := range alerts {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%.1f,%s,%s,%d,%s,%s,%s\n",
			a.AlertID,
			a.TransactionID,
			a.CustomerID,
			a.AlertDate.Format(timeLayout),
			a.AlertType,
			a.AlertScore,
			boolCol(a.IsConfirmedFraud),
			a.FraudType,
			a.ResponseTimeMinutes,
			a.Reviewer,
			a.Resolution,
			a.ConfirmationDate.Format(timeLayout),
		))
	}
	return sb.String()
}

func boolCol(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// quoteCol wraps a value that may contain commas.
func quoteCol(s string) string {
	if strings.ContainsAny(s, ",\"") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
