package domain

import "time"

// AlertType names the legacy detection rule that raised an alert.
type AlertType string

const (
	AlertVelocity          AlertType = "velocity"
	AlertAmountThreshold   AlertType = "amount_threshold"
	AlertGeoMismatch       AlertType = "geo_mismatch"
	AlertNewMerchant       AlertType = "new_merchant"
	AlertTimeAnomaly       AlertType = "time_anomaly"
	AlertDeviceFingerprint AlertType = "device_fingerprint"
)

// AlertTypes lists the legacy rule names an alert can carry.
var AlertTypes = []AlertType{
	AlertVelocity,
	AlertAmountThreshold,
	AlertGeoMismatch,
	AlertNewMerchant,
	AlertTimeAnomaly,
	AlertDeviceFingerprint,
}

// Resolution is the analyst's final call on an alert.
type Resolution string

const (
	ResolutionFraudConfirmed Resolution = "fraud_confirmed"
	ResolutionFalsePositive  Resolution = "false_positive"
)

// Alert represents one row of the fraud_alerts_history table. Alerts are a
// sampled subset of transactions: the legacy system misses fraud and flags
// legitimate rows, by design. FraudType is empty when the alert is a false
// positive.
type Alert struct {
	AlertID             string
	TransactionID       string
	CustomerID          string
	AlertDate           time.Time
	AlertType           AlertType
	AlertScore          float64 // [0, 100]
	IsConfirmedFraud    bool
	FraudType           FraudType
	ResponseTimeMinutes int
	Reviewer            string
	Resolution          Resolution
	ConfirmationDate    time.Time
}
