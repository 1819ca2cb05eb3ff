package domain

import "time"

// RiskCategory is the baseline risk tier derived from a merchant's category code.
type RiskCategory string

const (
	RiskLow    RiskCategory = "low"
	RiskMedium RiskCategory = "medium"
	RiskHigh   RiskCategory = "high"
)

// Merchant represents one row of the merchant_registry table.
// The subset with IsCompromised=true forms the compromised-terminal cluster
// referenced by the transaction engine. Immutable once generated.
type Merchant struct {
	MerchantID        string
	Name              string
	CategoryCode      string // MCC
	CategoryLabel     string
	RiskCategory      RiskCategory
	ChargebackRate30d float64
	City              string
	Country           string // ISO2
	AvgMonthlyVolume  int
	RegistrationDate  time.Time
	IsCompromised     bool
}
