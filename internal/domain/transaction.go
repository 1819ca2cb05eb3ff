package domain

import "time"

// FraudType tags a transaction with the injected fraud pattern, or legit.
type FraudType string

const (
	FraudLegit               FraudType = "legit"
	FraudCardTesting         FraudType = "card_testing"
	FraudAccountTakeover     FraudType = "account_takeover"
	FraudCompromisedTerminal FraudType = "compromised_terminal"
	FraudVelocity            FraudType = "velocity_fraud"
	FraudGeographicAnomaly   FraudType = "geographic_anomaly"
)

// FraudTypes lists all fraud patterns, cascade priority order.
var FraudTypes = []FraudType{
	FraudCardTesting,
	FraudAccountTakeover,
	FraudCompromisedTerminal,
	FraudVelocity,
	FraudGeographicAnomaly,
}

// Channel is the payment entry mode of a transaction.
type Channel string

const (
	ChannelCardPresent    Channel = "card_present"
	ChannelCardNotPresent Channel = "card_not_present"
	ChannelContactless    Channel = "contactless"
	ChannelOnline         Channel = "online"
)

// Status is the authorization outcome.
type Status string

const (
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
)

// Transaction represents one row of the transactions table.
// Created by the transaction engine, never mutated afterwards.
// CustomerID and MerchantID must reference existing profile rows.
type Transaction struct {
	TransactionID   string
	CustomerID      string
	MerchantID      string
	Timestamp       time.Time
	Amount          float64
	Currency        string
	CategoryCode    string
	MerchantCountry string
	MerchantCity    string
	Channel         Channel
	IsInternational bool

	// Fraud ground truth. DetectionDelayDays is set iff IsFraud.
	IsFraud            bool
	FraudType          FraudType
	DetectionDelayDays *int

	Status       Status
	RiskCategory RiskCategory
}
