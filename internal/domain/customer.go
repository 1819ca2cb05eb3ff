package domain

import "time"

// Segment is the commercial tier of a customer account.
type Segment string

// Customer segments, ordered by account value.
const (
	SegmentBasic    Segment = "Basic"
	SegmentStandard Segment = "Standard"
	SegmentPremium  Segment = "Premium"
	SegmentPrivate  Segment = "Private"
)

// SpendingVelocity classifies how tightly spaced a customer's purchases tend to be.
type SpendingVelocity string

const (
	VelocityLow    SpendingVelocity = "low"
	VelocityMedium SpendingVelocity = "medium"
	VelocityHigh   SpendingVelocity = "high"
)

// DayPart is a customer's preferred transaction window.
type DayPart string

const (
	DayPartMorning DayPart = "morning"
	DayPartLunch   DayPart = "lunch"
	DayPartEvening DayPart = "evening"
	DayPartNight   DayPart = "night"
)

// Customer represents one row of the customer_profile table.
// Immutable once generated; downstream stages read it but never write it.
type Customer struct {
	CustomerID           string
	Name                 string
	Email                string
	Segment              Segment
	AccountAgeDays       int
	CreditScore          int // clipped to [300, 850]
	AvgTransactionAmount float64
	IsPEP                bool // politically exposed person
	ActiveCards          int
	AnnualIncome         int
	AccountOpeningDate   time.Time

	// Behavioral traits consumed by the transaction engine.
	SpendingVelocity       SpendingVelocity
	RiskTolerance          float64
	PreferredHours         DayPart
	AvgTransactionsPerWeek int
}
