// Package stats computes the run summary reported after generation and
// served by the preview API.
package stats

import (
	"shield-data-lab/internal/dataset"
	"shield-data-lab/internal/domain"
)

// Summary aggregates one generated dataset. All monetary figures are in the
// dataset currency.
type Summary struct {
	Seed int64 `json:"seed"`

	Customers      int                    `json:"customers"`
	CustomersBySeg map[domain.Segment]int `json:"customers_by_segment"`
	Merchants      int                    `json:"merchants"`
	Compromised    int                    `json:"compromised_merchants"`

	Transactions  int                      `json:"transactions"`
	FraudCount    int                      `json:"fraud_count"`
	FraudRate     float64                  `json:"fraud_rate"`
	FraudByType   map[domain.FraudType]int `json:"fraud_by_type"`
	TotalAmount   float64                  `json:"total_amount"`
	FraudAmount   float64                  `json:"fraud_amount"`
	DeclinedCount int                      `json:"declined_count"`
	International int                      `json:"international_count"`

	UniqueDevices int `json:"unique_devices"`
	SharedDevices int `json:"shared_devices"` // used by more than 3 customers

	Alerts         int     `json:"alerts"`
	ConfirmedFraud int     `json:"confirmed_fraud_alerts"`
	AlertPrecision float64 `json:"alert_precision"`
}

// Compute derives the summary in one pass per table.
func Compute(d *dataset.Dataset) *Summary {
	s := &Summary{
		Seed:           d.Seed,
		Customers:      len(d.Customers),
		CustomersBySeg: make(map[domain.Segment]int),
		Merchants:      len(d.Merchants),
		Transactions:   len(d.Transactions),
		FraudByType:    make(map[domain.FraudType]int),
		Alerts:         len(d.Alerts),
	}

	for _, c := range d.Customers {
		s.CustomersBySeg[c.Segment]++
	}
	for _, m := range d.Merchants {
		if m.IsCompromised {
			s.Compromised++
		}
	}

	for _, tx := range d.Transactions {
		s.TotalAmount += tx.Amount
		if tx.IsFraud {
			s.FraudCount++
			s.FraudAmount += tx.Amount
			s.FraudByType[tx.FraudType]++
		}
		if tx.Status == domain.StatusDeclined {
			s.DeclinedCount++
		}
		if tx.IsInternational {
			s.International++
		}
	}
	if s.Transactions > 0 {
		s.FraudRate = float64(s.FraudCount) / float64(s.Transactions)
	}

	devices := make(map[string]int)
	for _, dev := range d.Devices {
		devices[dev.DeviceID] = dev.DeviceUserCount
	}
	s.UniqueDevices = len(devices)
	for _, users := range devices {
		if users > 3 {
			s.SharedDevices++
		}
	}

	for _, a := range d.Alerts {
		if a.IsConfirmedFraud {
			s.ConfirmedFraud++
		}
	}
	if s.Alerts > 0 {
		s.AlertPrecision = float64(s.ConfirmedFraud) / float64(s.Alerts)
	}

	return s
}
