// Package alert replays the bank's legacy detection system over the
// generated transactions. The legacy system is imperfect on purpose: it
// catches 65% of true fraud and raises false positives on 2.5% of
// legitimate traffic, which gives downstream models a realistic baseline.
package alert

import (
	"fmt"
	"math"

	"shield-data-lab/internal/domain"
	"shield-data-lab/internal/randx"
)

// Legacy system detection characteristics.
const (
	fraudDetectionRate = 0.65
	falsePositiveRate  = 0.025

	fraudResponseMean = 45.0 // minutes
	legitResponseMean = 12.0

	analystCount = 25
)

// Sampler draws the alerted subset and fills in analyst workflow columns.
type Sampler struct {
	rng *randx.Rand
}

func NewSampler(rng *randx.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Sample selects round(65%) of fraud rows and round(2.5%) of legitimate rows
// without replacement and emits one alert per selected transaction, in
// transaction order. Alert counts are exact for a given input, only the
// membership varies with the seed.
func (s *Sampler) Sample(txns []*domain.Transaction) []*domain.Alert {
	var fraudIdx, legitIdx []int
	for i, tx := range txns {
		if tx.IsFraud {
			fraudIdx = append(fraudIdx, i)
		} else {
			legitIdx = append(legitIdx, i)
		}
	}

	selected := make([]bool, len(txns))
	s.pick(fraudIdx, fraudDetectionRate, selected)
	s.pick(legitIdx, falsePositiveRate, selected)

	var alerts []*domain.Alert
	for i, tx := range txns {
		if !selected[i] {
			continue
		}
		alerts = append(alerts, s.build(len(alerts)+1, tx))
	}
	return alerts
}

// pick marks round(frac*len(idx)) indices, chosen without replacement.
func (s *Sampler) pick(idx []int, frac float64, selected []bool) {
	k := int(math.Round(frac * float64(len(idx))))
	for _, j := range s.rng.Perm(len(idx))[:k] {
		selected[idx[j]] = true
	}
}

func (s *Sampler) build(seq int, tx *domain.Transaction) *domain.Alert {
	a := &domain.Alert{
		AlertID:          fmt.Sprintf("ALERT_%08d", seq),
		TransactionID:    tx.TransactionID,
		CustomerID:       tx.CustomerID,
		AlertDate:        tx.Timestamp,
		AlertType:        domain.AlertTypes[s.rng.Intn(len(domain.AlertTypes))],
		IsConfirmedFraud: tx.IsFraud,
		Reviewer:         fmt.Sprintf("ANALYST_%02d", s.rng.IntBetween(1, analystCount)),
		ConfirmationDate: tx.Timestamp,
	}

	if tx.IsFraud {
		a.FraudType = tx.FraudType
		a.AlertScore = randx.Round1(s.rng.Uniform(70, 98))
		a.ResponseTimeMinutes = int(s.rng.Exponential(fraudResponseMean))
		a.Resolution = domain.ResolutionFraudConfirmed
		if tx.DetectionDelayDays != nil {
			a.ConfirmationDate = tx.Timestamp.AddDate(0, 0, *tx.DetectionDelayDays)
		}
	} else {
		a.AlertScore = randx.Round1(s.rng.Uniform(35, 75))
		a.ResponseTimeMinutes = int(s.rng.Exponential(legitResponseMean))
		a.Resolution = domain.ResolutionFalsePositive
	}
	return a
}
